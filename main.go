package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"inspection-service/api"
	_ "inspection-service/docs"
	"inspection-service/logger"
	"inspection-service/service"

	daprd "github.com/dapr/go-sdk/service/http"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title 质量检验服务 API
// @version 1.0
// @description 来料质量检验服务：产品目录、检验计划、NBR 5426 抽样检验与不合格报告(RNC)
// @BasePath /
func main() {
	logger.InitLogger()

	if err := service.Init(); err != nil {
		slog.Error("服务初始化失败", "error", err)
		os.Exit(1)
	}
	defer service.Shutdown()

	serverCfg := service.GlobalConfigService.Manager().GetConfig().Server
	mux := chi.NewRouter()

	// 如果有BASE_CONTEXT，则在该路径下挂载所有路由
	if serverCfg.BaseContext != "" {
		mux.Route(serverCfg.BaseContext, func(r chi.Router) {
			subMux := r.(*chi.Mux)
			api.InitRoute(subMux)
			r.Handle("/metrics", promhttp.Handler())
			r.Handle("/swagger*", httpSwagger.WrapHandler)
		})
	} else {
		api.InitRoute(mux)
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/swagger*", httpSwagger.WrapHandler)
	}

	s := daprd.NewServiceWithMux(":"+strconv.Itoa(serverCfg.Port), mux)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		slog.Info("收到退出信号，正在停止服务")
		if err := s.GracefulStop(); err != nil {
			slog.Error("停止服务失败", "error", err)
		}
	}()

	slog.Info("服务启动", "port", serverCfg.Port, "base_context", serverCfg.BaseContext)
	if err := s.Start(); err != nil && err != http.ErrServerClosed {
		slog.Error("服务异常退出", "error", err)
		os.Exit(1)
	}
}
