/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs dev_docs/model.md
 */

package api

import (
	"inspection-service/api/controllers"
	apimiddleware "inspection-service/api/middleware"
	"inspection-service/service"
	"inspection-service/service/config"
	"inspection-service/service/inspection"
	"inspection-service/service/inspection_plan"
	"inspection-service/service/models"
	"inspection-service/service/monitoring"
	"inspection-service/service/product"
	"inspection-service/service/rnc"
	"inspection-service/service/supplier"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// Dependencies 路由依赖的服务
type Dependencies struct {
	Config        *config.ConfigService
	Products      *product.Service
	Plans         *inspection_plan.Service
	Inspections   *inspection.Service
	RNCs          *rnc.Service
	Suppliers     *supplier.Service
	HealthChecker *monitoring.HealthChecker
	RateLimiter   apimiddleware.RateLimitChecker
	RateLimit     models.RateLimitConfig
}

// InitRoute 使用全局服务初始化所有API路由
func InitRoute(r *chi.Mux) {
	deps := Dependencies{
		Config:        service.GlobalConfigService,
		Products:      service.GlobalProductService,
		Plans:         service.GlobalPlanService,
		Inspections:   service.GlobalInspectionService,
		RNCs:          service.GlobalRNCService,
		Suppliers:     service.GlobalSupplierService,
		HealthChecker: service.GlobalHealthChecker,
		RateLimit:     service.GlobalConfigService.Manager().GetConfig().RateLimit,
	}
	if service.GlobalRateLimiter != nil {
		deps.RateLimiter = service.GlobalRateLimiter
	}
	RegisterRoutes(r, deps)
}

// RegisterRoutes 注册中间件与全部路由
func RegisterRoutes(r *chi.Mux, deps Dependencies) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController(deps.HealthChecker)
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 业务接口，限流只作用于此分组
	r.Group(func(r chi.Router) {
		if deps.RateLimit.Enabled && deps.RateLimiter != nil {
			r.Use(apimiddleware.RateLimit(deps.RateLimiter, apimiddleware.RateLimitConfig{
				ClientRequests: deps.RateLimit.Requests,
				WindowSeconds:  deps.RateLimit.WindowSeconds,
			}))
		}

		// 抽样计算
		r.Route("/sampling", func(r chi.Router) {
			samplingController := controllers.NewSamplingController(deps.Config)
			r.Get("/tables", samplingController.GetCodeTable)
			r.Get("/aqls", samplingController.GetSupportedAQLs)
			r.Post("/code", samplingController.ResolveCode)
			r.Post("/plan", samplingController.ComputePlan)
			r.Post("/bonification", samplingController.ComputeBonification)
			r.Post("/evaluate", samplingController.Evaluate)
			r.Post("/graphic", samplingController.GraphicInspection)
		})

		// 产品目录
		r.Route("/products", func(r chi.Router) {
			productController := controllers.NewProductController(deps.Products)
			r.Post("/", productController.CreateProduct)
			r.Get("/", productController.ListProducts)
			r.Get("/search", productController.SearchProducts)
			r.Post("/import", productController.ImportProducts)
			r.Get("/{id}", productController.GetProduct)
			r.Put("/{id}", productController.UpdateProduct)
			r.Delete("/{id}", productController.DeleteProduct)
		})

		// 检验计划
		r.Route("/inspection-plans", func(r chi.Router) {
			planController := controllers.NewInspectionPlanController(deps.Plans)
			r.Post("/", planController.CreatePlan)
			r.Get("/", planController.ListPlans)
			r.Get("/{id}", planController.GetPlan)
			r.Put("/{id}", planController.UpdatePlan)
			r.Delete("/{id}", planController.DeletePlan)
			r.Post("/{id}/approve", planController.ApprovePlan)
			r.Post("/{id}/deactivate", planController.DeactivatePlan)
			r.Get("/{id}/revisions", planController.ListRevisions)
			r.Get("/{id}/sampling-preview", planController.SamplingPreview)
		})

		// 检验
		r.Route("/inspections", func(r chi.Router) {
			inspectionController := controllers.NewInspectionController(deps.Inspections)
			r.Post("/", inspectionController.CreateInspection)
			r.Get("/", inspectionController.ListInspections)
			r.Get("/{id}", inspectionController.GetInspection)
			r.Post("/{id}/sampling", inspectionController.ConfigureSampling)
			r.Put("/{id}/defects", inspectionController.RecordDefects)
			r.Get("/{id}/evaluation", inspectionController.GetEvaluation)
			r.Post("/{id}/finalize", inspectionController.FinalizeInspection)
		})

		// 不合格报告
		r.Route("/rncs", func(r chi.Router) {
			rncController := controllers.NewRNCController(deps.RNCs)
			r.Post("/", rncController.CreateRNC)
			r.Get("/", rncController.ListRNCs)
			r.Post("/from-inspection/{inspectionId}", rncController.CreateFromInspection)
			r.Get("/history/{productCode}", rncController.GetHistory)
			r.Get("/{id}", rncController.GetRNC)
			r.Patch("/{id}/status", rncController.UpdateRNCStatus)
		})

		// 供应商
		r.Route("/suppliers", func(r chi.Router) {
			supplierController := controllers.NewSupplierController(deps.Suppliers)
			r.Post("/", supplierController.CreateSupplier)
			r.Get("/", supplierController.ListSuppliers)
			r.Get("/stats/overview", supplierController.GetStats)
			r.Get("/{id}", supplierController.GetSupplier)
			r.Put("/{id}", supplierController.UpdateSupplier)
			r.Delete("/{id}", supplierController.DeleteSupplier)
			r.Post("/{id}/evaluations", supplierController.CreateEvaluation)
			r.Get("/{id}/evaluations", supplierController.ListEvaluations)
			r.Post("/{id}/audits", supplierController.CreateAudit)
			r.Get("/{id}/audits", supplierController.ListAudits)
		})

		// 系统配置
		r.Route("/configs", func(r chi.Router) {
			configController := controllers.NewConfigController(deps.Config)
			r.Get("/", configController.GetAllConfigs)
			r.Post("/batch", configController.BatchUpdateConfigs)
			r.Get("/{key}", configController.GetConfig)
			r.Put("/{key}", configController.UpdateConfig)
		})
	})
}
