/**
 * @module SchedulerService
 * @description 后台定时任务调度器：RNC 逾期标记、过期草稿检验清理
 * @architecture 基于 robfig/cron 的调度器模式，多实例部署时以分布式锁保证单实例执行
 * @documentReference dev_docs/requirements.md
 * @stateFlow 注册任务 -> Start -> 定时触发 -> 加锁执行 -> Stop
 * @rules 任务失败只记录日志与指标，不影响后续调度
 * @dependencies github.com/robfig/cron/v3, inspection-service/service/distributed_lock
 * @refs ./jobs.go
 */

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"inspection-service/service/distributed_lock"
	"inspection-service/service/monitoring"

	"github.com/robfig/cron/v3"
)

// Job 定时任务
type Job struct {
	Name string
	Spec string
	TTL  time.Duration
	Run  func(ctx context.Context) error
}

// SchedulerService 调度器服务
type SchedulerService struct {
	cron     *cron.Cron
	executor *distributed_lock.LockExecutor
	jobs     []Job
	ctx      context.Context
	cancel   context.CancelFunc
	running  sync.WaitGroup
}

// NewSchedulerService 创建调度器服务，lock 为空时使用进程内锁
func NewSchedulerService(lock distributed_lock.DistributedLock) *SchedulerService {
	if lock == nil {
		lock = distributed_lock.NewLocalLock()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SchedulerService{
		cron:     cron.New(cron.WithSeconds()),
		executor: distributed_lock.NewLockExecutor(lock),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// AddJob 注册定时任务
func (s *SchedulerService) AddJob(job Job) error {
	if job.TTL <= 0 {
		job.TTL = 5 * time.Minute
	}
	_, err := s.cron.AddFunc(job.Spec, func() {
		s.RunNow(job)
	})
	if err != nil {
		return fmt.Errorf("添加定时任务 %s 失败: %w", job.Name, err)
	}
	s.jobs = append(s.jobs, job)
	slog.Info("添加定时任务", "job", job.Name, "spec", job.Spec)
	return nil
}

// Start 启动调度器
func (s *SchedulerService) Start() {
	slog.Info("启动定时任务调度器", "jobs", len(s.jobs))
	s.cron.Start()
}

// Stop 停止调度器并等待执行中的任务结束
func (s *SchedulerService) Stop() {
	slog.Info("停止定时任务调度器")
	s.cancel()
	<-s.cron.Stop().Done()
	s.running.Wait()
	slog.Info("定时任务调度器已停止")
}

// RunNow 立即在锁保护下执行一次任务
func (s *SchedulerService) RunNow(job Job) {
	s.running.Add(1)
	defer s.running.Done()

	ctx, cancel := context.WithTimeout(s.ctx, job.TTL)
	defer cancel()

	start := time.Now()
	executed, err := s.executor.ExecuteWithLock(ctx, "scheduler:"+job.Name, job.TTL, job.Run)
	if !executed && err == nil {
		return
	}
	monitoring.RecordJobRun(job.Name, err)
	if err != nil {
		slog.Error("定时任务执行失败", "job", job.Name, "error", err)
		return
	}
	slog.Debug("定时任务执行完成", "job", job.Name, "duration", time.Since(start))
}

// Jobs 已注册的任务
func (s *SchedulerService) Jobs() []Job {
	return append([]Job(nil), s.jobs...)
}
