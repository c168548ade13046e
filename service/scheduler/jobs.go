package scheduler

import (
	"context"
	"log/slog"
	"time"

	"inspection-service/service/models"
)

// 任务名称
const (
	JobMarkOverdueRNCs         = "mark_overdue_rncs"
	JobCleanupDraftInspections = "cleanup_draft_inspections"
)

// OverdueMarker 标记逾期 RNC
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

// DraftCleaner 清理草稿检验
type DraftCleaner interface {
	DeleteStaleDrafts(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionSource 草稿保留天数
type RetentionSource interface {
	DraftRetentionDays() int
}

// OverdueRNCJob RNC 逾期标记任务
func OverdueRNCJob(spec string, marker OverdueMarker) Job {
	return Job{
		Name: JobMarkOverdueRNCs,
		Spec: spec,
		Run: func(ctx context.Context) error {
			_, err := marker.MarkOverdue(ctx, time.Now())
			return err
		},
	}
}

// DraftCleanupJob 过期草稿检验清理任务
func DraftCleanupJob(spec string, cleaner DraftCleaner, retention RetentionSource) Job {
	return Job{
		Name: JobCleanupDraftInspections,
		Spec: spec,
		Run: func(ctx context.Context) error {
			cutoff := time.Now().AddDate(0, 0, -retention.DraftRetentionDays())
			deleted, err := cleaner.DeleteStaleDrafts(ctx, cutoff)
			if err != nil {
				return err
			}
			if deleted > 0 {
				slog.Info("已清理过期草稿检验", "deleted", deleted, "cutoff", cutoff)
			}
			return nil
		},
	}
}

// RegisterJobs 按配置注册全部后台任务
func RegisterJobs(s *SchedulerService, cfg models.SchedulerConfig, marker OverdueMarker, cleaner DraftCleaner, retention RetentionSource) error {
	if err := s.AddJob(OverdueRNCJob(cfg.OverdueCron, marker)); err != nil {
		return err
	}
	return s.AddJob(DraftCleanupJob(cfg.DraftCleanupCron, cleaner, retention))
}
