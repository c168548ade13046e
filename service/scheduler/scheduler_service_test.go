package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"inspection-service/service/distributed_lock"
	"inspection-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMarker struct{ calls int32 }

func (m *stubMarker) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	atomic.AddInt32(&m.calls, 1)
	return 2, nil
}

type stubCleaner struct{ cutoff time.Time }

func (c *stubCleaner) DeleteStaleDrafts(ctx context.Context, cutoff time.Time) (int64, error) {
	c.cutoff = cutoff
	return 1, nil
}

type stubRetention int

func (r stubRetention) DraftRetentionDays() int { return int(r) }

func TestRegisterJobs(t *testing.T) {
	s := NewSchedulerService(nil)
	marker := &stubMarker{}
	cleaner := &stubCleaner{}
	cfg := models.SchedulerConfig{OverdueCron: "0 0 * * * *", DraftCleanupCron: "0 30 2 * * *"}

	require.NoError(t, RegisterJobs(s, cfg, marker, cleaner, stubRetention(10)))
	jobs := s.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, JobMarkOverdueRNCs, jobs[0].Name)
	assert.Equal(t, JobCleanupDraftInspections, jobs[1].Name)

	s.RunNow(jobs[0])
	s.RunNow(jobs[1])
	assert.Equal(t, int32(1), atomic.LoadInt32(&marker.calls))
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -10), cleaner.cutoff, time.Minute)

	s.Start()
	s.Stop()
}

func TestAddJob_InvalidSpec(t *testing.T) {
	s := NewSchedulerService(nil)
	err := s.AddJob(Job{Name: "bad", Spec: "every minute", Run: func(context.Context) error { return nil }})
	assert.Error(t, err)
	assert.Empty(t, s.Jobs())
}

func TestRunNow_SkipsWhenLocked(t *testing.T) {
	lock := distributed_lock.NewLocalLock()
	s := NewSchedulerService(lock)

	ok, err := lock.TryLock(context.Background(), "scheduler:busy", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	var ran int32
	s.RunNow(Job{Name: "busy", TTL: time.Second, Run: func(context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	}})
	assert.Zero(t, atomic.LoadInt32(&ran))

	require.NoError(t, lock.Unlock(context.Background(), "scheduler:busy"))
	s.RunNow(Job{Name: "busy", TTL: time.Second, Run: func(context.Context) error {
		atomic.AddInt32(&ran, 1)
		return errors.New("boom")
	}})
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
}
