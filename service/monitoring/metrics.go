/*
 * @module service/monitoring/metrics
 * @description Prometheus 业务指标：抽样方案、判定结果、最终决定、RNC 与事件发布
 * @architecture 分层架构 - 基础设施层
 * @documentReference dev_docs/monitoring.md
 * @stateFlow 业务操作 -> 指标累加 -> /metrics 暴露
 * @rules 标签取值必须为有限枚举，避免高基数
 * @dependencies github.com/prometheus/client_golang
 * @refs main.go
 */

package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inspection"

var (
	samplingPlansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sampling_plans_total",
		Help:      "抽样方案计算次数",
	}, []string{"type", "level"})

	sampleSizeHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sample_size",
		Help:      "抽样方案的样本量分布",
		Buckets:   []float64{2, 5, 13, 32, 80, 200, 500, 1250, 3150},
	})

	dispositionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dispositions_total",
		Help:      "判定结果计数",
	}, []string{"disposition"})

	finalizedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "finalized_total",
		Help:      "检验最终决定计数",
	}, []string{"decision", "type"})

	inspectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "duration_seconds",
		Help:      "检验从开始到完成的耗时",
		Buckets:   prometheus.ExponentialBuckets(60, 2, 10),
	})

	rncCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rnc_created_total",
		Help:      "不合格报告创建数",
	}, []string{"type", "recurring"})

	rncOverdueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rnc_overdue_total",
		Help:      "被标记为逾期的不合格报告数",
	})

	eventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "领域事件发布次数",
	}, []string{"type", "result"})

	schedulerJobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduler_job_runs_total",
		Help:      "定时任务执行次数",
	}, []string{"job", "result"})
)

// RecordSamplingPlan 记录一次抽样方案计算
func RecordSamplingPlan(inspectionType, level string, sampleSize int) {
	samplingPlansTotal.WithLabelValues(inspectionType, level).Inc()
	sampleSizeHistogram.Observe(float64(sampleSize))
}

// RecordDisposition 记录一次判定
func RecordDisposition(disposition string) {
	dispositionsTotal.WithLabelValues(disposition).Inc()
}

// RecordFinalized 记录检验最终决定
func RecordFinalized(decision, inspectionType string, startedAt, completedAt time.Time) {
	finalizedTotal.WithLabelValues(decision, inspectionType).Inc()
	if !startedAt.IsZero() && completedAt.After(startedAt) {
		inspectionDuration.Observe(completedAt.Sub(startedAt).Seconds())
	}
}

// RecordRNCCreated 记录 RNC 创建
func RecordRNCCreated(rncType string, recurring bool) {
	label := "false"
	if recurring {
		label = "true"
	}
	rncCreatedTotal.WithLabelValues(rncType, label).Inc()
}

// RecordRNCOverdue 记录逾期 RNC 数
func RecordRNCOverdue(count int) {
	rncOverdueTotal.Add(float64(count))
}

// RecordEventPublished 记录事件发布结果
func RecordEventPublished(eventType string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	eventsPublishedTotal.WithLabelValues(eventType, result).Inc()
}

// RecordJobRun 记录定时任务执行结果
func RecordJobRun(job string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	schedulerJobRuns.WithLabelValues(job, result).Inc()
}
