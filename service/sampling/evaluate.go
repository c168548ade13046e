/*
 * @module service/sampling/evaluate
 * @description 检验判定：按致命 -> 严重/轻微 的优先级将缺陷数与接收数比较
 * @architecture 领域服务层 - 纯函数
 * @documentReference NBR 5426
 * @stateFlow 限值 + 缺陷数 -> 判定结果
 * @rules 致命缺陷超限直接拒收；严重/轻微超限转人工分级审批，不自动拒收
 * @dependencies 无
 * @refs service/sampling/types.go
 */

package sampling

import "fmt"

// Evaluation 判定明细
type Evaluation struct {
	Disposition             Disposition  `json:"disposition" example:"approved"`
	CriticalWithinLimit     bool         `json:"critical_within_limit"`
	MajorWithinLimit        bool         `json:"major_within_limit"`
	MinorWithinLimit        bool         `json:"minor_within_limit"`
	NeedsHierarchicalReview bool         `json:"needs_hierarchical_review"`
	Observed                DefectCounts `json:"observed"`
}

// Evaluate 计算判定结果，为全函数：相同输入恒得相同输出
func Evaluate(limits SeverityLimits, observed DefectCounts) (Disposition, error) {
	ev, err := EvaluateDetail(limits, observed)
	if err != nil {
		return "", err
	}
	return ev.Disposition, nil
}

// EvaluateDetail 计算判定结果及各严重度是否在限值内
func EvaluateDetail(limits SeverityLimits, observed DefectCounts) (Evaluation, error) {
	if observed.Critical < 0 || observed.Major < 0 || observed.Minor < 0 {
		return Evaluation{}, fmt.Errorf("%w: critical=%d major=%d minor=%d",
			ErrInvalidDefectCount, observed.Critical, observed.Major, observed.Minor)
	}

	ev := Evaluation{
		CriticalWithinLimit: observed.Critical <= limits.Critical.Acceptance,
		MajorWithinLimit:    observed.Major <= limits.Major.Acceptance,
		MinorWithinLimit:    observed.Minor <= limits.Minor.Acceptance,
		Observed:            observed,
	}
	ev.NeedsHierarchicalReview = !ev.CriticalWithinLimit || !ev.MajorWithinLimit || !ev.MinorWithinLimit

	switch {
	case !ev.CriticalWithinLimit:
		ev.Disposition = DispositionRejected
	case !ev.MajorWithinLimit || !ev.MinorWithinLimit:
		ev.Disposition = DispositionPendingReview
	default:
		ev.Disposition = DispositionApproved
	}
	return ev, nil
}
