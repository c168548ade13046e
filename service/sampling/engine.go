/*
 * @module service/sampling/engine
 * @description 抽样引擎：批量+检验水平 -> 字码 -> 样本量 -> 各严重度 Ac/Re，以及赠品全检方案
 * @architecture 领域服务层 - 纯函数计算，无 I/O
 * @documentReference NBR 5426 / ANSI Z1.4
 * @stateFlow 输入批量与配置 -> 查表 -> 输出抽样方案
 * @rules 致命缺陷 AQL 固定为 0，恒为 Ac=0/Re=1；表外 AQL 直接报错，不静默回退
 * @dependencies 无
 * @refs service/sampling/tables.go, service/sampling/evaluate.go
 */

package sampling

import (
	"fmt"
)

// Engine 抽样引擎。构造后只读，可并发使用。
type Engine struct {
	rows []LotSizeCodeRow
}

var defaultEngine = MustNewEngine(ApplicationCodeTable)

// Default 返回使用系统字码表的引擎
func Default() *Engine {
	return defaultEngine
}

// NewEngine 使用自定义批量-字码表创建引擎，表必须从 1 开始连续覆盖到无上限
func NewEngine(rows []LotSizeCodeRow) (*Engine, error) {
	if err := ValidateCodeTable(rows); err != nil {
		return nil, err
	}
	copied := make([]LotSizeCodeRow, len(rows))
	copy(copied, rows)
	return &Engine{rows: copied}, nil
}

// MustNewEngine 同 NewEngine，表非法时 panic，仅用于静态表
func MustNewEngine(rows []LotSizeCodeRow) *Engine {
	e, err := NewEngine(rows)
	if err != nil {
		panic(err)
	}
	return e
}

// ValidateCodeTable 校验字码表：区间连续无重叠、首行从 1 开始、末行无上限、各水平字码单调不减
func ValidateCodeTable(rows []LotSizeCodeRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: 字码表为空", ErrInvalidCodeTable)
	}
	if rows[0].Min != 1 {
		return fmt.Errorf("%w: 首行必须从 1 开始，实际为 %d", ErrInvalidCodeTable, rows[0].Min)
	}

	prevIndex := map[InspectionLevel]int{}
	for i, row := range rows {
		last := i == len(rows)-1
		if row.Max == Unbounded && !last {
			return fmt.Errorf("%w: 第 %d 行无上限但不是最后一行", ErrInvalidCodeTable, i+1)
		}
		if last && row.Max != Unbounded {
			return fmt.Errorf("%w: 批量 > %d 未覆盖", ErrInvalidCodeTable, row.Max)
		}
		if row.Max != Unbounded && row.Max < row.Min {
			return fmt.Errorf("%w: 第 %d 行区间 [%d, %d] 非法", ErrInvalidCodeTable, i+1, row.Min, row.Max)
		}
		if i > 0 && row.Min != rows[i-1].Max+1 {
			if row.Min <= rows[i-1].Max {
				return fmt.Errorf("%w: 第 %d 行与上一行重叠", ErrInvalidCodeTable, i+1)
			}
			return fmt.Errorf("%w: 批量 %d~%d 未覆盖", ErrInvalidCodeTable, rows[i-1].Max+1, row.Min-1)
		}

		for _, level := range InspectionLevels {
			code, _ := row.CodeFor(level)
			idx, ok := codeIndex(code)
			if !ok {
				return fmt.Errorf("%w: %w: 第 %d 行 %s 水平字码 %q", ErrInvalidCodeTable, ErrUnknownSampleSizeCode, i+1, level, code)
			}
			if prev, seen := prevIndex[level]; seen && idx < prev {
				return fmt.Errorf("%w: %s 水平字码在第 %d 行变小", ErrInvalidCodeTable, level, i+1)
			}
			prevIndex[level] = idx
		}
	}
	return nil
}

// CodeTable 返回字码表副本
func (e *Engine) CodeTable() []LotSizeCodeRow {
	out := make([]LotSizeCodeRow, len(e.rows))
	copy(out, e.rows)
	return out
}

// ResolveSampleSizeCode 根据批量和检验水平取样本量字码
func (e *Engine) ResolveSampleSizeCode(lotSize int, level InspectionLevel) (SampleSizeCode, error) {
	if lotSize <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidLotSize, lotSize)
	}
	if !level.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidInspectionLevel, level)
	}
	for _, row := range e.rows {
		if row.Contains(lotSize) {
			code, _ := row.CodeFor(level)
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: 批量 %d", ErrNoMatchingLotSizeRange, lotSize)
}

// ResolveSampleSize 字码 -> 样本量
func (e *Engine) ResolveSampleSize(code SampleSizeCode) (int, error) {
	size, ok := sampleSizeByCode[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSampleSizeCode, code)
	}
	return size, nil
}

// ResolveAcceptanceRejection 样本量 + AQL -> Ac/Re。
// AQL 为 0 时恒返回 {0, 1}；样本量必须是标准表中的样本量。
func (e *Engine) ResolveAcceptanceRejection(sampleSize int, aqlPercent float64) (Limits, error) {
	milli, ok := aqlMilli(aqlPercent)
	if !ok {
		return Limits{}, fmt.Errorf("%w: %v", ErrUnsupportedAQLValue, aqlPercent)
	}
	if milli == 0 {
		return Limits{Acceptance: 0, Rejection: 1}, nil
	}

	row, ok := aqlTable[sampleSize]
	if !ok {
		return Limits{}, fmt.Errorf("%w: 样本量 %d 不对应任何字码", ErrUnknownSampleSizeCode, sampleSize)
	}
	limits, ok := row[milli]
	if !ok {
		return Limits{}, fmt.Errorf("%w: %v", ErrUnsupportedAQLValue, aqlPercent)
	}
	return limits, nil
}

// ComputeSeverityLimits 按三档 AQL 计算限值
func (e *Engine) ComputeSeverityLimits(lotSize int, level InspectionLevel, aqlCritical, aqlMajor, aqlMinor float64) (SeverityLimits, error) {
	plan, err := e.ComputeSamplingPlan(lotSize, level, AQLSet{Critical: aqlCritical, Major: aqlMajor, Minor: aqlMinor})
	if err != nil {
		return SeverityLimits{}, err
	}
	return plan.Limits, nil
}

// ComputeSamplingPlan 计算完整的抽样方案
func (e *Engine) ComputeSamplingPlan(lotSize int, level InspectionLevel, aqls AQLSet) (SamplingPlan, error) {
	code, err := e.ResolveSampleSizeCode(lotSize, level)
	if err != nil {
		return SamplingPlan{}, err
	}
	sampleSize, err := e.ResolveSampleSize(code)
	if err != nil {
		return SamplingPlan{}, err
	}
	limits, err := e.limitsFor(sampleSize, aqls)
	if err != nil {
		return SamplingPlan{}, err
	}
	return SamplingPlan{
		LotSize:    lotSize,
		Level:      level,
		Code:       code,
		SampleSize: sampleSize,
		Limits:     limits,
	}, nil
}

// ComputeBonificationSampling 赠品检验：100% 全检，样本量等于批量，AQL 取默认值。
// 全检样本量通常不在主表中，Ac/Re 取样本量不超过批量的最大字码行。
func (e *Engine) ComputeBonificationSampling(lotSize int) (SamplingPlan, error) {
	if lotSize <= 0 {
		return SamplingPlan{}, fmt.Errorf("%w: %d", ErrInvalidLotSize, lotSize)
	}
	code := codeForQuantity(lotSize)
	tableSize := sampleSizeByCode[code]
	limits, err := e.limitsFor(tableSize, DefaultAQLs)
	if err != nil {
		return SamplingPlan{}, err
	}
	return SamplingPlan{
		LotSize:        lotSize,
		Code:           code,
		SampleSize:     lotSize,
		FullInspection: true,
		Limits:         limits,
	}, nil
}

func (e *Engine) limitsFor(sampleSize int, aqls AQLSet) (SeverityLimits, error) {
	if milli, ok := aqlMilli(aqls.Critical); !ok || milli != 0 {
		return SeverityLimits{}, fmt.Errorf("%w: 致命缺陷 AQL 必须为 0，实际为 %v", ErrUnsupportedAQLValue, aqls.Critical)
	}
	critical, err := e.ResolveAcceptanceRejection(sampleSize, aqls.Critical)
	if err != nil {
		return SeverityLimits{}, err
	}
	major, err := e.ResolveAcceptanceRejection(sampleSize, aqls.Major)
	if err != nil {
		return SeverityLimits{}, fmt.Errorf("严重缺陷: %w", err)
	}
	minor, err := e.ResolveAcceptanceRejection(sampleSize, aqls.Minor)
	if err != nil {
		return SeverityLimits{}, fmt.Errorf("轻微缺陷: %w", err)
	}
	return SeverityLimits{
		Critical: SeverityLimit{AQL: 0, Acceptance: critical.Acceptance, Rejection: critical.Rejection},
		Major:    SeverityLimit{AQL: aqls.Major, Acceptance: major.Acceptance, Rejection: major.Rejection},
		Minor:    SeverityLimit{AQL: aqls.Minor, Acceptance: minor.Acceptance, Rejection: minor.Rejection},
	}, nil
}

// IsSupportedAQL AQL 是否在支持列中（0 视为支持）
func IsSupportedAQL(aql float64) bool {
	milli, ok := aqlMilli(aql)
	if !ok {
		return false
	}
	if milli == 0 {
		return true
	}
	_, ok = aqlTable[sampleSizeByCode["A"]][milli]
	return ok
}

func codeIndex(code SampleSizeCode) (int, bool) {
	for i, c := range sampleSizeCodes {
		if c == code {
			return i, true
		}
	}
	return 0, false
}

// codeForQuantity 样本量不超过 quantity 的最大字码，最小为 A
func codeForQuantity(quantity int) SampleSizeCode {
	code := sampleSizeCodes[0]
	for _, c := range sampleSizeCodes {
		if sampleSizeByCode[c] > quantity {
			break
		}
		code = c
	}
	return code
}

// 以下为默认引擎的包级快捷函数

// ResolveSampleSizeCode 见 Engine.ResolveSampleSizeCode
func ResolveSampleSizeCode(lotSize int, level InspectionLevel) (SampleSizeCode, error) {
	return defaultEngine.ResolveSampleSizeCode(lotSize, level)
}

// ResolveSampleSize 见 Engine.ResolveSampleSize
func ResolveSampleSize(code SampleSizeCode) (int, error) {
	return defaultEngine.ResolveSampleSize(code)
}

// ResolveAcceptanceRejection 见 Engine.ResolveAcceptanceRejection
func ResolveAcceptanceRejection(sampleSize int, aqlPercent float64) (Limits, error) {
	return defaultEngine.ResolveAcceptanceRejection(sampleSize, aqlPercent)
}

// ComputeSeverityLimits 见 Engine.ComputeSeverityLimits
func ComputeSeverityLimits(lotSize int, level InspectionLevel, aqlCritical, aqlMajor, aqlMinor float64) (SeverityLimits, error) {
	return defaultEngine.ComputeSeverityLimits(lotSize, level, aqlCritical, aqlMajor, aqlMinor)
}

// ComputeBonificationSampling 见 Engine.ComputeBonificationSampling
func ComputeBonificationSampling(lotSize int) (SamplingPlan, error) {
	return defaultEngine.ComputeBonificationSampling(lotSize)
}
