/*
 * @module service/sampling/types
 * @description 抽样引擎值对象定义：检验水平、缺陷严重度、判定结果、接收/拒收数
 * @architecture 领域模型层 - 纯值对象，无持久化
 * @documentReference NBR 5426 / ANSI Z1.4
 * @stateFlow 无状态，按需计算
 * @rules 所有类型均为封闭枚举，switch 必须穷举
 * @dependencies 无
 * @refs service/sampling/engine.go
 */

package sampling

import (
	"fmt"
	"strings"
)

// InspectionLevel 一般检验水平
type InspectionLevel string

const (
	LevelI   InspectionLevel = "I"   // 宽松
	LevelII  InspectionLevel = "II"  // 正常
	LevelIII InspectionLevel = "III" // 严格
)

// InspectionLevels 全部检验水平，按严格程度排序
var InspectionLevels = []InspectionLevel{LevelI, LevelII, LevelIII}

// ParseInspectionLevel 解析检验水平，忽略大小写与首尾空格
func ParseInspectionLevel(s string) (InspectionLevel, error) {
	switch InspectionLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case LevelI:
		return LevelI, nil
	case LevelII:
		return LevelII, nil
	case LevelIII:
		return LevelIII, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidInspectionLevel, s)
	}
}

// Valid 是否为合法检验水平
func (l InspectionLevel) Valid() bool {
	switch l {
	case LevelI, LevelII, LevelIII:
		return true
	default:
		return false
	}
}

// Severity 缺陷严重度
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// ParseSeverity 解析缺陷严重度
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityCritical:
		return SeverityCritical, nil
	case SeverityMajor:
		return SeverityMajor, nil
	case SeverityMinor:
		return SeverityMinor, nil
	default:
		return "", fmt.Errorf("未知的缺陷严重度: %q", s)
	}
}

// Disposition 检验判定结果，始终由限值和缺陷数推导，不单独存储
type Disposition string

const (
	DispositionApproved      Disposition = "approved"
	DispositionPendingReview Disposition = "pending_review"
	DispositionRejected      Disposition = "rejected"
)

// Label 判定结果的展示名称
func (d Disposition) Label() string {
	switch d {
	case DispositionApproved:
		return "Aprovado"
	case DispositionPendingReview:
		return "Pendente Revisão"
	case DispositionRejected:
		return "Reprovado"
	default:
		return ""
	}
}

// SampleSizeCode 样本量字码 (A..S)
type SampleSizeCode string

// Limits 接收数(Ac)/拒收数(Re)
type Limits struct {
	Acceptance int `json:"acceptance" example:"2"`
	Rejection  int `json:"rejection" example:"3"`
}

// SeverityLimit 单个严重度的 AQL 与接收/拒收数
type SeverityLimit struct {
	AQL        float64 `json:"aql" example:"2.5"`
	Acceptance int     `json:"acceptance" example:"2"`
	Rejection  int     `json:"rejection" example:"3"`
}

// SeverityLimits 一次检验的三档限值
type SeverityLimits struct {
	Critical SeverityLimit `json:"critical"`
	Major    SeverityLimit `json:"major"`
	Minor    SeverityLimit `json:"minor"`
}

// For 按严重度取限值
func (s SeverityLimits) For(sev Severity) SeverityLimit {
	switch sev {
	case SeverityCritical:
		return s.Critical
	case SeverityMajor:
		return s.Major
	case SeverityMinor:
		return s.Minor
	default:
		return SeverityLimit{}
	}
}

// DefectCounts 样本中观测到的各严重度缺陷数
type DefectCounts struct {
	Critical int `json:"critical" example:"0"`
	Major    int `json:"major" example:"1"`
	Minor    int `json:"minor" example:"3"`
}

// AQLSet 三档严重度的 AQL 百分比
type AQLSet struct {
	Critical float64 `json:"critical" example:"0"`
	Major    float64 `json:"major" example:"2.5"`
	Minor    float64 `json:"minor" example:"4.0"`
}

// DefaultAQLs 默认 AQL：致命 0%，严重 2.5%，轻微 4.0%
var DefaultAQLs = AQLSet{Critical: 0, Major: 2.5, Minor: 4.0}

// SamplingPlan 抽样方案
type SamplingPlan struct {
	LotSize        int             `json:"lot_size" example:"150"`
	Level          InspectionLevel `json:"inspection_level,omitempty" example:"II"`
	Code           SampleSizeCode  `json:"sample_code,omitempty" example:"G"`
	SampleSize     int             `json:"sample_size" example:"32"`
	FullInspection bool            `json:"full_inspection"`
	Limits         SeverityLimits  `json:"severity_limits"`
}
