/*
 * @module service/sampling/tables
 * @description NBR 5426 / ANSI Z1.4 静态表：批量-字码表、字码-样本量表、正常检验一次抽样主表(II-A)
 * @architecture 领域模型层 - 不可变静态数据
 * @documentReference NBR 5426 表1、表2 / ANSI Z1.4 Table I、Table II-A
 * @stateFlow 包初始化时构建一次，之后只读
 * @rules 同一样本量下 AQL 增大时 Ac/Re 不减，Ac < Re 恒成立
 * @dependencies 无
 * @refs service/sampling/engine.go
 */

package sampling

import (
	"fmt"
	"math"
	"sort"
)

// Unbounded 表示最后一行批量区间无上限
const Unbounded = 0

// LotSizeCodeRow 批量区间与三个检验水平对应的字码
type LotSizeCodeRow struct {
	Min     int            `json:"min" example:"91"`
	Max     int            `json:"max,omitempty" example:"150"` // 0 表示无上限
	CodeI   SampleSizeCode `json:"I" example:"F"`
	CodeII  SampleSizeCode `json:"II" example:"G"`
	CodeIII SampleSizeCode `json:"III" example:"H"`
}

// Contains 批量是否落在该区间
func (r LotSizeCodeRow) Contains(lotSize int) bool {
	return lotSize >= r.Min && (r.Max == Unbounded || lotSize <= r.Max)
}

// CodeFor 取指定检验水平的字码
func (r LotSizeCodeRow) CodeFor(level InspectionLevel) (SampleSizeCode, bool) {
	switch level {
	case LevelI:
		return r.CodeI, true
	case LevelII:
		return r.CodeII, true
	case LevelIII:
		return r.CodeIII, true
	default:
		return "", false
	}
}

// ApplicationCodeTable 系统采用的批量-字码表（与检验向导一致，150/II -> G）
var ApplicationCodeTable = []LotSizeCodeRow{
	{Min: 1, Max: 8, CodeI: "A", CodeII: "B", CodeIII: "C"},
	{Min: 9, Max: 15, CodeI: "B", CodeII: "C", CodeIII: "D"},
	{Min: 16, Max: 25, CodeI: "C", CodeII: "D", CodeIII: "E"},
	{Min: 26, Max: 50, CodeI: "D", CodeII: "E", CodeIII: "F"},
	{Min: 51, Max: 90, CodeI: "E", CodeII: "F", CodeIII: "G"},
	{Min: 91, Max: 150, CodeI: "F", CodeII: "G", CodeIII: "H"},
	{Min: 151, Max: 280, CodeI: "G", CodeII: "H", CodeIII: "J"},
	{Min: 281, Max: 500, CodeI: "H", CodeII: "J", CodeIII: "K"},
	{Min: 501, Max: 1200, CodeI: "J", CodeII: "K", CodeIII: "L"},
	{Min: 1201, Max: 3200, CodeI: "K", CodeII: "L", CodeIII: "M"},
	{Min: 3201, Max: 10000, CodeI: "L", CodeII: "M", CodeIII: "N"},
	{Min: 10001, Max: 35000, CodeI: "M", CodeII: "N", CodeIII: "P"},
	{Min: 35001, Max: 150000, CodeI: "N", CodeII: "P", CodeIII: "Q"},
	{Min: 150001, Max: 500000, CodeI: "P", CodeII: "Q", CodeIII: "R"},
	{Min: 500001, Max: Unbounded, CodeI: "Q", CodeII: "R", CodeIII: "S"},
}

// ANSIZ14CodeTable 标准原文 Table I 一般检验水平列
var ANSIZ14CodeTable = []LotSizeCodeRow{
	{Min: 1, Max: 8, CodeI: "A", CodeII: "A", CodeIII: "B"},
	{Min: 9, Max: 15, CodeI: "A", CodeII: "B", CodeIII: "C"},
	{Min: 16, Max: 25, CodeI: "B", CodeII: "C", CodeIII: "D"},
	{Min: 26, Max: 50, CodeI: "C", CodeII: "D", CodeIII: "E"},
	{Min: 51, Max: 90, CodeI: "C", CodeII: "E", CodeIII: "F"},
	{Min: 91, Max: 150, CodeI: "D", CodeII: "F", CodeIII: "G"},
	{Min: 151, Max: 280, CodeI: "E", CodeII: "G", CodeIII: "H"},
	{Min: 281, Max: 500, CodeI: "F", CodeII: "H", CodeIII: "J"},
	{Min: 501, Max: 1200, CodeI: "G", CodeII: "J", CodeIII: "K"},
	{Min: 1201, Max: 3200, CodeI: "H", CodeII: "K", CodeIII: "L"},
	{Min: 3201, Max: 10000, CodeI: "J", CodeII: "L", CodeIII: "M"},
	{Min: 10001, Max: 35000, CodeI: "K", CodeII: "M", CodeIII: "N"},
	{Min: 35001, Max: 150000, CodeI: "L", CodeII: "N", CodeIII: "P"},
	{Min: 150001, Max: 500000, CodeI: "M", CodeII: "P", CodeIII: "Q"},
	{Min: 500001, Max: Unbounded, CodeI: "N", CodeII: "Q", CodeIII: "R"},
}

// 字码表名称
const (
	CodeTableApplication = "application"
	CodeTableANSIZ14     = "ansi_z1.4"
)

// CodeTableByName 按名称取字码表，空名称返回系统字码表
func CodeTableByName(name string) ([]LotSizeCodeRow, error) {
	switch name {
	case "", CodeTableApplication:
		return ApplicationCodeTable, nil
	case CodeTableANSIZ14:
		return ANSIZ14CodeTable, nil
	default:
		return nil, fmt.Errorf("%w: 未知字码表 %q", ErrInvalidCodeTable, name)
	}
}

// sampleSizeCodes 字码顺序，下标即主表行号
var sampleSizeCodes = []SampleSizeCode{
	"A", "B", "C", "D", "E", "F", "G", "H", "J", "K", "L", "M", "N", "P", "Q", "R", "S",
}

// sampleSizeByCode 字码 -> 样本量
var sampleSizeByCode = map[SampleSizeCode]int{
	"A": 2, "B": 3, "C": 5, "D": 8, "E": 13, "F": 20, "G": 32, "H": 50,
	"J": 80, "K": 125, "L": 200, "M": 315, "N": 500, "P": 800, "Q": 1250,
	"R": 2000, "S": 3150,
}

// codeIndexBySampleSize 样本量 -> 主表行号
var codeIndexBySampleSize = func() map[int]int {
	m := make(map[int]int, len(sampleSizeCodes))
	for i, c := range sampleSizeCodes {
		m[sampleSizeByCode[c]] = i
	}
	return m
}()

// aqlColumn 主表中的一列。anchor 为该列 Ac=0/Re=1 方案所在行。
// 主表沿对角线排列：同一对角线上的格子方案相同，因此 Ac/Re 只取决于 行号-anchor。
type aqlColumn struct {
	milli  int // AQL × 1000
	anchor int
}

// aqlColumns 不合格品百分数列 (0.010 ~ 10)
var aqlColumns = []aqlColumn{
	{milli: 10, anchor: 14},    // 0.010 -> Q
	{milli: 15, anchor: 13},    // 0.015 -> P
	{milli: 25, anchor: 12},    // 0.025 -> N
	{milli: 40, anchor: 11},    // 0.040 -> M
	{milli: 65, anchor: 10},    // 0.065 -> L
	{milli: 100, anchor: 9},    // 0.10 -> K
	{milli: 150, anchor: 8},    // 0.15 -> J
	{milli: 250, anchor: 7},    // 0.25 -> H
	{milli: 400, anchor: 6},    // 0.40 -> G
	{milli: 650, anchor: 5},    // 0.65 -> F
	{milli: 1000, anchor: 4},   // 1.0 -> E
	{milli: 1500, anchor: 3},   // 1.5 -> D
	{milli: 2500, anchor: 2},   // 2.5 -> C
	{milli: 4000, anchor: 1},   // 4.0 -> B
	{milli: 6500, anchor: 0},   // 6.5 -> A
	{milli: 10000, anchor: -1}, // 10 -> A 行为 ↑
}

// diagonalPlans 按 行号-anchor 偏移取方案。
// 偏移 1 为 ↑（回到 0/1），偏移 2 为 ↓（取 1/2），超出末端沿用 21/22。
var diagonalPlans = []Limits{
	{0, 1}, {0, 1}, {1, 2}, {1, 2}, {2, 3}, {3, 4}, {5, 6}, {7, 8}, {10, 11}, {14, 15}, {21, 22},
}

// aqlTable 样本量 -> AQL(×1000) -> Ac/Re，包初始化时由对角线规则展开
var aqlTable = buildAQLTable()

func buildAQLTable() map[int]map[int]Limits {
	table := make(map[int]map[int]Limits, len(sampleSizeCodes))
	for row, code := range sampleSizeCodes {
		cols := make(map[int]Limits, len(aqlColumns))
		for _, col := range aqlColumns {
			cols[col.milli] = diagonalPlan(row - col.anchor)
		}
		table[sampleSizeByCode[code]] = cols
	}
	return table
}

func diagonalPlan(offset int) Limits {
	if offset < 0 {
		return diagonalPlans[0]
	}
	if offset >= len(diagonalPlans) {
		return diagonalPlans[len(diagonalPlans)-1]
	}
	return diagonalPlans[offset]
}

// aqlMilli 将 AQL 百分比转为千分整数键；非表内精度返回 false
func aqlMilli(aql float64) (int, bool) {
	if math.IsNaN(aql) || math.IsInf(aql, 0) || aql < 0 {
		return 0, false
	}
	scaled := aql * 1000
	rounded := math.Round(scaled)
	if math.Abs(scaled-rounded) > 1e-6 {
		return 0, false
	}
	return int(rounded), true
}

// SupportedAQLs 支持的 AQL 百分比（含致命缺陷的 0），升序
func SupportedAQLs() []float64 {
	out := make([]float64, 0, len(aqlColumns)+1)
	out = append(out, 0)
	for _, col := range aqlColumns {
		out = append(out, float64(col.milli)/1000)
	}
	sort.Float64s(out)
	return out
}

// SampleSizeCodes 全部字码，按样本量升序
func SampleSizeCodes() []SampleSizeCode {
	out := make([]SampleSizeCode, len(sampleSizeCodes))
	copy(out, sampleSizeCodes)
	return out
}
