/*
 * @module service/sampling/engine_test
 * @description 抽样引擎单元测试：查表、单调性、覆盖性、赠品全检与错误分类
 * @architecture 测试层
 * @documentReference NBR 5426 / ANSI Z1.4
 * @rules 覆盖示例场景与表结构不变量
 * @dependencies testing, testify
 */

package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveSampleSizeCode_Examples 测试典型批量的字码与样本量
func TestResolveSampleSizeCode_Examples(t *testing.T) {
	cases := []struct {
		lotSize    int
		level      InspectionLevel
		code       SampleSizeCode
		sampleSize int
	}{
		{1, LevelII, "B", 3},
		{8, LevelI, "A", 2},
		{9, LevelIII, "D", 8},
		{150, LevelII, "G", 32},
		{151, LevelII, "H", 50},
		{500, LevelII, "J", 80},
		{1000, LevelII, "K", 125},
		{10000, LevelIII, "N", 500},
		{500001, LevelIII, "S", 3150},
		{50000000, LevelI, "Q", 1250},
	}

	for _, tc := range cases {
		code, err := ResolveSampleSizeCode(tc.lotSize, tc.level)
		require.NoError(t, err)
		assert.Equal(t, tc.code, code, "批量 %d 水平 %s", tc.lotSize, tc.level)

		size, err := ResolveSampleSize(code)
		require.NoError(t, err)
		assert.Equal(t, tc.sampleSize, size)
	}
}

// TestResolveSampleSizeCode_InvalidInput 测试非法批量与检验水平
func TestResolveSampleSizeCode_InvalidInput(t *testing.T) {
	_, err := ResolveSampleSizeCode(0, LevelII)
	assert.ErrorIs(t, err, ErrInvalidLotSize)

	_, err = ResolveSampleSizeCode(-10, LevelII)
	assert.ErrorIs(t, err, ErrInvalidLotSize)

	_, err = ResolveSampleSizeCode(100, InspectionLevel("IV"))
	assert.ErrorIs(t, err, ErrInvalidInspectionLevel)
}

// TestCodeTable_ExactlyOneRow 测试每个批量恰好落在一行
func TestCodeTable_ExactlyOneRow(t *testing.T) {
	for _, table := range [][]LotSizeCodeRow{ApplicationCodeTable, ANSIZ14CodeTable} {
		var lotSizes []int
		for n := 1; n <= 2000; n++ {
			lotSizes = append(lotSizes, n)
		}
		for _, row := range table {
			lotSizes = append(lotSizes, row.Min, row.Min+1)
			if row.Max != Unbounded {
				lotSizes = append(lotSizes, row.Max, row.Max-1, row.Max+1)
			}
		}
		lotSizes = append(lotSizes, 1<<30)

		for _, n := range lotSizes {
			if n < 1 {
				continue
			}
			matches := 0
			for _, row := range table {
				if row.Contains(n) {
					matches++
				}
			}
			assert.Equal(t, 1, matches, "批量 %d 命中 %d 行", n, matches)
		}
	}
}

// TestSampleSize_MonotonicInLotSize 测试批量增大时样本量不减
func TestSampleSize_MonotonicInLotSize(t *testing.T) {
	engine := Default()
	for _, level := range InspectionLevels {
		prev := 0
		for _, row := range engine.CodeTable() {
			for _, n := range []int{row.Min, row.Max} {
				if n == Unbounded {
					n = row.Min * 10
				}
				code, err := engine.ResolveSampleSizeCode(n, level)
				require.NoError(t, err)
				size, err := engine.ResolveSampleSize(code)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, size, prev, "水平 %s 批量 %d", level, n)
				prev = size
			}
		}
	}
}

// TestAQLTable_Invariants 测试主表不变量：Ac<Re，AQL 增大时 Ac/Re 不减，致命恒为 0/1
func TestAQLTable_Invariants(t *testing.T) {
	aqls := SupportedAQLs()
	require.Equal(t, 0.0, aqls[0])

	for _, code := range SampleSizeCodes() {
		size, err := ResolveSampleSize(code)
		require.NoError(t, err)

		prev := Limits{}
		for i, aql := range aqls {
			limits, err := ResolveAcceptanceRejection(size, aql)
			require.NoError(t, err, "样本量 %d AQL %v", size, aql)
			assert.Less(t, limits.Acceptance, limits.Rejection)
			if i > 0 {
				assert.GreaterOrEqual(t, limits.Acceptance, prev.Acceptance, "样本量 %d AQL %v", size, aql)
				assert.GreaterOrEqual(t, limits.Rejection, prev.Rejection, "样本量 %d AQL %v", size, aql)
			} else {
				assert.Equal(t, Limits{Acceptance: 0, Rejection: 1}, limits)
			}
			prev = limits
		}
	}
}

// TestAQLTable_AcceptanceMonotonicInSampleSize 测试固定 AQL 时样本量增大 Ac 不减
func TestAQLTable_AcceptanceMonotonicInSampleSize(t *testing.T) {
	for _, aql := range SupportedAQLs() {
		prev := -1
		for _, code := range SampleSizeCodes() {
			size, _ := ResolveSampleSize(code)
			limits, err := ResolveAcceptanceRejection(size, aql)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, limits.Acceptance, prev)
			prev = limits.Acceptance
		}
	}
}

// TestAQLTable_KnownValues 测试与标准主表对照的取值
func TestAQLTable_KnownValues(t *testing.T) {
	cases := []struct {
		sampleSize int
		aql        float64
		want       Limits
	}{
		{32, 2.5, Limits{2, 3}},
		{32, 4.0, Limits{3, 4}},
		{32, 1.0, Limits{1, 2}},
		{50, 6.5, Limits{7, 8}},
		{80, 4.0, Limits{7, 8}},
		{125, 2.5, Limits{7, 8}},
		{125, 0.65, Limits{2, 3}},
		{200, 1.0, Limits{5, 6}},
		{315, 2.5, Limits{14, 15}},
		{500, 2.5, Limits{21, 22}},
		{13, 1.0, Limits{0, 1}},
		{20, 1.0, Limits{0, 1}},
		{8, 2.5, Limits{0, 1}},
		{13, 2.5, Limits{1, 2}},
		{13, 10, Limits{3, 4}},
		{2, 6.5, Limits{0, 1}},
		{3150, 0.010, Limits{1, 2}},
	}

	for _, tc := range cases {
		got, err := ResolveAcceptanceRejection(tc.sampleSize, tc.aql)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "样本量 %d AQL %v", tc.sampleSize, tc.aql)
	}
}

// TestResolveAcceptanceRejection_Errors 测试表外 AQL 与表外样本量
func TestResolveAcceptanceRejection_Errors(t *testing.T) {
	_, err := ResolveAcceptanceRejection(32, 3.0)
	assert.ErrorIs(t, err, ErrUnsupportedAQLValue)

	_, err = ResolveAcceptanceRejection(32, -1)
	assert.ErrorIs(t, err, ErrUnsupportedAQLValue)

	_, err = ResolveAcceptanceRejection(32, 2.5001)
	assert.ErrorIs(t, err, ErrUnsupportedAQLValue)

	_, err = ResolveAcceptanceRejection(33, 2.5)
	assert.ErrorIs(t, err, ErrUnknownSampleSizeCode)

	_, err = ResolveSampleSize("I")
	assert.ErrorIs(t, err, ErrUnknownSampleSizeCode)
}

// TestResolveAcceptanceRejection_CriticalAlwaysZeroOne 测试致命缺陷与样本量无关
func TestResolveAcceptanceRejection_CriticalAlwaysZeroOne(t *testing.T) {
	for _, size := range []int{2, 32, 500, 3150, 7, 999999} {
		limits, err := ResolveAcceptanceRejection(size, 0)
		require.NoError(t, err)
		assert.Equal(t, Limits{Acceptance: 0, Rejection: 1}, limits)
	}
}

// TestComputeSeverityLimits 测试三档限值组合
func TestComputeSeverityLimits(t *testing.T) {
	limits, err := ComputeSeverityLimits(150, LevelII, 0, 2.5, 4.0)
	require.NoError(t, err)
	assert.Equal(t, SeverityLimit{AQL: 0, Acceptance: 0, Rejection: 1}, limits.Critical)
	assert.Equal(t, SeverityLimit{AQL: 2.5, Acceptance: 2, Rejection: 3}, limits.Major)
	assert.Equal(t, SeverityLimit{AQL: 4.0, Acceptance: 3, Rejection: 4}, limits.Minor)

	_, err = ComputeSeverityLimits(150, LevelII, 1.0, 2.5, 4.0)
	assert.ErrorIs(t, err, ErrUnsupportedAQLValue, "致命缺陷 AQL 不可调整")

	_, err = ComputeSeverityLimits(150, LevelII, 0, 2.5, 5.0)
	assert.ErrorIs(t, err, ErrUnsupportedAQLValue)

	_, err = ComputeSeverityLimits(0, LevelII, 0, 2.5, 4.0)
	assert.ErrorIs(t, err, ErrInvalidLotSize)
}

// TestComputeBonificationSampling 测试赠品全检
func TestComputeBonificationSampling(t *testing.T) {
	plan, err := ComputeBonificationSampling(500)
	require.NoError(t, err)
	assert.Equal(t, 500, plan.SampleSize)
	assert.True(t, plan.FullInspection)
	assert.Equal(t, SeverityLimit{AQL: 0, Acceptance: 0, Rejection: 1}, plan.Limits.Critical)
	assert.Equal(t, SeverityLimit{AQL: 2.5, Acceptance: 21, Rejection: 22}, plan.Limits.Major)
	assert.Equal(t, SeverityLimit{AQL: 4.0, Acceptance: 21, Rejection: 22}, plan.Limits.Minor)

	plan, err = ComputeBonificationSampling(137)
	require.NoError(t, err)
	assert.Equal(t, 137, plan.SampleSize)
	assert.Equal(t, SampleSizeCode("K"), plan.Code)
	assert.Equal(t, 7, plan.Limits.Major.Acceptance)

	plan, err = ComputeBonificationSampling(1)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.SampleSize)
	assert.Equal(t, SampleSizeCode("A"), plan.Code)

	_, err = ComputeBonificationSampling(0)
	assert.ErrorIs(t, err, ErrInvalidLotSize)
}

// TestNewEngine_ANSITable 测试使用标准原文字码表
func TestNewEngine_ANSITable(t *testing.T) {
	engine, err := NewEngine(ANSIZ14CodeTable)
	require.NoError(t, err)

	code, err := engine.ResolveSampleSizeCode(150, LevelII)
	require.NoError(t, err)
	assert.Equal(t, SampleSizeCode("F"), code)
}

// TestValidateCodeTable 测试非法字码表
func TestValidateCodeTable(t *testing.T) {
	assert.NoError(t, ValidateCodeTable(ApplicationCodeTable))

	cases := []struct {
		name string
		rows []LotSizeCodeRow
		want error
	}{
		{"空表", nil, ErrInvalidCodeTable},
		{"不从1开始", []LotSizeCodeRow{
			{Min: 2, Max: Unbounded, CodeI: "A", CodeII: "A", CodeIII: "A"},
		}, ErrInvalidCodeTable},
		{"存在空隙", []LotSizeCodeRow{
			{Min: 1, Max: 8, CodeI: "A", CodeII: "A", CodeIII: "A"},
			{Min: 10, Max: Unbounded, CodeI: "B", CodeII: "B", CodeIII: "B"},
		}, ErrInvalidCodeTable},
		{"区间重叠", []LotSizeCodeRow{
			{Min: 1, Max: 8, CodeI: "A", CodeII: "A", CodeIII: "A"},
			{Min: 8, Max: Unbounded, CodeI: "B", CodeII: "B", CodeIII: "B"},
		}, ErrInvalidCodeTable},
		{"末行有上限", []LotSizeCodeRow{
			{Min: 1, Max: 8, CodeI: "A", CodeII: "A", CodeIII: "A"},
		}, ErrInvalidCodeTable},
		{"字码变小", []LotSizeCodeRow{
			{Min: 1, Max: 8, CodeI: "B", CodeII: "B", CodeIII: "B"},
			{Min: 9, Max: Unbounded, CodeI: "A", CodeII: "B", CodeIII: "B"},
		}, ErrInvalidCodeTable},
		{"未知字码", []LotSizeCodeRow{
			{Min: 1, Max: Unbounded, CodeI: "A", CodeII: "I", CodeIII: "B"},
		}, ErrUnknownSampleSizeCode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCodeTable(tc.rows)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, ErrInvalidCodeTable, "结构缺陷统一归为字码表非法")
			assert.NotErrorIs(t, err, ErrNoMatchingLotSizeRange)
			assert.False(t, IsInputError(err))
			_, err = NewEngine(tc.rows)
			assert.Error(t, err)
		})
	}
}

// TestParseInspectionLevel 测试检验水平解析
func TestParseInspectionLevel(t *testing.T) {
	level, err := ParseInspectionLevel(" ii ")
	require.NoError(t, err)
	assert.Equal(t, LevelII, level)

	_, err = ParseInspectionLevel("S1")
	assert.ErrorIs(t, err, ErrInvalidInspectionLevel)
}

// TestIsSupportedAQL 测试 AQL 菜单判断
func TestIsSupportedAQL(t *testing.T) {
	for _, aql := range []float64{0, 1.0, 1.5, 2.5, 4.0, 6.5, 10, 0.065} {
		assert.True(t, IsSupportedAQL(aql), "%v", aql)
	}
	for _, aql := range []float64{-1, 3, 15, 2.55} {
		assert.False(t, IsSupportedAQL(aql), "%v", aql)
	}
}

// TestCodeTableByName 测试按名称选择字码表
func TestCodeTableByName(t *testing.T) {
	rows, err := CodeTableByName("")
	require.NoError(t, err)
	assert.Equal(t, ApplicationCodeTable, rows)

	rows, err = CodeTableByName(CodeTableANSIZ14)
	require.NoError(t, err)
	assert.Equal(t, ANSIZ14CodeTable, rows)

	_, err = CodeTableByName("mil-std-105")
	assert.ErrorIs(t, err, ErrInvalidCodeTable)
	assert.False(t, IsInputError(err))
}
