package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"inspection-service/service/sampling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlanCmd_JSON(t *testing.T) {
	out, err := run(t, "plan", "--lot", "150", "-o", "json")
	require.NoError(t, err)

	var plan sampling.SamplingPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, sampling.SampleSizeCode("G"), plan.Code)
	assert.Equal(t, 32, plan.SampleSize)
	assert.Equal(t, 2, plan.Limits.Major.Acceptance)
	assert.Equal(t, 4, plan.Limits.Minor.Rejection)
}

func TestCodeCmd_YAML(t *testing.T) {
	out, err := run(t, "code", "--lot", "150", "--level", "III")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "H", doc["sample_code"])
	assert.Equal(t, 50, doc["sample_size"])

	out, err = run(t, "code", "--lot", "150", "--table", sampling.CodeTableANSIZ14)
	require.NoError(t, err)
	assert.Contains(t, out, "sample_code: F")
}

func TestEvaluateCmd(t *testing.T) {
	out, err := run(t, "evaluate", "--lot", "150", "--major", "3", "--inspected", "20", "-o", "json")
	require.NoError(t, err)

	var ev evaluation
	require.NoError(t, json.Unmarshal([]byte(out), &ev))
	assert.Equal(t, sampling.DispositionPendingReview, ev.Disposition)
	assert.True(t, ev.NeedsHierarchicalReview)
	assert.Equal(t, sampling.QuantityBelow, ev.QuantityStatus)

	out, err = run(t, "evaluate", "--lot", "150", "--critical", "1", "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &ev))
	assert.Equal(t, sampling.DispositionRejected, ev.Disposition)
	assert.Equal(t, "Reprovado", ev.Label)
}

func TestBonificationAndGraphicCmd(t *testing.T) {
	out, err := run(t, "bonification", "--lot", "40", "-o", "json")
	require.NoError(t, err)
	var plan sampling.SamplingPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, 40, plan.SampleSize)
	assert.True(t, plan.FullInspection)

	out, err = run(t, "graphic", "--sample", "32", "-o", "json")
	require.NoError(t, err)
	var graphic sampling.GraphicInspectionPlan
	require.NoError(t, json.Unmarshal([]byte(out), &graphic))
	assert.Equal(t, 10, graphic.GraphicSample)

	out, err = run(t, "graphic", "--sample", "500", "--bonification", "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &graphic))
	assert.Equal(t, 1, graphic.PhotoSample)
	assert.Equal(t, 3, graphic.TotalPhotoFields)
}

func TestTableCmd(t *testing.T) {
	out, err := run(t, "table", "-o", "json")
	require.NoError(t, err)

	var rows []tableRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, len(sampling.ApplicationCodeTable))
	assert.Equal(t, "8", rows[0].Max)
	assert.Equal(t, "∞", rows[len(rows)-1].Max)
	assert.Equal(t, 32, rows[5].SampleII)
}

func TestCmd_Errors(t *testing.T) {
	cases := [][]string{
		{"plan", "--lot", "0"},
		{"plan", "--lot", "150", "--level", "IV"},
		{"plan", "--lot", "150", "--aql-major", "3.3"},
		{"code"},
		{"table", "--table", "custom"},
		{"plan", "--lot", "150", "-o", "xml"},
	}
	for _, args := range cases {
		_, err := run(t, args...)
		assert.Error(t, err, "%v", args)
	}

	_, err := run(t, "plan", "--lot=-5")
	assert.ErrorIs(t, err, sampling.ErrInvalidLotSize)
}
