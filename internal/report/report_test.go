package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"avclapper/internal/analysis"
	"avclapper/internal/input"
	"avclapper/internal/logging"
	"avclapper/internal/records"
	"avclapper/internal/report"
)

const twoSyncs = `AUDIO A
2.0 100
4.0 200
10.0 EOF
VIDEO B
5.0 100
11.0 200
20.0 EOF
`

func run(t *testing.T, doc string) (*analysis.Result, error) {
	t.Helper()
	store := records.NewStore()
	require.NoError(t, input.ReadLines(strings.NewReader(doc), store, logging.NewNop()))
	return analysis.New(store, logging.NewNop()).Run(context.Background())
}

func TestDeviation(t *testing.T) {
	mean, dev := report.Deviation([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-12)
	assert.InDelta(t, 2.0, dev, 1e-12)

	mean, dev = report.Deviation(nil)
	assert.Zero(t, mean)
	assert.Zero(t, dev)

	_, dev = report.Deviation([]float64{3.3, 3.3, 3.3})
	assert.InDelta(t, 0, dev, 1e-6)
}

func TestBuildSolved(t *testing.T) {
	result, err := run(t, twoSyncs)
	require.NoError(t, err)

	rep := report.Build(result, nil)
	require.True(t, rep.Solved)
	require.Len(t, rep.Files, 2)
	require.Len(t, rep.Syncs, 2)
	assert.Empty(t, rep.Error)
	assert.Equal(t, 2, rep.Variables)
	assert.Equal(t, 2, rep.Equations)

	for _, sync := range rep.Syncs {
		require.Len(t, sync.Members, 2)
		assert.InDelta(t, sync.Members[0].Aligned, sync.Members[1].Aligned, 1e-9)
		assert.InDelta(t, 0, sync.Deviation, 1e-6)
	}
	assert.Equal(t, "VIDEO", rep.Files[1].Type)
	assert.InDelta(t, 1.0/3.0, rep.Files[1].Scale, 1e-9)
}

func TestBuildUnsolved(t *testing.T) {
	result, err := run(t, "AUDIO A\n2.0 100\nVIDEO B\n5.0 100\n")
	require.Error(t, err)

	rep := report.Build(result, err)
	assert.False(t, rep.Solved)
	assert.Contains(t, rep.Error, "insufficient correlation for B")
	require.Len(t, rep.Syncs, 1)

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, rep, report.TextOptions{}))
	out := buf.String()
	assert.Contains(t, out, "Syncs")
	assert.Contains(t, out, "insufficient correlation")
	assert.NotContains(t, out, "Deviation")
}

func TestBuildNilResult(t *testing.T) {
	rep := report.Build(nil, nil)
	assert.False(t, rep.Solved)
	assert.NotNil(t, rep.Files)
	assert.NotNil(t, rep.Syncs)
}

func TestWriteTextSections(t *testing.T) {
	// A repeats "100": the first one wins the tie, the second is left over.
	result, err := run(t, "AUDIO A\n2.0 100\n4.0 200\n6.0 100\nVIDEO B\n5.0 100\n11.0 200\n")
	require.NoError(t, err)
	require.Len(t, result.Unassigned, 1)

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, report.Build(result, nil), report.TextOptions{}))
	out := buf.String()
	for _, want := range []string{"Syncs", "Ambiguous matches", "Unassigned tags", "6.00", "Solution", "Deviation", "mean", "dev", "Video", "0.333333"} {
		assert.Contains(t, out, want)
	}
}

func TestWriteJSONAndYAML(t *testing.T) {
	result, err := run(t, twoSyncs)
	require.NoError(t, err)
	rep := report.Build(result, nil)
	rep.RunID = "run-1"

	var jsonBuf bytes.Buffer
	require.NoError(t, report.Write(&jsonBuf, rep, "json", report.TextOptions{}))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Equal(t, true, decoded["solved"])

	var yamlBuf bytes.Buffer
	require.NoError(t, report.Write(&yamlBuf, rep, "yaml", report.TextOptions{}))
	var fromYAML report.Report
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML))
	assert.Equal(t, rep.Files[1].Name, fromYAML.Files[1].Name)
	assert.Len(t, fromYAML.Syncs, 2)

	assert.Error(t, report.Write(&jsonBuf, rep, "xml", report.TextOptions{}))
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "Audio", report.TypeLabel("AUDIO"))
	assert.Equal(t, "Video", report.TypeLabel("video"))
}

func TestTableColumnsPadded(t *testing.T) {
	out := report.Table([]string{"A", "B"}, [][]string{{"x"}}, nil, nil)
	assert.Contains(t, out, "x")
	assert.Equal(t, "", report.Table(nil, nil, nil, nil))
}
