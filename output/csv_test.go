package output_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tgraph/core"
	"github.com/katalvlaran/tgraph/earliest"
	"github.com/katalvlaran/tgraph/output"
)

func TestShouldWrite(t *testing.T) {
	require.False(t, output.ShouldWrite(0, 10), "step 0 is never written")
	require.False(t, output.ShouldWrite(5, 10))
	require.True(t, output.ShouldWrite(10, 10))
	require.True(t, output.ShouldWrite(30, 10))
	require.True(t, output.ShouldWrite(1, 1))
	require.False(t, output.ShouldWrite(10, 0), "non-positive cadence disables output")
}

func TestCSVWriter_WriteStep(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := &output.CSVWriter{Dir: dir}
	res := earliest.Result{Arrival: map[core.VertexID]core.Time{3: core.Infinity, 1: 0, 2: 4}}

	path, err := w.WriteStep(20, res)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "vertices-20.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "1,0\n2,4\n3,inf\n", string(data))

	// Rewrites truncate.
	_, err = w.WriteStep(20, earliest.Result{Arrival: map[core.VertexID]core.Time{1: 0}})
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "1,0\n", string(data))
}

func TestCSVWriter_BadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	w := &output.CSVWriter{Dir: filepath.Join(file, "sub")}
	_, err := w.WriteStep(10, earliest.Result{})
	require.Error(t, err)
}
