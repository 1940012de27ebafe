// Package output persists arrival results as one CSV file per written step:
//
//	<dir>/vertices-<step>.csv
//
// Each line is "<vertexId>,<arrival>" in ascending vertex order; an
// unreachable vertex is written with the token "inf".
package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/tgraph/core"
	"github.com/katalvlaran/tgraph/earliest"
)

// DefaultEvery is the write cadence used when none is configured.
const DefaultEvery = 10

// ShouldWrite reports whether step is due for output: every nth step, never step 0.
func ShouldWrite(step core.Time, every int) bool {
	if every <= 0 {
		return false
	}

	return step != 0 && int64(step)%int64(every) == 0
}

// CSVWriter writes result files into Dir, creating it on first use.
type CSVWriter struct {
	Dir string
}

// Path returns the file written for step.
func (w *CSVWriter) Path(step core.Time) string {
	return filepath.Join(w.Dir, "vertices-"+strconv.FormatInt(int64(step), 10)+".csv")
}

// WriteStep writes res for step, truncating any previous file, and returns its path.
func (w *CSVWriter) WriteStep(step core.Time, res earliest.Result) (path string, err error) {
	if err = os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("output: create %s: %w", w.Dir, err)
	}
	path = w.Path(step)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("output: close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	cw := csv.NewWriter(bw)
	row := make([]string, 2)
	for _, a := range res.Ordered() {
		row[0] = strconv.FormatInt(int64(a.ID), 10)
		row[1] = core.FormatTime(a.Time)
		if err = cw.Write(row); err != nil {
			return "", fmt.Errorf("output: write %s: %w", path, err)
		}
	}
	cw.Flush()
	if err = cw.Error(); err != nil {
		return "", fmt.Errorf("output: write %s: %w", path, err)
	}
	if err = bw.Flush(); err != nil {
		return "", fmt.Errorf("output: write %s: %w", path, err)
	}

	return path, nil
}
