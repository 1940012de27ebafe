// SPDX-License-Identifier: MIT
//
// File: source.go
// Role: Batch sources: the on-disk shard layout and an in-memory source.
// Layout:
//
//	<root>/time=<step>/<worker>/.../part-00000.txt
//
// Concurrency:
//   - Shards of one step are read in parallel; records are only handed out once
//     every shard is collected, so application never interleaves with reading.

package mutation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tgraph/core"
)

// DefaultPattern is the shard file name written by the upstream partitioner.
const DefaultPattern = "part-00000.txt"

// Source yields the batch for a time step.
type Source interface {
	ReadStep(ctx context.Context, step core.Time) (Batch, error)
}

// DirSource reads batches from a directory tree, one "time=<step>" directory per step.
type DirSource struct {
	// Root holds the time=<step> directories.
	Root string

	// Pattern is matched (filepath.Match) against shard base names. Default DefaultPattern.
	Pattern string

	// Strict makes an unreadable shard fatal. When false the shard is logged
	// and its records are dropped.
	Strict bool

	// Concurrency bounds parallel shard reads. Zero or negative means 4.
	Concurrency int

	// Logger receives shard diagnostics. Nil discards them.
	Logger *slog.Logger
}

// StepDir returns the directory holding the shards of step.
func (d *DirSource) StepDir(step core.Time) string {
	return filepath.Join(d.Root, "time="+strconv.FormatInt(int64(step), 10))
}

// ReadStep collects every record of step. A missing step directory yields an
// empty batch. Malformed records are always fatal (*ParseError).
func (d *DirSource) ReadStep(ctx context.Context, step core.Time) (Batch, error) {
	log := d.logger()
	b := Batch{Step: step}

	shards, err := d.shards(step)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("no mutations for step", "step", int64(step))
			return b, nil
		}
		return b, fmt.Errorf("mutation: list step %s: %w", step, err)
	}

	limit := d.Concurrency
	if limit <= 0 {
		limit = 4
	}
	results := make([][]Record, len(shards))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, path := range shards {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := readShard(path)
			if err == nil {
				results[i] = recs
				return nil
			}
			var pe *ParseError
			if errors.As(err, &pe) || d.Strict {
				return err
			}
			log.Warn("dropping unreadable shard", "path", path, "step", int64(step), "err", err)

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return b, err
	}

	for _, recs := range results {
		b.Records = append(b.Records, recs...)
	}
	log.Debug("read step", "step", int64(step), "shards", len(shards), "records", len(b.Records))

	return b, nil
}

// shards lists matching files under the step directory in lexical order.
func (d *DirSource) shards(step core.Time) ([]string, error) {
	root := d.StepDir(step)
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}
	pattern := d.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}

	var out []string
	err := filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			if d.Strict {
				return err
			}
			d.logger().Warn("skipping unreadable path", "path", path, "err", err)
			if de != nil && de.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		// Symlinked shards are followed when opened.
		if !de.Type().IsRegular() && de.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		ok, err := filepath.Match(pattern, de.Name())
		if err != nil {
			return fmt.Errorf("mutation: shard pattern %q: %w", pattern, err)
		}
		if ok {
			out = append(out, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(out)

	return out, nil
}

func (d *DirSource) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return d.Logger
}

func readShard(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, path)
}

// MemorySource serves batches from memory, keyed by step.
type MemorySource map[core.Time][]Record

// ReadStep returns a copy of the records stored for step.
func (m MemorySource) ReadStep(_ context.Context, step core.Time) (Batch, error) {
	return Batch{Step: step, Records: slices.Clone(m[step])}, nil
}
