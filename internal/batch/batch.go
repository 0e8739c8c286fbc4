// Package batch runs single-performance analysis over every recording in a
// directory and writes one JSON result beside each input.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BerylCAtieno/yodelstar-api/internal/logging"
	"github.com/sirupsen/logrus"
)

const outputSuffix = "_analysis.json"

// Analyzer is the part of the analysis service the batch needs.
type Analyzer interface {
	Analyze(ctx context.Context, wav []byte) (map[string]any, error)
}

// Status is the outcome of one file.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// FileResult records what happened to one input.
type FileResult struct {
	Name    string
	Output  string
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Summary is the outcome of a whole run, in processing order.
type Summary struct {
	Dir     string
	Results []FileResult
}

// Failed counts the files that did not produce an output.
func (s Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			n++
		}
	}
	return n
}

// Succeeded counts the files that produced an output.
func (s Summary) Succeeded() int {
	return len(s.Results) - s.Failed()
}

type Runner struct {
	svc Analyzer
	dir string
	log logrus.FieldLogger
}

func NewRunner(svc Analyzer, dir string, log logrus.FieldLogger) *Runner {
	if log == nil {
		log = logging.Discard()
	}
	return &Runner{svc: svc, dir: dir, log: log.WithField("dir", dir)}
}

// Run processes the directory's .wav files in name order, one at a time. A
// failing file is logged and recorded and the run moves on; only an
// unreadable directory or a cancelled context ends it early.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	summary := Summary{Dir: r.dir}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return summary, fmt.Errorf("read directory %s: %w", r.dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !IsWAV(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Results = append(summary.Results, r.processFile(ctx, entry.Name()))
	}

	r.log.WithFields(logrus.Fields{
		"files":     len(summary.Results),
		"succeeded": summary.Succeeded(),
		"failed":    summary.Failed(),
	}).Info("batch finished")
	return summary, nil
}

func (r *Runner) processFile(ctx context.Context, name string) FileResult {
	start := time.Now()
	res := FileResult{Name: name, Output: OutputPath(r.dir, name)}
	log := r.log.WithField("file", name)
	log.Info("processing")

	fail := func(stage string, err error) FileResult {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("%s: %w", stage, err)
		res.Elapsed = time.Since(start)
		log.WithError(err).WithField("stage", stage).Error("file failed")
		return res
	}

	wav, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		return fail("read", err)
	}

	result, err := r.svc.Analyze(ctx, wav)
	if err != nil {
		return fail("analyze", err)
	}

	if err := writeJSON(res.Output, result); err != nil {
		return fail("write", err)
	}

	res.Status = StatusOK
	res.Elapsed = time.Since(start)
	log.WithField("output", filepath.Base(res.Output)).Info("successfully created analysis")
	return res
}

// IsWAV reports whether name has a .wav extension, ignoring case.
func IsWAV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".wav")
}

// OutputPath returns <dir>/<stem>_analysis.json for an input file name.
func OutputPath(dir, name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(dir, stem+outputSuffix)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
