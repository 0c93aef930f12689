// Package pipeline runs batch imports: many résumé files decoded and
// extracted concurrently, one independent result per file.
package pipeline

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/portfolio-builder/internal/extraction"
	"github.com/jonathan/portfolio-builder/internal/ingestion"
	"github.com/jonathan/portfolio-builder/internal/logger"
)

// ErrCodeCancelled marks files that were not processed because the batch was cancelled.
const ErrCodeCancelled = "Cancelled"

// ProgressEvent reports a finished file.
type ProgressEvent struct {
	Path    string `json:"path"`
	Index   int    `json:"index"`
	Total   int    `json:"total"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ProgressCallback is called once per finished file. Calls are serialized.
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for a batch import
type Options struct {
	// Concurrency bounds the number of files processed at once; <= 0 means one per CPU.
	Concurrency int
	Extraction  extraction.Options
	OnProgress  ProgressCallback
}

// FileResult is the outcome for one input path.
type FileResult struct {
	Path       string                 `json:"path"`
	Result     extraction.ParseResult `json:"result"`
	Metadata   *ingestion.Metadata    `json:"metadata,omitempty"`
	DurationMS int64                  `json:"durationMs"`
}

// Summary counts batch outcomes.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// ImportFiles decodes and parses every path. Results keep the order of paths.
// A failing file never stops its siblings; once ctx is done, files not yet
// started are marked failed with the context error.
func ImportFiles(ctx context.Context, paths []string, opts Options) []FileResult {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	log := logger.FromContext(ctx)
	log.Info().Int("files", len(paths)).Int("concurrency", limit).Msg("starting import")

	var progressMu sync.Mutex
	emit := func(i int) {
		if opts.OnProgress == nil {
			return
		}
		r := results[i]
		event := ProgressEvent{Path: r.Path, Index: i, Total: len(paths), Success: r.Result.Success}
		if len(r.Result.Errors) > 0 {
			event.Message = r.Result.Errors[0]
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		opts.OnProgress(event)
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			results[i] = cancelled(path, err)
			emit(i)
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = cancelled(path, err)
			} else {
				results[i] = importOne(path, opts.Extraction)
			}
			emit(i)
			return nil
		})
	}
	_ = g.Wait()

	summary := Summarize(results)
	log.Info().
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("import finished")

	return results
}

func importOne(path string, opts extraction.Options) FileResult {
	start := time.Now()
	out := FileResult{Path: path}

	text, metadata, err := ingestion.DecodeFile(path)
	if err != nil {
		out.Result = ingestion.FailureFor(err)
		logger.Warn().Str("file", path).Err(err).Msg("decode failed")
	} else {
		out.Metadata = metadata
		out.Result = extraction.ParseWithOptions(text, opts)
	}

	out.DurationMS = time.Since(start).Milliseconds()
	return out
}

func cancelled(path string, err error) FileResult {
	return FileResult{Path: path, Result: extraction.Failure(ErrCodeCancelled, err.Error())}
}

// Summarize counts successes and failures.
func Summarize(results []FileResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Result.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
