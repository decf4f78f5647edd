package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"cssmin/internal/minify"
)

// ConcatFileName is the output file written in concat mode
const ConcatFileName = "all.min.css"

var (
	ErrNoOutputDir   = errors.New("output directory is required")
	ErrNotADirectory = errors.New("output path is not a directory")
)

// Options controls a batch run
type Options struct {
	OutputDir        string
	Files            []string
	PreserveComments bool
	Concat           bool
	Workers          int
}

// Result holds the outcome for one input file
type Result struct {
	Source   string
	Output   string
	Minified string
	Stats    minify.Stats
}

// Report summarizes a batch run
type Report struct {
	Results []Result
	Written []string
	Total   minify.Stats
}

// Progress receives notifications while files are processed
type Progress interface {
	Start(total int)
	Advance(path string)
	Finish()
}

// NopProgress ignores all notifications
type NopProgress struct{}

func (NopProgress) Start(int)      {}
func (NopProgress) Advance(string) {}
func (NopProgress) Finish()        {}

// Run reads every input, minifies it and writes the results to the output
// directory. Inputs are minified in parallel but results keep input order.
func Run(ctx context.Context, opts Options, progress Progress) (*Report, error) {
	if progress == nil {
		progress = NopProgress{}
	}

	if err := checkOutputDir(opts.OutputDir); err != nil {
		return nil, err
	}

	sources := make([]string, len(opts.Files))
	for i, file := range opts.Files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		sources[i] = string(data)
	}

	progress.Start(len(opts.Files))
	defer progress.Finish()

	results, err := minifyAll(ctx, opts, sources, progress)
	if err != nil {
		return nil, err
	}

	report := &Report{Results: results}
	for _, r := range results {
		report.Total = report.Total.Add(r.Stats)
	}

	if opts.Concat {
		target := filepath.Join(opts.OutputDir, ConcatFileName)
		if err := os.WriteFile(target, []byte(Concat(results)), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", target, err)
		}
		report.Written = append(report.Written, target)
	} else {
		for i := range report.Results {
			r := &report.Results[i]
			r.Output = filepath.Join(opts.OutputDir, OutputName(r.Source))
			if err := os.WriteFile(r.Output, []byte(r.Minified), 0644); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", r.Output, err)
			}
			report.Written = append(report.Written, r.Output)
		}
	}

	return report, nil
}

// minifyAll runs the minifier on a bounded pool of workers. Each result is
// stored at its input index.
func minifyAll(ctx context.Context, opts Options, sources []string, progress Progress) ([]Result, error) {
	results := make([]Result, len(sources))
	if len(sources) == 0 {
		return results, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(sources) {
		workers = len(sources)
	}

	jobs := make(chan int)
	done := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				minified := minify.Minify(sources[i], opts.PreserveComments)
				results[i] = Result{
					Source:   opts.Files[i],
					Minified: minified,
					Stats:    minify.Measure(sources[i], minified),
				}
				done <- i
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range sources {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(done)
	}()

	completed := 0
	for i := range done {
		progress.Advance(opts.Files[i])
		completed++
	}

	if completed < len(sources) {
		return nil, ctx.Err()
	}

	return results, nil
}

// Concat joins the minified results with newlines in input order
func Concat(results []Result) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.Minified
	}
	return strings.Join(parts, "\n")
}

// OutputName returns the per-file output name for a source path: the base
// name without a trailing .css, followed by .min.css
func OutputName(path string) string {
	base := filepath.Base(path)
	if name := strings.TrimSuffix(base, ".css"); name != "" {
		base = name
	}
	return base + ".min.css"
}

func checkOutputDir(dir string) error {
	if dir == "" {
		return ErrNoOutputDir
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to access output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	return nil
}
