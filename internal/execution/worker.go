package execution

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fhunleth/zigler/internal/config"
	"github.com/fhunleth/zigler/internal/domain"
	"github.com/fhunleth/zigler/internal/ui"
)

// WorkerPool runs registered test cases in parallel. Registration has
// already completed in full by the time Execute is called; each case
// invokes a distinct compiled symbol, so workers never contend.
type WorkerPool struct {
	config   *config.Config
	wrapper  *Wrapper
	progress *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, wrapper *Wrapper) *WorkerPool {
	return &WorkerPool{config: cfg, wrapper: wrapper}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute runs all cases (no fail-fast).
func (wp *WorkerPool) Execute(cases []domain.RegisteredCase) ([]domain.TestResult, time.Duration, error) {
	return wp.ExecuteWithOptions(cases, false)
}

// ExecuteWithOptions runs the cases across the configured workers. A
// native failure marks only its own case; with failFast it also stops
// dispatching further cases. An unclassified foreign error aborts the
// whole run and is returned after in-flight cases drain.
func (wp *WorkerPool) ExecuteWithOptions(cases []domain.RegisteredCase, failFast bool) ([]domain.TestResult, time.Duration, error) {
	if len(cases) == 0 {
		return nil, 0, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := make(chan domain.RegisteredCase)
	results := make(chan domain.TestResult, len(cases))

	go func() {
		defer close(queue)
		for _, c := range cases {
			select {
			case <-ctx.Done():
				return
			case queue <- c:
			}
		}
	}()

	var mu sync.Mutex
	var completed, passed, failed int
	var runErr error
	startTime := time.Now()
	workerCount := wp.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range queue {
				caseStart := time.Now()
				outcome := wp.wrapper.Run(c.Symbol)
				result := domain.TestResult{
					Title:    c.Title,
					Symbol:   c.Symbol,
					Origin:   c.Origin,
					Success:  outcome.Kind == Passed,
					Output:   strings.Join(outcome.Trace, "\n"),
					Error:    outcome.Err,
					Duration: time.Since(caseStart),
				}
				results <- result

				mu.Lock()
				completed++
				if result.Success {
					passed++
				} else {
					failed++
				}
				if wp.progress != nil {
					wp.progress.Update(completed, passed, failed)
				}
				if outcome.Kind == Errored && runErr == nil {
					runErr = outcome.Err
					cancel()
				}
				if failFast && outcome.Kind == Failed {
					cancel()
				}
				mu.Unlock()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.TestResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), runErr
}
