package replay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sra/internal/aggregate"
	"sra/internal/config"
	"sra/internal/domain"
)

// Executor replays event stream files and returns their run summaries.
type Executor interface {
	Execute(paths []string) ([]*domain.RunSummary, time.Duration, error)
}

// Progress receives replay progress updates.
type Progress interface {
	Update(completed, passedSpecs, failedSpecs int)
	Finish()
}

// AggregatorFactory builds a fresh aggregator for one stream file.
// Aggregators are single-run and never shared between workers.
type AggregatorFactory func(testFilePath string) *aggregate.Aggregator

// Pool replays many event stream files in parallel, one aggregator per
// file.
type Pool struct {
	config   *config.Config
	factory  AggregatorFactory
	player   *Player
	progress Progress
}

// NewPool creates a new Pool
func NewPool(cfg *config.Config, factory AggregatorFactory) *Pool {
	return &Pool{
		config:  cfg,
		factory: factory,
		player:  NewPlayer(),
	}
}

// SetProgress sets the progress reporter for the pool
func (p *Pool) SetProgress(progress Progress) {
	p.progress = progress
}

// Execute replays all streams (no fail-fast).
func (p *Pool) Execute(paths []string) ([]*domain.RunSummary, time.Duration, error) {
	return p.ExecuteWithOptions(paths, false)
}

// ExecuteWithOptions replays streams with optional fail-fast (stop
// dispatching once a stream reports failing specs).
func (p *Pool) ExecuteWithOptions(paths []string, failFast bool) ([]*domain.RunSummary, time.Duration, error) {
	if len(paths) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return p.executeAll(paths)
	}
	return p.executeFailFast(paths)
}

type outcome struct {
	summary *domain.RunSummary
	err     error
}

// replayOne runs a full stream through a fresh aggregator. The player
// guarantees runDone was seen, so Summary cannot block here.
func (p *Pool) replayOne(path string) (*domain.RunSummary, error) {
	events, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	agg := p.factory(path)
	if err := p.player.Play(events, agg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return agg.Summary(context.Background())
}

func (p *Pool) executeAll(paths []string) ([]*domain.RunSummary, time.Duration, error) {
	queue := make(chan string, len(paths))
	results := make(chan outcome, len(paths))
	for _, path := range paths {
		queue <- path
	}
	close(queue)

	var mu sync.Mutex
	var completed int
	var passedSpecs, failedSpecs int
	startTime := time.Now()
	workerCount := p.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range queue {
				summary, err := p.replayOne(path)
				results <- outcome{summary: summary, err: err}
				mu.Lock()
				completed++
				if summary != nil {
					passedSpecs += summary.NumPassingTests
					failedSpecs += summary.NumFailingTests
				}
				if p.progress != nil {
					p.progress.Update(completed, passedSpecs, failedSpecs)
				}
				mu.Unlock()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var summaries []*domain.RunSummary
	var errs []error
	for out := range results {
		if out.err != nil {
			errs = append(errs, out.err)
			continue
		}
		summaries = append(summaries, out.summary)
	}
	if p.progress != nil {
		p.progress.Finish()
	}
	return summaries, time.Since(startTime), errors.Join(errs...)
}

func (p *Pool) executeFailFast(paths []string) ([]*domain.RunSummary, time.Duration, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := make(chan string, 1)
	results := make(chan outcome, len(paths))

	go func() {
		defer close(queue)
		for _, path := range paths {
			select {
			case <-ctx.Done():
				return
			case queue <- path:
			}
		}
	}()

	var mu sync.Mutex
	var completed int
	var passedSpecs, failedSpecs int
	var seenFailure bool
	startTime := time.Now()
	workerCount := p.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range queue {
				summary, err := p.replayOne(path)
				mu.Lock()
				done := seenFailure
				mu.Unlock()
				if done {
					continue
				}
				results <- outcome{summary: summary, err: err}
				mu.Lock()
				completed++
				if summary != nil {
					passedSpecs += summary.NumPassingTests
					failedSpecs += summary.NumFailingTests
				}
				if p.progress != nil {
					p.progress.Update(completed, passedSpecs, failedSpecs)
				}
				if err != nil || (summary != nil && summary.NumFailingTests > 0) {
					seenFailure = true
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

	var summaries []*domain.RunSummary
	var errs []error
	for out := range results {
		if out.err != nil {
			errs = append(errs, out.err)
			continue
		}
		summaries = append(summaries, out.summary)
	}
	if p.progress != nil {
		p.progress.Finish()
	}
	return summaries, time.Since(startTime), errors.Join(errs...)
}
