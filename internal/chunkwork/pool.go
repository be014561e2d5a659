package chunkwork

import (
	"context"
	"sync"
)

// job pairs a chunk index with the function that processes it.
type job[In, Out any] struct {
	index int
	input In
	fn    func(ctx context.Context, input In) (Out, error)
}

// result is the typed outcome of one job, tagged with its originating
// index so results can be placed back in input order after a run.
type result[Out any] struct {
	index int
	value Out
	err   error
}

// Config controls how a parallel run is bounded.
type Config struct {
	// Workers is the maximum number of jobs processed concurrently.
	// Defaults to 4 if zero or negative.
	Workers int
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return 4
	}
	return c.Workers
}

// runAll runs fn over every element of inputs with at most cfg.Workers
// concurrent calls, returning one Out (or error) per input in the same
// order as inputs. It stops launching new jobs once ctx is done, but
// always waits for in-flight jobs to finish before returning.
func runAll[In, Out any](ctx context.Context, cfg Config, inputs []In, fn func(context.Context, In) (Out, error)) ([]Out, []error) {
	n := len(inputs)
	outs := make([]Out, n)
	errs := make([]error, n)

	if n == 0 {
		return outs, errs
	}

	sem := newSemaphore(cfg.workers())
	defer sem.close()

	var wg sync.WaitGroup
	resultsCh := make(chan result[Out], n)

	for i, in := range inputs {
		j := job[In, Out]{index: i, input: in, fn: fn}

		if err := sem.acquire(ctx); err != nil {
			resultsCh <- result[Out]{index: j.index, err: err}
			continue
		}

		wg.Add(1)
		go func(j job[In, Out]) {
			defer wg.Done()
			defer sem.release()

			v, err := j.fn(ctx, j.input)
			resultsCh <- result[Out]{index: j.index, value: v, err: err}
		}(j)
	}

	wg.Wait()
	close(resultsCh)

	for r := range resultsCh {
		outs[r.index] = r.value
		errs[r.index] = r.err
	}
	return outs, errs
}
