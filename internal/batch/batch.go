package batch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of inputs processed at once when no
// limit is given.
const DefaultConcurrency = 4

// Result is the outcome for one input.
type Result[T any] struct {
	// Index is the position of Input in the slice passed to Run.
	Index int
	Input string
	Value T
	Err   error
}

// Processor holds the settings shared by every Run.
type Processor struct {
	concurrency int
	logger      *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithConcurrency sets the number of inputs processed at once. Values below
// one keep the default.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets the logger for per-item progress.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// New creates a Processor.
func New(opts ...Option) *Processor {
	p := &Processor{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Concurrency returns the configured limit.
func (p *Processor) Concurrency() int {
	return p.concurrency
}

// Run calls fn for every input and returns one Result per input, in input
// order. Inputs that had not started when ctx was canceled carry ctx.Err();
// in that case Run also returns ctx.Err().
func Run[T any](ctx context.Context, p *Processor, inputs []string, fn func(ctx context.Context, input string) (T, error)) ([]Result[T], error) {
	results := make([]Result[T], len(inputs))
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i, input := range inputs {
		results[i] = Result[T]{Index: i, Input: input}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			v, err := fn(ctx, input)
			results[i].Value = v
			results[i].Err = err

			if err != nil {
				p.logger.Debug("batch item failed", "index", i, "error", err)
			} else {
				p.logger.Debug("batch item done", "index", i)
			}
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // item errors are kept in results

	p.logger.Debug("batch complete",
		"items", len(inputs),
		"failed", len(Failed(results)),
		"elapsed", time.Since(start),
	)
	return results, ctx.Err()
}

// Failed returns the results that carry an error.
func Failed[T any](results []Result[T]) []Result[T] {
	var out []Result[T]
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
