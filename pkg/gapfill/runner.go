package gapfill

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ResultSet collects one result (or one failure) per strategy, keyed by
// strategy name, preserving registration order for display.
type ResultSet struct {
	order    []string
	results  map[string]*Result
	failures map[string]error
}

// Names returns the strategy names in registration order, successes and
// failures alike.
func (s *ResultSet) Names() []string { return s.order }

// Result returns the result for a strategy, or false if it failed or is
// unknown.
func (s *ResultSet) Result(name string) (*Result, bool) {
	r, ok := s.results[name]
	return r, ok
}

// Failure returns the recorded failure for a strategy, or false if it
// succeeded or is unknown.
func (s *ResultSet) Failure(name string) (error, bool) {
	err, ok := s.failures[name]
	return err, ok
}

// Failures returns all recorded failures keyed by strategy name.
func (s *ResultSet) Failures() map[string]error { return s.failures }

// Runner applies an ordered list of strategies to the same frame. Each
// strategy sees the frame as handed to Run; none observes another's output.
type Runner struct {
	strategies []Strategy
	parallel   bool
}

// NewRunner builds a runner over the given strategies. Strategy names must
// be unique since they key the result set.
func NewRunner(strategies ...Strategy) (*Runner, error) {
	seen := make(map[string]struct{}, len(strategies))
	for _, s := range strategies {
		if _, dup := seen[s.Name()]; dup {
			return nil, fmt.Errorf("duplicate strategy name: %s", s.Name())
		}
		seen[s.Name()] = struct{}{}
	}
	return &Runner{strategies: strategies}, nil
}

// Parallel enables concurrent strategy execution. Strategies only read the
// shared frame, so this is safe; results are merged after all complete.
func (r *Runner) Parallel() *Runner {
	r.parallel = true
	return r
}

// Run applies every strategy to f. A strategy failure is recorded against
// its name and does not abort the batch; the error return is reserved for
// context cancellation.
func (r *Runner) Run(ctx context.Context, f *Frame, target string) (*ResultSet, error) {
	set := &ResultSet{
		order:    make([]string, len(r.strategies)),
		results:  make(map[string]*Result, len(r.strategies)),
		failures: make(map[string]error),
	}
	for i, s := range r.strategies {
		set.order[i] = s.Name()
	}

	results := make([]*Result, len(r.strategies))
	errs := make([]error, len(r.strategies))

	if r.parallel {
		var g errgroup.Group
		for i, s := range r.strategies {
			i, s := i, s
			g.Go(func() error {
				results[i], errs[i] = s.Apply(ctx, f, target)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, s := range r.strategies {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i], errs[i] = s.Apply(ctx, f, target)
		}
	}

	for i, s := range r.strategies {
		if errs[i] != nil {
			set.failures[s.Name()] = &StrategyError{Strategy: s.Name(), Err: errs[i]}
			continue
		}
		res := results[i]
		res.Strategy = s.Name()
		set.results[s.Name()] = res
	}
	return set, ctx.Err()
}
