package gapfill

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSampleSize is returned by Inject when the requested number
	// of cells to blank is non-positive or exceeds the row count.
	ErrInvalidSampleSize = errors.New("sample size out of range")

	// ErrEmptyColumn is returned by scalar fill strategies when the target
	// column has no present values to compute a statistic from.
	ErrEmptyColumn = errors.New("no present values in column")

	// ErrSingularFit is returned by model-based strategies when the design
	// matrix is rank-deficient and no coefficients can be estimated.
	ErrSingularFit = errors.New("singular design matrix")

	// ErrInsufficientNeighbors is returned by the kNN strategy when fewer
	// complete rows exist than the configured neighbor count.
	ErrInsufficientNeighbors = errors.New("not enough complete rows for k neighbors")
)

// StrategyError records a strategy failure inside a Runner batch. It wraps
// the underlying cause so errors.Is still matches the sentinel kinds.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error { return e.Err }
