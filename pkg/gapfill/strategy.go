package gapfill

import "context"

// Reduction identifies how a multiple-imputation strategy collapsed its
// replicates into the single reported column.
type Reduction string

const (
	// ReductionNone marks single-shot strategies.
	ReductionNone Reduction = ""
	// ReductionFirst keeps the first replicate's values.
	ReductionFirst Reduction = "first"
	// ReductionMean averages the replicates at each imputed row.
	ReductionMean Reduction = "mean"
)

// Result is the output of one strategy applied to one frame. Row i of
// Frame corresponds to row Rows[i] of the input; Rows is nil for strategies
// that preserve the row set, meaning the identity alignment.
type Result struct {
	Strategy  string
	Frame     *Frame
	Rows      []int
	Reduction Reduction
}

// Strategy fills (or removes) the missing entries of one target column.
// Implementations must not mutate the input frame and must not depend on
// any other strategy's output.
type Strategy interface {
	Name() string
	Apply(ctx context.Context, f *Frame, target string) (*Result, error)
}
