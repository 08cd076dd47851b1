package impute

import (
	"context"
	"fmt"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
)

// Drop removes every row whose target entry is missing. The result frame
// has fewer rows; Result.Rows records which original rows survive so
// comparisons can re-align by index.
type Drop struct{}

func (t *Drop) Name() string { return "drop" }

func (t *Drop) Apply(ctx context.Context, f *g.Frame, target string) (*g.Result, error) {
	col, ok := f.ColumnByName(target)
	if !ok {
		return nil, fmt.Errorf("unknown column: %s", target)
	}
	keep := make([]int, 0, col.Len())
	for i := 0; i < col.Len(); i++ {
		if !col.IsNull(i) {
			keep = append(keep, i)
		}
	}
	return &g.Result{Frame: f.SelectRows(keep), Rows: keep}, nil
}
