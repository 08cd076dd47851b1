package impute

import (
	"context"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
	"gonum.org/v1/gonum/stat"
)

// Mean replaces every missing target entry with the arithmetic mean of the
// present entries.
type Mean struct{}

func (t *Mean) Name() string { return "mean" }

func (t *Mean) Apply(ctx context.Context, f *g.Frame, target string) (*g.Result, error) {
	vals, present, err := f.NumericValues(target)
	if err != nil {
		return nil, err
	}
	obs := make([]float64, 0, len(vals))
	for i, ok := range present {
		if ok {
			obs = append(obs, vals[i])
		}
	}
	if len(obs) == 0 {
		return nil, g.ErrEmptyColumn
	}
	m := stat.Mean(obs, nil)

	out := f.Clone()
	for i, ok := range present {
		if !ok {
			if err := out.SetNumeric(target, i, m); err != nil {
				return nil, err
			}
		}
	}
	return &g.Result{Frame: out}, nil
}
