package impute

import (
	"context"
	"sort"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
)

// Median replaces every missing target entry with the median of the present
// entries. Even counts take the mean of the two middle values.
type Median struct{}

func (t *Median) Name() string { return "median" }

func (t *Median) Apply(ctx context.Context, f *g.Frame, target string) (*g.Result, error) {
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
	sort.Float64s(obs)
	mid := len(obs) / 2
	var med float64
	if len(obs)%2 == 0 {
		med = (obs[mid-1] + obs[mid]) / 2
	} else {
		med = obs[mid]
	}

	out := f.Clone()
	for i, ok := range present {
		if !ok {
			if err := out.SetNumeric(target, i, med); err != nil {
				return nil, err
			}
		}
	}
	return &g.Result{Frame: out}, nil
}
