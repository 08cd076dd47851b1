package impute

import (
	"context"
	"math"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
	"gonum.org/v1/gonum/stat/distuv"
)

// Regression predicts missing target entries with a linear model fitted on
// the rows where the target is present. Predictors whose coefficient is not
// distinguishable from zero at the Alpha level are dropped and the model is
// refitted before prediction. Rows already present pass through untouched.
type Regression struct {
	// Alpha is the significance threshold for keeping a predictor.
	// Zero means the default of 0.05.
	Alpha float64
}

func (t *Regression) Name() string { return "regression" }

func (t *Regression) alpha() float64 {
	if t.Alpha > 0 {
		return t.Alpha
	}
	return 0.05
}

func (t *Regression) Apply(ctx context.Context, f *g.Frame, target string) (*g.Result, error) {
	vals, present, err := f.NumericValues(target)
	if err != nil {
		return nil, err
	}
	var obsRows, misRows []int
	for i, ok := range present {
		if ok {
			obsRows = append(obsRows, i)
		} else {
			misRows = append(misRows, i)
		}
	}
	if len(obsRows) == 0 {
		return nil, g.ErrEmptyColumn
	}
	if len(misRows) == 0 {
		return &g.Result{Frame: f.Clone()}, nil
	}

	d := buildDesign(f, target)
	if d.features() == 0 {
		return nil, g.ErrSingularFit
	}

	xobs := make([][]float64, len(obsRows))
	yobs := make([]float64, len(obsRows))
	for i, r := range obsRows {
		xobs[i] = d.row(r)
		yobs[i] = vals[r]
	}
	model, err := olsFit(xobs, yobs)
	if err != nil {
		return nil, err
	}

	keep := t.selectFeatures(model)
	if len(keep) < len(model.beta) {
		for i := range xobs {
			xobs[i] = gather(xobs[i], keep)
		}
		model, err = olsFit(xobs, yobs)
		if err != nil {
			return nil, err
		}
	}

	out := f.Clone()
	for _, r := range misRows {
		x := gather(d.row(r), keep)
		if err := out.SetNumeric(target, r, model.predict(x)); err != nil {
			return nil, err
		}
	}
	return &g.Result{Frame: out}, nil
}

// selectFeatures returns the coefficient indices to retain: the intercept
// plus every predictor whose two-sided t-test p-value is at or below Alpha.
func (t *Regression) selectFeatures(m *olsModel) []int {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: m.df}
	keep := []int{0}
	for j := 1; j < len(m.beta); j++ {
		if m.se[j] == 0 {
			// exact fit: a nonzero coefficient with no residual error is as
			// significant as it gets
			if m.beta[j] != 0 {
				keep = append(keep, j)
			}
			continue
		}
		tv := math.Abs(m.beta[j] / m.se[j])
		p := 2 * (1 - dist.CDF(tv))
		if p <= t.alpha() {
			keep = append(keep, j)
		}
	}
	return keep
}

func gather(x []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = x[j]
	}
	return out
}
