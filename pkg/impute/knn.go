package impute

import (
	"context"
	"fmt"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
	"github.com/sjwhitworth/golearn/knn"
	"gonum.org/v1/gonum/mat"
)

// KNN imputes each missing target entry as the mean of the target values of
// the K nearest complete rows. Distance is euclidean over the standardized
// design matrix, with categorical predictors one-hot expanded, so numeric
// and categorical columns contribute on a comparable scale. When several
// rows are equidistant the regressor's internal ordering decides which enter
// the neighborhood, not the original row order.
type KNN struct {
	// K is the neighbor count. Zero means the default of 5.
	K int
}

func (t *KNN) Name() string { return "knn" }

func (t *KNN) k() int {
	if t.K > 0 {
		return t.K
	}
	return 5
}

func (t *KNN) Apply(ctx context.Context, f *g.Frame, target string) (*g.Result, error) {
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
	if len(obsRows) < t.k() {
		return nil, fmt.Errorf("%w: k=%d complete=%d", g.ErrInsufficientNeighbors, t.k(), len(obsRows))
	}
	if len(misRows) == 0 {
		return &g.Result{Frame: f.Clone()}, nil
	}

	d := buildDesign(f, target).standardized()
	p := d.features()
	if p == 0 {
		return nil, fmt.Errorf("no predictor columns for %s", target)
	}

	flat := make([]float64, 0, len(obsRows)*p)
	yobs := make([]float64, len(obsRows))
	for i, r := range obsRows {
		flat = append(flat, d.rows[r]...)
		yobs[i] = vals[r]
	}
	reg := knn.NewKnnRegressor("euclidean")
	reg.Fit(yobs, flat, len(obsRows), p)

	out := f.Clone()
	for _, r := range misRows {
		vec := mat.NewDense(1, p, append([]float64(nil), d.rows[r]...))
		v := reg.Predict(vec, t.k())
		if err := out.SetNumeric(target, r, v); err != nil {
			return nil, err
		}
	}
	return &g.Result{Frame: out}, nil
}
