package impute

import (
	"context"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// EMB is bootstrap-based multiple imputation in the style of EM-with-
// bootstrapping: each replicate refits the linear model on a bootstrap
// resample of the complete rows and imputes missing entries from that
// model plus residual-scale Gaussian noise. Replicates are collapsed under
// the configured reduction, which the result declares.
type EMB struct {
	// M is the replicate count. Zero means the default of 5.
	M int
	// Seed makes the bootstrap and noise draws reproducible.
	Seed uint64
	// Reduction picks first-replicate or across-replicate mean collapsing.
	Reduction g.Reduction
}

func (t *EMB) Name() string { return "emb" }

func (t *EMB) m() int {
	if t.M > 0 {
		return t.M
	}
	return 5
}

func (t *EMB) Apply(ctx context.Context, f *g.Frame, target string) (*g.Result, error) {
	vals, present, err := f.NumericValues(target)
	if err != nil {
		return nil, err
	}
	obsRows, misRows := splitRows(present)
	if len(obsRows) == 0 {
		return nil, g.ErrEmptyColumn
	}
	if len(misRows) == 0 {
		return &g.Result{Frame: f.Clone(), Reduction: t.Reduction}, nil
	}

	d := buildDesign(f, target)
	if d.features() == 0 {
		return nil, g.ErrSingularFit
	}

	rng := rand.New(rand.NewSource(t.Seed))
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}

	reps := make([][]float64, t.m())
	for rep := range reps {
		xb := make([][]float64, len(obsRows))
		yb := make([]float64, len(obsRows))
		for i := range obsRows {
			r := obsRows[rng.Intn(len(obsRows))]
			xb[i] = d.row(r)
			yb[i] = vals[r]
		}
		model, err := olsFit(xb, yb)
		if err != nil {
			return nil, err
		}
		imputed := make([]float64, len(misRows))
		for i, r := range misRows {
			imputed[i] = model.predict(d.row(r)) + model.sigma*norm.Rand()
		}
		reps[rep] = imputed
	}

	values, used := reduceReplicates(reps, t.Reduction)
	out := f.Clone()
	for i, r := range misRows {
		if err := out.SetNumeric(target, r, values[i]); err != nil {
			return nil, err
		}
	}
	return &g.Result{Frame: out, Reduction: used}, nil
}
