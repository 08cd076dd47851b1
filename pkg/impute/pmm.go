package impute

import (
	"context"
	"math"
	"sort"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// PMM is predictive mean matching: a linear model is fitted on the complete
// rows, the coefficients are perturbed per replicate, and each missing entry
// receives the observed target value of a donor row whose fitted prediction
// lies closest to the missing row's prediction. M replicates are collapsed
// under the configured reduction, which the result declares.
type PMM struct {
	// M is the replicate count. Zero means the default of 5.
	M int
	// Donors is the candidate pool size per missing row. Zero means 5.
	Donors int
	// Seed makes the replicate draws reproducible.
	Seed uint64
	// Reduction picks first-replicate or across-replicate mean collapsing.
	Reduction g.Reduction
}

func (t *PMM) Name() string { return "pmm" }

func (t *PMM) m() int {
	if t.M > 0 {
		return t.M
	}
	return 5
}

func (t *PMM) donors() int {
	if t.Donors > 0 {
		return t.Donors
	}
	return 5
}

func (t *PMM) Apply(ctx context.Context, f *g.Frame, target string) (*g.Result, error) {
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

	rng := rand.New(rand.NewSource(t.Seed))
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	pool := t.donors()
	if pool > len(obsRows) {
		pool = len(obsRows)
	}

	reps := make([][]float64, t.m())
	for rep := range reps {
		// perturb coefficients within their standard errors so replicates
		// differ, per the usual approximate-Bayesian PMM draw
		beta := make([]float64, len(model.beta))
		for j := range beta {
			beta[j] = model.beta[j] + model.se[j]*norm.Rand()
		}
		imputed := make([]float64, len(misRows))
		for i, r := range misRows {
			pred := dot(d.row(r), beta)
			imputed[i] = yobs[nearestDonor(model.fitted, pred, pool, rng)]
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

// nearestDonor finds the pool observed rows whose fitted value is closest to
// pred (ties broken by original row order) and picks one uniformly.
func nearestDonor(fitted []float64, pred float64, pool int, rng *rand.Rand) int {
	type cand struct {
		idx  int
		dist float64
	}
	cands := make([]cand, len(fitted))
	for i, v := range fitted {
		cands[i] = cand{idx: i, dist: math.Abs(v - pred)}
	}
	sort.SliceStable(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })
	return cands[rng.Intn(pool)].idx
}
