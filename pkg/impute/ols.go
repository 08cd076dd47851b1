package impute

import (
	"math"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
	"gonum.org/v1/gonum/mat"
)

// olsModel holds an ordinary least squares fit with enough detail to test
// coefficients and to generate stochastic draws.
type olsModel struct {
	beta   []float64 // intercept first
	se     []float64 // standard error per coefficient
	sigma  float64   // residual standard deviation
	df     float64   // residual degrees of freedom
	fitted []float64 // fitted values for the training rows
}

// olsFit solves y = X beta by normal equations. X must carry the intercept
// column. Returns ErrSingularFit when XᵀX cannot be inverted or there are
// no residual degrees of freedom.
func olsFit(xrows [][]float64, y []float64) (*olsModel, error) {
	n := len(xrows)
	if n == 0 {
		return nil, g.ErrEmptyColumn
	}
	p := len(xrows[0])
	if n <= p {
		return nil, g.ErrSingularFit
	}
	flat := make([]float64, 0, n*p)
	for _, r := range xrows {
		flat = append(flat, r...)
	}
	X := mat.NewDense(n, p, flat)
	yv := mat.NewVecDense(n, append([]float64(nil), y...))

	var xtx mat.Dense
	xtx.Mul(X.T(), X)
	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, g.ErrSingularFit
	}
	var xty mat.VecDense
	xty.MulVec(X.T(), yv)
	var bv mat.VecDense
	bv.MulVec(&inv, &xty)

	m := &olsModel{
		beta:   make([]float64, p),
		se:     make([]float64, p),
		fitted: make([]float64, n),
		df:     float64(n - p),
	}
	for j := 0; j < p; j++ {
		m.beta[j] = bv.AtVec(j)
	}
	var rss float64
	for i := 0; i < n; i++ {
		m.fitted[i] = dot(xrows[i], m.beta)
		r := y[i] - m.fitted[i]
		rss += r * r
	}
	sigma2 := rss / m.df
	m.sigma = math.Sqrt(sigma2)
	for j := 0; j < p; j++ {
		v := sigma2 * inv.At(j, j)
		if v < 0 {
			v = 0
		}
		m.se[j] = math.Sqrt(v)
	}
	return m, nil
}

func (m *olsModel) predict(x []float64) float64 { return dot(x, m.beta) }

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
