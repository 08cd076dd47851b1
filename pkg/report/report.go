// Package report compares imputed columns against the original data. It
// computes summary statistics and kernel density estimates on one shared
// support so every curve can be drawn on the same axes by whatever renders
// the report.
package report

import (
	"fmt"
	"math"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
	"gonum.org/v1/gonum/stat"
)

// GridPoints is the number of density evaluation points per series.
const GridPoints = 128

// Series is one named distribution: either the original data, the complete
// cases of the injected column, or one strategy's imputed column.
type Series struct {
	Name      string
	Count     int
	Mean      float64
	Variance  float64
	Min       float64
	Max       float64
	Reduction g.Reduction
	// Density holds the kernel density estimate evaluated at Report.X.
	Density []float64
}

// Report carries every series on one shared x grid with a common y ceiling.
type Report struct {
	Target string
	// X is the shared support grid covering the union of all series ranges.
	X    []float64
	XMin float64
	XMax float64
	YMax float64
	Series []Series
	// Failures records strategies that produced no column, keyed by name.
	Failures map[string]string
}

// Compare builds a report from the pre-injection column, the injected frame
// and a runner result set. The first series is always "original", the second
// "complete cases" (the injected column with missing entries removed), then
// one per successful strategy in registration order. Compare has no hidden
// state: identical inputs yield identical reports.
func Compare(injected *g.Frame, target string, original []float64, set *g.ResultSet) (*Report, error) {
	if len(original) == 0 {
		return nil, fmt.Errorf("original column is empty")
	}
	vals, present, err := injected.NumericValues(target)
	if err != nil {
		return nil, err
	}
	complete := make([]float64, 0, len(vals))
	for i, ok := range present {
		if ok {
			complete = append(complete, vals[i])
		}
	}

	type pending struct {
		name      string
		values    []float64
		reduction g.Reduction
	}
	cols := []pending{
		{name: "original", values: original},
		{name: "complete cases", values: complete},
	}
	failures := map[string]string{}
	if set != nil {
		for _, name := range set.Names() {
			if ferr, ok := set.Failure(name); ok {
				failures[name] = ferr.Error()
				continue
			}
			res, ok := set.Result(name)
			if !ok {
				continue
			}
			sv, sp, err := res.Frame.NumericValues(target)
			if err != nil {
				failures[name] = err.Error()
				continue
			}
			// a strategy column may still hold nulls; those cells must
			// not count as zeros
			pv := make([]float64, 0, len(sv))
			for i, ok := range sp {
				if ok {
					pv = append(pv, sv[i])
				}
			}
			cols = append(cols, pending{name: name, values: pv, reduction: res.Reduction})
		}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range cols {
		for _, v := range p.values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return nil, fmt.Errorf("no values to compare")
	}
	if lo == hi {
		// degenerate single-point support, widen so the grid is usable
		lo, hi = lo-1, hi+1
	}

	rep := &Report{Target: target, XMin: lo, XMax: hi, Failures: failures}
	rep.X = make([]float64, GridPoints)
	step := (hi - lo) / float64(GridPoints-1)
	for i := range rep.X {
		rep.X[i] = lo + float64(i)*step
	}
	rep.X[GridPoints-1] = hi

	for _, p := range cols {
		if len(p.values) == 0 {
			continue
		}
		s := Series{
			Name:      p.name,
			Count:     len(p.values),
			Mean:      stat.Mean(p.values, nil),
			Reduction: p.reduction,
		}
		// sample variance is undefined for a single value
		if s.Count > 1 {
			s.Variance = stat.Variance(p.values, nil)
		}
		s.Min, s.Max = minMax(p.values)
		s.Density = kde(p.values, rep.X)
		for _, d := range s.Density {
			if d > rep.YMax {
				rep.YMax = d
			}
		}
		rep.Series = append(rep.Series, s)
	}
	return rep, nil
}

func minMax(v []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range v {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

// kde evaluates a Gaussian kernel density estimate at each grid point,
// using Silverman's rule of thumb for the bandwidth.
func kde(values, grid []float64) []float64 {
	n := float64(len(values))
	h := 1.06 * stat.StdDev(values, nil) * math.Pow(n, -0.2)
	if h <= 0 || math.IsNaN(h) {
		h = 1
	}
	out := make([]float64, len(grid))
	norm := 1 / (n * h * math.Sqrt(2*math.Pi))
	for i, x := range grid {
		var sum float64
		for _, v := range values {
			z := (x - v) / h
			sum += math.Exp(-0.5 * z * z)
		}
		out[i] = norm * sum
	}
	return out
}
