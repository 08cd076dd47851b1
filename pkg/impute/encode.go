package impute

import (
	"math"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
)

// design is the numeric predictor matrix derived from every column except
// the target. Numeric columns contribute one feature each; string columns
// are one-hot encoded with the first observed level dropped. Missing
// predictor cells fall back to the column mean (numeric) or an all-zero
// indicator row (categorical) so every row yields a complete vector.
type design struct {
	names []string
	rows  [][]float64
}

func (d *design) features() int { return len(d.names) }

// row returns the feature vector for row i with a leading intercept term.
func (d *design) row(i int) []float64 {
	out := make([]float64, 0, len(d.rows[i])+1)
	out = append(out, 1)
	return append(out, d.rows[i]...)
}

func buildDesign(f *g.Frame, target string) *design {
	n := f.Rows()
	d := &design{rows: make([][]float64, n)}
	for i := range d.rows {
		d.rows[i] = []float64{}
	}
	for _, cs := range f.Schema().Columns {
		if cs.Name == target {
			continue
		}
		if cs.Type.Numeric() {
			vals, present, err := f.NumericValues(cs.Name)
			if err != nil {
				continue
			}
			var sum float64
			var cnt int
			for i, ok := range present {
				if ok {
					sum += vals[i]
					cnt++
				}
			}
			mean := 0.0
			if cnt > 0 {
				mean = sum / float64(cnt)
			}
			d.names = append(d.names, cs.Name)
			for i := 0; i < n; i++ {
				v := mean
				if present[i] {
					v = vals[i]
				}
				d.rows[i] = append(d.rows[i], v)
			}
			continue
		}
		col, _ := f.ColumnByName(cs.Name)
		sc, ok := col.(*g.StringColumn)
		if !ok {
			continue
		}
		// levels in first-appearance order, first level dropped as baseline
		var levels []string
		seen := map[string]bool{}
		for i := 0; i < n; i++ {
			if v, ok := sc.Get(i); ok && !seen[v] {
				seen[v] = true
				levels = append(levels, v)
			}
		}
		if len(levels) < 2 {
			continue
		}
		for _, lv := range levels[1:] {
			d.names = append(d.names, cs.Name+"="+lv)
			for i := 0; i < n; i++ {
				var x float64
				if v, ok := sc.Get(i); ok && v == lv {
					x = 1
				}
				d.rows[i] = append(d.rows[i], x)
			}
		}
	}
	return d
}

// standardized returns a copy with each feature z-scored over all rows, so
// distance computations weight features comparably. Zero-variance features
// are left centered at zero.
func (d *design) standardized() *design {
	n := len(d.rows)
	p := d.features()
	out := &design{names: d.names, rows: make([][]float64, n)}
	mean := make([]float64, p)
	std := make([]float64, p)
	for j := 0; j < p; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += d.rows[i][j]
		}
		mean[j] = sum / float64(n)
		var ss float64
		for i := 0; i < n; i++ {
			dv := d.rows[i][j] - mean[j]
			ss += dv * dv
		}
		std[j] = math.Sqrt(ss / float64(n))
	}
	for i := 0; i < n; i++ {
		out.rows[i] = make([]float64, p)
		for j := 0; j < p; j++ {
			if std[j] > 0 {
				out.rows[i][j] = (d.rows[i][j] - mean[j]) / std[j]
			}
		}
	}
	return out
}
