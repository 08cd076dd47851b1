package impute

import (
	"context"
	"errors"
	"math"
	"testing"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
)

func TestRegressionPredictsOnlyMissingRows(t *testing.T) {
	// exact linear relation bwt = 100 + 50*age, so the fit is exact and the
	// predictions are checkable
	n := 30
	bwt := make([]any, n)
	age := make([]float64, n)
	for i := 0; i < n; i++ {
		age[i] = float64(15 + i)
		bwt[i] = 100 + 50*age[i]
	}
	bwt[4] = nil
	bwt[17] = nil
	f := numericFrame(t, bwt, age)

	res, err := (&Regression{}).Apply(context.Background(), f, "bwt")
	if err != nil {
		t.Fatal(err)
	}
	vals, present := targetValues(t, res.Frame)
	injVals, injPresent := targetValues(t, f)
	for i := 0; i < n; i++ {
		if !present[i] {
			t.Fatalf("row %d still missing", i)
		}
		if injPresent[i] {
			if vals[i] != injVals[i] {
				t.Fatalf("present row %d changed: %v -> %v", i, injVals[i], vals[i])
			}
			continue
		}
		want := 100 + 50*age[i]
		if math.Abs(vals[i]-want) > 1e-6 {
			t.Fatalf("row %d: predicted %v, want %v", i, vals[i], want)
		}
	}
}

func TestRegressionWithIrrelevantPredictor(t *testing.T) {
	// age drives the target exactly; noise carries no signal and must not
	// disturb the predictions whether or not selection keeps it
	n := 40
	s := g.Schema{Columns: []g.ColumnSchema{
		{Name: "age", Type: g.KindFloat, Nullable: true},
		{Name: "noise", Type: g.KindFloat, Nullable: true},
		{Name: "bwt", Type: g.KindFloat, Nullable: true},
	}}
	f := g.NewFrame(s)
	for i := 0; i < n; i++ {
		f.AppendNullRow()
		a := float64(i)
		_ = f.SetCell(i, "age", a)
		_ = f.SetCell(i, "noise", float64(i%2))
		if i != 10 {
			_ = f.SetCell(i, "bwt", 3*a+7)
		}
	}
	res, err := (&Regression{Alpha: 0.05}).Apply(context.Background(), f, "bwt")
	if err != nil {
		t.Fatal(err)
	}
	vals, _, err := res.Frame.NumericValues("bwt")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(vals[10]-37) > 1e-6 {
		t.Fatalf("imputed %v, want 37", vals[10])
	}
}

func TestRegressionSingularFit(t *testing.T) {
	// a constant predictor duplicates the intercept column
	n := 10
	s := g.Schema{Columns: []g.ColumnSchema{
		{Name: "flat", Type: g.KindFloat, Nullable: true},
		{Name: "bwt", Type: g.KindFloat, Nullable: true},
	}}
	f := g.NewFrame(s)
	for i := 0; i < n; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "flat", 1.0)
		if i != 3 {
			_ = f.SetCell(i, "bwt", float64(i))
		}
	}
	_, err := (&Regression{}).Apply(context.Background(), f, "bwt")
	if !errors.Is(err, g.ErrSingularFit) {
		t.Fatalf("expected ErrSingularFit, got %v", err)
	}
}

func TestRegressionEmptyColumn(t *testing.T) {
	f := numericFrame(t, []any{nil, nil, nil}, []float64{1, 2, 3})
	if _, err := (&Regression{}).Apply(context.Background(), f, "bwt"); !errors.Is(err, g.ErrEmptyColumn) {
		t.Fatalf("expected ErrEmptyColumn, got %v", err)
	}
}
