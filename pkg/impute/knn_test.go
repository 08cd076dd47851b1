package impute

import (
	"context"
	"errors"
	"math"
	"testing"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
)

func TestKNNImputesFromNearestRows(t *testing.T) {
	// the missing row sits inside a tight cluster whose targets agree, so
	// the neighbor mean is unambiguous
	f := numericFrame(t,
		[]any{10.0, 10.0, nil, 100.0, 100.0, 100.0},
		[]float64{0.1, -0.1, 0.0, 5.0, 6.0, 7.0})
	res, err := (&KNN{K: 2}).Apply(context.Background(), f, "bwt")
	if err != nil {
		t.Fatal(err)
	}
	vals, present := targetValues(t, res.Frame)
	if !present[2] {
		t.Fatal("row 2 still missing")
	}
	if math.Abs(vals[2]-10) > 1e-9 {
		t.Fatalf("imputed %v, want 10", vals[2])
	}
	for _, i := range []int{0, 1, 3, 4, 5} {
		want := []float64{10, 10, 0, 100, 100, 100}[i]
		if vals[i] != want {
			t.Fatalf("present row %d changed: %v", i, vals[i])
		}
	}
}

func TestKNNInsufficientNeighbors(t *testing.T) {
	f := numericFrame(t,
		[]any{1.0, 2.0, nil, nil},
		[]float64{1, 2, 3, 4})
	_, err := (&KNN{K: 5}).Apply(context.Background(), f, "bwt")
	if !errors.Is(err, g.ErrInsufficientNeighbors) {
		t.Fatalf("expected ErrInsufficientNeighbors, got %v", err)
	}
}
