package impute

import (
	"context"
	"testing"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
)

func pmmFrame(t *testing.T) *g.Frame {
	t.Helper()
	bwt := make([]any, 40)
	age := make([]float64, 40)
	for i := range age {
		age[i] = float64(i)
		bwt[i] = 1000 + 10*age[i] + float64(i%3)
	}
	bwt[5] = nil
	bwt[21] = nil
	bwt[33] = nil
	return numericFrame(t, bwt, age)
}

func TestPMMImputesObservedValues(t *testing.T) {
	f := pmmFrame(t)
	res, err := (&PMM{Seed: 9, Reduction: g.ReductionFirst}).Apply(context.Background(), f, "bwt")
	if err != nil {
		t.Fatal(err)
	}
	if res.Reduction != g.ReductionFirst {
		t.Fatalf("reduction not declared: %q", res.Reduction)
	}
	observed := map[float64]bool{}
	injVals, injPresent := targetValues(t, f)
	for i, ok := range injPresent {
		if ok {
			observed[injVals[i]] = true
		}
	}
	vals, present := targetValues(t, res.Frame)
	for i, ok := range present {
		if !ok {
			t.Fatalf("row %d still missing", i)
		}
		if injPresent[i] {
			if vals[i] != injVals[i] {
				t.Fatalf("present row %d changed", i)
			}
			continue
		}
		// first-replicate PMM values are donations from observed rows
		if !observed[vals[i]] {
			t.Fatalf("row %d: %v is not an observed donor value", i, vals[i])
		}
	}
}

func TestPMMSeededReproducibility(t *testing.T) {
	f := pmmFrame(t)
	a, err := (&PMM{Seed: 123}).Apply(context.Background(), f, "bwt")
	if err != nil {
		t.Fatal(err)
	}
	b, err := (&PMM{Seed: 123}).Apply(context.Background(), f, "bwt")
	if err != nil {
		t.Fatal(err)
	}
	av, _ := targetValues(t, a.Frame)
	bv, _ := targetValues(t, b.Frame)
	for i := range av {
		if av[i] != bv[i] {
			t.Fatalf("row %d differs across identical seeds: %v vs %v", i, av[i], bv[i])
		}
	}
	if a.Reduction != g.ReductionMean {
		t.Fatalf("default reduction should be mean, got %q", a.Reduction)
	}
}

func TestPMMMeanReductionStaysInObservedRange(t *testing.T) {
	f := pmmFrame(t)
	res, err := (&PMM{Seed: 4, Reduction: g.ReductionMean}).Apply(context.Background(), f, "bwt")
	if err != nil {
		t.Fatal(err)
	}
	injVals, injPresent := targetValues(t, f)
	lo, hi := injVals[0], injVals[0]
	for i, ok := range injPresent {
		if !ok {
			continue
		}
		if injVals[i] < lo {
			lo = injVals[i]
		}
		if injVals[i] > hi {
			hi = injVals[i]
		}
	}
	vals, _ := targetValues(t, res.Frame)
	for i, ok := range injPresent {
		if ok {
			continue
		}
		if vals[i] < lo || vals[i] > hi {
			t.Fatalf("averaged donation %v outside observed range [%v, %v]", vals[i], lo, hi)
		}
	}
}
