package gapfill

import (
	"context"
	"errors"
	"testing"
)

type okStrategy struct{ name string }

func (s *okStrategy) Name() string { return s.name }
func (s *okStrategy) Apply(ctx context.Context, f *Frame, target string) (*Result, error) {
	return &Result{Frame: f.Clone()}, nil
}

type failStrategy struct{ name string }

func (s *failStrategy) Name() string { return s.name }
func (s *failStrategy) Apply(ctx context.Context, f *Frame, target string) (*Result, error) {
	return nil, ErrInsufficientNeighbors
}

func TestRunnerPartialFailure(t *testing.T) {
	f := floatFrame(10)
	r, err := NewRunner(&okStrategy{name: "mean"}, &failStrategy{name: "knn"}, &okStrategy{name: "median"})
	if err != nil {
		t.Fatal(err)
	}
	set, err := r.Run(context.Background(), f, "bwt")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := set.Result("mean"); !ok {
		t.Fatal("mean result missing")
	}
	if _, ok := set.Result("median"); !ok {
		t.Fatal("median result missing")
	}
	ferr, ok := set.Failure("knn")
	if !ok {
		t.Fatal("knn failure not recorded")
	}
	if !errors.Is(ferr, ErrInsufficientNeighbors) {
		t.Fatalf("failure lost its cause: %v", ferr)
	}
	var se *StrategyError
	if !errors.As(ferr, &se) || se.Strategy != "knn" {
		t.Fatalf("failure not wrapped as StrategyError: %v", ferr)
	}
}

func TestRunnerPreservesOrder(t *testing.T) {
	r, err := NewRunner(&okStrategy{name: "c"}, &okStrategy{name: "a"}, &failStrategy{name: "b"})
	if err != nil {
		t.Fatal(err)
	}
	set, err := r.Run(context.Background(), floatFrame(5), "bwt")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"c", "a", "b"}
	got := set.Names()
	if len(got) != len(want) {
		t.Fatalf("names: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names: got %v want %v", got, want)
		}
	}
}

func TestRunnerRejectsDuplicateNames(t *testing.T) {
	if _, err := NewRunner(&okStrategy{name: "x"}, &failStrategy{name: "x"}); err == nil {
		t.Fatal("expected duplicate-name error")
	}
}

func TestRunnerParallel(t *testing.T) {
	f := floatFrame(10)
	r, err := NewRunner(&okStrategy{name: "a"}, &okStrategy{name: "b"}, &failStrategy{name: "c"})
	if err != nil {
		t.Fatal(err)
	}
	set, err := r.Parallel().Run(context.Background(), f, "bwt")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := set.Result("a"); !ok {
		t.Fatal("a result missing")
	}
	if _, ok := set.Result("b"); !ok {
		t.Fatal("b result missing")
	}
	if _, ok := set.Failure("c"); !ok {
		t.Fatal("c failure missing")
	}
}
