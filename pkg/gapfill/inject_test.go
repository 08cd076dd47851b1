package gapfill

import (
	"errors"
	"testing"
)

func floatFrame(n int) *Frame {
	s := Schema{Columns: []ColumnSchema{{Name: "bwt", Type: KindFloat, Nullable: true}}}
	f := NewFrame(s)
	for i := 0; i < n; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "bwt", float64(1000+i))
	}
	return f
}

func TestInjectMaskProperties(t *testing.T) {
	f := floatFrame(50)
	out, mask, err := Inject(f, "bwt", 10, 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(mask) != 10 {
		t.Fatalf("mask size %d, want 10", len(mask))
	}
	seen := map[int]bool{}
	for _, i := range mask {
		if i < 0 || i >= 50 {
			t.Fatalf("mask index %d out of range", i)
		}
		if seen[i] {
			t.Fatalf("mask index %d drawn twice", i)
		}
		seen[i] = true
	}
	col, _ := out.ColumnByName("bwt")
	fc := col.(*FloatColumn)
	orig, _ := f.ColumnByName("bwt")
	oc := orig.(*FloatColumn)
	for i := 0; i < 50; i++ {
		if mask.Contains(i) {
			if !fc.IsNull(i) {
				t.Fatalf("masked row %d not null", i)
			}
			continue
		}
		ov, _ := oc.Get(i)
		nv, ok := fc.Get(i)
		if !ok || nv != ov {
			t.Fatalf("unmasked row %d changed: %v -> %v", i, ov, nv)
		}
	}
}

func TestInjectDoesNotMutateSource(t *testing.T) {
	f := floatFrame(20)
	if _, _, err := Inject(f, "bwt", 5, 7); err != nil {
		t.Fatal(err)
	}
	col, _ := f.ColumnByName("bwt")
	for i := 0; i < 20; i++ {
		if col.IsNull(i) {
			t.Fatalf("source row %d was blanked", i)
		}
	}
}

func TestInjectDeterminism(t *testing.T) {
	f := floatFrame(100)
	_, m1, err := Inject(f, "bwt", 25, 555)
	if err != nil {
		t.Fatal(err)
	}
	_, m2, err := Inject(f, "bwt", 25, 555)
	if err != nil {
		t.Fatal(err)
	}
	if len(m1) != len(m2) {
		t.Fatalf("mask sizes differ: %d vs %d", len(m1), len(m2))
	}
	for i := range m1 {
		if m1[i] != m2[i] {
			t.Fatalf("masks differ at %d: %d vs %d", i, m1[i], m2[i])
		}
	}
	_, m3, err := Inject(f, "bwt", 25, 556)
	if err != nil {
		t.Fatal(err)
	}
	same := len(m3) == len(m1)
	if same {
		for i := range m1 {
			if m1[i] != m3[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatal("different seeds produced identical masks")
	}
}

func TestInjectInvalidSampleSize(t *testing.T) {
	f := floatFrame(10)
	for _, count := range []int{0, -1, 11} {
		if _, _, err := Inject(f, "bwt", count, 1); !errors.Is(err, ErrInvalidSampleSize) {
			t.Fatalf("count=%d: expected ErrInvalidSampleSize, got %v", count, err)
		}
	}
	if _, _, err := Inject(f, "nope", 1, 1); err == nil {
		t.Fatal("expected error for unknown column")
	}
}
