package gapfill

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
)

// Mask is the set of row indices deliberately blanked by Inject, kept in
// ascending order. It exists for evaluation only; strategies never see it.
type Mask []int

// Contains reports whether row i was blanked.
func (m Mask) Contains(i int) bool {
	j := sort.SearchInts(m, i)
	return j < len(m) && m[j] == i
}

// Inject blanks count entries of the target column at seeded-random distinct
// rows and returns the modified copy together with the mask of blanked rows.
// The input frame is never mutated. Identical (rows, count, seed) inputs
// produce identical masks.
func Inject(f *Frame, target string, count int, seed uint64) (*Frame, Mask, error) {
	if _, ok := f.ColumnByName(target); !ok {
		return nil, nil, fmt.Errorf("unknown column: %s", target)
	}
	if count <= 0 || count > f.Rows() {
		return nil, nil, fmt.Errorf("%w: count=%d rows=%d", ErrInvalidSampleSize, count, f.Rows())
	}

	rng := rand.New(rand.NewSource(seed))
	mask := Mask(rng.Perm(f.Rows())[:count])
	sort.Ints(mask)

	out := f.Clone()
	col, _ := out.ColumnByName(target)
	for _, i := range mask {
		col.SetNull(i)
	}
	return out, mask, nil
}
