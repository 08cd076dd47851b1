package impute

import (
	g "github.com/wdm0006/gapfill/pkg/gapfill"
)

// reduceReplicates collapses m imputed value vectors (one per replicate,
// aligned to the missing-row list) into one vector under the requested
// reduction. An empty reduction defaults to averaging.
func reduceReplicates(reps [][]float64, red g.Reduction) ([]float64, g.Reduction) {
	if red == g.ReductionNone {
		red = g.ReductionMean
	}
	if red == g.ReductionFirst {
		return reps[0], g.ReductionFirst
	}
	out := make([]float64, len(reps[0]))
	for _, rep := range reps {
		for i, v := range rep {
			out[i] += v
		}
	}
	for i := range out {
		out[i] /= float64(len(reps))
	}
	return out, g.ReductionMean
}

// splitRows partitions row indices of a target column by presence.
func splitRows(present []bool) (obs, mis []int) {
	for i, ok := range present {
		if ok {
			obs = append(obs, i)
		} else {
			mis = append(mis, i)
		}
	}
	return obs, mis
}
