package engine

import (
	"fmt"
	"math"
	"sort"
)

// MemberRatio pairs a member ID with its critical design ratio.
type MemberRatio struct {
	ID    int     `json:"id"`
	Ratio float64 `json:"ratio"`
}

// quartile returns the q-th quantile of sorted values using linear
// interpolation between closest ranks.
func quartile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// FilterOutliers drops values outside [Q1 - 1.5 IQR, Q3 + 1.5 IQR].
func FilterOutliers(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q1 := quartile(sorted, 0.25)
	q3 := quartile(sorted, 0.75)
	iqr := q3 - q1
	lower, upper := q1-1.5*iqr, q3+1.5*iqr

	out := make([]float64, 0, len(sorted))
	for _, v := range sorted {
		if v >= lower && v <= upper {
			out = append(out, v)
		}
	}
	return out
}

// minQuartileSamples is the smallest population quartiles are estimated
// from. Smaller sets are used as-is.
const minQuartileSamples = 4

func population(ratios []float64) []float64 {
	if len(ratios) < minQuartileSamples {
		return ratios
	}
	return FilterOutliers(ratios)
}

// CalculateAverage returns the mean of the ratios after outlier removal.
// An empty input averages to zero.
func CalculateAverage(ratios []float64) float64 {
	kept := population(ratios)
	if len(kept) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range kept {
		sum += v
	}
	return sum / float64(len(kept))
}

// CalculateDeviation returns the sample standard deviation of the ratios
// after outlier removal. Fewer than two kept values give zero.
func CalculateDeviation(ratios []float64) float64 {
	kept := population(ratios)
	if len(kept) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range kept {
		mean += v
	}
	mean /= float64(len(kept))

	ss := 0.0
	for _, v := range kept {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / float64(len(kept)-1))
}

// FailedMembers returns the members whose ratio reaches allowable, sorted
// by descending ratio and then ascending ID.
func FailedMembers(ratios map[int]float64, allowable float64) []MemberRatio {
	var out []MemberRatio
	for id, r := range ratios {
		if r >= allowable {
			out = append(out, MemberRatio{ID: id, Ratio: r})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ratio != out[j].Ratio {
			return out[i].Ratio > out[j].Ratio
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RatioBand is one bucket of a ratio histogram.
type RatioBand struct {
	Label   string  `json:"label"`
	Lower   float64 `json:"lower"`
	Upper   float64 `json:"upper"`
	Members []int   `json:"members"`
}

// RatioBands buckets members into half-open bands of width step starting
// at zero, labelled "0.00-0.50". Empty bands between populated ones are
// kept so the histogram is contiguous.
func RatioBands(ratios map[int]float64, step float64) []RatioBand {
	if step <= 0 || len(ratios) == 0 {
		return nil
	}
	ids := make([]int, 0, len(ratios))
	maxBand := 0
	for id, r := range ratios {
		ids = append(ids, id)
		if b := bandIndex(r, step); b > maxBand {
			maxBand = b
		}
	}
	sort.Ints(ids)

	bands := make([]RatioBand, maxBand+1)
	for i := range bands {
		lo, hi := float64(i)*step, float64(i+1)*step
		bands[i] = RatioBand{Label: fmt.Sprintf("%.2f-%.2f", lo, hi), Lower: lo, Upper: hi, Members: []int{}}
	}
	for _, id := range ids {
		b := bandIndex(ratios[id], step)
		bands[b].Members = append(bands[b].Members, id)
	}
	return bands
}

func bandIndex(r, step float64) int {
	if r <= 0 {
		return 0
	}
	return int(math.Floor(r/step + 1e-9))
}
