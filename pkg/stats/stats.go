// Package stats aggregates pairwise hop distances into a histogram and
// derives separation statistics from it.
//
// An [Accumulator] is fed one finite distance per reachable ordered pair.
// Mean, variance, standard deviation and threshold percentages are computed
// on demand from the histogram and running totals. Every derived value is
// reported together with a bool that is false when no pair was recorded,
// so "no data" is never confused with "distance always zero".
//
// Accumulators are plain values owned by one goroutine; the zero value is
// ready to use. Parallel callers
// keep one per worker and combine them with [Accumulator.Merge].
package stats

import (
	"maps"
	"math"
	"slices"
)

// DefaultThreshold is the hop count behind "six degrees of separation".
const DefaultThreshold = 6

// Accumulator counts ordered pairs per distance and keeps the running
// totals needed for the summary statistics.
type Accumulator struct {
	hist  map[int]int64
	count int64
	sum   int64
	max   int
}

// New returns an empty Accumulator.
func New() *Accumulator {
	return &Accumulator{hist: make(map[int]int64)}
}

// Record adds one ordered pair at the given distance. Non-positive
// distances are ignored; the zero self-distance is never a pair.
func (a *Accumulator) Record(distance int) {
	if distance <= 0 {
		return
	}
	if a.hist == nil {
		a.hist = make(map[int]int64)
	}
	a.hist[distance]++
	a.count++
	a.sum += int64(distance)
	if distance > a.max {
		a.max = distance
	}
}

// Merge folds other into a. Merging is associative and commutative, so
// per-worker accumulators can be combined in any order.
func (a *Accumulator) Merge(other *Accumulator) {
	if a.hist == nil && len(other.hist) > 0 {
		a.hist = make(map[int]int64, len(other.hist))
	}
	for d, c := range other.hist {
		a.hist[d] += c
	}
	a.count += other.count
	a.sum += other.sum
	a.max = max(a.max, other.max)
}

// Count returns the number of recorded (valid) pairs.
func (a *Accumulator) Count() int64 { return a.count }

// Sum returns the total of all recorded distances.
func (a *Accumulator) Sum() int64 { return a.sum }

// Max returns the largest recorded distance, or 0 when nothing was recorded.
func (a *Accumulator) Max() int { return a.max }

// Histogram returns a copy of the distance → pair count mapping.
func (a *Accumulator) Histogram() map[int]int64 { return maps.Clone(a.hist) }

// Mean returns the average distance over all recorded pairs.
func (a *Accumulator) Mean() (float64, bool) {
	if a.count == 0 {
		return 0, false
	}
	return float64(a.sum) / float64(a.count), true
}

// Variance returns the population variance of the recorded distances.
//
// It is computed in a second pass over the histogram using the known
// mean, accumulating c*(d-mean)^2 per bucket. This avoids the cancellation
// error of the single-pass E[x^2]-E[x]^2 form.
func (a *Accumulator) Variance() (float64, bool) {
	mean, ok := a.Mean()
	if !ok {
		return 0, false
	}
	var ss float64
	for _, d := range a.distances() {
		dev := float64(d) - mean
		ss += float64(a.hist[d]) * dev * dev
	}
	return ss / float64(a.count), true
}

// StdDev returns the population standard deviation of the recorded distances.
func (a *Accumulator) StdDev() (float64, bool) {
	v, ok := a.Variance()
	if !ok {
		return 0, false
	}
	return math.Sqrt(v), true
}

// PercentageWithin returns the share of recorded pairs whose distance is
// at most threshold, as a percentage in [0, 100].
func (a *Accumulator) PercentageWithin(threshold int) (float64, bool) {
	if a.count == 0 {
		return 0, false
	}
	var within int64
	for d, c := range a.hist {
		if d <= threshold {
			within += c
		}
	}
	return float64(within) / float64(a.count) * 100, true
}

// Bucket is one histogram row.
type Bucket struct {
	Distance   int     `json:"distance"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Buckets returns one row per distance from 1 to Max, including distances
// no pair realized. Percentages are relative to Count.
func (a *Accumulator) Buckets() []Bucket {
	out := make([]Bucket, 0, a.max)
	for d := 1; d <= a.max; d++ {
		c := a.hist[d]
		out = append(out, Bucket{
			Distance:   d,
			Count:      c,
			Percentage: float64(c) / float64(a.count) * 100,
		})
	}
	return out
}

// distances returns the histogram keys in ascending order so that
// floating-point accumulation is deterministic.
func (a *Accumulator) distances() []int {
	return slices.Sorted(maps.Keys(a.hist))
}
