package stats

// Summary is a snapshot of the derived statistics. Pointer fields are nil
// when undefined, which happens exactly when Pairs is zero.
type Summary struct {
	Pairs            int64    `json:"pairs"`
	MaxDistance      int      `json:"max_distance"`
	Mean             *float64 `json:"mean"`
	StdDev           *float64 `json:"std_dev"`
	Threshold        int      `json:"threshold"`
	PercentageWithin *float64 `json:"percentage_within"`
	Histogram        []Bucket `json:"histogram"`
}

// Summarize computes every derived statistic once. The threshold is used
// as given; callers resolve their own default.
func (a *Accumulator) Summarize(threshold int) Summary {
	s := Summary{
		Pairs:       a.count,
		MaxDistance: a.max,
		Threshold:   threshold,
		Histogram:   a.Buckets(),
	}
	s.Mean = optional(a.Mean())
	s.StdDev = optional(a.StdDev())
	s.PercentageWithin = optional(a.PercentageWithin(threshold))
	return s
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
