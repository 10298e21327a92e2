// File: internal/report/stats.go

// Package report computes descriptive statistics over collected samples and
// renders the two-sample comparison.
package report

import (
	"math"
	"sort"

	"github.com/dverbeek84/limelight-cli/internal/profile"
	"github.com/dverbeek84/limelight-cli/internal/sample"
)

// AgeStats summarizes the ages of the records that carry one.
type AgeStats struct {
	Count  int
	Mean   float64
	Median float64
	// Stdev is the sample standard deviation (n-1 denominator). It is only
	// defined for two or more values; HasStdev says whether it is.
	Stdev    float64
	HasStdev bool
	Min      int
	Max      int
}

// Stats holds the descriptive statistics of one sample.
type Stats struct {
	Label  string
	Total  int
	Gender map[profile.Gender]int
	// Age is nil when no record in the sample had a parseable age.
	Age *AgeStats
}

// GenderCategories is the fixed rendering order for gender tables.
var GenderCategories = []profile.Gender{profile.GenderMale, profile.GenderFemale, profile.GenderUnknown}

// GenderPercent returns the share of a category in percent. Zero when the
// sample is empty.
func (s Stats) GenderPercent(g profile.Gender) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Gender[g]) / float64(s.Total) * 100
}

// Analyze computes gender and age statistics for a sample. The input is not
// mutated. Gender values outside the known categories count as unknown; ages
// below zero are treated as absent.
func Analyze(label string, s *sample.Sample) Stats {
	stats := Stats{
		Label:  label,
		Total:  s.Len(),
		Gender: make(map[profile.Gender]int),
	}

	var ages []int
	for _, rec := range s.Records() {
		stats.Gender[profile.NormalizeGender(string(rec.Gender))]++
		if rec.Age != nil && *rec.Age >= 0 {
			ages = append(ages, *rec.Age)
		}
	}

	if len(ages) > 0 {
		stats.Age = analyzeAges(ages)
	}
	return stats
}

func analyzeAges(ages []int) *AgeStats {
	sorted := make([]int, len(ages))
	copy(sorted, ages)
	sort.Ints(sorted)

	n := len(sorted)
	st := &AgeStats{
		Count: n,
		Min:   sorted[0],
		Max:   sorted[n-1],
	}

	sum := 0
	for _, a := range sorted {
		sum += a
	}
	st.Mean = float64(sum) / float64(n)

	if n%2 == 1 {
		st.Median = float64(sorted[n/2])
	} else {
		st.Median = float64(sorted[n/2-1]+sorted[n/2]) / 2
	}

	if n >= 2 {
		var ss float64
		for _, a := range sorted {
			d := float64(a) - st.Mean
			ss += d * d
		}
		st.Stdev = math.Sqrt(ss / float64(n-1))
		st.HasStdev = true
	}
	return st
}
