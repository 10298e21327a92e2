// File: internal/collect/types.go
package collect

import (
	"time"
)

// Skip records one id (or letter) the collector had to give up on.
type Skip struct {
	ID     string
	Reason string
}

// Summary is the outcome report of a collector run. A run that skipped ids
// still succeeded; the summary is how the operator finds out what was missed.
type Summary struct {
	Strategy  string
	Requested int
	Collected int
	Skipped   []Skip
	Elapsed   time.Duration
}

// skip appends a skipped id with its reason.
func (s *Summary) skip(id string, err error) {
	s.Skipped = append(s.Skipped, Skip{ID: id, Reason: err.Error()})
}
