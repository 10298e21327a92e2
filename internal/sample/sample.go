// File: internal/sample/sample.go

// Package sample holds collected profile records for one strategy run and
// persists them as JSON Lines, one record per line.
package sample

import (
	"time"

	"github.com/google/uuid"

	"github.com/dverbeek84/limelight-cli/internal/profile"
)

// Meta describes the run that produced a sample. It travels in logs and
// summaries, not in the persisted record file, which stays a plain JSONL
// stream of records.
type Meta struct {
	Name      string
	Strategy  string
	RunID     string
	CreatedAt time.Time
}

// Sample is a named, insertion-ordered collection of unique records.
// Collectors append to it while running; once persisted it is never
// mutated again.
type Sample struct {
	Meta Meta

	order   []string
	records map[string]profile.Record
}

// New creates an empty sample for the given strategy run.
func New(name, strategy string) *Sample {
	return &Sample{
		Meta: Meta{
			Name:      name,
			Strategy:  strategy,
			RunID:     uuid.New().String(),
			CreatedAt: time.Now().UTC(),
		},
		records: make(map[string]profile.Record),
	}
}

// Add appends rec unless its slug is already present. Returns true when the
// record was added.
func (s *Sample) Add(rec profile.Record) bool {
	if _, exists := s.records[rec.Slug]; exists {
		return false
	}
	rec.Normalize()
	s.records[rec.Slug] = rec
	s.order = append(s.order, rec.Slug)
	return true
}

// Contains reports whether a record with the given slug has been collected.
func (s *Sample) Contains(slug string) bool {
	_, ok := s.records[slug]
	return ok
}

// Get returns the record for slug.
func (s *Sample) Get(slug string) (profile.Record, bool) {
	rec, ok := s.records[slug]
	return rec, ok
}

// Len returns the number of collected records.
func (s *Sample) Len() int { return len(s.order) }

// Records returns all records in insertion order.
func (s *Sample) Records() []profile.Record {
	out := make([]profile.Record, 0, len(s.order))
	for _, slug := range s.order {
		out = append(out, s.records[slug])
	}
	return out
}

// Slugs returns the collected slugs in insertion order.
func (s *Sample) Slugs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
