// File: internal/profile/record.go
package profile

import (
	"fmt"
	"regexp"
	"strings"
)

// Gender is the normalized categorical gender signal derived from page content.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Record is one extracted celebrity profile. The JSON field names match the
// persisted sample format, one record per line.
type Record struct {
	// Slug is the unique identifier within a sample, e.g. "barbara-palvin".
	Slug string `json:"slug"`
	// URL is the canonical profile URL the record was extracted from.
	URL  string `json:"url"`
	Name string `json:"name"`
	// Age is nil when the page carries no parseable age.
	Age    *int   `json:"age"`
	Gender Gender `json:"gender_inferred"`
	// Relationships holds partner slugs in discovery order. Always non-nil
	// once a record has passed through Normalize, so an empty list persists
	// as [] rather than null.
	Relationships []string `json:"partners"`
	// TotalRelated is the site's own "relationships" fact-box count, which
	// can exceed len(Relationships) when the history list is truncated.
	TotalRelated int `json:"relationships_total,omitempty"`
	// Facts carries the raw profile table (First Name, Birthday, ...).
	Facts map[string]string `json:"profile_table,omitempty"`
}

// Normalize fills defaults so records compare and persist predictably.
func (r *Record) Normalize() {
	if r.Gender == "" {
		r.Gender = GenderUnknown
	}
	if r.Relationships == nil {
		r.Relationships = []string{}
	}
}

// ParseError reports that a required field could not be located in fetched
// content. Optional fields (age, gender, relationships) never produce one.
type ParseError struct {
	Field string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: required field %q not found", e.Field)
}

var (
	femaleWords = regexp.MustCompile(`\b(she|her|woman|female)\b`)
	maleWords   = regexp.MustCompile(`\b(he|his|him|man|male)\b`)
)

// NormalizeGender maps free-form gender strings onto the three categories.
// Unrecognized or empty input is unknown, never an error.
func NormalizeGender(raw string) Gender {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "male", "m", "man":
		return GenderMale
	case "female", "f", "woman", "girl":
		return GenderFemale
	case "", "unknown", "n/a":
		return GenderUnknown
	}
	if femaleWords.MatchString(s) {
		return GenderFemale
	}
	if maleWords.MatchString(s) {
		return GenderMale
	}
	return GenderUnknown
}
