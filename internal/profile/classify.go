// File: internal/profile/classify.go
package profile

import (
	"regexp"
	"strings"
)

// Classifier infers a gender category from a profile's about text. The
// heuristic is deliberately swappable: callers that have a better signal
// (an explicit field, an external service) plug in their own implementation.
type Classifier interface {
	Classify(about string) Gender
}

// PronounClassifier infers gender from pronouns in the about paragraph,
// falling back to occupation words. It mirrors what the site itself exposes:
// no explicit gender field, only prose.
type PronounClassifier struct{}

var (
	femalePronouns = regexp.MustCompile(`\b(she|her)\b`)
	malePronouns   = regexp.MustCompile(`\b(he|his)\b`)
	actressWord    = regexp.MustCompile(`\bactress\b`)
	actorWord      = regexp.MustCompile(`\bactor\b`)
)

// Classify returns the inferred gender, or GenderUnknown when the text
// carries no signal. Pronouns outrank occupation words.
func (PronounClassifier) Classify(about string) Gender {
	text := strings.ToLower(about)
	if text == "" {
		return GenderUnknown
	}
	if femalePronouns.MatchString(text) {
		return GenderFemale
	}
	if malePronouns.MatchString(text) {
		return GenderMale
	}
	if actressWord.MatchString(text) {
		return GenderFemale
	}
	if actorWord.MatchString(text) {
		return GenderMale
	}
	return GenderUnknown
}
