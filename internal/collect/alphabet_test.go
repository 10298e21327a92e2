// File: internal/collect/alphabet_test.go
package collect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dverbeek84/limelight-cli/internal/fetch"
	"github.com/dverbeek84/limelight-cli/internal/profile"
)

func TestAlphabetCollectsFirstNPerLetter(t *testing.T) {
	src := &mockSource{
		profiles: map[string]profile.Record{
			"alice-smith": rec("alice-smith", "Alice Smith", profile.GenderFemale),
			"aaron-jones": rec("aaron-jones", "Aaron Jones", profile.GenderMale),
			"amy-wong":    rec("amy-wong", "Amy Wong", profile.GenderFemale),
		},
		listings: map[rune][]string{
			'a': {"alice-smith", "aaron-jones", "amy-wong"},
		},
	}

	s, summary, err := NewAlphabet(src, 2, nil).Run(context.Background())
	require.NoError(t, err)

	// First two in listing order; amy-wong is never fetched.
	assert.Equal(t, []string{"alice-smith", "aaron-jones"}, s.Slugs())
	assert.Equal(t, []string{"alice-smith", "aaron-jones"}, src.profileCalls)
	assert.Equal(t, 2, summary.Collected)

	// Every letter's listing was consulted, in order.
	require.Len(t, src.listingCalls, 26)
	assert.Equal(t, 'a', src.listingCalls[0])
	assert.Equal(t, 'z', src.listingCalls[25])
}

func TestAlphabetPreservesLetterThenListingOrder(t *testing.T) {
	src := &mockSource{
		profiles: map[string]profile.Record{
			"adele":       rec("adele", "Adele", profile.GenderFemale),
			"bono":        rec("bono", "Bono", profile.GenderMale),
			"billie-jean": rec("billie-jean", "Billie Jean", profile.GenderFemale),
		},
		listings: map[rune][]string{
			'a': {"adele"},
			'b': {"bono", "billie-jean"},
		},
	}

	s, _, err := NewAlphabet(src, 5, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"adele", "bono", "billie-jean"}, s.Slugs())
}

func TestAlphabetDefensiveFirstLetterCheck(t *testing.T) {
	src := &mockSource{
		profiles: map[string]profile.Record{
			"alice-smith": rec("alice-smith", "Alice Smith", profile.GenderFemale),
			// Filed under 'a' by the site, but the name starts with Z.
			"zed-imposter": rec("zed-imposter", "Zed Imposter", profile.GenderMale),
			"amy-wong":     rec("amy-wong", "Amy Wong", profile.GenderFemale),
		},
		listings: map[rune][]string{
			'a': {"alice-smith", "zed-imposter", "amy-wong"},
		},
	}

	s, _, err := NewAlphabet(src, 2, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice-smith", "amy-wong"}, s.Slugs())
}

func TestAlphabetSkipsDuplicatesAcrossLetters(t *testing.T) {
	crossover := rec("ariana", "Ariana", profile.GenderFemale)
	src := &mockSource{
		profiles: map[string]profile.Record{
			"ariana": crossover,
			"bjork":  rec("bjork", "Bjork", profile.GenderFemale),
		},
		listings: map[rune][]string{
			'a': {"ariana"},
			'b': {"ariana", "bjork"}, // site served a duplicate under 'b'
		},
	}

	s, _, err := NewAlphabet(src, 3, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ariana", "bjork"}, s.Slugs())
	assert.Equal(t, []string{"ariana", "bjork"}, src.profileCalls, "duplicates are filtered before fetching")
}

func TestAlphabetLetterListingFailureContinuesRun(t *testing.T) {
	src := &mockSource{
		profiles: map[string]profile.Record{
			"bono": rec("bono", "Bono", profile.GenderMale),
		},
		listings: map[rune][]string{
			'b': {"bono"},
		},
		failures: map[string]error{
			"letter:a": &fetch.Error{Kind: fetch.KindStatus, URL: "popular-a", Status: 502},
		},
	}

	s, summary, err := NewAlphabet(src, 1, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bono"}, s.Slugs())
	require.Len(t, summary.Skipped, 1)
	assert.Equal(t, "letter:a", summary.Skipped[0].ID)
}

func TestAlphabetProfileFetchFailureStopsLetterEarly(t *testing.T) {
	src := &mockSource{
		profiles: map[string]profile.Record{
			"alice-smith": rec("alice-smith", "Alice Smith", profile.GenderFemale),
			"amy-wong":    rec("amy-wong", "Amy Wong", profile.GenderFemale),
			"bono":        rec("bono", "Bono", profile.GenderMale),
		},
		listings: map[rune][]string{
			'a': {"alice-smith", "broken", "amy-wong"},
			'b': {"bono"},
		},
		failures: map[string]error{
			"broken": &fetch.Error{Kind: fetch.KindNetwork, URL: "broken"},
		},
	}

	s, summary, err := NewAlphabet(src, 3, nil).Run(context.Background())
	require.NoError(t, err)

	// 'a' stops after the failure (amy-wong is abandoned); 'b' still runs.
	assert.Equal(t, []string{"alice-smith", "bono"}, s.Slugs())
	require.Len(t, summary.Skipped, 1)
	assert.Equal(t, "broken", summary.Skipped[0].ID)
}

func TestAlphabetParseErrorSkipsOnlyThatProfile(t *testing.T) {
	src := &mockSource{
		profiles: map[string]profile.Record{
			"alice-smith": rec("alice-smith", "Alice Smith", profile.GenderFemale),
			"amy-wong":    rec("amy-wong", "Amy Wong", profile.GenderFemale),
		},
		listings: map[rune][]string{
			'a': {"alice-smith", "mangled", "amy-wong"},
		},
		failures: map[string]error{
			"mangled": &profile.ParseError{Field: "name"},
		},
	}

	s, summary, err := NewAlphabet(src, 3, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice-smith", "amy-wong"}, s.Slugs())
	assert.Len(t, summary.Skipped, 1)
}

func TestAlphabetNeverExceedsPerLetterCap(t *testing.T) {
	listings := map[rune][]string{}
	profiles := map[string]profile.Record{}
	for _, slug := range []string{"a1", "a2", "a3", "a4"} {
		profiles[slug] = rec(slug, "A "+slug, profile.GenderUnknown)
	}
	listings['a'] = []string{"a1", "a2", "a3", "a4"}
	src := &mockSource{profiles: profiles, listings: listings}

	s, _, err := NewAlphabet(src, 2, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestAlphabetStopsOnCancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &mockSource{}
	_, _, err := NewAlphabet(src, 2, nil).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
