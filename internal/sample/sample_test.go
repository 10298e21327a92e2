// File: internal/sample/sample_test.go
package sample

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dverbeek84/limelight-cli/internal/profile"
)

func intPtr(v int) *int { return &v }

func testRecords() []profile.Record {
	return []profile.Record{
		{
			Slug:          "barbara-palvin",
			URL:           "https://www.whosdatedwho.com/dating/barbara-palvin",
			Name:          "Barbara Palvin",
			Age:           intPtr(31),
			Gender:        profile.GenderFemale,
			Relationships: []string{"dylan-sprouse", "niall-horan"},
			TotalRelated:  6,
			Facts:         map[string]string{"First Name": "Barbara"},
		},
		{
			Slug:          "dylan-sprouse",
			URL:           "https://www.whosdatedwho.com/dating/dylan-sprouse",
			Name:          "Dylan Sprouse",
			Gender:        profile.GenderMale,
			Relationships: []string{},
		},
		{
			Slug:          "mystery-person",
			URL:           "https://www.whosdatedwho.com/dating/mystery-person",
			Name:          "Mystery Person",
			Gender:        profile.GenderUnknown,
			Relationships: []string{},
		},
	}
}

func TestAddDeduplicatesAndKeepsOrder(t *testing.T) {
	s := New("test", "snowball")

	for _, rec := range testRecords() {
		assert.True(t, s.Add(rec))
	}
	assert.False(t, s.Add(profile.Record{Slug: "barbara-palvin", Name: "Impostor"}))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"barbara-palvin", "dylan-sprouse", "mystery-person"}, s.Slugs())

	first, ok := s.Get("barbara-palvin")
	require.True(t, ok)
	assert.Equal(t, "Barbara Palvin", first.Name, "the first record for a slug must win")
}

func TestRoundTrip(t *testing.T) {
	s := New("roundtrip", "snowball")
	for _, rec := range testRecords() {
		s.Add(rec)
	}

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))

	loaded, err := Read(&buf, "roundtrip", zap.NewNop())
	require.NoError(t, err)

	if diff := cmp.Diff(s.Records(), loaded.Records()); diff != "" {
		t.Fatalf("records changed across write/read (-want +got):\n%s", diff)
	}
}

func TestWriteEmptyRelationshipsAsEmptyArray(t *testing.T) {
	s := New("t", "snowball")
	// No explicit Relationships; Add normalizes nil to [].
	s.Add(profile.Record{Slug: "solo-act", Name: "Solo Act"})

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, `"partners":[]`)
	assert.NotContains(t, line, `"partners":null`)
}

func TestReadSkipsMalformedLines(t *testing.T) {
	input := `{"slug":"good-one","name":"Good One","gender_inferred":"male","partners":[]}
this line is not json
{"slug":"another-good","name":"Another Good","gender_inferred":"female","partners":[]}
`
	s, err := Read(strings.NewReader(input), "t", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"good-one", "another-good"}, s.Slugs())
}

func TestWriteFileReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "snowball.jsonl")

	s := New("snowball", "snowball")
	for _, rec := range testRecords() {
		s.Add(rec)
	}
	require.NoError(t, s.WriteFile(path))

	loaded, err := ReadFile(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "snowball", loaded.Meta.Name)

	if diff := cmp.Diff(s.Records(), loaded.Records()); diff != "" {
		t.Fatalf("records changed across file round-trip (-want +got):\n%s", diff)
	}
}
