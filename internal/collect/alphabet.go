// File: internal/collect/alphabet.go
package collect

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dverbeek84/limelight-cli/internal/profile"
	"github.com/dverbeek84/limelight-cli/internal/sample"
)

// Alphabet enumerates the site's per-letter listings, collecting up to N
// records for each letter A through Z.
type Alphabet struct {
	src       Source
	perLetter int
	logger    *zap.Logger
}

// NewAlphabet builds an alphabet collector taking perLetter records per letter.
func NewAlphabet(src Source, perLetter int, logger *zap.Logger) *Alphabet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Alphabet{src: src, perLetter: perLetter, logger: logger.Named("alphabet")}
}

// Run walks the letters in order, preserving letter-then-listing order in the
// resulting sample. A letter whose listing cannot be fetched is skipped; a
// profile fetch failure stops that letter's enumeration early. Both leave a
// trace in the summary and the run continues with the remaining letters.
func (c *Alphabet) Run(ctx context.Context) (*sample.Sample, Summary, error) {
	start := time.Now()

	s := sample.New(fmt.Sprintf("alphabet_%d", c.perLetter), "alphabet")
	summary := Summary{Strategy: "alphabet", Requested: 26 * c.perLetter}

	for letter := 'a'; letter <= 'z'; letter++ {
		if err := ctx.Err(); err != nil {
			summary.Collected = s.Len()
			summary.Elapsed = time.Since(start)
			return s, summary, err
		}

		collected, err := c.collectLetter(ctx, letter, s, &summary)
		if err != nil {
			summary.Collected = s.Len()
			summary.Elapsed = time.Since(start)
			return s, summary, err
		}
		c.logger.Info("Finished letter",
			zap.String("letter", string(letter)),
			zap.Int("collected", collected),
			zap.Int("total", s.Len()),
		)
	}

	summary.Collected = s.Len()
	summary.Elapsed = time.Since(start)
	return s, summary, nil
}

// collectLetter gathers up to perLetter records for one letter. The returned
// error is non-nil only for context cancellation; remote failures are
// summarized and swallowed.
func (c *Alphabet) collectLetter(ctx context.Context, letter rune, s *sample.Sample, summary *Summary) (int, error) {
	slugs, err := c.src.Listing(ctx, letter)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, err
		}
		c.logger.Warn("Skipping letter, listing unavailable",
			zap.String("letter", string(letter)),
			zap.Error(err),
		)
		summary.skip(fmt.Sprintf("letter:%c", letter), err)
		return 0, nil
	}

	collected := 0
	for _, slug := range slugs {
		if collected >= c.perLetter {
			break
		}
		if err := ctx.Err(); err != nil {
			return collected, err
		}
		if s.Contains(slug) {
			continue
		}

		rec, err := c.src.Profile(ctx, slug)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return collected, err
			}
			summary.skip(slug, err)
			if isParseError(err) {
				// One unparseable page; the rest of the letter is still good.
				c.logger.Warn("Skipping unparseable profile", zap.String("slug", slug), zap.Error(err))
				continue
			}
			// Fetch retries are exhausted; stop this letter early rather
			// than hammering a struggling endpoint for the rest of it.
			c.logger.Warn("Stopping letter early after fetch failure",
				zap.String("letter", string(letter)),
				zap.String("slug", slug),
				zap.Error(err),
			)
			return collected, nil
		}

		// Defensive check: the listing occasionally leaks entries filed
		// under the wrong letter.
		if !nameStartsWith(rec.Name, letter) {
			c.logger.Debug("Listing entry does not match its letter",
				zap.String("letter", string(letter)),
				zap.String("name", rec.Name),
			)
			continue
		}

		s.Add(rec)
		collected++
	}
	return collected, nil
}

func nameStartsWith(name string, letter rune) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	return strings.EqualFold(trimmed[:1], string(letter))
}

func isParseError(err error) bool {
	var pe *profile.ParseError
	return errors.As(err, &pe)
}
