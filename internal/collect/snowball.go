// File: internal/collect/snowball.go
package collect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dverbeek84/limelight-cli/internal/profile"
	"github.com/dverbeek84/limelight-cli/internal/sample"
)

// Snowball performs breadth-first traversal over the relationship graph,
// seeded from one profile and expanding through discovered partner links
// until the target count is reached or the graph is exhausted.
type Snowball struct {
	src    Source
	target int
	logger *zap.Logger
}

// NewSnowball builds a snowball collector aiming for target unique records.
func NewSnowball(src Source, target int, logger *zap.Logger) *Snowball {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Snowball{src: src, target: target, logger: logger.Named("snowball")}
}

// Run traverses from seed. The frontier is FIFO so a given seed always
// reproduces the same visit order. A frontier that empties before the target
// is reached yields a smaller sample, not an error; records are added as
// they are extracted, so cancellation mid-run still leaves a usable sample.
func (c *Snowball) Run(ctx context.Context, seed string) (*sample.Sample, Summary, error) {
	start := time.Now()
	seed = profile.NormalizeSlug(seed)

	s := sample.New(fmt.Sprintf("%s_snowball", seed), "snowball")
	summary := Summary{Strategy: "snowball", Requested: c.target}

	frontier := []string{seed}
	enqueued := map[string]struct{}{seed: {}}
	visited := make(map[string]struct{})

	c.logger.Info("Starting snowball traversal",
		zap.String("seed", seed),
		zap.Int("target", c.target),
	)

	for len(frontier) > 0 && s.Len() < c.target {
		if err := ctx.Err(); err != nil {
			summary.Collected = s.Len()
			summary.Elapsed = time.Since(start)
			return s, summary, err
		}

		current := frontier[0]
		frontier = frontier[1:]

		if _, seen := visited[current]; seen {
			continue
		}
		visited[current] = struct{}{}

		rec, err := c.src.Profile(ctx, current)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				summary.Collected = s.Len()
				summary.Elapsed = time.Since(start)
				return s, summary, err
			}
			// Retries already happened inside the fetcher; this id is a loss,
			// the traversal is not.
			c.logger.Warn("Skipping profile", zap.String("slug", current), zap.Error(err))
			summary.skip(current, err)
			continue
		}

		s.Add(rec)
		for _, partner := range rec.Relationships {
			if _, seen := visited[partner]; seen {
				continue
			}
			if _, queued := enqueued[partner]; queued {
				continue
			}
			enqueued[partner] = struct{}{}
			frontier = append(frontier, partner)
		}

		c.logger.Info("Collected profile",
			zap.String("slug", current),
			zap.Int("partners", len(rec.Relationships)),
			zap.Int("collected", s.Len()),
			zap.Int("frontier", len(frontier)),
		)
	}

	if s.Len() < c.target {
		c.logger.Warn("Frontier exhausted before reaching target",
			zap.Int("collected", s.Len()),
			zap.Int("target", c.target),
		)
	}

	summary.Collected = s.Len()
	summary.Elapsed = time.Since(start)
	return s, summary, nil
}
