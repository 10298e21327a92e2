// File: internal/collect/source.go

// Package collect implements the two sampling strategies: snowball traversal
// over the relationship graph and stratified A-Z enumeration.
package collect

import (
	"context"
	"fmt"

	"github.com/dverbeek84/limelight-cli/internal/config"
	"github.com/dverbeek84/limelight-cli/internal/fetch"
	"github.com/dverbeek84/limelight-cli/internal/profile"
)

// Source provides profile records and per-letter listings. Collectors depend
// on this interface, not on the fetcher and extractor directly, so traversal
// logic is testable without HTML or a network.
type Source interface {
	// Profile fetches and extracts the record for a slug.
	Profile(ctx context.Context, slug string) (profile.Record, error)
	// Listing returns the profile slugs on the listing page for a letter,
	// in the order the site presented them.
	Listing(ctx context.Context, letter rune) ([]string, error)
}

// SiteSource is the production Source: fetcher for transport and caching,
// extractor for parsing, site config for URL construction.
type SiteSource struct {
	site      config.SiteConfig
	fetcher   *fetch.Fetcher
	extractor *profile.Extractor
}

// NewSiteSource wires a Source against the live site.
func NewSiteSource(site config.SiteConfig, fetcher *fetch.Fetcher, extractor *profile.Extractor) *SiteSource {
	return &SiteSource{site: site, fetcher: fetcher, extractor: extractor}
}

// Profile implements Source. Profile and listing cache keys carry distinct
// prefixes so a slug can never alias a listing entry.
func (s *SiteSource) Profile(ctx context.Context, slug string) (profile.Record, error) {
	url := s.site.ProfileURL(slug)
	body, err := s.fetcher.Fetch(ctx, "profile:"+slug, url)
	if err != nil {
		return profile.Record{}, err
	}
	rec, err := s.extractor.Extract(body, url)
	if err != nil {
		return profile.Record{}, err
	}
	// The page may know itself under a canonical slug; the traversal key is
	// the slug we were asked for.
	rec.Slug = slug
	return rec, nil
}

// Listing implements Source.
func (s *SiteSource) Listing(ctx context.Context, letter rune) ([]string, error) {
	key := fmt.Sprintf("listing:%c", letter)
	body, err := s.fetcher.Fetch(ctx, key, s.site.PopularURL(letter))
	if err != nil {
		return nil, err
	}
	return s.extractor.ExtractListing(body)
}
