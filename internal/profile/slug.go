// File: internal/profile/slug.go
package profile

import (
	"net/url"
	"strings"
)

// SlugFromHref turns an anchor href into a slug candidate, e.g.
// "/dating/dylan-sprouse" -> "dylan-sprouse". Returns "" when the href
// yields nothing usable.
func SlugFromHref(href string) string {
	if href == "" {
		return ""
	}
	path := href
	if parsed, err := url.Parse(href); err == nil && parsed.Path != "" {
		path = parsed.Path
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return ""
	}
	parts := strings.Split(path, "/")
	if len(parts) >= 2 && strings.EqualFold(parts[0], "dating") {
		return parts[1]
	}
	return parts[len(parts)-1]
}

// IsIndividualSlug filters out couple pages and other non-person slugs that
// appear alongside individuals in dating-history lists.
func IsIndividualSlug(slug string) bool {
	if slug == "" {
		return false
	}
	s := strings.ToLower(slug)
	if strings.Contains(s, "-and-") {
		return false
	}
	if strings.HasPrefix(s, "and-") || strings.HasSuffix(s, "-and") {
		return false
	}
	if strings.Contains(s, "couple") {
		return false
	}
	return true
}

// NormalizeSlug canonicalizes user-supplied seed input ("Barbara Palvin" ->
// "barbara-palvin").
func NormalizeSlug(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(s, " ", "-")
}

// NameFromSlug derives a display name from a slug as a last resort when a
// page offers no usable heading.
func NameFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
