// File: internal/profile/extract.go
package profile

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Extractor parses fetched profile pages into Records. Only the name is
// required; everything else degrades to its zero/unknown default when the
// markup is missing or mangled.
type Extractor struct {
	classifier Classifier
	logger     *zap.Logger
}

// NewExtractor builds an Extractor. A nil classifier falls back to the
// pronoun heuristic.
func NewExtractor(classifier Classifier, logger *zap.Logger) *Extractor {
	if classifier == nil {
		classifier = PronounClassifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{classifier: classifier, logger: logger.Named("extract")}
}

var (
	firstInt    = regexp.MustCompile(`(\d+)`)
	titleSuffix = regexp.MustCompile(`(?i)\s*-\s*who'?s dated who.*$`)
)

// Extract parses raw page content into a Record. pageURL is the URL the
// content was fetched from; it seeds the slug and survives into the record.
// Returns *ParseError when no name can be located anywhere on the page.
func (e *Extractor) Extract(raw []byte, pageURL string) (Record, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		// html.Parse almost never fails on real-world input; treat a failure
		// like a page we cannot name.
		return Record{}, &ParseError{Field: "name"}
	}

	slug := SlugFromHref(pageURL)
	rec := Record{
		Slug: slug,
		URL:  pageURL,
	}

	rec.Name = extractName(doc, slug)
	if rec.Name == "" {
		return Record{}, &ParseError{Field: "name"}
	}

	if age, ok := factBoxInt(doc, "age"); ok {
		rec.Age = &age
	}
	if total, ok := factBoxInt(doc, "relationships"); ok {
		rec.TotalRelated = total
	}

	rec.Gender = e.classifier.Classify(aboutText(doc))
	rec.Relationships = extractPartners(doc)
	rec.Facts = extractProfileTable(doc)
	rec.Normalize()

	return rec, nil
}

// ExtractListing pulls individual profile slugs out of a per-letter listing
// page, preserving the order the site returned. Couple pages are dropped,
// duplicates within the page collapse to their first occurrence.
func (e *Extractor) ExtractListing(raw []byte) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Field: "listing"}
	}

	container := findFirst(doc, func(n *html.Node) bool {
		return hasClass(n, "ff-box-grid") || hasClass(n, "ff-grid-box") || hasClass(n, "ff-list")
	})
	if container == nil {
		// Degraded markup: scan the whole page rather than giving up.
		container = doc
	}

	seen := make(map[string]struct{})
	var slugs []string
	walk(container, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "a" {
			return true
		}
		slug := SlugFromHref(attrVal(n, "href"))
		if slug == "" || !IsIndividualSlug(slug) {
			return true
		}
		if _, dup := seen[slug]; dup {
			return true
		}
		seen[slug] = struct{}{}
		slugs = append(slugs, slug)
		return true
	})
	return slugs, nil
}

// -- Field extraction helpers --

func extractName(doc *html.Node, slug string) string {
	if h1 := findFirst(doc, isElement("h1")); h1 != nil {
		if name := textContent(h1); name != "" {
			return name
		}
	}
	if title := findFirst(doc, isElement("title")); title != nil {
		name := strings.TrimSpace(titleSuffix.ReplaceAllString(textContent(title), ""))
		if name != "" {
			return name
		}
	}
	if heading := findFirst(doc, func(n *html.Node) bool { return hasClass(n, "ff-title") }); heading != nil {
		if name := textContent(heading); name != "" {
			return name
		}
	}
	if slug != "" {
		return NameFromSlug(slug)
	}
	return ""
}

// factBoxInt reads the numeric value of a small fact box, e.g. the "age" or
// "relationships" box in the profile sidebar.
func factBoxInt(doc *html.Node, kind string) (int, bool) {
	box := findFirst(doc, func(n *html.Node) bool {
		return hasClass(n, "ff-fact-box") && hasClass(n, "small") && hasClass(n, kind)
	})
	if box == nil {
		return 0, false
	}
	fact := findFirst(box, func(n *html.Node) bool { return hasClass(n, "fact") })
	if fact == nil {
		return 0, false
	}
	m := firstInt.FindString(textContent(fact))
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func aboutText(doc *html.Node) string {
	p := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "p" && hasClass(n, "ff-auto-about")
	})
	if p == nil {
		return ""
	}
	return textContent(p)
}

// extractPartners walks the dating-history container and returns the linked
// partner slugs in discovery order, couple pages filtered, de-duplicated.
func extractPartners(doc *html.Node) []string {
	container := findFirst(doc, func(n *html.Node) bool {
		id := attrVal(n, "id")
		if id == "ff-dating-history" || id == "ff-dating-history-grid" {
			return true
		}
		return classContains(n, "ff-dating-history", "dating-history")
	})

	partners := []string{}
	if container == nil {
		return partners
	}

	seen := make(map[string]struct{})
	walk(container, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "a" {
			return true
		}
		slug := SlugFromHref(strings.TrimSpace(attrVal(n, "href")))
		if slug == "" || !IsIndividualSlug(slug) {
			return true
		}
		if _, dup := seen[slug]; dup {
			return true
		}
		seen[slug] = struct{}{}
		partners = append(partners, slug)
		return true
	})
	return partners
}

// extractProfileTable locates the table holding "First Name" and flattens its
// rows into key/value pairs.
func extractProfileTable(doc *html.Node) map[string]string {
	table := findFirst(doc, func(n *html.Node) bool {
		if !isElement("table")(n) {
			return false
		}
		return strings.Contains(strings.ToLower(textContent(n)), "first name")
	})
	if table == nil {
		return nil
	}

	facts := make(map[string]string)
	walk(table, func(n *html.Node) bool {
		if !isElement("tr")(n) {
			return true
		}
		var cells []*html.Node
		walk(n, func(c *html.Node) bool {
			if isElement("td")(c) || isElement("th")(c) {
				cells = append(cells, c)
				return false // cells do not nest here
			}
			return true
		})
		if len(cells) >= 2 {
			key := textContent(cells[0])
			if key != "" {
				facts[key] = textContent(cells[1])
			}
		}
		return false
	})
	if len(facts) == 0 {
		return nil
	}
	return facts
}

// -- Node tree helpers --

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func classContains(n *html.Node, substrs ...string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	class := attrVal(n, "class")
	for _, s := range substrs {
		if strings.Contains(class, s) {
			return true
		}
	}
	return false
}

// walk visits n and its descendants depth-first. The visitor returns false
// to skip a node's children.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// findFirst returns the first node (document order) matching the predicate.
func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	var search func(*html.Node)
	search = func(n *html.Node) {
		if found != nil {
			return
		}
		if match(n) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			search(c)
		}
	}
	search(root)
	return found
}

// textContent returns the node's visible text with whitespace collapsed.
func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteString(" ")
		}
		return true
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
