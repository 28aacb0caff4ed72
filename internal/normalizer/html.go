package normalizer

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/yosssi/gohtml"

	"pagediff/internal/common"
)

// structuredDataType is the script MIME type preserved during stripping.
const structuredDataType = "application/ld+json"

// strippedAttributes are removed from every element, along with any
// attribute whose name starts with "data-".
var strippedAttributes = []string{"class", "style", "srcset", "imagesrcset", "onclick"}

var (
	commentPattern   = regexp.MustCompile(`(?s)<!--.*?-->`)
	blankLinePattern = regexp.MustCompile(`(?m)^\s*\n`)
)

// HTMLNormalizer reduces a raw HTML document to its canonical form:
// presentation noise is stripped and the remaining markup pretty-printed
// deterministically, so two fetches of equivalent pages serialize to the
// same string.
type HTMLNormalizer struct {
	logger zerolog.Logger
}

// NewHTMLNormalizer creates a new HTMLNormalizer.
func NewHTMLNormalizer(logger zerolog.Logger) *HTMLNormalizer {
	return &HTMLNormalizer{
		logger: logger.With().Str("component", "HTMLNormalizer").Logger(),
	}
}

// Canonicalize strips comments, styling attributes, non-structured-data
// scripts, styles, non-canonical links, templates, and SVG internals from
// raw HTML, then formats the result. Output is deterministic for
// identical input.
func (hn *HTMLNormalizer) Canonicalize(raw string) (string, error) {
	cleaned := commentPattern.ReplaceAllString(raw, "")
	cleaned = blankLinePattern.ReplaceAllString(cleaned, "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleaned))
	if err != nil {
		return "", common.WrapError(err, "failed to parse HTML document")
	}

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		stripAttributes(sel)
	})

	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if sel.AttrOr("type", "") != structuredDataType {
			sel.Remove()
		}
	})

	doc.Find("style").Remove()

	doc.Find("link").Each(func(_ int, sel *goquery.Selection) {
		if sel.AttrOr("rel", "") != "canonical" {
			sel.Remove()
		}
	})

	doc.Find("template").Remove()

	doc.Find("svg").Each(func(_ int, sel *goquery.Selection) {
		sel.Empty()
		for _, node := range sel.Nodes {
			node.Attr = nil
		}
	})

	rendered, err := doc.Html()
	if err != nil {
		return "", common.WrapError(err, "failed to render canonicalized HTML")
	}

	hn.logger.Debug().
		Int("raw_bytes", len(raw)).
		Int("canonical_bytes", len(rendered)).
		Msg("Canonicalized HTML document")

	return gohtml.Format(rendered), nil
}

// FormatMarkup runs the pretty-printer over already-clean markup.
// Callers apply it as a final pass so line wrapping is normalized
// independently of canonicalization.
func FormatMarkup(markup string) string {
	return gohtml.Format(markup)
}

// stripAttributes drops the fixed attribute set and every data-*
// attribute from one element.
func stripAttributes(sel *goquery.Selection) {
	for _, name := range strippedAttributes {
		sel.RemoveAttr(name)
	}

	if len(sel.Nodes) == 0 {
		return
	}
	var dataAttrs []string
	for _, attr := range sel.Nodes[0].Attr {
		if strings.HasPrefix(attr.Key, "data-") {
			dataAttrs = append(dataAttrs, attr.Key)
		}
	}
	for _, name := range dataAttrs {
		sel.RemoveAttr(name)
	}
}
