package extractor

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"pagediff/internal/common"
	"pagediff/internal/models"
)

// schemaScriptSelector matches the script blocks carrying structured data.
const schemaScriptSelector = `script[type="application/ld+json"]`

// unknownTypeKey groups instances whose type cannot be determined.
const unknownTypeKey = "unknown"

// SchemaExtractor pulls structured-data instances out of parsed HTML
// documents and groups them by type key.
type SchemaExtractor struct {
	logger zerolog.Logger
}

// NewSchemaExtractor creates a new SchemaExtractor.
func NewSchemaExtractor(logger zerolog.Logger) *SchemaExtractor {
	return &SchemaExtractor{
		logger: logger.With().Str("component", "SchemaExtractor").Logger(),
	}
}

// ExtractFromHTML parses raw HTML and collects its structured-data
// instances into a SchemaSet.
func (se *SchemaExtractor) ExtractFromHTML(body []byte, sourceURL string) (*models.SchemaSet, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to parse HTML from %s", sourceURL)
	}
	return se.Extract(doc, sourceURL), nil
}

// Extract collects every structured-data instance of doc into a
// SchemaSet. A top-level array block is flattened one level into
// individual instances. A block that fails to parse is logged and
// skipped; extraction never aborts the document.
func (se *SchemaExtractor) Extract(doc *goquery.Document, sourceURL string) *models.SchemaSet {
	set := &models.SchemaSet{
		SourceURL: sourceURL,
		ByType:    make(map[string][]models.Value),
	}

	collector := &common.ErrorCollector{}
	doc.Find(schemaScriptSelector).Each(func(blockIndex int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}

		value, err := models.ParseValue([]byte(raw))
		if err != nil {
			se.logger.Warn().
				Err(err).
				Int("block_index", blockIndex).
				Str("source_url", sourceURL).
				Msg("Skipping malformed structured data block")
			collector.AddWithContext(err, "block "+strconv.Itoa(blockIndex))
			return
		}

		for _, instance := range flattenBlock(value) {
			set.Instances = append(set.Instances, instance)
			key := TypeKey(instance)
			set.ByType[key] = append(set.ByType[key], instance)
		}
	})

	if collector.HasErrors() {
		se.logger.Warn().
			Int("skipped_blocks", len(collector.Errors())).
			Str("source_url", sourceURL).
			Msg("Some structured data blocks could not be parsed")
	}

	return set
}

// flattenBlock expands a top-level array block into its elements. Arrays
// nested deeper than one level stay intact.
func flattenBlock(v models.Value) []models.Value {
	if arr, ok := v.(models.Array); ok {
		return arr
	}
	return []models.Value{v}
}

// TypeKey derives the grouping key of an instance from its @type member.
// A string type is used as is. An array type is rendered member by
// member, sorted, and joined with ", ", so multi-type instances group
// under one order-independent key. Anything else keys as "unknown".
func TypeKey(v models.Value) string {
	obj, ok := v.(models.Object)
	if !ok {
		return unknownTypeKey
	}
	for _, m := range obj {
		if m.Key == "@type" {
			return typeKeyFromValue(m.Value)
		}
	}
	return unknownTypeKey
}

func typeKeyFromValue(v models.Value) string {
	switch t := v.(type) {
	case models.String:
		return string(t)
	case models.Array:
		if len(t) == 0 {
			return unknownTypeKey
		}
		names := make([]string, len(t))
		for i, el := range t {
			if s, ok := el.(models.String); ok {
				names[i] = string(s)
			} else {
				names[i] = models.EncodeValue(el)
			}
		}
		sort.Strings(names)
		return strings.Join(names, ", ")
	default:
		return unknownTypeKey
	}
}
