// Package comparer aggregates per-type structural diffs of two schema
// sets into a comparison report.
package comparer

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"pagediff/internal/differ"
	"pagediff/internal/models"
	"pagediff/internal/normalizer"
)

// SchemaComparer compares the structured data of two pages type by type.
type SchemaComparer struct {
	differ *differ.SchemaDiffer
	logger zerolog.Logger
}

// NewSchemaComparer creates a new SchemaComparer.
func NewSchemaComparer(logger zerolog.Logger) *SchemaComparer {
	return &SchemaComparer{
		differ: differ.NewSchemaDiffer(),
		logger: logger.With().Str("component", "SchemaComparer").Logger(),
	}
}

// Compare diffs the type buckets of two schema sets. Each bucket is
// canonicalized and sorted before diffing, so neither member order nor
// instance order within a page produces differences. Type keys are
// processed in sorted order; a type missing on one side diffs against an
// empty bucket.
func (sc *SchemaComparer) Compare(oldSet, newSet *models.SchemaSet) *models.ComparisonReport {
	report := &models.ComparisonReport{
		OldURL:      oldSet.SourceURL,
		NewURL:      newSet.SourceURL,
		OldTotal:    oldSet.Count(),
		NewTotal:    newSet.Count(),
		GeneratedAt: time.Now(),
	}

	allIdentical := true
	for _, key := range unionTypeKeys(oldSet, newSet) {
		oldInstances := oldSet.ByType[key]
		newInstances := newSet.ByType[key]

		oldBucket := normalizer.CanonicalizeInstances(oldInstances)
		newBucket := normalizer.CanonicalizeInstances(newInstances)

		entries := sc.diffBuckets(oldBucket, newBucket)
		comparison := models.TypeComparison{
			TypeKey:   key,
			OldCount:  len(oldInstances),
			NewCount:  len(newInstances),
			Identical: len(entries) == 0,
			Entries:   entries,
		}
		if !comparison.Identical {
			allIdentical = false
		}

		sc.logger.Debug().
			Str("type_key", key).
			Int("old_count", comparison.OldCount).
			Int("new_count", comparison.NewCount).
			Int("differences", len(entries)).
			Msg("Compared schema type")

		report.Comparisons = append(report.Comparisons, comparison)
	}

	report.AllTypesIdentical = allIdentical
	return report
}

// diffBuckets pairs the sorted instances of one type positionally.
// Matched pairs diff with instance-rooted paths; an instance without a
// counterpart surfaces whole as added or removed at its bucket position.
func (sc *SchemaComparer) diffBuckets(oldBucket, newBucket models.Array) []models.DiffEntry {
	longest := len(oldBucket)
	if len(newBucket) > longest {
		longest = len(newBucket)
	}

	var entries []models.DiffEntry
	for i := 0; i < longest; i++ {
		switch {
		case i >= len(oldBucket):
			entries = append(entries, models.DiffEntry{
				Kind:     models.DiffAdded,
				Path:     models.Path{},
				Index:    i,
				NewValue: newBucket[i],
			})
		case i >= len(newBucket):
			entries = append(entries, models.DiffEntry{
				Kind:     models.DiffRemoved,
				Path:     models.Path{},
				Index:    i,
				OldValue: oldBucket[i],
			})
		default:
			entries = append(entries, sc.differ.Diff(oldBucket[i], newBucket[i])...)
		}
	}
	return entries
}

// unionTypeKeys returns the sorted union of both sets' type keys.
func unionTypeKeys(oldSet, newSet *models.SchemaSet) []string {
	seen := make(map[string]struct{})
	for key := range oldSet.ByType {
		seen[key] = struct{}{}
	}
	for key := range newSet.ByType {
		seen[key] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
