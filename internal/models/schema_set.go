package models

import "sort"

// SchemaSet holds the structured-data instances extracted from one page.
// Instances keep document order; ByType buckets them under their type key
// with first-seen order preserved inside each bucket.
type SchemaSet struct {
	SourceURL string             `json:"source_url"`
	Instances []Value            `json:"instances"`
	ByType    map[string][]Value `json:"by_type"`
}

// Count returns the number of extracted instances.
func (s *SchemaSet) Count() int {
	return len(s.Instances)
}

// TypeKeys returns the set's type keys in sorted order.
func (s *SchemaSet) TypeKeys() []string {
	keys := make([]string, 0, len(s.ByType))
	for k := range s.ByType {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
