package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PathStep is one segment of a Path, either an object key or an array index.
type PathStep struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path locates a value inside a schema document, starting from the root.
type Path []PathStep

// WithKey returns a copy of p extended by an object key step.
func (p Path) WithKey(key string) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, PathStep{Key: key})
}

// WithIndex returns a copy of p extended by an array index step.
func (p Path) WithIndex(i int) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, PathStep{Index: i, IsIndex: true})
}

// String renders the path in dotted form with zero-based bracketed
// indices, such as "offers[0].price". The root renders as an empty string.
func (p Path) String() string {
	var sb strings.Builder
	for _, step := range p {
		if step.IsIndex {
			fmt.Fprintf(&sb, "[%d]", step.Index)
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(step.Key)
	}
	return sb.String()
}

// MarshalJSON encodes the path as its rendered string form.
func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// DiffKind classifies a single structural difference.
type DiffKind int

const (
	// DiffAdded marks a value present only in the new document.
	DiffAdded DiffKind = iota
	// DiffRemoved marks a value present only in the old document.
	DiffRemoved
	// DiffEdited marks a value whose content changed in place.
	DiffEdited
	// DiffArrayChange marks a change to a single element of an array.
	DiffArrayChange
)

// String returns the lowercase kind name used in reports.
func (k DiffKind) String() string {
	switch k {
	case DiffAdded:
		return "added"
	case DiffRemoved:
		return "removed"
	case DiffEdited:
		return "edited"
	case DiffArrayChange:
		return "array_change"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind by name.
func (k DiffKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// DiffEntry records one structural difference between two schema values.
// Added entries carry NewValue, Removed entries carry OldValue, Edited
// entries carry both. ArrayChange entries wrap the element-level
// difference in Item and hold the element position in Index.
type DiffEntry struct {
	Kind     DiffKind   `json:"kind"`
	Path     Path       `json:"path"`
	OldValue Value      `json:"old_value,omitempty"`
	NewValue Value      `json:"new_value,omitempty"`
	Index    int        `json:"index"`
	Item     *DiffEntry `json:"item,omitempty"`
}

// TypeComparison holds the diff outcome for one schema type key.
type TypeComparison struct {
	TypeKey   string      `json:"type_key"`
	OldCount  int         `json:"old_count"`
	NewCount  int         `json:"new_count"`
	Identical bool        `json:"identical"`
	Entries   []DiffEntry `json:"entries,omitempty"`
}

// ComparisonReport aggregates the schema comparison of two pages.
type ComparisonReport struct {
	OldURL            string           `json:"old_url"`
	NewURL            string           `json:"new_url"`
	OldTotal          int              `json:"old_total"`
	NewTotal          int              `json:"new_total"`
	Comparisons       []TypeComparison `json:"comparisons"`
	AllTypesIdentical bool             `json:"all_types_identical"`
	GeneratedAt       time.Time        `json:"generated_at"`
}
