package differ

import (
	"pagediff/internal/models"
)

// SchemaDiffer computes structural differences between two schema values.
// Diffing is pure and deterministic; callers canonicalize both sides
// first when member and element order should not matter.
type SchemaDiffer struct{}

// NewSchemaDiffer creates a new schema differ.
func NewSchemaDiffer() *SchemaDiffer {
	return &SchemaDiffer{}
}

// Diff returns every structural difference between oldValue and newValue.
// An empty result means the two values are deeply equal.
func (sd *SchemaDiffer) Diff(oldValue, newValue models.Value) []models.DiffEntry {
	return sd.diffValues(models.Path{}, oldValue, newValue)
}

func (sd *SchemaDiffer) diffValues(path models.Path, oldValue, newValue models.Value) []models.DiffEntry {
	if models.EqualValues(oldValue, newValue) {
		return nil
	}

	if oldObj, ok := oldValue.(models.Object); ok {
		if newObj, ok := newValue.(models.Object); ok {
			return sd.diffObjects(path, oldObj, newObj)
		}
	}
	if oldArr, ok := oldValue.(models.Array); ok {
		if newArr, ok := newValue.(models.Array); ok {
			return sd.diffArrays(path, oldArr, newArr)
		}
	}

	return []models.DiffEntry{{
		Kind:     models.DiffEdited,
		Path:     path,
		OldValue: oldValue,
		NewValue: newValue,
	}}
}

// diffObjects walks the old members for removals and in-place edits, then
// the new members for additions, so entry order follows the member order
// of the inputs.
func (sd *SchemaDiffer) diffObjects(path models.Path, oldObj, newObj models.Object) []models.DiffEntry {
	newByKey := make(map[string]models.Value, len(newObj))
	for _, m := range newObj {
		newByKey[m.Key] = m.Value
	}

	oldKeys := make(map[string]struct{}, len(oldObj))
	var entries []models.DiffEntry

	for _, m := range oldObj {
		oldKeys[m.Key] = struct{}{}
		newVal, present := newByKey[m.Key]
		if !present {
			entries = append(entries, models.DiffEntry{
				Kind:     models.DiffRemoved,
				Path:     path.WithKey(m.Key),
				OldValue: m.Value,
			})
			continue
		}
		entries = append(entries, sd.diffValues(path.WithKey(m.Key), m.Value, newVal)...)
	}

	for _, m := range newObj {
		if _, present := oldKeys[m.Key]; !present {
			entries = append(entries, models.DiffEntry{
				Kind:     models.DiffAdded,
				Path:     path.WithKey(m.Key),
				NewValue: m.Value,
			})
		}
	}

	return entries
}

// diffArrays compares elements positionally. Length mismatches and
// element edits surface as ArrayChange entries wrapping the element-level
// difference; same-kind containers at the same index recurse directly.
func (sd *SchemaDiffer) diffArrays(path models.Path, oldArr, newArr models.Array) []models.DiffEntry {
	longest := len(oldArr)
	if len(newArr) > longest {
		longest = len(newArr)
	}

	var entries []models.DiffEntry
	for i := 0; i < longest; i++ {
		elemPath := path.WithIndex(i)

		switch {
		case i >= len(oldArr):
			entries = append(entries, models.DiffEntry{
				Kind:  models.DiffArrayChange,
				Path:  path,
				Index: i,
				Item: &models.DiffEntry{
					Kind:     models.DiffAdded,
					Path:     elemPath,
					NewValue: newArr[i],
				},
			})
		case i >= len(newArr):
			entries = append(entries, models.DiffEntry{
				Kind:  models.DiffArrayChange,
				Path:  path,
				Index: i,
				Item: &models.DiffEntry{
					Kind:     models.DiffRemoved,
					Path:     elemPath,
					OldValue: oldArr[i],
				},
			})
		default:
			entries = append(entries, sd.diffElement(path, elemPath, i, oldArr[i], newArr[i])...)
		}
	}

	return entries
}

func (sd *SchemaDiffer) diffElement(arrayPath, elemPath models.Path, index int, oldValue, newValue models.Value) []models.DiffEntry {
	if models.EqualValues(oldValue, newValue) {
		return nil
	}
	if sameContainerKind(oldValue, newValue) {
		return sd.diffValues(elemPath, oldValue, newValue)
	}
	return []models.DiffEntry{{
		Kind:  models.DiffArrayChange,
		Path:  arrayPath,
		Index: index,
		Item: &models.DiffEntry{
			Kind:     models.DiffEdited,
			Path:     elemPath,
			OldValue: oldValue,
			NewValue: newValue,
		},
	}}
}

func sameContainerKind(a, b models.Value) bool {
	if _, ok := a.(models.Object); ok {
		_, ok := b.(models.Object)
		return ok
	}
	if _, ok := a.(models.Array); ok {
		_, ok := b.(models.Array)
		return ok
	}
	return false
}
