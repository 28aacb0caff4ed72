// Package normalizer rewrites fetched documents into deterministic forms
// so that equivalent content compares as equal.
package normalizer

import (
	"sort"

	"pagediff/internal/models"
)

// CanonicalizeSchema rewrites v into its canonical form: object members
// sorted lexicographically by key, array elements sorted by their compact
// JSON serialization. Scalars pass through unchanged. The input value is
// never modified. Canonicalization is idempotent.
func CanonicalizeSchema(v models.Value) models.Value {
	switch t := v.(type) {
	case models.Object:
		return canonicalizeObject(t)
	case models.Array:
		return canonicalizeArray(t)
	default:
		return v
	}
}

// CanonicalizeInstances canonicalizes every instance of a type bucket and
// sorts the bucket itself by the array element rule, so two buckets with
// the same instances in different order serialize identically.
func CanonicalizeInstances(instances []models.Value) models.Array {
	return canonicalizeArray(models.Array(instances))
}

func canonicalizeObject(obj models.Object) models.Object {
	out := make(models.Object, len(obj))
	for i, m := range obj {
		out[i] = models.Member{Key: m.Key, Value: CanonicalizeSchema(m.Value)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}

func canonicalizeArray(arr models.Array) models.Array {
	type keyedValue struct {
		key   string
		value models.Value
	}

	keyed := make([]keyedValue, len(arr))
	for i, el := range arr {
		c := CanonicalizeSchema(el)
		keyed[i] = keyedValue{key: models.EncodeValue(c), value: c}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[i].key < keyed[j].key
	})

	out := make(models.Array, len(arr))
	for i, kv := range keyed {
		out[i] = kv.value
	}
	return out
}
