package record

import "maps"

// Record is a single stored structured value whose shape is entirely
// supplied by the caller. The store imposes no schema on it beyond what the
// configured Validator demands.
type Record map[string]any

// Clone returns a shallow copy of the record, so the collection cannot be
// mutated behind the store's back. A nil record clones to an empty one.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}

	return maps.Clone(r)
}

// Merge returns a new record with the fields of other overlaid onto r.
// Fields present in other win, fields only present in r are preserved.
// Neither r nor other are modified.
func (r Record) Merge(other Record) Record {
	merged := r.Clone()

	for field, value := range other {
		merged[field] = value
	}

	return merged
}
