package resource

// Filters is the current filter mapping of a store. Keys are the
// resource-specific filter names fixed at store construction; values are the
// string-encoded constraints. An absent key means no constraint.
type Filters map[string]string

// Clone returns an independent copy.
func (f Filters) Clone() Filters {
	if f == nil {
		return Filters{}
	}
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Merge applies a partial filter mapping on top of f and returns the result.
// An empty value clears the constraint for that key.
func (f Filters) Merge(partial Filters) Filters {
	out := f.Clone()
	for k, v := range partial {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// Equal reports whether two filter mappings carry the same constraints.
func (f Filters) Equal(other Filters) bool {
	if len(f) != len(other) {
		return false
	}
	for k, v := range f {
		if other[k] != v {
			return false
		}
	}
	return true
}
