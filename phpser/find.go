package phpser

// Find returns the value of the first entry whose key equals key. The
// traversal is depth-first and pre-order: entries in insertion order, with
// nested records searched in place. A matching entry wins even when its
// value is itself a record; descent happens only past non-matching keys.
func (r *Record) Find(key Value) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	for _, e := range r.entries {
		if e.Key.Equal(key) {
			return e.Value, true
		}
		if e.Value.kind == KindRecord {
			if v, ok := e.Value.rec.Find(key); ok {
				return v, true
			}
		}
	}
	return Value{}, false
}

// FindAll returns every value stored under key at any depth, in discovery
// order. Unlike Find, a matching entry's nested record is still descended
// into.
func (r *Record) FindAll(key Value) []Value {
	var out []Value
	r.findAll(key, &out)
	return out
}

func (r *Record) findAll(key Value, out *[]Value) {
	if r == nil {
		return
	}
	for _, e := range r.entries {
		if e.Key.Equal(key) {
			*out = append(*out, e.Value)
		}
		if e.Value.kind == KindRecord {
			e.Value.rec.findAll(key, out)
		}
	}
}
