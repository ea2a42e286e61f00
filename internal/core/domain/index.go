package domain

// Index is a string-keyed map that remembers insertion order.
// The persisted snapshot is a JSON object whose key order matters
// ("first project", "first file"), so every keyed collection in the
// model uses Index rather than a bare map.
//
// The zero value is an empty, ready to use Index.
type Index[V any] struct {
	keys  []string
	items map[string]V
}

// Len returns the number of entries.
func (x *Index[V]) Len() int {
	return len(x.keys)
}

// Get returns the value stored under key.
func (x *Index[V]) Get(key string) (V, bool) {
	v, ok := x.items[key]
	return v, ok
}

// Has reports whether key is present.
func (x *Index[V]) Has(key string) bool {
	_, ok := x.items[key]
	return ok
}

// Set stores value under key. New keys are appended; existing keys keep their position.
func (x *Index[V]) Set(key string, value V) {
	if x.items == nil {
		x.items = make(map[string]V)
	}
	if _, ok := x.items[key]; !ok {
		x.keys = append(x.keys, key)
	}
	x.items[key] = value
}

// Delete removes key. Missing keys are ignored.
func (x *Index[V]) Delete(key string) {
	if _, ok := x.items[key]; !ok {
		return
	}
	delete(x.items, key)
	for i, k := range x.keys {
		if k == key {
			x.keys = append(x.keys[:i:i], x.keys[i+1:]...)
			break
		}
	}
}

// Rename moves the value under oldKey to newKey, keeping its position.
// It returns false if oldKey is missing or newKey is already taken.
func (x *Index[V]) Rename(oldKey, newKey string) bool {
	if oldKey == newKey {
		return x.Has(oldKey)
	}
	v, ok := x.items[oldKey]
	if !ok || x.Has(newKey) {
		return false
	}
	delete(x.items, oldKey)
	x.items[newKey] = v
	for i, k := range x.keys {
		if k == oldKey {
			x.keys[i] = newKey
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order.
func (x *Index[V]) Keys() []string {
	out := make([]string, len(x.keys))
	copy(out, x.keys)
	return out
}

// Values returns the values in insertion order.
func (x *Index[V]) Values() []V {
	out := make([]V, 0, len(x.keys))
	for _, k := range x.keys {
		out = append(out, x.items[k])
	}
	return out
}

// First returns the first key, or "" when empty.
func (x *Index[V]) First() string {
	if len(x.keys) == 0 {
		return ""
	}
	return x.keys[0]
}

// Clone copies the index, passing each value through copyValue.
// A nil copyValue performs a shallow copy.
func (x *Index[V]) Clone(copyValue func(V) V) Index[V] {
	out := Index[V]{
		keys:  make([]string, len(x.keys)),
		items: make(map[string]V, len(x.items)),
	}
	copy(out.keys, x.keys)
	for k, v := range x.items {
		if copyValue != nil {
			v = copyValue(v)
		}
		out.items[k] = v
	}
	return out
}
