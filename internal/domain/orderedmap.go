package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderedMap is an insertion-ordered associative container: keys keep their
// first-seen position, replacing a value does not move its key, and lookup is
// O(1). It marshals to a JSON object with keys in insertion order.
type OrderedMap[K comparable, V any] struct {
	keys    []K
	entries map[K]V
}

// NewOrderedMap creates an empty ordered map.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{entries: make(map[K]V)}
}

// Get returns the value for key and whether it exists.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Put inserts or replaces the value for key. A replaced key keeps its
// original insertion position.
func (m *OrderedMap[K, V]) Put(key K, value V) {
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = value
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in first-insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in first-insertion order.
func (m *OrderedMap[K, V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.entries[k])
	}
	return out
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
func (m *OrderedMap[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(fmt.Sprintf("%v", k))
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(m.entries[k])
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
