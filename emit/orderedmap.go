// Copyright 2024 The vvSQL Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package emit

import (
	"bytes"
	"encoding/json"
	"sort"
)

// OrderedMap is a JSON object whose key order is explicit rather than
// derived from Go map iteration (which is intentionally randomized).
// spec.md §4.6 "Determinism" fixes the top-level and per-channel key
// order of the emitted document; OrderedMap is the small, dependency-free
// mechanism that realizes that ordering — equivalent to what a struct
// with ordered fields gives encoding/json "for free", but needed here
// because the document's shape is assembled dynamically per spec rather
// than known at compile time as a fixed Go struct.
type OrderedMap struct {
	keys   []string
	values map[string]interface{}
}

// NewOrderedMap returns an empty ordered object.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: map[string]interface{}{}}
}

// Set inserts or updates key, appending it to the key order the first
// time it is set.
func (m *OrderedMap) Set(key string, value interface{}) *OrderedMap {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value at key, if present.
func (m *OrderedMap) Get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key, if present.
func (m *OrderedMap) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Has reports whether key has been set.
func (m *OrderedMap) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len reports the number of keys.
func (m *OrderedMap) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// MarshalJSON renders the object with its keys in insertion order.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// canonicalOrder returns the subset of wanted keys present in m, reordered
// to match wanted's order; keys present in m but absent from wanted are
// appended afterward in sorted order, so the result never depends on m's
// (possibly map-iteration-derived) original key order. Emit relies on
// this for keys outside the fixed lists, such as a layer's "transform",
// the document's "usermeta", and polar "theta"/"radius" channels.
func canonicalOrder(m *OrderedMap, wanted []string) *OrderedMap {
	out := NewOrderedMap()
	seen := map[string]bool{}
	for _, k := range wanted {
		if v, ok := m.Get(k); ok {
			out.Set(k, v)
			seen[k] = true
		}
	}
	var extra []string
	for _, k := range m.Keys() {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		v, _ := m.Get(k)
		out.Set(k, v)
	}
	return out
}

// topLevelOrder is the fixed document key order of spec.md §4.6.
var topLevelOrder = []string{
	"$schema", "title", "subtitle", "data", "width", "height", "autosize",
	"facet", "spec", "layer", "mark", "encoding", "config", "resolve",
}

// channelOrder is the fixed per-encoding-channel key order of spec.md §4.6.
var channelOrder = []string{
	"field", "type", "title", "scale", "axis", "legend", "value",
}
