package config

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Value is a JSON-compatible configuration value. It is recursively one of:
// nil, bool, a Go integer or float, string, List, or *Map. Converters must
// produce values of these shapes; anything else is rejected at the encoding
// boundary, not earlier.
type Value = any

// List is an ordered sequence of configuration values.
type List = []Value

// Map is a string-keyed mapping of configuration values. Insertion order is
// preserved so that configurations round-trip through JSON byte-for-byte.
type Map = orderedmap.OrderedMap[string, Value]

// NewMap returns an empty ordered configuration mapping.
func NewMap() *Map {
	return orderedmap.New[string, Value]()
}

// IsValid reports whether v conforms to the configuration value model.
func IsValid(v Value) bool {
	if isPrimitive(v) {
		return true
	}
	switch t := v.(type) {
	case List:
		for _, elem := range t {
			if !IsValid(elem) {
				return false
			}
		}
		return true
	case *Map:
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			if !IsValid(pair.Value) {
				return false
			}
		}
		return true
	}
	return false
}

// isPrimitive reports whether v is a configuration leaf value.
func isPrimitive(v Value) bool {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
