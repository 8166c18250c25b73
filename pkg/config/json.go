package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// EncodeJSON renders a configuration value as JSON text. Mapping keys are
// written in insertion order. Values outside the configuration model are
// rejected here rather than silently coerced.
func EncodeJSON(v Value) ([]byte, error) {
	if !IsValid(v) {
		return nil, fmt.Errorf("%w: %T is not a configuration value", ErrMalformedConfiguration, v)
	}
	return json.Marshal(v)
}

// DecodeJSON parses JSON text into a configuration value. Object key order is
// preserved. Numbers without a fraction or exponent decode as int64, all
// others as float64.
func DecodeJSON(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedConfiguration)
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// fromResult maps a parsed JSON node to the configuration value model.
func fromResult(r gjson.Result) Value {
	switch {
	case r.Type == gjson.Null:
		return nil
	case r.IsObject():
		out := NewMap()
		r.ForEach(func(k, v gjson.Result) bool {
			out.Set(k.String(), fromResult(v))
			return true
		})
		return out
	case r.IsArray():
		elems := r.Array()
		out := make(List, 0, len(elems))
		for _, elem := range elems {
			out = append(out, fromResult(elem))
		}
		return out
	case r.Type == gjson.String:
		return r.Str
	case r.Type == gjson.True:
		return true
	case r.Type == gjson.False:
		return false
	case r.Type == gjson.Number:
		if !strings.ContainsAny(r.Raw, ".eE") {
			if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
				return i
			}
		}
		return r.Num
	}
	return nil
}
