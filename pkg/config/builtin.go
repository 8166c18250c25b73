package config

import (
	"fmt"
	"reflect"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefaultTimeFormat is the layout used by the time.Time converter when the
// time_format setting is unset.
const DefaultTimeFormat = "20060102150405.000000"

// registerBuiltins installs the converters every default context carries:
// byte sequences, timestamps, and UUIDs.
func registerBuiltins(def *Context) {
	def.Register(reflect.TypeOf([]byte(nil)), bytesGetter, bytesSetter)
	def.Register(reflect.TypeOf(time.Time{}), timeGetter, timeSetter)
	def.Register(reflect.TypeOf(uuid.UUID{}), uuidGetter, uuidSetter)
}

// bytesGetter converts a byte sequence to its UTF-8 string form.
func bytesGetter(obj any, _ *Context) (Value, error) {
	b, ok := obj.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: bytes getter received %T", ErrMalformedConfiguration, obj)
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("%w: byte sequence is not valid UTF-8", ErrMalformedConfiguration)
	}
	return string(b), nil
}

// bytesSetter converts a string back to its UTF-8 byte sequence.
func bytesSetter(cfg Value, _ any, _ *Context) (any, error) {
	s, ok := cfg.(string)
	if !ok {
		return nil, fmt.Errorf("%w: expected string for bytes, got %T", ErrMalformedConfiguration, cfg)
	}
	return []byte(s), nil
}

// timeGetter converts a timestamp to a {value, format} mapping. The layout
// comes from the context's time_format setting so callers can vary encoding
// per context.
func timeGetter(obj any, ctx *Context) (Value, error) {
	tm, ok := obj.(time.Time)
	if !ok {
		return nil, fmt.Errorf("%w: time getter received %T", ErrMalformedConfiguration, obj)
	}
	layout := stringSetting(ctx, SettingTimeFormat, DefaultTimeFormat)
	out := NewMap()
	out.Set("value", tm.Format(layout))
	out.Set("format", layout)
	return out, nil
}

// timeSetter reconstructs a timestamp from a {value, format} mapping. A
// missing format key falls back to the context's time_format setting.
func timeSetter(cfg Value, _ any, ctx *Context) (any, error) {
	m, ok := cfg.(*Map)
	if !ok {
		return nil, fmt.Errorf("%w: expected mapping for time, got %T", ErrMalformedConfiguration, cfg)
	}
	raw, ok := m.Get("value")
	if !ok {
		return nil, fmt.Errorf("%w: time mapping has no value key", ErrMalformedConfiguration)
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: time value is %T, not string", ErrMalformedConfiguration, raw)
	}

	layout := stringSetting(ctx, SettingTimeFormat, DefaultTimeFormat)
	if rawLayout, ok := m.Get("format"); ok {
		if l, ok := rawLayout.(string); ok {
			layout = l
		}
	}

	tm, err := time.Parse(layout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedConfiguration, err)
	}
	return tm, nil
}

// uuidGetter converts a UUID to its canonical string form.
func uuidGetter(obj any, _ *Context) (Value, error) {
	id, ok := obj.(uuid.UUID)
	if !ok {
		return nil, fmt.Errorf("%w: uuid getter received %T", ErrMalformedConfiguration, obj)
	}
	return id.String(), nil
}

// uuidSetter parses a UUID from its string form.
func uuidSetter(cfg Value, _ any, _ *Context) (any, error) {
	s, ok := cfg.(string)
	if !ok {
		return nil, fmt.Errorf("%w: expected string for uuid, got %T", ErrMalformedConfiguration, cfg)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedConfiguration, err)
	}
	return id, nil
}
