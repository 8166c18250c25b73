package config

import (
	"fmt"
	"reflect"
)

// RegisterStruct installs a reflection-based converter pair for struct type T
// in ctx (the default context when ctx is nil). The getter assembles an
// ordered mapping of T's exported fields through nested GetConfig calls; the
// setter populates fields from a mapping through nested resolution.
//
// Field keys default to the field name; a `config:"name"` tag overrides it
// and `config:"-"` skips the field. Unexported fields are never configured.
func RegisterStruct[T any](ctx *Context) {
	c := resolveContext(ctx)
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("config: RegisterStruct requires a struct type, got %s", t))
	}
	c.Register(t, structGetter(t), structSetter(t))
}

// fieldKey returns the configuration key for a struct field, or false when
// the field is not configurable.
func fieldKey(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := f.Tag.Get("config")
	if tag == "-" {
		return "", false
	}
	if tag != "" {
		return tag, true
	}
	return f.Name, true
}

func structGetter(t reflect.Type) GetterFunc {
	return func(obj any, ctx *Context) (Value, error) {
		rv := reflect.ValueOf(obj)
		if rv.Type() != t {
			return nil, fmt.Errorf("%w: getter for %s received %T", ErrMalformedConfiguration, t, obj)
		}
		out := NewMap()
		for i := 0; i < t.NumField(); i++ {
			key, ok := fieldKey(t.Field(i))
			if !ok {
				continue
			}
			fv, err := getConfig(rv.Field(i).Interface(), ctx, ctx.maxDepth())
			if err != nil {
				return nil, fmt.Errorf("field %s of %s: %w", t.Field(i).Name, t, err)
			}
			out.Set(key, fv)
		}
		return out, nil
	}
}

func structSetter(t reflect.Type) SetterFunc {
	return func(cfg Value, instance any, ctx *Context) (any, error) {
		m, ok := cfg.(*Map)
		if !ok {
			return nil, fmt.Errorf("%w: expected mapping for %s, got %T", ErrMalformedConfiguration, t, cfg)
		}

		rv := reflect.New(t).Elem()
		if instance != nil {
			cur := reflect.ValueOf(instance)
			if cur.Type() != t {
				return nil, fmt.Errorf("%w: setter for %s received instance %T", ErrMalformedConfiguration, t, instance)
			}
			rv.Set(cur)
		}

		for i := 0; i < t.NumField(); i++ {
			key, ok := fieldKey(t.Field(i))
			if !ok {
				continue
			}
			raw, present := m.Get(key)
			if !present {
				continue
			}
			fv, err := assignValue(t.Field(i).Type, raw, ctx, ctx.maxDepth())
			if err != nil {
				return nil, fmt.Errorf("field %s of %s: %w", t.Field(i).Name, t, err)
			}
			rv.Field(i).Set(fv)
		}
		return rv.Interface(), nil
	}
}

// assignValue converts a configuration value to a reflect.Value of type ft,
// dispatching through registered setters where one exists for ft.
func assignValue(ft reflect.Type, v Value, ctx *Context, depth int) (reflect.Value, error) {
	if depth <= 0 {
		return reflect.Value{}, fmt.Errorf("%w while configuring %s", ErrRecursionLimit, ft)
	}
	if v == nil {
		return reflect.Zero(ft), nil
	}

	if pair, ok := ctx.resolve(ft); ok && pair.setter != nil {
		out, err := pair.setter(v, nil, ctx)
		if err != nil {
			return reflect.Value{}, err
		}
		ov := reflect.ValueOf(out)
		if !ov.Type().AssignableTo(ft) {
			return reflect.Value{}, fmt.Errorf("%w: setter for %s produced %T", ErrMalformedConfiguration, ft, out)
		}
		return ov, nil
	}

	switch ft.Kind() {
	case reflect.Pointer:
		elem, err := assignValue(ft.Elem(), v, ctx, depth-1)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(ft.Elem())
		p.Elem().Set(elem)
		return p, nil
	case reflect.Slice:
		list, ok := v.(List)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: expected sequence for %s, got %T", ErrMalformedConfiguration, ft, v)
		}
		out := reflect.MakeSlice(ft, len(list), len(list))
		for i, elem := range list {
			ev, err := assignValue(ft.Elem(), elem, ctx, depth-1)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	case reflect.Map:
		if ft.Key().Kind() != reflect.String {
			return reflect.Value{}, fmt.Errorf("%w: cannot configure map type %s with non-string keys", ErrMalformedConfiguration, ft)
		}
		m, ok := v.(*Map)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: expected mapping for %s, got %T", ErrMalformedConfiguration, ft, v)
		}
		out := reflect.MakeMapWithSize(ft, m.Len())
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			ev, err := assignValue(ft.Elem(), pair.Value, ctx, depth-1)
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(reflect.ValueOf(pair.Key).Convert(ft.Key()), ev)
		}
		return out, nil
	case reflect.Struct:
		return reflect.Value{}, fmt.Errorf("%w for struct type %s in context %q", ErrNoConverter, ft, ctx.name)
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(ft) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(ft) {
		return rv.Convert(ft), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot assign %T to %s", ErrMalformedConfiguration, v, ft)
}
