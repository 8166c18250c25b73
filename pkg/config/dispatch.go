package config

import (
	"fmt"
	"reflect"
	"sort"
)

// GetConfig converts obj to a configuration value under ctx (the default
// context when ctx is nil).
//
// Primitive leaves pass through unchanged. A converter registered for obj's
// exact dynamic type wins next, looked up in ctx's registry with fallback to
// the default context for non-isolated contexts. Types implementing the
// Configurable protocol dispatch through their GetConfig method. Remaining
// slices, arrays, and string-keyed maps recurse element-wise. Anything else
// fails with ErrAccessDenied when the type lives in a foreign isolated
// context, or ErrNoConverter.
func GetConfig(obj any, ctx *Context) (Value, error) {
	c := resolveContext(ctx)
	return getConfig(obj, c, c.maxDepth())
}

func getConfig(obj any, ctx *Context, depth int) (Value, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w while serializing %T", ErrRecursionLimit, obj)
	}
	if isPrimitive(obj) {
		return obj, nil
	}

	t := reflect.TypeOf(obj)
	if pair, ok := ctx.resolve(t); ok && pair.getter != nil {
		return pair.getter(obj, ctx)
	}

	if cfg, ok := obj.(Configurable); ok {
		if err := ctx.checkAccess(t); err != nil {
			return nil, err
		}
		return cfg.GetConfig(ctx)
	}

	// Denial takes precedence over structural conversion: a type owned by a
	// foreign isolated context stays unreachable even when generic recursion
	// could handle it.
	if owner := ctx.dir.isolatedOwner(t, ctx); owner != nil {
		return nil, fmt.Errorf("%w: type %s is registered in isolated context %q, requested under %q",
			ErrAccessDenied, t, owner.name, ctx.name)
	}

	if m, ok := obj.(*Map); ok {
		out := NewMap()
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			elem, err := getConfig(pair.Value, ctx, depth-1)
			if err != nil {
				return nil, err
			}
			out.Set(pair.Key, elem)
		}
		return out, nil
	}

	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		return getConfig(rv.Elem().Interface(), ctx, depth-1)
	case reflect.Slice, reflect.Array:
		out := make(List, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := getConfig(rv.Index(i).Interface(), ctx, depth-1)
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			// Plain Go maps have no iteration order; sort keys so the
			// resulting configuration is deterministic.
			keys := make([]string, 0, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				keys = append(keys, iter.Key().String())
			}
			sort.Strings(keys)

			out := NewMap()
			for _, k := range keys {
				kv := reflect.ValueOf(k).Convert(rv.Type().Key())
				elem, err := getConfig(rv.MapIndex(kv).Interface(), ctx, depth-1)
				if err != nil {
					return nil, err
				}
				out.Set(k, elem)
			}
			return out, nil
		}
	}

	return nil, fmt.Errorf("%w for type %s in context %q", ErrNoConverter, t, ctx.name)
}

// Configure converts a configuration value back to a native instance under
// ctx (the default context when ctx is nil).
//
// A bare configuration value carries no type tag, so the target type comes
// from instance: when instance is non-nil its type's setter (or Configure
// method) is resolved exactly as in GetConfig and invoked with instance for
// in-place reconstruction. Without an instance or setter, primitives pass
// through unchanged and composite values recurse element-wise — a documented
// best-effort fallback rather than a guess at a type. Contexts with the
// configure.strict setting reject the composite passthrough instead.
func Configure(cfg Value, instance any, ctx *Context) (any, error) {
	c := resolveContext(ctx)
	return configure(cfg, instance, c, c.maxDepth())
}

func configure(cfg Value, instance any, ctx *Context, depth int) (any, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w while configuring %T", ErrRecursionLimit, cfg)
	}

	hadInstance := instance != nil
	if hadInstance {
		t := reflect.TypeOf(instance)
		if pair, ok := ctx.resolve(t); ok && pair.setter != nil {
			return pair.setter(cfg, instance, ctx)
		}
		if rc, ok := instance.(Reconfigurable); ok {
			if err := ctx.checkAccess(t); err != nil {
				return nil, err
			}
			if err := rc.Configure(cfg, ctx); err != nil {
				return nil, err
			}
			return rc, nil
		}
		if owner := ctx.dir.isolatedOwner(t, ctx); owner != nil {
			return nil, fmt.Errorf("%w: type %s is registered in isolated context %q, requested under %q",
				ErrAccessDenied, t, owner.name, ctx.name)
		}
		// Instances that are themselves configuration values fall through to
		// the structural handling below; anything else needed a converter.
		if !isConfigurationShape(instance) {
			return nil, fmt.Errorf("%w for type %T in context %q", ErrNoConverter, instance, ctx.name)
		}
	}

	if isPrimitive(cfg) {
		return cfg, nil
	}

	switch v := cfg.(type) {
	case *Map:
		if ctx.strictConfigure() {
			return nil, fmt.Errorf("%w: cannot configure mapping without a typed target in strict context %q",
				ErrNoConverter, ctx.name)
		}
		out := NewMap()
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			elem, err := configure(pair.Value, nil, ctx, depth-1)
			if err != nil {
				return nil, err
			}
			out.Set(pair.Key, elem)
		}
		return out, nil
	case List:
		if ctx.strictConfigure() {
			return nil, fmt.Errorf("%w: cannot configure sequence without a typed target in strict context %q",
				ErrNoConverter, ctx.name)
		}
		out := make(List, len(v))
		for i, elem := range v {
			cv, err := configure(elem, nil, ctx, depth-1)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: %T is not a configuration value", ErrMalformedConfiguration, cfg)
}

// isConfigurationShape reports whether v is already a value of the
// configuration model at its top level.
func isConfigurationShape(v Value) bool {
	if isPrimitive(v) {
		return true
	}
	switch v.(type) {
	case List, *Map:
		return true
	}
	return false
}
