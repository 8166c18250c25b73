package config

import (
	"fmt"
	"reflect"
)

// resolveContext substitutes the process-wide default context for a nil ctx.
func resolveContext(ctx *Context) *Context {
	if ctx == nil {
		return processDirectory.Default()
	}
	return ctx
}

// RegisterGetter registers fn as the getter for T in ctx (the default context
// when ctx is nil) and returns fn unchanged so it remains independently
// callable. A later registration for the same type and context overwrites the
// earlier one.
func RegisterGetter[T any](ctx *Context, fn func(T, *Context) (Value, error)) func(T, *Context) (Value, error) {
	c := resolveContext(ctx)
	t := reflect.TypeOf((*T)(nil)).Elem()
	c.Register(t, func(obj any, gctx *Context) (Value, error) {
		v, ok := obj.(T)
		if !ok {
			return nil, fmt.Errorf("%w: getter for %s received %T", ErrMalformedConfiguration, t, obj)
		}
		return fn(v, gctx)
	}, nil)
	return fn
}

// RegisterSetter registers fn as the setter for T in ctx (the default context
// when ctx is nil) and returns fn unchanged. fn receives the zero value of T
// when a new instance must be constructed.
func RegisterSetter[T any](ctx *Context, fn func(Value, T, *Context) (T, error)) func(Value, T, *Context) (T, error) {
	c := resolveContext(ctx)
	t := reflect.TypeOf((*T)(nil)).Elem()
	c.Register(t, nil, func(cfg Value, instance any, sctx *Context) (any, error) {
		var v T
		if instance != nil {
			cast, ok := instance.(T)
			if !ok {
				return nil, fmt.Errorf("%w: setter for %s received instance %T", ErrMalformedConfiguration, t, instance)
			}
			v = cast
		}
		return fn(cfg, v, sctx)
	})
	return fn
}
