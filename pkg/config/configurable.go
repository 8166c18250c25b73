package config

import (
	"fmt"
	"reflect"
)

// Configurable is implemented by types that assemble their own configuration
// instead of relying on an externally registered getter. Implementations
// should build the mapping through nested GetConfig calls under the same
// context.
type Configurable interface {
	GetConfig(ctx *Context) (Value, error)
}

// Reconfigurable extends Configurable with the reverse direction. Configure
// applies cfg to the receiver, resolving nested values through nested
// Configure calls under the same context.
type Reconfigurable interface {
	Configurable
	Configure(cfg Value, ctx *Context) error
}

// RegisterConfigurable binds T to ctx (the default context when ctx is nil)
// and installs a converter pair backed by T's own protocol methods. This is
// the required initialization step for self-configuring types: call it once
// per type at program startup. The binding establishes the access-control
// relation checked on every dispatch — a type bound to an isolated context is
// only reachable under that context.
//
// newInstance constructs an empty instance for the setter to populate when no
// pre-existing instance is supplied; with an instance, only its Configure
// method runs, enabling in-place refresh.
func RegisterConfigurable[T Reconfigurable](ctx *Context, newInstance func() T) {
	c := resolveContext(ctx)
	t := reflect.TypeOf((*T)(nil)).Elem()
	c.dir.bind(t, c)

	getter := func(obj any, gctx *Context) (Value, error) {
		v, ok := obj.(T)
		if !ok {
			return nil, fmt.Errorf("%w: getter for %s received %T", ErrMalformedConfiguration, t, obj)
		}
		if err := gctx.checkAccess(t); err != nil {
			return nil, err
		}
		return v.GetConfig(gctx)
	}

	setter := func(cfg Value, instance any, sctx *Context) (any, error) {
		if err := sctx.checkAccess(t); err != nil {
			return nil, err
		}
		var v T
		if instance == nil {
			v = newInstance()
		} else {
			cast, ok := instance.(T)
			if !ok {
				return nil, fmt.Errorf("%w: setter for %s received instance %T", ErrMalformedConfiguration, t, instance)
			}
			v = cast
		}
		if err := v.Configure(cfg, sctx); err != nil {
			return nil, err
		}
		return v, nil
	}

	c.Register(t, getter, setter)
}
