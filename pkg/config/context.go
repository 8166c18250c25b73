package config

import (
	"fmt"
	"reflect"
	"sync"
)

// Setting keys recognized by the dispatch engine. Converters may define and
// read their own keys through GlobalSetting.
const (
	// SettingTimeFormat overrides the layout used by the built-in time.Time
	// converter.
	SettingTimeFormat = "time_format"

	// SettingMaxDepth bounds structural recursion depth (int).
	SettingMaxDepth = "max_depth"

	// SettingStrictConfigure, when true, makes Configure reject composite
	// values that would otherwise pass through untyped.
	SettingStrictConfigure = "configure.strict"
)

// defaultMaxDepth bounds recursion when no max_depth setting is present.
const defaultMaxDepth = 10000

// GetterFunc converts a native instance to a configuration value.
type GetterFunc func(obj any, ctx *Context) (Value, error)

// SetterFunc converts a configuration value back to a native instance.
// instance is nil when a new instance must be constructed, or a pre-existing
// instance to refresh; registered setters must support both call shapes.
type SetterFunc func(cfg Value, instance any, ctx *Context) (any, error)

// converterPair holds the two conversion directions registered for a type.
// Either half may be nil when only one direction was registered.
type converterPair struct {
	getter GetterFunc
	setter SetterFunc
}

// Context is a named scope holding a type-to-converter registry, a settings
// map visible to converters, and an access-control boundary. Isolated
// contexts neither inherit from the default context nor serve other contexts.
type Context struct {
	name     string
	isolated bool
	dir      *Directory

	mu         sync.RWMutex
	converters map[reflect.Type]converterPair
	settings   map[string]any
}

// newContext creates an empty context owned by dir.
func newContext(dir *Directory, name string, isolated bool) *Context {
	return &Context{
		name:       name,
		isolated:   isolated,
		dir:        dir,
		converters: make(map[reflect.Type]converterPair),
		settings:   make(map[string]any),
	}
}

// Name returns the context name.
func (c *Context) Name() string { return c.name }

// Isolated reports whether the context was created isolated.
func (c *Context) Isolated() bool { return c.isolated }

// Directory returns the directory the context belongs to.
func (c *Context) Directory() *Directory { return c.dir }

// Register stores a converter pair for t in this context. The last
// registration for a type wins; registering only one half of the pair leaves
// the previously registered other half intact, so getters and setters may be
// registered independently.
func (c *Context) Register(t reflect.Type, getter GetterFunc, setter SetterFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pair := c.converters[t]
	if getter != nil {
		pair.getter = getter
	}
	if setter != nil {
		pair.setter = setter
	}
	c.converters[t] = pair
}

// SetGlobalSetting stores a setting visible to converters dispatched under
// this context.
func (c *Context) SetGlobalSetting(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings[key] = value
}

// GlobalSetting looks up key in this context's settings. A non-isolated
// context falls back to the default context's settings; otherwise def is
// returned.
func (c *Context) GlobalSetting(key string, def any) any {
	c.mu.RLock()
	v, ok := c.settings[key]
	c.mu.RUnlock()
	if ok {
		return v
	}

	base := c.dir.Default()
	if c.isolated || c == base {
		return def
	}
	return base.GlobalSetting(key, def)
}

// lookupLocal returns the pair registered for t in this context only.
func (c *Context) lookupLocal(t reflect.Type) (converterPair, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pair, ok := c.converters[t]
	return pair, ok
}

// has reports whether t is registered in this context's own registry.
func (c *Context) has(t reflect.Type) bool {
	_, ok := c.lookupLocal(t)
	return ok
}

// resolve finds the converter pair for t visible from this context: the own
// registry first, then the default context's registry unless the context is
// isolated.
func (c *Context) resolve(t reflect.Type) (converterPair, bool) {
	if pair, ok := c.lookupLocal(t); ok {
		return pair, true
	}
	base := c.dir.Default()
	if c != base && !c.isolated {
		return base.lookupLocal(t)
	}
	return converterPair{}, false
}

// checkAccess verifies that a protocol type bound to an isolated context is
// only dispatched under that context.
func (c *Context) checkAccess(t reflect.Type) error {
	owner := c.dir.boundContext(t)
	if owner == nil || owner == c || !owner.isolated {
		return nil
	}
	return fmt.Errorf("%w: type %s is bound to isolated context %q, requested under %q",
		ErrAccessDenied, t, owner.name, c.name)
}

// maxDepth returns the structural recursion bound for dispatch under this
// context.
func (c *Context) maxDepth() int {
	if v, ok := c.GlobalSetting(SettingMaxDepth, defaultMaxDepth).(int); ok && v > 0 {
		return v
	}
	return defaultMaxDepth
}

// strictConfigure reports whether untyped composite passthrough is disabled.
func (c *Context) strictConfigure() bool {
	v, _ := c.GlobalSetting(SettingStrictConfigure, false).(bool)
	return v
}

// stringSetting reads a string-valued setting, falling back to def when the
// key is absent or holds a non-string value.
func stringSetting(ctx *Context, key, def string) string {
	if v, ok := ctx.GlobalSetting(key, def).(string); ok {
		return v
	}
	return def
}
