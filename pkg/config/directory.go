package config

import (
	"fmt"
	"reflect"
	"sync"
)

// DefaultContextName is the name of the context that pre-exists in every
// directory and serves as the inheritance base for non-isolated contexts.
const DefaultContextName = "default"

// Directory is a registry of named contexts. Exactly one default context
// exists from creation; further contexts are added explicitly and live for
// the directory's lifetime. Looking up an existing name always returns the
// same Context instance.
type Directory struct {
	mu       sync.RWMutex
	contexts map[string]*Context

	// bindings records the owning context of types registered through the
	// Configurable protocol, for access-control checks.
	bindings map[reflect.Type]*Context
}

// NewDirectory creates a directory containing only the default context, with
// the built-in converters registered into it.
func NewDirectory() *Directory {
	d := &Directory{
		contexts: make(map[string]*Context),
		bindings: make(map[reflect.Type]*Context),
	}
	def := newContext(d, DefaultContextName, false)
	d.contexts[DefaultContextName] = def
	registerBuiltins(def)
	return d
}

// Default returns the directory's default context.
func (d *Directory) Default() *Context {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.contexts[DefaultContextName]
}

// GetContext returns the context registered under name. An empty name returns
// the default context. Returns ErrUnknownContext if the name is not
// registered.
func (d *Directory) GetContext(name string) (*Context, error) {
	if name == "" {
		name = DefaultContextName
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	ctx, ok := d.contexts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContext, name)
	}
	return ctx, nil
}

// EnsureContext returns the context registered under name, creating a
// non-isolated one if it does not exist yet.
func (d *Directory) EnsureContext(name string) *Context {
	if name == "" {
		name = DefaultContextName
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx, ok := d.contexts[name]
	if !ok {
		ctx = newContext(d, name, false)
		d.contexts[name] = ctx
	}
	return ctx
}

// ContextOption configures a context at registration time.
type ContextOption func(*Context)

// Isolated marks a context as isolated: it neither inherits converters and
// settings from the default context nor serves dispatch requested under other
// contexts.
func Isolated() ContextOption {
	return func(c *Context) {
		c.isolated = true
	}
}

// RegisterContext creates and stores a new, initially empty context. Returns
// ErrDuplicateContext if the name is already taken.
func (d *Directory) RegisterContext(name string, opts ...ContextOption) (*Context, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateContext, DefaultContextName)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.contexts[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateContext, name)
	}
	ctx := newContext(d, name, false)
	for _, opt := range opts {
		opt(ctx)
	}
	d.contexts[name] = ctx
	return ctx, nil
}

// bind records ctx as the owning context of protocol type t.
func (d *Directory) bind(t reflect.Type, ctx *Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bindings[t] = ctx
}

// boundContext returns the context a protocol type was bound to, or nil.
func (d *Directory) boundContext(t reflect.Type) *Context {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.bindings[t]
}

// isolatedOwner returns an isolated context other than ctx holding a
// converter registration or protocol binding for t, if any. Dispatch uses it
// to distinguish access denial from a genuinely missing converter.
func (d *Directory) isolatedOwner(t reflect.Type, ctx *Context) *Context {
	d.mu.RLock()
	if owner := d.bindings[t]; owner != nil && owner != ctx && owner.isolated {
		d.mu.RUnlock()
		return owner
	}
	candidates := make([]*Context, 0, len(d.contexts))
	for _, c := range d.contexts {
		if c != ctx && c.isolated {
			candidates = append(candidates, c)
		}
	}
	d.mu.RUnlock()

	for _, c := range candidates {
		if c.has(t) {
			return c
		}
	}
	return nil
}

// processDirectory is the process-wide directory used by the package-level
// API. Registration is expected to happen at program initialization; dispatch
// may then proceed concurrently.
var processDirectory = NewDirectory()

// Contexts returns the process-wide context directory.
func Contexts() *Directory { return processDirectory }

// Default returns the process-wide default context.
func Default() *Context { return processDirectory.Default() }

// GetContext returns the named context from the process-wide directory.
func GetContext(name string) (*Context, error) {
	return processDirectory.GetContext(name)
}

// EnsureContext returns the named context from the process-wide directory,
// creating it if missing.
func EnsureContext(name string) *Context {
	return processDirectory.EnsureContext(name)
}

// RegisterContext creates a new named context in the process-wide directory.
func RegisterContext(name string, opts ...ContextOption) (*Context, error) {
	return processDirectory.RegisterContext(name, opts...)
}
