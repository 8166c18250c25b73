package config

import "errors"

// Engine errors. All are terminal: dispatch surfaces them immediately to the
// caller with no retries or partial results. Match with errors.Is.
var (
	// ErrUnknownContext is returned when a context is looked up by a name
	// that was never registered.
	ErrUnknownContext = errors.New("unknown context")

	// ErrDuplicateContext is returned when registering a context under a
	// name that already exists.
	ErrDuplicateContext = errors.New("context already registered")

	// ErrNoConverter is returned when dispatch finds no getter, setter, or
	// protocol method for a type under a context, including after fallback
	// to the default context.
	ErrNoConverter = errors.New("no converter registered")

	// ErrAccessDenied is returned when a type bound to an isolated context
	// is serialized or configured under a different context.
	ErrAccessDenied = errors.New("access denied")

	// ErrMalformedConfiguration is returned when a setter or decoder
	// receives a value inconsistent with the configuration value model.
	ErrMalformedConfiguration = errors.New("malformed configuration")

	// ErrRecursionLimit is returned when structural recursion exceeds the
	// context's max_depth setting.
	ErrRecursionLimit = errors.New("recursion limit exceeded")
)
