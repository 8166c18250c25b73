// Package config converts in-memory object graphs to and from JSON-compatible
// configuration values through per-type converters registered in named
// contexts. Contexts gate which callers may serialize or deserialize which
// types and carry key/value settings visible to converters.
package config

// Version is the attune library version.
const Version = "0.1.0"
