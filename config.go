package xnb

import "github.com/relicdump/xnb/typereader"

// Config holds the handful of tunables a Parse needs. The zero value is
// usable: a nil Registry falls back to DefaultRegistry, and a zero
// MaxDumpBytes falls back to dump.DefaultMaxDumpBytes.
type Config struct {
	// MaxDumpBytes caps how many raw bytes of a blob field (a texture
	// mip, a vertex buffer, shader bytecode) the dump sink renders before
	// collapsing it to a byte count. Zero means dump.DefaultMaxDumpBytes.
	MaxDumpBytes int

	// Registry resolves manifest entries to Readers. If nil, the
	// package-level DefaultRegistry is used.
	Registry *typereader.Registry
}

func (c *Config) copyAndFill() *Config {
	config := new(Config)
	if c != nil {
		*config = *c
	}

	if config.Registry == nil {
		config.Registry = DefaultRegistry()
	}

	return config
}
