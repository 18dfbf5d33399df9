package catalog

import "io"

// Option applies a configuration option to catalog loading.
type Option func(*loadConfig)

type loadConfig struct {
	path   string
	reader io.Reader
}

// WithFile loads the catalog from a YAML file instead of the built-in content.
// An empty path keeps the built-in content.
func WithFile(path string) Option {
	return func(c *loadConfig) {
		c.path = path
	}
}

// WithReader loads the catalog from r. It takes precedence over WithFile.
func WithReader(r io.Reader) Option {
	return func(c *loadConfig) {
		if r != nil {
			c.reader = r
		}
	}
}
