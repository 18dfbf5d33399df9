package catalog

import _ "embed"

// defaultDocument contains the built-in topic content.
//
//go:embed catalog.yaml
var defaultDocument []byte
