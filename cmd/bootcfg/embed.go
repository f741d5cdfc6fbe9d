package main

import _ "embed"

// embeddedConfig holds the YAML configuration embedded at build time.
// Device builds overwrite embed_config.yaml with board-specific paths
// before compiling; the checked-in file matches the built-in defaults.
//
//go:embed embed_config.yaml
var embeddedConfig []byte
