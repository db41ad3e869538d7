// Package gamedata provides the embedded weight tables and tile palette that
// drive generation and rendering.
package gamedata

import "embed"

// dataFS embeds all YAML files from this directory at build time.
//
//go:embed *.yaml
var dataFS embed.FS
