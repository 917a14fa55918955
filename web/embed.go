// Package web holds the templates, static assets and article sources that
// are compiled into the binary.
package web

import "embed"

// FS contains templates/, public/ and content/.
//
//go:embed templates public content
var FS embed.FS
