// Package web bundles the forum's HTML templates and static assets into the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var assets embed.FS

var (
	// TemplateFS holds templates/layouts and templates/pages.
	TemplateFS fs.FS = assets
	// StaticFS holds the stylesheet served under /static/.
	StaticFS fs.FS = assets
)
