// Package web embeds the HTML templates and static assets served by the
// application.
package web

import "embed"

// TemplatesFS contains the embedded HTML templates (layouts and pages).
//
//go:embed all:templates
var TemplatesFS embed.FS

// StaticFS contains the embedded static assets.
//
//go:embed all:static
var StaticFS embed.FS
