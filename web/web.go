// Package web holds the embedded terminal page templates. All dynamic
// values pass through html/template's contextual escaping, so nothing
// user-controlled reaches the page unescaped.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates. Panics on a malformed
// template, which can only happen at build time.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
