// Package templates holds the HTML pages served by the catalog.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Catalog renders the product catalog page
var Catalog = template.Must(template.ParseFS(files, "catalog.html"))

// Error renders the page shown when the catalog cannot be loaded
var Error = template.Must(template.ParseFS(files, "error.html"))
