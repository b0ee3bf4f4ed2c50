// Package renderer turns valuation reports into displayable text. It is a
// pure consumer of the core's output: nothing here feeds back into the
// valuation.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// renderTemplate executes one embedded template over data. Rendering
// errors end up in the output string; a report is a best-effort display,
// not a place to fail a run that already computed its numbers.
func renderTemplate(name string, data any) string {
	content, err := templates.ReadFile(name)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", name, err)
	}
	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}
