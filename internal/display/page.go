package display

import (
	"bytes"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/index.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

// RenderPage writes the scoreboard page with v as its initial content.
func RenderPage(w io.Writer, v View) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, v); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
