// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/verifai/pkg/types"
)

// citationPromptTmpl is fixed: one instruction line, then one labeled field
// per line.
var citationPromptTmpl = template.Must(template.New("citation").Parse(
	"Generate an IEEE citation for a paper with the following details:\n" +
		"Title: {{.Title}}\n" +
		"Authors: {{.Authors}}\n" +
		"Year: {{.Year}}\n" +
		"DOI: {{.DOI}}\n"))

// renderPrompt fills the citation prompt from p. Authors are comma-joined.
func renderPrompt(p types.PaperRecord) (string, error) {
	var buf bytes.Buffer
	err := citationPromptTmpl.Execute(&buf, struct {
		Title, Authors, Year, DOI string
	}{
		Title:   p.Title,
		Authors: strings.Join(p.Authors, ", "),
		Year:    p.Year,
		DOI:     p.DOI,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
