// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/verifai/pkg/types"
)

// CSLItem is a bibliographic entry in CSL (Citation Style Language) form,
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Title    string    `yaml:"title"`
	Author   []CSLName `yaml:"author,omitempty"`
	Abstract string    `yaml:"abstract,omitempty"`
	Issued   *CSLDate  `yaml:"issued,omitempty"`
	DOI      string    `yaml:"DOI,omitempty"`
	Note     string    `yaml:"note,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// retractedNote marks retracted papers, since CSL has no retraction field.
const retractedNote = "RETRACTED"

// WriteCSL writes p as a one-item CSL-YAML list.
func WriteCSL(w io.Writer, p *types.CitedPaper) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode([]CSLItem{ToCSLItem(p)}); err != nil {
		return fmt.Errorf("encoding CSL: %w", err)
	}
	return enc.Close()
}

// ToCSLItem converts a cited paper to a CSL article-journal entry keyed by DOI.
func ToCSLItem(p *types.CitedPaper) CSLItem {
	item := CSLItem{
		ID:       p.DOI,
		Type:     "article-journal",
		Title:    p.Title,
		Abstract: p.Abstract,
		DOI:      p.DOI,
	}

	for _, a := range p.Authors {
		if n := parseAuthorName(a); n != (CSLName{}) {
			item.Author = append(item.Author, n)
		}
	}

	// Year is free text from the registries; only numeric years are dated.
	if y, err := strconv.Atoi(strings.TrimSpace(p.Year)); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{y}}}
	}

	if p.IsRetracted {
		item.Note = retractedNote
	}
	return item
}

// parseAuthorName splits a display name on its last space: everything
// before is given, the last token is family. Single-token names use the
// literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  strings.TrimSpace(name[:idx]),
		Family: name[idx+1:],
	}
}
