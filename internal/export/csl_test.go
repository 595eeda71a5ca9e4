// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestToCSLItem(t *testing.T) {
	item := ToCSLItem(samplePaper(false))

	assert.Equal(t, "10.1038/nature14539", item.ID)
	assert.Equal(t, "article-journal", item.Type)
	assert.Equal(t, "Deep Learning", item.Title)
	assert.Equal(t, "10.1038/nature14539", item.DOI)
	assert.Equal(t, []CSLName{
		{Given: "Yann", Family: "LeCun"},
		{Given: "Yoshua", Family: "Bengio"},
	}, item.Author)
	require.NotNil(t, item.Issued)
	assert.Equal(t, [][]int{{2015}}, item.Issued.DateParts)
	assert.Empty(t, item.Note)
}

func TestToCSLItemRetracted(t *testing.T) {
	item := ToCSLItem(samplePaper(true))
	assert.Equal(t, "RETRACTED", item.Note)
}

func TestToCSLItemYear(t *testing.T) {
	tests := []struct {
		year string
		want *CSLDate
	}{
		{"2015", &CSLDate{DateParts: [][]int{{2015}}}},
		{" 1999 ", &CSLDate{DateParts: [][]int{{1999}}}},
		{"", nil},
		{"in press", nil},
	}
	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			p := samplePaper(false)
			p.Year = tt.year
			assert.Equal(t, tt.want, ToCSLItem(p).Issued)
		})
	}
}

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		in   string
		want CSLName
	}{
		{"Yann LeCun", CSLName{Given: "Yann", Family: "LeCun"}},
		{"Jean  Paul Sartre", CSLName{Given: "Jean  Paul", Family: "Sartre"}},
		{"Plato", CSLName{Literal: "Plato"}},
		{"  ", CSLName{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAuthorName(tt.in))
		})
	}
}

func TestToCSLItemSkipsBlankAuthors(t *testing.T) {
	p := samplePaper(false)
	p.Authors = []string{"", "Ada Lovelace"}
	assert.Equal(t, []CSLName{{Given: "Ada", Family: "Lovelace"}}, ToCSLItem(p).Author)
}

func TestWriteCSL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSL(&buf, samplePaper(false)))

	var items []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "10.1038/nature14539", items[0]["DOI"])
	assert.Equal(t, "article-journal", items[0]["type"])
	assert.Contains(t, buf.String(), "date-parts:")
}
