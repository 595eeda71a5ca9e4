// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/verifai/internal/httputil"
	"github.com/pdiddy/verifai/pkg/types"
)

// semanticAPIBase is the Semantic Scholar graph API root. Declared as a var
// so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1"

// semanticFields are the only fields requested. References are
// deliberately not consumed from this source.
const semanticFields = "title,authors,year,abstract"

// SemanticScholarSource enriches CrossRef data with titles, author lists,
// abstracts, and years.
type SemanticScholarSource struct {
	Client *http.Client
	Config types.SourcesConfig
}

// Name returns the source identifier.
func (s *SemanticScholarSource) Name() string { return "semantic_scholar" }

// Lookup fetches and normalizes the paper for doi.
func (s *SemanticScholarSource) Lookup(ctx context.Context, doi string) LookupResult {
	return lookup(ctx, s.Name(), doi, s.fetch)
}

func (s *SemanticScholarSource) fetch(ctx context.Context, doi string) (*types.PaperRecord, error) {
	apiURL, err := registryURL(semanticBase(s.Config), "/paper/DOI:"+doi, url.Values{"fields": {semanticFields}})
	if err != nil {
		return nil, err
	}

	var paper semanticPaper
	if err := httputil.GetJSON(ctx, clientOrDefault(s.Client), apiURL, userAgentHeader(s.Config.HTTPConfig), &paper); err != nil {
		return nil, fmt.Errorf("Semantic Scholar paper lookup: %w", err)
	}
	return mapSemanticPaper(paper, doi), nil
}

func semanticBase(cfg types.SourcesConfig) string {
	if cfg.SemanticScholarURL != "" {
		return strings.TrimRight(cfg.SemanticScholarURL, "/")
	}
	return semanticAPIBase
}

func mapSemanticPaper(sp semanticPaper, doi string) *types.PaperRecord {
	p := &types.PaperRecord{
		Title:      sp.Title,
		DOI:        doi,
		Abstract:   sp.Abstract,
		Authors:    make([]string, 0, len(sp.Authors)),
		References: []types.ReferenceRecord{},
	}
	for _, a := range sp.Authors {
		p.Authors = append(p.Authors, a.Name)
	}
	if sp.Year != nil {
		p.Year = strconv.Itoa(*sp.Year)
	}
	return p
}

// Semantic Scholar API JSON structures. Nullable fields decode to their
// zero values.
type semanticPaper struct {
	PaperID  string           `json:"paperId"`
	Title    string           `json:"title"`
	Abstract string           `json:"abstract"`
	Year     *int             `json:"year"`
	Authors  []semanticAuthor `json:"authors"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}
