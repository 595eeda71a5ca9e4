// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/verifai/internal/httputil"
	"github.com/pdiddy/verifai/pkg/types"
)

// crossrefAPIBase is the CrossRef REST API root. Declared as a var so tests
// can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org"

// CrossRefSource looks up works by DOI. It is authoritative for structure
// and is the only source of reference lists.
type CrossRefSource struct {
	Client *http.Client
	Config types.SourcesConfig
}

// Name returns the source identifier.
func (s *CrossRefSource) Name() string { return "crossref" }

// Lookup fetches and normalizes the work for doi.
func (s *CrossRefSource) Lookup(ctx context.Context, doi string) LookupResult {
	return lookup(ctx, s.Name(), doi, s.fetch)
}

func (s *CrossRefSource) fetch(ctx context.Context, doi string) (*types.PaperRecord, error) {
	var params url.Values
	if s.Config.Mailto != "" {
		params = url.Values{"mailto": {s.Config.Mailto}}
	}
	apiURL, err := registryURL(crossrefBase(s.Config), "/works/"+doi, params)
	if err != nil {
		return nil, err
	}

	var cr crossrefResponse
	if err := httputil.GetJSON(ctx, clientOrDefault(s.Client), apiURL, userAgentHeader(s.Config.HTTPConfig), &cr); err != nil {
		return nil, fmt.Errorf("CrossRef works lookup: %w", err)
	}
	if cr.Message == nil {
		return nil, fmt.Errorf("CrossRef response has no message: %w", ErrNoRecord)
	}
	return mapCrossRefWork(*cr.Message, doi), nil
}

func crossrefBase(cfg types.SourcesConfig) string {
	if cfg.CrossRefURL != "" {
		return strings.TrimRight(cfg.CrossRefURL, "/")
	}
	return crossrefAPIBase
}

// mapCrossRefWork converts a CrossRef work into a PaperRecord. The record's
// DOI is the normalized lookup key, not the registry's echo of it.
func mapCrossRefWork(w crossrefWork, doi string) *types.PaperRecord {
	p := &types.PaperRecord{
		DOI:        doi,
		Abstract:   w.Abstract,
		Year:       w.PublishedPrint.year(),
		Authors:    make([]string, 0, len(w.Author)),
		References: make([]types.ReferenceRecord, 0, len(w.Reference)),
	}
	if len(w.Title) > 0 {
		p.Title = w.Title[0]
	}
	for _, a := range w.Author {
		p.Authors = append(p.Authors, strings.TrimSpace(a.Given+" "+a.Family))
	}
	for _, r := range w.Reference {
		p.References = append(p.References, mapCrossRefReference(r))
	}
	return p
}

// mapCrossRefReference applies the best-effort reference rules: the title
// prefers article-title and falls back to the unstructured text, and the
// author string is split naively on commas. The split does not parse name
// structure, so "Smith, J." yields two pieces; that loss is accepted.
func mapCrossRefReference(r crossrefReference) types.ReferenceRecord {
	ref := types.ReferenceRecord{
		Key:                r.Key,
		DOI:                r.DOI,
		Year:               r.Year,
		Authors:            []string{},
		VerificationStatus: types.VerificationPending,
	}
	if r.Unstructured != nil {
		ref.Unstructured = *r.Unstructured
	}
	switch {
	case r.ArticleTitle != nil:
		ref.Title = *r.ArticleTitle
	case r.Unstructured != nil:
		ref.Title = *r.Unstructured
	}
	if r.Author != nil {
		ref.Authors = strings.Split(*r.Author, ",")
	}
	return ref
}

// CrossRef API JSON structures.
type crossrefResponse struct {
	Message *crossrefWork `json:"message"`
}

type crossrefWork struct {
	DOI            string              `json:"DOI"`
	Title          []string            `json:"title"`
	Abstract       string              `json:"abstract"`
	Author         []crossrefAuthor    `json:"author"`
	PublishedPrint crossrefDate        `json:"published-print"`
	Reference      []crossrefReference `json:"reference"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// crossrefDate holds CrossRef date-parts, e.g. [[2019, 5, 14]]. Parts may be
// null in partial deposits, hence json.Number.
type crossrefDate struct {
	DateParts [][]json.Number `json:"date-parts"`
}

// year returns the first element of the first date-parts group as a
// string, or "" when absent.
func (d crossrefDate) year() string {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return ""
	}
	return d.DateParts[0][0].String()
}

// crossrefReference uses pointers where presence matters more than value.
type crossrefReference struct {
	Key          string  `json:"key"`
	DOI          string  `json:"DOI"`
	ArticleTitle *string `json:"article-title"`
	Unstructured *string `json:"unstructured"`
	Author       *string `json:"author"`
	Year         string  `json:"year"`
}
