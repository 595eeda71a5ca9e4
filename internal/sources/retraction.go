// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/verifai/internal/httputil"
	"github.com/pdiddy/verifai/internal/logging"
	"github.com/pdiddy/verifai/pkg/types"
)

// retractionFilter restricts CrossRef works queries to retraction notices.
const retractionFilter = "type:retraction"

// ErrNoTitle is the reason a retraction check was skipped.
var ErrNoTitle = errors.New("no title to search retractions for")

// RetractionResult is the outcome of a retraction check. A failed check
// has no matches and a non-nil Err; it is never escalated.
type RetractionResult struct {
	Matches []types.RetractionMatch
	Err     error
}

// Checked reports whether the registry actually answered.
func (r RetractionResult) Checked() bool { return r.Err == nil }

// RetractionRegistry searches CrossRef for retraction notices whose titles
// match a paper title. Relevance is entirely the registry's: every item it
// returns for the query counts as a match.
type RetractionRegistry struct {
	Client *http.Client
	Config types.SourcesConfig
}

// Check queries retraction notices by title.
func (r *RetractionRegistry) Check(ctx context.Context, title string) RetractionResult {
	log := logging.FromContext(logging.WithSource(ctx, "crossref_retractions"))

	// An empty query.title matches arbitrary retraction notices.
	if strings.TrimSpace(title) == "" {
		log.Warn().Msg("paper has no title, skipping retraction check")
		return RetractionResult{Matches: []types.RetractionMatch{}, Err: ErrNoTitle}
	}

	matches, err := r.search(ctx, title)
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("retraction check failed")
		return RetractionResult{Matches: []types.RetractionMatch{}, Err: err}
	}
	log.Debug().Int("matches", len(matches)).Msg("retraction check complete")
	return RetractionResult{Matches: matches}
}

func (r *RetractionRegistry) search(ctx context.Context, title string) ([]types.RetractionMatch, error) {
	params := url.Values{
		"query.title": {title},
		"filter":      {retractionFilter},
	}
	if r.Config.Mailto != "" {
		params.Set("mailto", r.Config.Mailto)
	}
	apiURL, err := registryURL(crossrefBase(r.Config), "/works", params)
	if err != nil {
		return nil, err
	}

	var resp crossrefSearchResponse
	if err := httputil.GetJSON(ctx, clientOrDefault(r.Client), apiURL, userAgentHeader(r.Config.HTTPConfig), &resp); err != nil {
		return nil, fmt.Errorf("CrossRef retraction search: %w", err)
	}

	matches := make([]types.RetractionMatch, 0, len(resp.Message.Items))
	for _, item := range resp.Message.Items {
		m := types.RetractionMatch{DOI: item.DOI}
		if len(item.Title) > 0 {
			m.Title = item.Title[0]
		}
		matches = append(matches, m)
	}
	return matches, nil
}

type crossrefSearchResponse struct {
	Message struct {
		Items []crossrefSearchItem `json:"items"`
	} `json:"message"`
}

type crossrefSearchItem struct {
	Title []string `json:"title"`
	DOI   string   `json:"DOI"`
}
