// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources adapts the external metadata registries (CrossRef and
// Semantic Scholar) and the CrossRef retraction filter into verifai's
// normalized types.
//
// Lookups never fail hard. A transport error, non-200 response, or
// malformed payload becomes an explicit Absent result carrying the reason,
// so callers can tell "no data" apart from a record.
package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/verifai/internal/logging"
	"github.com/pdiddy/verifai/pkg/types"
)

// ErrNoRecord is the reason for an Absent result when the registry answered
// but carried nothing usable.
var ErrNoRecord = errors.New("no record")

// Source looks up a paper by normalized DOI in one registry.
type Source interface {
	Name() string
	Lookup(ctx context.Context, doi string) LookupResult
}

// LookupResult is either Found with a record or Absent with a reason.
type LookupResult struct {
	source string
	record *types.PaperRecord
	reason error
}

// Found wraps a successfully normalized record.
func Found(source string, rec *types.PaperRecord) LookupResult {
	if rec == nil {
		return Absent(source, ErrNoRecord)
	}
	return LookupResult{source: source, record: rec}
}

// Absent records that source produced no data, and why.
func Absent(source string, reason error) LookupResult {
	if reason == nil {
		reason = ErrNoRecord
	}
	return LookupResult{source: source, reason: reason}
}

// Source names the registry that produced the result.
func (r LookupResult) Source() string { return r.source }

// Record returns the record and true when the lookup found one.
func (r LookupResult) Record() (*types.PaperRecord, bool) {
	return r.record, r.record != nil
}

// Reason explains an Absent result; nil when Found.
func (r LookupResult) Reason() error { return r.reason }

// lookup runs fetch and folds any error into an Absent result, logging it
// at warn level.
func lookup(ctx context.Context, name, doi string, fetch func(context.Context, string) (*types.PaperRecord, error)) LookupResult {
	ctx = logging.WithSource(ctx, name)
	log := logging.FromContext(ctx)

	rec, err := fetch(ctx, doi)
	if err != nil {
		log.Warn().Err(err).Str("doi", doi).Msg("metadata lookup failed")
		return Absent(name, err)
	}
	log.Debug().Str("doi", doi).Int("authors", len(rec.Authors)).Msg("metadata lookup succeeded")
	return Found(name, rec)
}

// userAgentHeader builds the request headers shared by all registries.
func userAgentHeader(cfg types.HTTPConfig) http.Header {
	h := http.Header{}
	if cfg.UserAgent != "" {
		h.Set("User-Agent", cfg.UserAgent)
	}
	return h
}

// registryURL appends path to base with path escaping, so DOI characters
// such as '#', '?' and '%' stay part of the path instead of starting a
// fragment or query.
func registryURL(base, path string, query url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing registry URL %q: %w", base, err)
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawPath = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func clientOrDefault(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return http.DefaultClient
}
