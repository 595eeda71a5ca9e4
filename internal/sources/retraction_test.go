// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/verifai/pkg/types"
)

func TestRetractionCheckRequest(t *testing.T) {
	var gotPath, gotTitle, gotFilter string
	serveCrossRef(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTitle = r.URL.Query().Get("query.title")
		gotFilter = r.URL.Query().Get("filter")
		fmt.Fprint(w, `{"message":{"items":[]}}`)
	})

	rr := &RetractionRegistry{Config: testCfg()}
	res := rr.Check(context.Background(), "Deep Learning & You")

	assert.True(t, res.Checked())
	assert.Empty(t, res.Matches)
	assert.Equal(t, "/works", gotPath)
	assert.Equal(t, "Deep Learning & You", gotTitle)
	assert.Equal(t, "type:retraction", gotFilter)
}

func TestRetractionCheckMatches(t *testing.T) {
	serveCrossRef(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"message":{"items":[
			{"title":["X"],"DOI":"10.2/Y"},
			{"title":["Retraction: Something else"],"DOI":"10.3/Z"},
			{"DOI":"10.4/untitled"}
		]}}`)
	})

	rr := &RetractionRegistry{Config: testCfg()}
	res := rr.Check(context.Background(), "X")

	require.True(t, res.Checked())
	assert.Equal(t, []types.RetractionMatch{
		{Title: "X", DOI: "10.2/Y"},
		{Title: "Retraction: Something else", DOI: "10.3/Z"},
		{Title: "", DOI: "10.4/untitled"},
	}, res.Matches)
}

func TestRetractionCheckFailureIsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"500", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"malformed json", func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, `{"message":`) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serveCrossRef(t, tt.handler)
			rr := &RetractionRegistry{Config: testCfg()}
			res := rr.Check(context.Background(), "X")
			assert.False(t, res.Checked())
			assert.Error(t, res.Err)
			assert.NotNil(t, res.Matches)
			assert.Empty(t, res.Matches)
		})
	}
}

func TestRetractionCheckSkipsEmptyTitle(t *testing.T) {
	calls := 0
	serveCrossRef(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		fmt.Fprint(w, `{"message":{"items":[{"title":["Unrelated"],"DOI":"10.9/x"}]}}`)
	})

	rr := &RetractionRegistry{Config: testCfg()}
	for _, title := range []string{"", "  \t"} {
		res := rr.Check(context.Background(), title)
		assert.False(t, res.Checked())
		assert.ErrorIs(t, res.Err, ErrNoTitle)
		assert.NotNil(t, res.Matches)
		assert.Empty(t, res.Matches)
	}
	assert.Zero(t, calls, "no registry request without a title")
}
