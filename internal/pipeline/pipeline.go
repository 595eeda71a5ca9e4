// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one DOI through lookup, reconciliation, citation
// synthesis, and the retraction check, and is the single failure boundary
// of the system: every run ends in a ResultEnvelope.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"

	"github.com/pdiddy/verifai/internal/doi"
	"github.com/pdiddy/verifai/internal/logging"
	"github.com/pdiddy/verifai/internal/reconcile"
	"github.com/pdiddy/verifai/internal/sources"
	"github.com/pdiddy/verifai/pkg/types"
)

// ErrPaperNotFound is reported when neither registry produced a record.
// Its text is part of the output contract.
var ErrPaperNotFound = errors.New("Paper not found")

// Synthesizer produces a citation string for a reconciled record.
type Synthesizer interface {
	Synthesize(ctx context.Context, p types.PaperRecord) (string, error)
}

// RetractionChecker searches retraction notices by title.
type RetractionChecker interface {
	Check(ctx context.Context, title string) sources.RetractionResult
}

// Pipeline holds the collaborators for a run. Primary is the authoritative
// registry (references and DOI come from it); Secondary supplements it.
type Pipeline struct {
	Primary     sources.Source
	Secondary   sources.Source
	Synthesizer Synthesizer
	Retractions RetractionChecker

	// NewRunID generates run identifiers. Defaults to uuid.NewString.
	NewRunID func() string
}

// Run resolves rawDOI into a result envelope. It never returns an error and
// never panics: failures and recovered panics become failure envelopes.
func (p *Pipeline) Run(ctx context.Context, rawDOI string) (env types.ResultEnvelope) {
	newID := p.NewRunID
	if newID == nil {
		newID = uuid.NewString
	}
	ctx = logging.WithRunID(ctx, newID())
	log := logging.FromContext(ctx)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("pipeline panicked")
			env = types.Failure(fmt.Sprintf("panic: %v", r))
		}
	}()

	d := doi.Normalize(rawDOI)
	log.Info().Str("doi", d).Msg("pipeline started")

	paper, err := p.run(ctx, d)
	if err != nil {
		log.Warn().Err(err).Str("doi", d).Dur("elapsed", time.Since(start)).Msg("pipeline failed")
		return types.Failure(err.Error())
	}

	log.Info().Str("doi", d).Bool("retracted", paper.IsRetracted).
		Dur("elapsed", time.Since(start)).Msg("pipeline finished")
	return types.ResultEnvelope{Success: true, Paper: paper}
}

func (p *Pipeline) run(ctx context.Context, d string) (*types.CitedPaper, error) {
	primary, secondary, err := p.fetchBoth(ctx, d)
	if err != nil {
		return nil, err
	}

	merged := reconcile.Merge(primary, secondary)
	if merged == nil {
		return nil, ErrPaperNotFound
	}

	citation, err := p.Synthesizer.Synthesize(ctx, *merged)
	if err != nil {
		return nil, err
	}

	retraction := p.Retractions.Check(ctx, merged.Title)
	if !retraction.Checked() {
		logging.FromContext(ctx).Warn().Err(retraction.Err).Msg("retraction status unknown, reporting not retracted")
	}

	return types.NewCitedPaper(*merged, citation, retraction.Matches), nil
}

// fetchBoth queries both registries concurrently. A panic in either lookup
// is recovered and returned as an error.
func (p *Pipeline) fetchBoth(ctx context.Context, d string) (primary, secondary *types.PaperRecord, err error) {
	var a, b sources.LookupResult

	wg := conc.NewWaitGroup()
	wg.Go(func() { a = p.Primary.Lookup(ctx, d) })
	wg.Go(func() { b = p.Secondary.Lookup(ctx, d) })
	if rec := wg.WaitAndRecover(); rec != nil {
		logging.FromContext(ctx).Error().Interface("panic", rec.Value).
			Bytes("stack", rec.Stack).Msg("registry lookup panicked")
		return nil, nil, fmt.Errorf("panic: %v", rec.Value)
	}

	primary, _ = a.Record()
	secondary, _ = b.Record()
	return primary, secondary, nil
}
