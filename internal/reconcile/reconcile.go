// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile merges the CrossRef and Semantic Scholar records for one
// DOI into a single PaperRecord.
//
// Each field is resolved on its own; the sources never have to agree.
// CrossRef (primary) is authoritative for structure, references, and the
// DOI. Semantic Scholar (secondary) wins on:
//
//	title     when strictly longer (characters)
//	authors   when non-empty and at least as many
//	abstract  when the primary has none
//	year      whenever it has one
package reconcile

import (
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/verifai/pkg/types"
)

// Merge reconciles primary and secondary. It returns nil only when both are
// nil. Inputs are never modified; the result shares no slices with them.
func Merge(primary, secondary *types.PaperRecord) *types.PaperRecord {
	if primary == nil {
		return secondary.Clone()
	}
	merged := primary.Clone()
	if secondary == nil {
		return merged
	}

	if charCount(secondary.Title) > charCount(merged.Title) {
		merged.Title = secondary.Title
	}
	if len(secondary.Authors) > 0 && len(secondary.Authors) >= len(merged.Authors) {
		merged.Authors = slices.Clone(secondary.Authors)
	}
	if merged.Abstract == "" && secondary.Abstract != "" {
		merged.Abstract = secondary.Abstract
	}
	if secondary.Year != "" {
		merged.Year = secondary.Year
	}
	return merged
}

// charCount counts user-perceived characters closely enough for comparing
// titles: runes after NFC composition, so "é" decomposed counts once.
func charCount(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}
