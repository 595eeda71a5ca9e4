// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "slices"

// VerificationStatus tracks whether a cited reference has been checked
// against an external registry. Only VerificationPending is produced today.
type VerificationStatus string

const (
	VerificationPending VerificationStatus = "pending"
)

// ReferenceRecord is one entry of a paper's reference list as reported by
// CrossRef. Fields are best-effort: CrossRef deposits vary widely.
type ReferenceRecord struct {
	// Key is the source-local reference identifier (e.g. "ref12").
	Key string `json:"key" yaml:"key"`

	// DOI is the cited work's DOI, empty when the depositor did not supply one.
	DOI string `json:"doi" yaml:"doi"`

	// Title prefers the structured article title and falls back to the
	// unstructured citation text.
	Title string `json:"title" yaml:"title"`

	// Authors is the deposited author string split on commas. Pieces keep
	// their surrounding whitespace and are not deduplicated.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year as deposited.
	Year string `json:"year" yaml:"year"`

	// Unstructured is the raw citation text supplied by the depositor.
	Unstructured string `json:"unstructured" yaml:"unstructured"`

	// VerificationStatus is always "pending" until a verification step exists.
	VerificationStatus VerificationStatus `json:"verification_status" yaml:"verification_status"`
}

// PaperRecord is the normalized metadata for one paper. Both registry
// adapters produce it and the reconciler merges two of them into one.
type PaperRecord struct {
	// Title is the paper title; may be empty.
	Title string `json:"title" yaml:"title"`

	// Authors lists display names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is string-typed because sources disagree on its shape; may be
	// empty or non-numeric.
	Year string `json:"year" yaml:"year"`

	// DOI is always normalized (see internal/doi).
	DOI string `json:"doi" yaml:"doi"`

	// Abstract is the paper abstract; may be empty.
	Abstract string `json:"abstract" yaml:"abstract"`

	// References is only ever populated from CrossRef.
	References []ReferenceRecord `json:"references" yaml:"references"`
}

// Clone returns a deep copy of the record so merges never alias inputs.
func (p *PaperRecord) Clone() *PaperRecord {
	if p == nil {
		return nil
	}
	c := *p
	c.Authors = slices.Clone(p.Authors)
	if p.References != nil {
		c.References = make([]ReferenceRecord, len(p.References))
		for i, r := range p.References {
			r.Authors = slices.Clone(r.Authors)
			c.References[i] = r
		}
	}
	return &c
}

// RetractionMatch is a retraction notice whose title matched a title query.
type RetractionMatch struct {
	Title string `json:"title" yaml:"title"`
	DOI   string `json:"doi" yaml:"doi"`
}
