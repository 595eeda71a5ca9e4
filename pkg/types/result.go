// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the verifai pipeline:
// the normalized paper record, its references, retraction matches, the
// result envelope written to stdout, and configuration.
package types

// CitedPaper is the reconciled paper extended with the generated citation
// and the retraction verdict.
type CitedPaper struct {
	PaperRecord `yaml:",inline"`

	// Citation is the model-generated citation text, used verbatim.
	Citation string `json:"citation" yaml:"citation"`

	// IsRetracted is true exactly when RetractionInfo is non-empty.
	IsRetracted bool `json:"is_retracted" yaml:"is_retracted"`

	// RetractionInfo lists matching retraction notices; omitted unless IsRetracted.
	RetractionInfo []RetractionMatch `json:"retraction_info,omitempty" yaml:"retraction_info,omitempty"`
}

// ResultEnvelope is the single document produced per run.
type ResultEnvelope struct {
	Success bool        `json:"success" yaml:"success"`
	Paper   *CitedPaper `json:"paper,omitempty" yaml:"paper,omitempty"`
	Error   string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failure builds an unsuccessful envelope carrying msg.
func Failure(msg string) ResultEnvelope {
	return ResultEnvelope{Success: false, Error: msg}
}

// NewCitedPaper assembles the output paper. The retraction flag is derived
// from matches so the two can never disagree.
func NewCitedPaper(p PaperRecord, citation string, matches []RetractionMatch) *CitedPaper {
	cp := &CitedPaper{
		PaperRecord: p,
		Citation:    citation,
		IsRetracted: len(matches) > 0,
	}
	if cp.IsRetracted {
		cp.RetractionInfo = matches
	}
	return cp
}
