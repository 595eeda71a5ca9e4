// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package doi normalizes Digital Object Identifiers before they are used as
// lookup keys or written to output.
package doi

import (
	"regexp"
	"strings"
)

// resolverPrefixes are stripped case-insensitively. Order matters: longer
// prefixes that share a stem come first.
var resolverPrefixes = []string{
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"https://doi.org/",
	"http://doi.org/",
	"doi:",
}

// doiPattern matches DOIs: "10.1145/1234567.1234568", "10.1000.10/abc".
// Registrant codes are any digit run, optionally with dotted subdivisions.
var doiPattern = regexp.MustCompile(`^10\.\d+(\.\d+)*/\S+$`)

// Normalize trims whitespace and strips one resolver-URL or "doi:" prefix.
// Case is preserved. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, p := range resolverPrefixes {
		if strings.HasPrefix(lower, p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}
	return s
}

// Valid reports whether a normalized DOI has the 10.<registrant>/<suffix>
// shape. It is a heuristic for warnings only; the registries decide.
func Valid(normalized string) bool {
	return doiPattern.MatchString(normalized)
}
