package service

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"league-recon/internal/resolve/model"
)

// Score compares two raw names, strongest signal first: variant-set
// intersection (1.0), canonical substring containment (0.95), then the
// token-overlap ratio. The score is always in [0,1].
//
// Degenerate case: two names that both normalize to empty score 1.0; there
// is nothing left to distinguish. Callers that can see empty names must
// treat that as "no signal", not as a perfect match (the workflow does).
func Score(a, b string, nicknames model.NicknameTable) model.SimilarityResult {
	na, nb := Normalize(a), Normalize(b)
	if na == "" && nb == "" {
		return model.SimilarityResult{Score: 1.0, Basis: model.BasisExactVariant}
	}

	va := variantSet(a, nicknames)
	for v := range variantSet(b, nicknames) {
		if _, ok := va[v]; ok {
			return model.SimilarityResult{Score: 1.0, Basis: model.BasisExactVariant}
		}
	}

	// a legal full name containing the commonly used shorter form
	if na != "" && nb != "" && (strings.Contains(na, nb) || strings.Contains(nb, na)) {
		return model.SimilarityResult{Score: 0.95, Basis: model.BasisContainment}
	}

	return model.SimilarityResult{Score: tokenOverlap(na, nb), Basis: model.BasisTokenOverlap}
}

// tokenOverlap counts multiset token membership: overlap / max(len A, len B).
func tokenOverlap(na, nb string) float64 {
	ta := strings.Fields(na)
	tb := strings.Fields(nb)
	if len(ta) == 0 && len(tb) == 0 {
		return 1.0
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	remaining := make(map[string]int, len(tb))
	for _, t := range tb {
		remaining[t]++
	}
	overlap := 0
	for _, t := range ta {
		if remaining[t] > 0 {
			remaining[t]--
			overlap++
		}
	}

	max := len(ta)
	if len(tb) > max {
		max = len(tb)
	}
	return float64(overlap) / float64(max)
}

// EditScore is the fallback scorer for callers that need a smooth,
// always-defined metric over a large unmatched pool: normalized Levenshtein
// ratio on canonical forms. Not layered on top of Score.
func EditScore(a, b string) model.SimilarityResult {
	na, nb := Normalize(a), Normalize(b)
	if na == "" && nb == "" {
		return model.SimilarityResult{Score: 1.0, Basis: model.BasisEditDistance}
	}

	d := levenshtein.ComputeDistance(na, nb)
	max := utf8.RuneCountInString(na)
	if n := utf8.RuneCountInString(nb); n > max {
		max = n
	}
	return model.SimilarityResult{
		Score: float64(max-d) / float64(max),
		Basis: model.BasisEditDistance,
	}
}
