package service

import (
	"league-recon/internal/resolve/model"
)

// Classify maps a similarity (plus exact-ID evidence) onto a decision tier.
// Evaluated top-down, first match wins. Exact external-ID equality is the
// only non-heuristic signal and always outranks the score.
func Classify(src model.PlayerRecord, tgt *model.PlayerRecord, sim model.SimilarityResult, hasExactExternalID bool, t model.Thresholds) model.MatchDecision {
	d := model.MatchDecision{Source: src, Target: tgt, Similarity: sim}
	switch {
	case hasExactExternalID:
		d.Tier = model.TierIdentical
	case sim.Score >= t.Auto || sim.Basis == model.BasisExactVariant:
		d.Tier = model.TierAutoMatch
	case sim.Score >= t.Review:
		d.Tier = model.TierNeedsReview
	case sim.Score >= t.Weak:
		d.Tier = model.TierWeakCandidate
	default:
		d.Tier = model.TierNoMatch
		d.Target = nil
	}
	return d
}

// HasExactExternalID reports whether the two records already share an
// identifier from the same external system.
func HasExactExternalID(a, b model.PlayerRecord) bool {
	for sys, id := range a.ExternalIDs {
		if id == "" {
			continue
		}
		if other, ok := b.ExternalIDs[sys]; ok && other == id {
			return true
		}
	}
	return false
}
