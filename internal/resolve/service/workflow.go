package service

import (
	"context"
	"errors"
	"fmt"

	"league-recon/internal/resolve/model"
)

// ErrInvalidRecord is returned when an input record is missing its source id
// or origin tag. Failing fast here beats coercing: a silently empty field
// would surface later as a false positive.
var ErrInvalidRecord = errors.New("invalid record")

// Sink persists one confirmed mapping. Implementations must be idempotent:
// re-applying the same confirmed mapping must not create a duplicate link.
type Sink interface {
	Apply(ctx context.Context, d model.MatchDecision) error
}

// Resolve matches every source record against the target list and routes the
// decisions into three disjoint buckets: confirmed mappings, items for manual
// review, and unmatched sources.
//
// Order of play per source record: exact external-ID link first (Identical,
// no scoring), then best-scoring candidate across all not-yet-consumed
// targets, classified against the thresholds. A confirmed or accepted match
// consumes its target; a target is matched by at most one source per run.
// Sources whose name normalizes to empty carry no signal and go straight to
// unmatched (see the Score degenerate case).
//
// Review-tier routing: an interactive Confirm callback gates one decision at
// a time; without a callback, AcceptAbove > 0 auto-accepts at or above that
// score and everything else in the tier is reported in NeedsReview.
//
// When opt.Apply is set, confirmed mappings are pushed through the sink; a
// failed write is reported in ApplyFailures and never aborts the rest of the
// batch.
func Resolve(ctx context.Context, src, tgt []model.PlayerRecord, opt model.Options, sink Sink) (model.Result, error) {
	if err := validateRecords("source", src); err != nil {
		return model.Result{}, err
	}
	if err := validateRecords("target", tgt); err != nil {
		return model.Result{}, err
	}
	if opt.Thresholds == (model.Thresholds{}) {
		opt.Thresholds = model.DefaultThresholds()
	}
	if opt.Nicknames == nil {
		opt.Nicknames = model.DefaultNicknames()
	}

	res := model.Result{
		Confirmed:   []model.MatchDecision{},
		NeedsReview: []model.MatchDecision{},
		Unmatched:   []model.PlayerRecord{},
		Opts:        opt,
	}
	consumed := make([]bool, len(tgt))

	// external-id index over targets: system\x00id -> target index
	byExt := make(map[string]int)
	for j, t := range tgt {
		for sys, id := range t.ExternalIDs {
			if id == "" {
				continue
			}
			key := sys + "\x00" + id
			if prev, ok := byExt[key]; !ok || j < prev {
				byExt[key] = j
			}
		}
	}

	confirm := func(d model.MatchDecision, ti int) {
		res.Confirmed = append(res.Confirmed, d)
		consumed[ti] = true
	}

	for _, s := range src {
		// (1) exact external id already recorded on both sides
		if ti := linkedTarget(s, byExt, consumed); ti >= 0 {
			t := tgt[ti]
			sim := Score(s.DisplayName, t.DisplayName, opt.Nicknames)
			confirm(Classify(s, &t, sim, true, opt.Thresholds), ti)
			continue
		}

		// (2) no canonical form, no signal
		if Normalize(s.DisplayName) == "" {
			res.Unmatched = append(res.Unmatched, s)
			continue
		}

		// (3) best-scoring candidate over unconsumed targets
		best, bestSim, ties := -1, model.SimilarityResult{}, 0
		for j := range tgt {
			if consumed[j] || Normalize(tgt[j].DisplayName) == "" {
				continue
			}
			sim := Score(s.DisplayName, tgt[j].DisplayName, opt.Nicknames)
			switch {
			case best < 0 || sim.Score > bestSim.Score:
				best, bestSim, ties = j, sim, 1
			case sim.Score == bestSim.Score:
				ties++
				// prefer the target carrying data from the fewest other
				// origins, to avoid over-consolidating an already-merged record
				if len(tgt[j].ExternalIDs) < len(tgt[best].ExternalIDs) {
					best, bestSim = j, sim
				}
			}
		}
		if best < 0 {
			res.Unmatched = append(res.Unmatched, s)
			continue
		}

		t := tgt[best]
		d := Classify(s, &t, bestSim, false, opt.Thresholds)

		// two distinct targets tied at the top score: never auto-match, a
		// human has to pick (suffix stripping can make family members collide)
		if ties > 1 && d.Tier == model.TierAutoMatch {
			d.Tier = model.TierNeedsReview
		}

		switch d.Tier {
		case model.TierIdentical, model.TierAutoMatch:
			confirm(d, best)
		case model.TierNeedsReview:
			routeReview(&res, d, best, opt, confirm)
		case model.TierWeakCandidate:
			if opt.IncludeWeak {
				routeReview(&res, d, best, opt, confirm)
			} else {
				res.Unmatched = append(res.Unmatched, s)
			}
		default:
			res.Unmatched = append(res.Unmatched, s)
		}
	}

	if opt.Apply && sink != nil {
		for _, d := range res.Confirmed {
			if err := sink.Apply(ctx, d); err != nil {
				res.ApplyFailures = append(res.ApplyFailures, model.ApplyFailure{
					Decision: d,
					Error:    err.Error(),
				})
			}
		}
	}

	return res, nil
}

// routeReview gates one review-tier decision: interactive callback if set,
// otherwise the AcceptAbove policy, otherwise report-only. Only an accepted
// decision consumes its target.
func routeReview(res *model.Result, d model.MatchDecision, ti int, opt model.Options, confirm func(model.MatchDecision, int)) {
	switch {
	case opt.Confirm != nil:
		if opt.Confirm(d) {
			confirm(d, ti)
		} else {
			res.Unmatched = append(res.Unmatched, d.Source)
		}
	case opt.AcceptAbove > 0 && d.Similarity.Score >= opt.AcceptAbove:
		confirm(d, ti)
	default:
		res.NeedsReview = append(res.NeedsReview, d)
	}
}

func linkedTarget(s model.PlayerRecord, byExt map[string]int, consumed []bool) int {
	best := -1
	for sys, id := range s.ExternalIDs {
		if id == "" {
			continue
		}
		if j, ok := byExt[sys+"\x00"+id]; ok && !consumed[j] {
			if best < 0 || j < best {
				best = j
			}
		}
	}
	return best
}

func validateRecords(side string, recs []model.PlayerRecord) error {
	for i, r := range recs {
		if r.SourceID == "" {
			return fmt.Errorf("%s record %d (%q): %w: empty source id", side, i, r.DisplayName, ErrInvalidRecord)
		}
		if r.Origin == "" {
			return fmt.Errorf("%s record %d (%q): %w: empty origin", side, i, r.DisplayName, ErrInvalidRecord)
		}
	}
	return nil
}
