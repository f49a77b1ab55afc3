package service

import (
	"league-recon/internal/resolve/model"
)

// DefaultClusterThreshold is the score at which two records are carried into
// the same duplicate cluster.
const DefaultClusterThreshold = 0.85

// Cluster partitions a record set into groups of mutually similar records
// for duplicate-audit reports. Greedy single pass: each unclustered record
// seeds a cluster and absorbs every later unclustered record scoring at or
// above the threshold against the seed. A record lands in at most one
// cluster; singletons are dropped from the output.
//
// Records whose name normalizes to empty carry no signal and are left out
// entirely: the both-empty degenerate 1.0 score must never surface as a
// perfect-duplicate cluster.
//
// Pairwise O(n²); working sets are a few thousand records, so no index.
func Cluster(records []model.PlayerRecord, threshold float64, nicknames model.NicknameTable) []model.DuplicateCluster {
	if threshold <= 0 {
		threshold = DefaultClusterThreshold
	}

	taken := make([]bool, len(records))
	norms := make([]string, len(records))
	for i, r := range records {
		norms[i] = Normalize(r.DisplayName)
	}
	var out []model.DuplicateCluster

	for i := range records {
		if taken[i] || norms[i] == "" {
			continue
		}
		cl := model.DuplicateCluster{Members: []model.PlayerRecord{records[i]}}
		for j := i + 1; j < len(records); j++ {
			if taken[j] || norms[j] == "" {
				continue
			}
			sim := Score(records[i].DisplayName, records[j].DisplayName, nicknames)
			if sim.Score < threshold {
				continue
			}
			taken[j] = true
			cl.Members = append(cl.Members, records[j])
			if sim.Score > cl.MaxSimilarity {
				cl.MaxSimilarity = sim.Score
			}
		}
		if len(cl.Members) > 1 {
			out = append(out, cl)
		}
	}
	return out
}
