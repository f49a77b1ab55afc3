package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"league-recon/internal/resolve/model"
)

func TestClusterGroupsDuplicates(t *testing.T) {
	records := []model.PlayerRecord{
		rec("1", "Karl-Anthony Towns", nil),
		rec("2", "Mike Conley", nil),
		rec("3", "Karl Anthony Towns", nil),
		rec("4", "LeBron James", nil),
		rec("5", "Michael Conley", nil),
	}
	clusters := Cluster(records, 0.85, model.DefaultNicknames())

	assert.Len(t, clusters, 2)

	// insertion order of first-seen representative
	assert.Equal(t, "1", clusters[0].Members[0].SourceID)
	assert.Equal(t, []string{"1", "3"}, memberIDs(clusters[0]))
	assert.Equal(t, []string{"2", "5"}, memberIDs(clusters[1]))
	assert.Equal(t, 1.0, clusters[0].MaxSimilarity)

	// singletons ("LeBron James") are not reported
	for _, c := range clusters {
		assert.Greater(t, len(c.Members), 1)
	}
}

// every record lands in at most one cluster
func TestClusterIsPartition(t *testing.T) {
	records := []model.PlayerRecord{
		rec("1", "Jabari Smith", nil),
		rec("2", "Jabari Smith Jr.", nil),
		rec("3", "Jabari Smith Sr.", nil),
		rec("4", "Jabari Walker", nil),
		rec("5", "Nikola Jokic", nil),
		rec("6", "Nikola Jokic", nil),
	}
	clusters := Cluster(records, 0.85, model.DefaultNicknames())

	seen := map[string]int{}
	for _, c := range clusters {
		for _, m := range c.Members {
			seen[m.SourceID]++
		}
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "record %s in %d clusters", id, n)
	}
}

func TestClusterThresholdZeroUsesDefault(t *testing.T) {
	records := []model.PlayerRecord{
		rec("1", "Nikola Jokic", nil),
		rec("2", "Nikola Jokic", nil),
	}
	clusters := Cluster(records, 0, model.DefaultNicknames())
	assert.Len(t, clusters, 1)
}

func TestClusterIgnoresEmptyNames(t *testing.T) {
	// punctuation-only names normalize to empty; the degenerate 1.0 score
	// must not report them as perfect duplicates of each other
	records := []model.PlayerRecord{
		rec("1", "...", nil),
		rec("2", "-", nil),
		rec("3", "Nikola Jokic", nil),
	}
	assert.Empty(t, Cluster(records, 0.85, model.DefaultNicknames()))

	// and they never join a real cluster either
	records = append(records, rec("4", "Nikola Jokic", nil))
	clusters := Cluster(records, 0.85, model.DefaultNicknames())
	require.Len(t, clusters, 1)
	assert.Equal(t, []string{"3", "4"}, memberIDs(clusters[0]))
}

func TestClusterEmptyInput(t *testing.T) {
	assert.Empty(t, Cluster(nil, 0.85, model.DefaultNicknames()))
}

func memberIDs(c model.DuplicateCluster) []string {
	out := make([]string, len(c.Members))
	for i, m := range c.Members {
		out[i] = m.SourceID
	}
	return out
}
