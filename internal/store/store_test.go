package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"league-recon/internal/resolve/model"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func decision() model.MatchDecision {
	tgt := model.PlayerRecord{SourceID: "t1", DisplayName: "Karl-Anthony Towns", Origin: "store"}
	return model.MatchDecision{
		Tier: model.TierAutoMatch,
		Source: model.PlayerRecord{
			SourceID:    "s1",
			DisplayName: "Karl Anthony Towns",
			Origin:      "sheet",
			ExternalIDs: map[string]string{"platform_a": "32", "platform_b": "kat"},
		},
		Target:     &tgt,
		Similarity: model.SimilarityResult{Score: 1.0, Basis: model.BasisExactVariant},
	}
}

func TestApplyWritesAllIdentifiers(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, decision()))

	links, err := s.Links(ctx, "store", "t1")
	require.NoError(t, err)
	require.Len(t, links, 3) // source system + two external systems

	systems := map[string]string{}
	for _, l := range links {
		systems[l.System] = l.ExternalID
	}
	assert.Equal(t, "s1", systems["sheet"])
	assert.Equal(t, "32", systems["platform_a"])
	assert.Equal(t, "kat", systems["platform_b"])
}

func TestApplyIsIdempotent(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	d := decision()
	require.NoError(t, s.Apply(ctx, d))
	require.NoError(t, s.Apply(ctx, d)) // re-run after partial failure

	links, err := s.Links(ctx, "store", "t1")
	require.NoError(t, err)
	assert.Len(t, links, 3, "re-applying must not duplicate links")
}

func TestApplyUpdatesExistingLink(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	d := decision()
	require.NoError(t, s.Apply(ctx, d))

	d.Source.ExternalIDs = map[string]string{"platform_a": "99"}
	require.NoError(t, s.Apply(ctx, d))

	links, err := s.Links(ctx, "store", "t1")
	require.NoError(t, err)
	for _, l := range links {
		if l.System == "platform_a" {
			assert.Equal(t, "99", l.ExternalID)
		}
	}
}

func TestApplyRejectsNoMatchDecision(t *testing.T) {
	s := openTest(t)
	d := decision()
	d.Target = nil
	assert.Error(t, s.Apply(context.Background(), d))
}
