package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"league-recon/internal/resolve/model"
)

func TestScoreExactVariant(t *testing.T) {
	nick := model.DefaultNicknames()

	sim := Score("Cameron Thomas", "Cameron Thomas", nick)
	assert.Equal(t, 1.0, sim.Score)
	assert.Equal(t, model.BasisExactVariant, sim.Basis)

	// punctuation-insensitive: both collapse to the same canonical form
	sim = Score("O.G. Anunoby", "OG Anunoby", nick)
	assert.Equal(t, 1.0, sim.Score)
	assert.Equal(t, model.BasisExactVariant, sim.Basis)

	// nickname variant closes the gap
	sim = Score("Cam Thomas", "Cameron Thomas", nick)
	assert.GreaterOrEqual(t, sim.Score, 0.90)
}

func TestScoreContainment(t *testing.T) {
	nick := model.DefaultNicknames()
	sim := Score("Giannis", "Giannis Antetokounmpo", nick)
	assert.Equal(t, 0.95, sim.Score)
	assert.Equal(t, model.BasisContainment, sim.Basis)

	// symmetric
	rev := Score("Giannis Antetokounmpo", "Giannis", nick)
	assert.Equal(t, sim, rev)
}

func TestScoreTokenOverlap(t *testing.T) {
	nick := model.DefaultNicknames()

	sim := Score("Jabari Smith", "Jabari Walker", nick)
	assert.Equal(t, model.BasisTokenOverlap, sim.Basis)
	assert.InDelta(t, 0.5, sim.Score, 1e-9)

	sim = Score("Jalen Green Houston", "Green Jalen", nick)
	assert.InDelta(t, 2.0/3.0, sim.Score, 1e-9)

	sim = Score("Wembanyama", "Jokic", nick)
	assert.Equal(t, 0.0, sim.Score)
}

func TestScoreRange(t *testing.T) {
	nick := model.DefaultNicknames()
	pairs := [][2]string{
		{"Karl Anthony Towns", "Karl-Anthony Towns"},
		{"Jabari Smith", "Jabari Smith Jr."},
		{"", "LeBron James"},
		{"Nikola Jokic", "Nikola Jokic"},
		{"a b c d", "e f"},
	}
	for _, p := range pairs {
		sim := Score(p[0], p[1], nick)
		assert.GreaterOrEqual(t, sim.Score, 0.0, "%v", p)
		assert.LessOrEqual(t, sim.Score, 1.0, "%v", p)
	}
}

func TestScoreBothEmptyDegenerate(t *testing.T) {
	// documented: nothing left to distinguish scores 1.0, callers special-case
	sim := Score("...", "-", model.DefaultNicknames())
	assert.Equal(t, 1.0, sim.Score)
}

func TestEditScore(t *testing.T) {
	sim := EditScore("Nikola Jokic", "Nikola Jokic")
	assert.Equal(t, 1.0, sim.Score)
	assert.Equal(t, model.BasisEditDistance, sim.Basis)

	// one substitution over 12 runes
	sim = EditScore("Nikola Jokic", "Nikola Jokid")
	assert.InDelta(t, 11.0/12.0, sim.Score, 1e-9)

	sim = EditScore("", "LeBron James")
	assert.Equal(t, 0.0, sim.Score)
}
