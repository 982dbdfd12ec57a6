package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
)

func intPtr(v int) *int { return &v }

func TestNormalizeEmptyRecord(t *testing.T) {
	got := Normalize(model.RawCounts{})
	assert.Equal(t, model.ActivityCounts{}, got)
}

func TestNormalizeSingularKeys(t *testing.T) {
	// Forme historique : clés singulières uniquement
	raw := model.RawCounts{
		Story: intPtr(3),
		Post:  intPtr(1),
		Reel:  intPtr(2),
	}
	got := Normalize(raw)
	assert.Equal(t, model.ActivityCounts{Stories: 3, Posts: 1, Reels: 2}, got)
}

func TestNormalizePluralKeys(t *testing.T) {
	raw := model.RawCounts{
		Stories: intPtr(5),
		Posts:   intPtr(2),
		Reels:   intPtr(0),
	}
	got := Normalize(raw)
	assert.Equal(t, model.ActivityCounts{Stories: 5, Posts: 2, Reels: 0}, got)
}

func TestNormalizePluralWinsOverSingular(t *testing.T) {
	// Quand les deux formes coexistent, la forme plurielle fait foi
	raw := model.RawCounts{
		Stories: intPtr(4),
		Story:   intPtr(9),
	}
	got := Normalize(raw)
	assert.Equal(t, 4, got.Stories)
}

func TestNormalizePluralZeroStillWins(t *testing.T) {
	// Un pluriel explicite à zéro n'est pas "absent"
	raw := model.RawCounts{
		Stories: intPtr(0),
		Story:   intPtr(7),
	}
	got := Normalize(raw)
	assert.Equal(t, 0, got.Stories)
}

func TestNormalizeMixedKeysPerCategory(t *testing.T) {
	raw := model.RawCounts{
		Stories: intPtr(2),
		Post:    intPtr(1),
	}
	got := Normalize(raw)
	assert.Equal(t, model.ActivityCounts{Stories: 2, Posts: 1, Reels: 0}, got)
}

func TestNormalizeClampsNegatives(t *testing.T) {
	raw := model.RawCounts{
		Stories: intPtr(-3),
		Post:    intPtr(-1),
	}
	got := Normalize(raw)
	assert.Equal(t, model.ActivityCounts{}, got)
}
