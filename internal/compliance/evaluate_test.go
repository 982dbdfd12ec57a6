package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
)

func TestEvaluatePerCategory(t *testing.T) {
	actual := model.ActivityCounts{Stories: 3, Posts: 0, Reels: 1}
	expected := model.ActivityCounts{Stories: 2, Posts: 0, Reels: 2}

	got := Evaluate(actual, expected)

	assert.Equal(t, VerdictMet, got.Story)
	assert.Equal(t, VerdictExempt, got.Post)
	assert.Equal(t, VerdictUnmet, got.Reel)
	assert.False(t, got.Compliant())
}

func TestEvaluateExactQuotaIsMet(t *testing.T) {
	got := evaluateOne(2, 2)
	assert.Equal(t, VerdictMet, got)
}

func TestEvaluateOverQuotaIsMet(t *testing.T) {
	got := evaluateOne(10, 2)
	assert.Equal(t, VerdictMet, got)
}

func TestEvaluateZeroQuotaIsExemptNotMet(t *testing.T) {
	// Un quota nul exempte la catégorie, même avec de l'activité
	assert.Equal(t, VerdictExempt, evaluateOne(0, 0))
	assert.Equal(t, VerdictExempt, evaluateOne(5, 0))
}

func TestCompliantAllMet(t *testing.T) {
	s := VerdictSet{Story: VerdictMet, Post: VerdictMet, Reel: VerdictMet}
	assert.True(t, s.Compliant())
}

func TestCompliantMixedMetAndExempt(t *testing.T) {
	s := VerdictSet{Story: VerdictMet, Post: VerdictExempt, Reel: VerdictMet}
	assert.True(t, s.Compliant())
}

func TestCompliantAllExemptIsNotCompliant(t *testing.T) {
	// Sans aucune exigence, l'ambassadeur n'est pas classé conforme
	s := VerdictSet{Story: VerdictExempt, Post: VerdictExempt, Reel: VerdictExempt}
	assert.False(t, s.Compliant())
}

func TestCompliantSingleUnmetFails(t *testing.T) {
	s := VerdictSet{Story: VerdictMet, Post: VerdictMet, Reel: VerdictUnmet}
	assert.False(t, s.Compliant())
}

func TestMetCount(t *testing.T) {
	assert.Equal(t, 0, VerdictSet{Story: VerdictExempt, Post: VerdictUnmet, Reel: VerdictExempt}.MetCount())
	assert.Equal(t, 2, VerdictSet{Story: VerdictMet, Post: VerdictMet, Reel: VerdictUnmet}.MetCount())
	assert.Equal(t, 3, VerdictSet{Story: VerdictMet, Post: VerdictMet, Reel: VerdictMet}.MetCount())
}

func TestBadgesColors(t *testing.T) {
	s := VerdictSet{Story: VerdictMet, Post: VerdictUnmet, Reel: VerdictExempt}
	badges := s.Badges()

	assert.Equal(t, "green", badges.Story)
	assert.Equal(t, "red", badges.Post)
	assert.Equal(t, "yellow", badges.Reel)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	actual := model.ActivityCounts{Stories: 1, Posts: 2, Reels: 3}
	expected := model.ActivityCounts{Stories: 2, Posts: 2, Reels: 0}

	first := Evaluate(actual, expected)
	second := Evaluate(actual, expected)
	assert.Equal(t, first, second)
}
