package warnings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

func TestStatusClassification(t *testing.T) {
	assert.Equal(t, StatusClear, State{}.Status())
	assert.Equal(t, StatusWarned, State{Count: 1}.Status())
	assert.Equal(t, StatusWarned, State{Count: 2}.Status())
	assert.Equal(t, StatusEscalated, State{Count: 3}.Status())
	assert.Equal(t, StatusEscalated, State{Count: 5}.Status())
}

func TestIncrementReachesEscalationAtThreshold(t *testing.T) {
	s := State{UserID: "u1"}

	s = Increment(s, now)
	assert.Equal(t, 1, s.Count)
	assert.False(t, s.Escalated)

	s = Increment(s, now)
	assert.Equal(t, StatusWarned, s.Status())

	s = Increment(s, now)
	assert.Equal(t, 3, s.Count)
	assert.True(t, s.Escalated)
	assert.Equal(t, StatusEscalated, s.Status())
}

func TestEscalationIsStickyAcrossIncrements(t *testing.T) {
	s := State{Count: 3, Escalated: true}
	s = Increment(s, now)
	assert.True(t, s.Escalated)
	assert.Equal(t, 4, s.Count)
}

func TestEscalatedFlagHoldsEvenIfCountDropsBelowThreshold(t *testing.T) {
	// L'escalade ne se lève que par Clear explicite, jamais en recalculant
	// depuis le compteur
	s := State{Count: 1, Escalated: true}
	assert.Equal(t, StatusEscalated, s.Status())
}

func TestClearResetsEverything(t *testing.T) {
	until := now.Add(48 * time.Hour)
	s := State{UserID: "u1", Count: 4, Escalated: true, PausedUntil: &until}

	s = Clear(s, now)

	assert.Zero(t, s.Count)
	assert.False(t, s.Escalated)
	assert.Nil(t, s.PausedUntil)
	assert.Equal(t, StatusClear, s.Status())
}

func TestIncrementIsNoOpDuringPause(t *testing.T) {
	s := State{UserID: "u1", Count: 2}
	s = Pause(s, now.Add(72*time.Hour), now)

	paused := Increment(s, now.Add(24*time.Hour))
	assert.Equal(t, 2, paused.Count)
	assert.False(t, paused.Escalated)
}

func TestIncrementResumesAfterPauseExpires(t *testing.T) {
	s := State{UserID: "u1", Count: 2}
	s = Pause(s, now.Add(24*time.Hour), now)

	after := Increment(s, now.Add(48*time.Hour))
	assert.Equal(t, 3, after.Count)
	assert.True(t, after.Escalated)
}

func TestPauseKeepsCountAndEscalation(t *testing.T) {
	s := State{UserID: "u1", Count: 3, Escalated: true}
	s = Pause(s, now.Add(time.Hour), now)

	assert.Equal(t, 3, s.Count)
	assert.True(t, s.Escalated)
	assert.True(t, s.Paused(now))
	assert.False(t, s.Paused(now.Add(2*time.Hour)))
}
