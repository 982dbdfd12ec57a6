package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ratingPtr(v int) *int { return &v }

func TestDeactivationFeedbackValid(t *testing.T) {
	f := DeactivationFeedback{Reason: "A quitté le programme", Rating: ratingPtr(7)}
	assert.NoError(t, f.Validate())
}

func TestDeactivationFeedbackRatingBounds(t *testing.T) {
	assert.NoError(t, DeactivationFeedback{Reason: "ok", Rating: ratingPtr(0)}.Validate())
	assert.NoError(t, DeactivationFeedback{Reason: "ok", Rating: ratingPtr(10)}.Validate())
	assert.Error(t, DeactivationFeedback{Reason: "ok", Rating: ratingPtr(-1)}.Validate())
	assert.Error(t, DeactivationFeedback{Reason: "ok", Rating: ratingPtr(11)}.Validate())
}

func TestDeactivationFeedbackRequiresReason(t *testing.T) {
	assert.Error(t, DeactivationFeedback{Rating: ratingPtr(5)}.Validate())
	assert.Error(t, DeactivationFeedback{Reason: "   ", Rating: ratingPtr(5)}.Validate())
}

func TestDeactivationFeedbackRequiresRating(t *testing.T) {
	assert.Error(t, DeactivationFeedback{Reason: "raison valable"}.Validate())
}
