package model

import (
	"fmt"
	"strings"
	"time"
)

// FeedbackNote est un message envoyé par un ambassadeur ou un leader à
// l'équipe admin via le formulaire de feedback
type FeedbackNote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
}

// LeaderNote est un commentaire laissé par un leader sur un membre de son équipe
type LeaderNote struct {
	ID           string    `json:"id"`
	AmbassadorID string    `json:"ambassadorId"`
	LeaderID     string    `json:"leaderId"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DeactivationFeedback accompagne obligatoirement la désactivation d'un
// ambassadeur actif : motif et note de 0 à 10, commentaire libre optionnel
type DeactivationFeedback struct {
	Reason string    `json:"reason"`
	Rating *int      `json:"rating"`
	Note   string    `json:"note,omitempty"`
	Date   time.Time `json:"date,omitempty"`
}

// Validate rejette la demande avant tout appel réseau si le motif ou la note
// manquent, ou si la note sort de l'échelle 0-10
func (f DeactivationFeedback) Validate() error {
	if strings.TrimSpace(f.Reason) == "" {
		return fmt.Errorf("deactivation requires a reason")
	}
	if f.Rating == nil {
		return fmt.Errorf("deactivation requires a rating")
	}
	if *f.Rating < 0 || *f.Rating > 10 {
		return fmt.Errorf("rating must be between 0 and 10, got %d", *f.Rating)
	}
	return nil
}
