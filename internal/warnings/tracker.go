package warnings

import (
	"time"
)

// EscalationThreshold est le nombre d'avertissements déclenchant l'escalade
const EscalationThreshold = 3

// Classifications d'un état d'avertissement
const (
	StatusClear     = "clear"     // aucun avertissement
	StatusWarned    = "warned"    // 1 à 2 avertissements
	StatusEscalated = "escalated" // seuil atteint, jusqu'à remise à zéro explicite
)

// State est l'état d'avertissement d'un ambassadeur. Le compteur ne décroît
// jamais implicitement avec le temps ; seules les opérations explicites le
// modifient. L'escalade est consultative : elle ne désactive pas le compte,
// la désactivation reste une action séparée avec son feedback obligatoire.
type State struct {
	UserID      string     `json:"userId"`
	Count       int        `json:"count"`
	PausedUntil *time.Time `json:"pausedUntil,omitempty"`
	Escalated   bool       `json:"escalated"`
	UpdatedAt   time.Time  `json:"updatedAt,omitempty"`
}

// Status classe l'état : clear, warned ou escalated
func (s State) Status() string {
	switch {
	case s.Escalated || s.Count >= EscalationThreshold:
		return StatusEscalated
	case s.Count > 0:
		return StatusWarned
	default:
		return StatusClear
	}
}

// Paused indique si une fenêtre de pause couvre l'instant donné
func (s State) Paused(now time.Time) bool {
	return s.PausedUntil != nil && now.Before(*s.PausedUntil)
}

// Increment ajoute un avertissement. Pendant une fenêtre de pause l'incrément
// est suspendu (compteur inchangé). Au seuil l'état passe en escalade et y
// reste : une activité ultérieure ne désescalade jamais silencieusement.
func Increment(s State, now time.Time) State {
	if s.Paused(now) {
		return s
	}
	s.Count++
	if s.Count >= EscalationThreshold {
		s.Escalated = true
	}
	s.UpdatedAt = now
	return s
}

// Clear remet le compteur à zéro et lève l'escalade. Toujours disponible,
// quel que soit l'état courant.
func Clear(s State, now time.Time) State {
	s.Count = 0
	s.Escalated = false
	s.PausedUntil = nil
	s.UpdatedAt = now
	return s
}

// Pause suspend les nouveaux incréments jusqu'à la date donnée, sans toucher
// ni au compteur ni au drapeau d'escalade
func Pause(s State, until time.Time, now time.Time) State {
	s.PausedUntil = &until
	s.UpdatedAt = now
	return s
}
