package model

import (
	"time"
)

// Rôles possibles d'un utilisateur
const (
	RoleAmbassador = "ambassador"
	RoleLeader     = "leader"
	RoleAdmin      = "admin"
)

// DateFields contient les champs d'audit standard pour toutes les entités
type DateFields struct {
	CreatedBy *string   `json:"createdBy,omitempty"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
	DeletedAt time.Time `json:"deletedAt,omitempty"`
	DeletedBy *string   `json:"deletedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// User représente un ambassadeur, un leader ou un admin
type User struct {
	ID                string     `json:"id,omitempty"`
	Name              string     `json:"name"`
	Username          string     `json:"username"`
	Password          string     `json:"password,omitempty"` // uniquement en entrée, jamais renvoyé
	Role              string     `json:"role"`               // ambassador, leader, admin
	Active            bool       `json:"active"`
	Instagram         string     `json:"instagram,omitempty"`
	DOB               string     `json:"dob,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	ParticipationDate string     `json:"participationDate,omitempty"`
	Note              string     `json:"note,omitempty"`
	PhotoURL          string     `json:"photoUrl,omitempty"`
	Link              string     `json:"link,omitempty"`
	LastActivity      *time.Time `json:"lastActivity,omitempty"`
	DateFields
}

// IsTracked indique si l'utilisateur compte pour le suivi de conformité
// (les admins et les comptes désactivés sont exclus des agrégats)
func (u User) IsTracked() bool {
	return u.Active && u.Role != RoleAdmin
}
