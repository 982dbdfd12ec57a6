package warnings

import (
	"context"
	"time"

	"github.com/ChadiEch/ambassador-dashboard/internal/database"
	"github.com/jackc/pgx/v5"
)

// GetState lit l'état d'avertissement courant d'un utilisateur. Un utilisateur
// sans ligne en base est simplement à zéro, pas une erreur.
func GetState(ctx context.Context, userID string) (State, error) {
	s := State{UserID: userID}
	err := database.DB.QueryRow(ctx,
		`SELECT count, paused_until, escalated, updated_at
		 FROM warnings WHERE user_id=$1`,
		userID,
	).Scan(&s.Count, &s.PausedUntil, &s.Escalated, &s.UpdatedAt)

	if err == pgx.ErrNoRows {
		return State{UserID: userID}, nil
	}
	if err != nil {
		return s, err
	}
	return s, nil
}

// SaveState persiste un état complet (upsert)
func SaveState(ctx context.Context, s State) error {
	_, err := database.DB.Exec(ctx,
		`INSERT INTO warnings(user_id, count, paused_until, escalated, updated_at)
		 VALUES($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE
		 SET count=$2, paused_until=$3, escalated=$4, updated_at=$5`,
		s.UserID, s.Count, s.PausedUntil, s.Escalated, s.UpdatedAt,
	)
	return err
}

// IncrementWarnings applique la transition increment et persiste le résultat
func IncrementWarnings(ctx context.Context, userID string, now time.Time) (State, error) {
	s, err := GetState(ctx, userID)
	if err != nil {
		return s, err
	}
	next := Increment(s, now)
	if err := SaveState(ctx, next); err != nil {
		return s, err
	}
	return next, nil
}

// ClearWarnings remet l'état à zéro et persiste
func ClearWarnings(ctx context.Context, userID string, now time.Time) (State, error) {
	s, err := GetState(ctx, userID)
	if err != nil {
		return s, err
	}
	next := Clear(s, now)
	if err := SaveState(ctx, next); err != nil {
		return s, err
	}
	return next, nil
}

// PauseWarnings ouvre une fenêtre de pause et persiste
func PauseWarnings(ctx context.Context, userID string, until time.Time, now time.Time) (State, error) {
	s, err := GetState(ctx, userID)
	if err != nil {
		return s, err
	}
	next := Pause(s, until, now)
	if err := SaveState(ctx, next); err != nil {
		return s, err
	}
	return next, nil
}

// CountEscalated compte les ambassadeurs actuellement en escalade
func CountEscalated(ctx context.Context) (int, error) {
	var n int
	err := database.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM warnings WHERE escalated = true`,
	).Scan(&n)
	return n, err
}
