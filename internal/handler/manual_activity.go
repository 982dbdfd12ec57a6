package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/oklog/ulid/v2"

	"github.com/ChadiEch/ambassador-dashboard/internal/cache"
	"github.com/ChadiEch/ambassador-dashboard/internal/database"
	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
	"github.com/ChadiEch/ambassador-dashboard/internal/scanner"
	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
)

type manualActivityRequest struct {
	UserID    string    `json:"userId"`
	MediaType string    `json:"mediaType"`
	Timestamp time.Time `json:"timestamp"`
	Permalink string    `json:"permalink"`
}

// CreateManualActivity enregistre une publication saisie à la main par un
// admin, pour les cas où la collecte automatique a manqué un contenu
func CreateManualActivity(w http.ResponseWriter, r *http.Request) {
	var req manualActivityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Corps de requête invalide", err)
		return
	}
	if req.UserID == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "userId requis")
		return
	}
	switch req.MediaType {
	case model.MediaStory, model.MediaPost, model.MediaReel:
	default:
		utils.ErrorSimple(w, http.StatusBadRequest, "mediaType doit être story, post ou reel")
		return
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}
	if req.Timestamp.After(time.Now()) {
		utils.ErrorSimple(w, http.StatusBadRequest, "Une publication ne peut pas être dans le futur")
		return
	}

	ctx := r.Context()

	var exists bool
	err := database.DB.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND deleted_at IS NULL)`,
		req.UserID,
	).Scan(&exists)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de vérifier l'utilisateur", err)
		return
	}
	if !exists {
		utils.ErrorSimple(w, http.StatusNotFound, "Utilisateur introuvable")
		return
	}

	event := model.ActivityEvent{
		ID:        ulid.Make().String(),
		UserID:    req.UserID,
		MediaType: req.MediaType,
		Timestamp: req.Timestamp,
		Permalink: req.Permalink,
		Source:    "manual",
	}

	_, err = database.DB.Exec(ctx, `
		INSERT INTO activity_events (id, user_id, media_type, event_time, permalink, source)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.UserID, event.MediaType, event.Timestamp, event.Permalink, event.Source)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible d'enregistrer l'activité", err)
		return
	}

	// Avance last_activity seulement si l'événement saisi est plus récent
	_, err = database.DB.Exec(ctx, `
		UPDATE users SET last_activity = $2, updated_at = NOW()
		WHERE id = $1 AND (last_activity IS NULL OR last_activity < $2)`,
		event.UserID, event.Timestamp)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de mettre à jour l'utilisateur", err)
		return
	}

	cache.Invalidate(ctx, cacheKeyDashboardStats, cacheKeyTeamPerformance)
	go func() {
		if _, err := RefreshRoster(context.Background()); err != nil {
			utils.LogError("roster refresh after manual activity failed: %v", err)
		}
	}()

	utils.Created(w, event)
}

// GetUserActivities liste les publications d'un utilisateur, les plus
// récentes d'abord
func GetUserActivities(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	limit := utils.QueryInt(r, "limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	rows, err := database.DB.Query(r.Context(), `
		SELECT id, user_id, media_type, event_time, permalink, source
		FROM activity_events
		WHERE user_id = $1
		ORDER BY event_time DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger les activités", err)
		return
	}
	defer rows.Close()

	events := make([]model.ActivityEvent, 0, limit)
	for rows.Next() {
		e, err := scanner.ScanActivityEvent(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Impossible de lire les activités", err)
			return
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de lire les activités", err)
		return
	}
	utils.Success(w, events)
}
