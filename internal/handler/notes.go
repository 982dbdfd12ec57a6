package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/oklog/ulid/v2"

	"github.com/ChadiEch/ambassador-dashboard/internal/database"
	"github.com/ChadiEch/ambassador-dashboard/internal/middleware"
	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
	"github.com/ChadiEch/ambassador-dashboard/internal/scanner"
	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
)

type feedbackFormRequest struct {
	Message string `json:"message"`
}

// CreateFeedbackForm enregistre un message du formulaire de feedback.
// L'auteur est l'utilisateur authentifié, jamais un champ du corps.
func CreateFeedbackForm(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req feedbackFormRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Corps de requête invalide", err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "Le message ne peut pas être vide")
		return
	}

	note := model.FeedbackNote{
		ID:        ulid.Make().String(),
		UserID:    user.ID,
		UserName:  user.Name,
		Role:      user.Role,
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now(),
	}

	_, err = database.DB.Exec(r.Context(), `
		INSERT INTO feedback_forms (id, user_id, user_name, role, message, archived, created_at)
		VALUES ($1, $2, $3, $4, $5, false, $6)`,
		note.ID, note.UserID, note.UserName, note.Role, note.Message, note.CreatedAt)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible d'enregistrer le feedback", err)
		return
	}

	utils.Created(w, note)
}

// GetFeedbackForms liste les messages de feedback, ?archived=true pour
// l'historique archivé
func GetFeedbackForms(w http.ResponseWriter, r *http.Request) {
	archived := r.URL.Query().Get("archived") == "true"

	rows, err := database.DB.Query(r.Context(), `
		SELECT id, user_id, user_name, role, message, archived, created_at
		FROM feedback_forms
		WHERE archived = $1
		ORDER BY created_at DESC`,
		archived)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger les feedbacks", err)
		return
	}
	defer rows.Close()

	notes := make([]model.FeedbackNote, 0)
	for rows.Next() {
		n, err := scanner.ScanFeedbackNote(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Impossible de lire les feedbacks", err)
			return
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de lire les feedbacks", err)
		return
	}
	utils.Success(w, notes)
}

// ToggleFeedbackArchive bascule l'archivage d'un message de feedback
func ToggleFeedbackArchive(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var archived bool
	err := database.DB.QueryRow(r.Context(), `
		UPDATE feedback_forms SET archived = NOT archived
		WHERE id = $1
		RETURNING archived`,
		id,
	).Scan(&archived)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "Feedback introuvable")
		return
	}

	utils.Success(w, map[string]interface{}{"id": id, "archived": archived})
}

type leaderNoteRequest struct {
	AmbassadorID string `json:"ambassadorId"`
	Message      string `json:"message"`
}

// CreateLeaderNote enregistre un commentaire d'un leader sur un membre de son
// équipe. Un leader ne peut commenter que ses propres membres.
func CreateLeaderNote(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req leaderNoteRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Corps de requête invalide", err)
		return
	}
	if req.AmbassadorID == "" || strings.TrimSpace(req.Message) == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "ambassadorId et message requis")
		return
	}

	ctx := r.Context()
	if user.Role == model.RoleLeader {
		var belongs bool
		err := database.DB.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM teams
				WHERE leader_id = $1 AND $2 = ANY(member_ids) AND deleted_at IS NULL
			)`,
			user.ID, req.AmbassadorID,
		).Scan(&belongs)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Impossible de vérifier l'équipe", err)
			return
		}
		if !belongs {
			utils.ErrorSimple(w, http.StatusForbidden, "Cet ambassadeur n'est pas dans votre équipe")
			return
		}
	}

	note := model.LeaderNote{
		ID:           ulid.Make().String(),
		AmbassadorID: req.AmbassadorID,
		LeaderID:     user.ID,
		Message:      strings.TrimSpace(req.Message),
		CreatedAt:    time.Now(),
	}

	_, err = database.DB.Exec(ctx, `
		INSERT INTO leader_notes (id, ambassador_id, leader_id, message, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		note.ID, note.AmbassadorID, note.LeaderID, note.Message, note.CreatedAt)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible d'enregistrer la note", err)
		return
	}

	utils.Created(w, note)
}

// GetLeaderNotes liste les notes laissées sur un ambassadeur
func GetLeaderNotes(w http.ResponseWriter, r *http.Request) {
	ambassadorID := mux.Vars(r)["ambassadorId"]

	rows, err := database.DB.Query(r.Context(), `
		SELECT id, ambassador_id, leader_id, message, created_at
		FROM leader_notes
		WHERE ambassador_id = $1
		ORDER BY created_at DESC`,
		ambassadorID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger les notes", err)
		return
	}
	defer rows.Close()

	notes := make([]model.LeaderNote, 0)
	for rows.Next() {
		var n model.LeaderNote
		if err := rows.Scan(&n.ID, &n.AmbassadorID, &n.LeaderID, &n.Message, &n.CreatedAt); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Impossible de lire les notes", err)
			return
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de lire les notes", err)
		return
	}
	utils.Success(w, notes)
}
