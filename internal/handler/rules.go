package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/ChadiEch/ambassador-dashboard/internal/cache"
	"github.com/ChadiEch/ambassador-dashboard/internal/database"
	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
	"github.com/ChadiEch/ambassador-dashboard/internal/scanner"
	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
)

// GetPostingRules renvoie le quota hebdomadaire global en vigueur
func GetPostingRules(w http.ResponseWriter, r *http.Request) {
	row := database.DB.QueryRow(r.Context(), `
		SELECT id, stories_per_week, posts_per_week, reels_per_week, rules_text, updated_at
		FROM posting_rules
		ORDER BY updated_at DESC
		LIMIT 1`)

	rule, err := scanner.ScanPostingRule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Pas de règle configurée : quota zéro, tout le monde est exempt
			utils.Success(w, model.PostingRule{})
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger les règles", err)
		return
	}
	utils.Success(w, rule)
}

type postingRuleRequest struct {
	StoriesPerWeek *int    `json:"stories_per_week"`
	PostsPerWeek   *int    `json:"posts_per_week"`
	ReelsPerWeek   *int    `json:"reels_per_week"`
	RulesText      *string `json:"rulesText"`
}

// UpdatePostingRule modifie le quota global. Les champs absents du corps sont
// laissés tels quels ; un quota négatif est rejeté.
func UpdatePostingRule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req postingRuleRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Corps de requête invalide", err)
		return
	}
	for _, q := range []*int{req.StoriesPerWeek, req.PostsPerWeek, req.ReelsPerWeek} {
		if q != nil && *q < 0 {
			utils.ErrorSimple(w, http.StatusBadRequest, "Un quota ne peut pas être négatif")
			return
		}
	}

	ctx := r.Context()
	row := database.DB.QueryRow(ctx, `
		UPDATE posting_rules
		SET stories_per_week = COALESCE($2, stories_per_week),
		    posts_per_week   = COALESCE($3, posts_per_week),
		    reels_per_week   = COALESCE($4, reels_per_week),
		    rules_text       = COALESCE($5, rules_text),
		    updated_at       = $6
		WHERE id = $1
		RETURNING id, stories_per_week, posts_per_week, reels_per_week, rules_text, updated_at`,
		id, req.StoriesPerWeek, req.PostsPerWeek, req.ReelsPerWeek, req.RulesText, time.Now())

	rule, err := scanner.ScanPostingRule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.ErrorSimple(w, http.StatusNotFound, "Règle introuvable")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Impossible de modifier les règles", err)
		return
	}

	// Le quota change tous les verdicts : les payloads en cache sont périmés
	// et le prochain cycle doit repartir de zéro
	cache.Invalidate(ctx, cacheKeyDashboardStats, cacheKeyTeamPerformance)
	go func() {
		// Hors du contexte de la requête : le refresh survit à la réponse
		if _, err := RefreshRoster(context.Background()); err != nil {
			utils.LogError("roster refresh after rule change failed: %v", err)
		}
	}()

	utils.Success(w, rule)
}
