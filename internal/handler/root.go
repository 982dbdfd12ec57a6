package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ChadiEch/ambassador-dashboard/internal/database"
	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
)

// RootHandler affiche la documentation sommaire de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	doc := map[string]interface{}{
		"name":    "ambassador-dashboard API",
		"version": "1.0",
		"routes": map[string]string{
			"POST /auth/login":                   "authentification (username + password)",
			"POST /auth/logout":                  "invalide la session courante",
			"GET  /admin/users":                  "liste des utilisateurs",
			"POST /admin/users":                  "création d'un utilisateur",
			"PATCH /admin/users/{id}":            "mise à jour d'un utilisateur",
			"PATCH /admin/users/{id}/toggle":     "activer / désactiver",
			"POST /admin/users/{id}/deactivate":  "désactivation avec feedback obligatoire",
			"POST /admin/users/{id}/photo":       "upload de la photo de profil",
			"GET  /manual-activity/user/{id}":    "publications d'un utilisateur",
			"GET  /admin/teams":                  "liste des équipes",
			"GET  /analytics/all-compliance":     "conformité de tout le roster",
			"GET  /analytics/team-compliance":    "conformité d'une équipe (leaderId)",
			"GET  /analytics/weekly-compliance":  "conformité hebdo d'un ambassadeur (userId)",
			"GET  /analytics/dashboard-stats":    "statistiques globales",
			"GET  /analytics/team-performance":   "rollups par équipe",
			"GET  /analytics/user-engagement":    "engagement individuel",
			"GET  /analytics/roster-view":        "roster filtré et trié",
			"GET  /posting-rules":                "quotas hebdomadaires",
			"GET  /warnings/{userId}":            "état d'avertissement",
			"POST /manual-activity":              "saisie manuelle d'une publication",
			"POST /feedback-forms":               "envoi d'un feedback",
			"GET  /export/notes.csv":             "export CSV des notes leader",
		},
	}
	utils.Success(w, doc)
}

// HealthCheck vérifie que le serveur et la base répondent
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := database.DB.Ping(ctx); err != nil {
		dbStatus = "unreachable"
	}

	utils.Success(w, map[string]interface{}{
		"status":    "ok",
		"database":  dbStatus,
		"checkedAt": time.Now(),
	})
}
