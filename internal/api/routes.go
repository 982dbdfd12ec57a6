package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"

	"github.com/ChadiEch/ambassador-dashboard/internal/handler"
	"github.com/ChadiEch/ambassador-dashboard/internal/metrics"
	"github.com/ChadiEch/ambassador-dashboard/internal/middleware"
	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.LoggerMiddleware)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)

	staffRoutes := authenticatedRoutes.PathPrefix("/").Subrouter()
	staffRoutes.Use(middleware.RequireRole(model.RoleLeader, model.RoleAdmin))

	adminRoutes := authenticatedRoutes.PathPrefix("/").Subrouter()
	adminRoutes.Use(middleware.RequireRole(model.RoleAdmin))

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)

	// Users
	adminRoutes.HandleFunc("/admin/users", handler.CreateUser).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/admin/users", handler.GetUsers).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/admin/users/{id}", handler.GetUser).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/admin/users/{id}", handler.UpdateUser).Methods(http.MethodPut, http.MethodPatch)
	adminRoutes.HandleFunc("/admin/users/{id}", handler.DeleteUser).Methods(http.MethodDelete)
	adminRoutes.HandleFunc("/admin/users/{id}/toggle", handler.ToggleUserActive).Methods(http.MethodPatch)
	adminRoutes.HandleFunc("/admin/users/{id}/deactivate", handler.DeactivateUser).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/admin/users/{id}/photo", handler.UploadProfilePhoto).Methods(http.MethodPost)

	// Teams
	staffRoutes.HandleFunc("/admin/teams", handler.GetTeams).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/admin/teams", handler.CreateTeam).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/admin/teams/{id}", handler.UpdateTeam).Methods(http.MethodPut, http.MethodPatch)
	adminRoutes.HandleFunc("/admin/teams/{id}", handler.DeleteTeam).Methods(http.MethodDelete)

	// Analytics
	authenticatedRoutes.HandleFunc("/analytics/weekly-compliance", handler.GetWeeklyCompliance).Methods(http.MethodGet)
	staffRoutes.HandleFunc("/analytics/team-compliance", handler.GetTeamCompliance).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/analytics/all-compliance", handler.GetAllCompliance).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/analytics/dashboard-stats", handler.GetDashboardStats).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/analytics/team-performance", handler.GetTeamPerformance).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/analytics/user-engagement", handler.GetUserEngagement).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/analytics/top-performers", handler.GetTopPerformers).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/analytics/inactive-users", handler.GetInactiveUsers).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/analytics/activity-trends", handler.GetActivityTrends).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/analytics/roster-view", handler.GetRosterView).Methods(http.MethodGet)
	staffRoutes.HandleFunc("/analytics/monthly-activity", handler.GetMonthlyActivity).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/analytics/team-monthly-activity", handler.GetTeamMonthlyActivity).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/analytics/team-contribution", handler.GetTeamContribution).Methods(http.MethodGet)
	staffRoutes.HandleFunc("/analytics/team-compliance-stats", handler.GetTeamComplianceStats).Methods(http.MethodGet)

	// Posting rules
	authenticatedRoutes.HandleFunc("/posting-rules", handler.GetPostingRules).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/posting-rules/{id}", handler.UpdatePostingRule).Methods(http.MethodPatch, http.MethodPut)

	// Warnings / Avertissements
	staffRoutes.HandleFunc("/warnings/{userId}", handler.GetWarningState).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/warnings/{userId}/increment", handler.IncrementWarning).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/warnings/{userId}/clear", handler.ClearWarning).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/warnings/{userId}/pause", handler.PauseWarning).Methods(http.MethodPost)

	// Manual activity entries
	adminRoutes.HandleFunc("/manual-activity", handler.CreateManualActivity).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/manual-activity/user/{userId}", handler.GetUserActivities).Methods(http.MethodGet)

	// Feedback forms
	authenticatedRoutes.HandleFunc("/feedback-forms", handler.CreateFeedbackForm).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/feedback-forms", handler.GetFeedbackForms).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/feedback-forms/{id}/toggle-archive", handler.ToggleFeedbackArchive).Methods(http.MethodPatch)

	// Leader notes
	staffRoutes.HandleFunc("/notes/team-leader", handler.CreateLeaderNote).Methods(http.MethodPost)
	staffRoutes.HandleFunc("/notes/team-leader/{ambassadorId}", handler.GetLeaderNotes).Methods(http.MethodGet)

	// Exports
	adminRoutes.HandleFunc("/export/notes.csv", handler.ExportNotesCSV).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	// Prometheus
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
