package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/ChadiEch/ambassador-dashboard/internal/cache"
	"github.com/ChadiEch/ambassador-dashboard/internal/compliance"
	"github.com/ChadiEch/ambassador-dashboard/internal/database"
	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
)

// Clés Redis des payloads analytics les plus demandés. Invalidées par les
// écritures qui les périment (désactivation, activité manuelle).
const (
	cacheKeyDashboardStats  = "analytics:dashboard-stats"
	cacheKeyTeamPerformance = "analytics:team-performance"
)

// GetAllCompliance renvoie le statut de conformité de tous les ambassadeurs
// suivis (admins et comptes inactifs exclus)
func GetAllCompliance(w http.ResponseWriter, r *http.Request) {
	snap, err := currentSnapshot(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger le roster", err)
		return
	}

	summaries := make([]model.AmbassadorSummary, 0, len(snap.Records))
	for _, rec := range snap.Records {
		if !rec.Tracked() {
			continue
		}
		summaries = append(summaries, rec.Summary(compliance.TeamNameFor(rec.ID, snap.Teams)))
	}
	utils.Success(w, summaries)
}

// GetTeamCompliance renvoie la conformité des membres de l'équipe d'un leader
func GetTeamCompliance(w http.ResponseWriter, r *http.Request) {
	leaderID := r.URL.Query().Get("leaderId")
	if leaderID == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "leaderId requis")
		return
	}

	snap, err := currentSnapshot(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger le roster", err)
		return
	}

	var team model.Team
	found := false
	for _, t := range snap.Teams {
		if t.LeaderID == leaderID {
			team = t
			found = true
			break
		}
	}
	if !found {
		utils.ErrorSimple(w, http.StatusNotFound, "Aucune équipe pour ce leader")
		return
	}

	summaries := make([]model.AmbassadorSummary, 0, len(team.MemberIDs))
	for _, rec := range snap.Records {
		if !team.Belongs(rec.ID) {
			continue
		}
		summaries = append(summaries, rec.Summary(team.Name))
	}
	utils.Success(w, summaries)
}

// GetWeeklyCompliance renvoie le détail de conformité d'un utilisateur pour la
// semaine courante, ou pour une fenêtre commençant à ?weekStart=YYYY-MM-DD
func GetWeeklyCompliance(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "userId requis")
		return
	}

	var zero time.Time
	weekStart := utils.QueryDate(r, "weekStart", zero)

	var records []compliance.Record
	var teams []model.Team

	if weekStart.IsZero() {
		snap, err := currentSnapshot(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Impossible de charger le roster", err)
			return
		}
		records, teams = snap.Records, snap.Teams
	} else {
		// Fenêtre historique : refetch complet, jamais servi depuis le snapshot
		snap, err := loadRoster(r.Context(), weekStart, weekStart.AddDate(0, 0, 7))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Impossible de charger le roster", err)
			return
		}
		records, teams = snap.Records, snap.Teams
	}

	for _, rec := range records {
		if rec.ID == userID {
			utils.Success(w, rec.Summary(compliance.TeamNameFor(userID, teams)))
			return
		}
	}
	utils.ErrorSimple(w, http.StatusNotFound, "Utilisateur introuvable")
}

// GetDashboardStats renvoie les statistiques globales du dashboard admin,
// servies depuis Redis quand le cache est chaud
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var stats model.DashboardStats
	if cache.GetJSON(ctx, cacheKeyDashboardStats, &stats) {
		utils.Success(w, stats)
		return
	}

	snap, err := currentSnapshot(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger le roster", err)
		return
	}

	rollup := compliance.Aggregate(snap.Records, snap.Teams, snap.PriorActivityTotal)

	activeWarnings := 0
	for _, rec := range snap.Records {
		if rec.Tracked() && rec.WarningCount > 0 {
			activeWarnings++
		}
	}

	var totalTeams int
	if err := database.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM teams WHERE deleted_at IS NULL`).Scan(&totalTeams); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de compter les équipes", err)
		return
	}

	totalAmbassadors := 0
	for _, rec := range snap.Records {
		if rec.Role != model.RoleAdmin {
			totalAmbassadors++
		}
	}

	thisWeek := rollup.Overall.Totals.Total()
	stats = model.DashboardStats{
		TotalAmbassadors:      totalAmbassadors,
		ActiveAmbassadors:     rollup.Overall.TotalAmbassadors,
		TotalTeams:            totalTeams,
		CompliantAmbassadors:  rollup.Overall.CompliantCount,
		OverallComplianceRate: rollup.Overall.ComplianceRate,
		ThisWeekActivity:      thisWeek,
		LastWeekActivity:      snap.PriorActivityTotal,
		ActivityTrend:         rollup.Overall.Trend,
		ActiveWarnings:        activeWarnings,
		GeneratedAt:           time.Now(),
	}

	cache.SetJSON(ctx, cacheKeyDashboardStats, stats)
	utils.Success(w, stats)
}

// GetTeamPerformance renvoie les rollups de conformité par équipe, pseudo
// équipe "Unassigned" incluse
func GetTeamPerformance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var byTeam []model.TeamPerformance
	if cache.GetJSON(ctx, cacheKeyTeamPerformance, &byTeam) {
		utils.Success(w, byTeam)
		return
	}

	snap, err := currentSnapshot(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger le roster", err)
		return
	}

	byTeam = compliance.Aggregate(snap.Records, snap.Teams, snap.PriorActivityTotal).ByTeam
	cache.SetJSON(ctx, cacheKeyTeamPerformance, byTeam)
	utils.Success(w, byTeam)
}

// GetUserEngagement renvoie l'engagement individuel de chaque ambassadeur suivi
func GetUserEngagement(w http.ResponseWriter, r *http.Request) {
	snap, err := currentSnapshot(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger le roster", err)
		return
	}

	rows := make([]model.UserEngagement, 0, len(snap.Records))
	for _, rec := range snap.Records {
		if rec.Role == model.RoleAdmin {
			continue
		}
		rows = append(rows, model.UserEngagement{
			UserID:          rec.ID,
			UserName:        rec.Name,
			TeamName:        compliance.TeamNameFor(rec.ID, snap.Teams),
			TotalActivity:   rec.Actual.Total(),
			Stories:         rec.Actual.Stories,
			Posts:           rec.Actual.Posts,
			Reels:           rec.Actual.Reels,
			ComplianceScore: rec.Verdicts.MetCount(),
			LastActivity:    rec.LastActivity,
			WarningCount:    rec.WarningCount,
			IsActive:        rec.Active,
		})
	}
	utils.Success(w, rows)
}

// GetTopPerformers renvoie le classement des ambassadeurs les plus actifs,
// limité par ?limit= (10 par défaut)
func GetTopPerformers(w http.ResponseWriter, r *http.Request) {
	limit := utils.QueryInt(r, "limit", 10)
	if limit <= 0 {
		limit = 10
	}

	snap, err := currentSnapshot(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger le roster", err)
		return
	}

	tracked := make([]compliance.Record, 0, len(snap.Records))
	for _, rec := range snap.Records {
		if rec.Tracked() {
			tracked = append(tracked, rec)
		}
	}
	sort.SliceStable(tracked, func(i, j int) bool {
		return tracked[i].Actual.Total() > tracked[j].Actual.Total()
	})
	if len(tracked) > limit {
		tracked = tracked[:limit]
	}

	performers := make([]model.TopPerformer, 0, len(tracked))
	for _, rec := range tracked {
		performers = append(performers, model.TopPerformer{
			UserID:          rec.ID,
			UserName:        rec.Name,
			TeamName:        compliance.TeamNameFor(rec.ID, snap.Teams),
			TotalActivity:   rec.Actual.Total(),
			ComplianceScore: rec.Verdicts.MetCount(),
		})
	}
	utils.Success(w, performers)
}

// GetInactiveUsers renvoie les ambassadeurs sans publication depuis ?days=
// jours (7 par défaut)
func GetInactiveUsers(w http.ResponseWriter, r *http.Request) {
	days := utils.QueryInt(r, "days", 7)
	if days <= 0 {
		days = 7
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	snap, err := currentSnapshot(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger le roster", err)
		return
	}

	now := time.Now()
	inactive := make([]model.InactiveUser, 0)
	for _, rec := range snap.Records {
		if !rec.Tracked() {
			continue
		}
		if rec.LastActivity != nil && rec.LastActivity.After(cutoff) {
			continue
		}

		since := days
		if rec.LastActivity != nil {
			since = int(now.Sub(*rec.LastActivity).Hours() / 24)
		}
		inactive = append(inactive, model.InactiveUser{
			UserID:                rec.ID,
			UserName:              rec.Name,
			TeamName:              compliance.TeamNameFor(rec.ID, snap.Teams),
			LastActivity:          rec.LastActivity,
			DaysSinceLastActivity: since,
			WarningCount:          rec.WarningCount,
		})
	}

	sort.SliceStable(inactive, func(i, j int) bool {
		return inactive[i].DaysSinceLastActivity > inactive[j].DaysSinceLastActivity
	})
	utils.Success(w, inactive)
}

// GetActivityTrends renvoie la série temporelle d'activité journalière des
// ?days= derniers jours (30 par défaut) pour les graphiques
func GetActivityTrends(w http.ResponseWriter, r *http.Request) {
	days := utils.QueryInt(r, "days", 30)
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	rows, err := database.DB.Query(r.Context(), `
		SELECT DATE(event_time) AS day,
		       COUNT(*) FILTER (WHERE media_type = 'story'),
		       COUNT(*) FILTER (WHERE media_type = 'post'),
		       COUNT(*) FILTER (WHERE media_type = 'reel')
		FROM activity_events
		WHERE event_time >= $1
		GROUP BY day
		ORDER BY day`,
		since)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger les tendances", err)
		return
	}
	defer rows.Close()

	trends := make([]model.ActivityTrend, 0, days)
	for rows.Next() {
		var day time.Time
		var t model.ActivityTrend
		if err := rows.Scan(&day, &t.Stories, &t.Posts, &t.Reels); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Impossible de lire les tendances", err)
			return
		}
		t.Date = day.Format("2006-01-02")
		t.Total = t.Stories + t.Posts + t.Reels
		trends = append(trends, t)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de lire les tendances", err)
		return
	}
	utils.Success(w, trends)
}

// GetMonthlyActivity renvoie l'activité agrégée par mois sur les ?months=
// derniers mois (12 par défaut). Avec ?leaderId, seule l'activité des membres
// de l'équipe de ce leader est comptée.
func GetMonthlyActivity(w http.ResponseWriter, r *http.Request) {
	months := utils.QueryInt(r, "months", 12)
	if months <= 0 {
		months = 12
	}
	since := time.Now().AddDate(0, -months, 0)

	var leaderID *string
	if v := r.URL.Query().Get("leaderId"); v != "" {
		leaderID = &v
	}

	rows, err := database.DB.Query(r.Context(), `
		SELECT to_char(date_trunc('month', event_time), 'YYYY-MM') AS month,
		       COUNT(*) FILTER (WHERE media_type = 'story'),
		       COUNT(*) FILTER (WHERE media_type = 'post'),
		       COUNT(*) FILTER (WHERE media_type = 'reel')
		FROM activity_events
		WHERE event_time >= $1
		  AND ($2::uuid IS NULL OR user_id IN (
			SELECT unnest(member_ids) FROM teams
			WHERE leader_id = $2::uuid AND deleted_at IS NULL))
		GROUP BY month
		ORDER BY month`,
		since, leaderID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger l'activité mensuelle", err)
		return
	}
	defer rows.Close()

	series := make([]model.MonthlyActivity, 0, months)
	for rows.Next() {
		var p model.MonthlyActivity
		if err := rows.Scan(&p.Month, &p.Stories, &p.Posts, &p.Reels); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Impossible de lire l'activité mensuelle", err)
			return
		}
		series = append(series, p)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de lire l'activité mensuelle", err)
		return
	}
	utils.Success(w, series)
}

// GetTeamMonthlyActivity compare l'activité des équipes sur le mois en cours
func GetTeamMonthlyActivity(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(r.Context(), `
		SELECT t.name,
		       COUNT(e.id) FILTER (WHERE e.media_type = 'story'),
		       COUNT(e.id) FILTER (WHERE e.media_type = 'post'),
		       COUNT(e.id) FILTER (WHERE e.media_type = 'reel')
		FROM teams t
		LEFT JOIN activity_events e
		  ON e.user_id = ANY(t.member_ids)
		 AND e.event_time >= date_trunc('month', NOW())
		WHERE t.deleted_at IS NULL
		GROUP BY t.id, t.name
		ORDER BY t.name`)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger l'activité des équipes", err)
		return
	}
	defer rows.Close()

	series := make([]model.TeamActivity, 0)
	for rows.Next() {
		var a model.TeamActivity
		if err := rows.Scan(&a.TeamName, &a.Stories, &a.Posts, &a.Reels); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Impossible de lire l'activité des équipes", err)
			return
		}
		series = append(series, a)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de lire l'activité des équipes", err)
		return
	}
	utils.Success(w, series)
}

// GetTeamContribution renvoie la part de chaque équipe dans l'activité totale
// de la fenêtre courante, en pourcentage
func GetTeamContribution(w http.ResponseWriter, r *http.Request) {
	snap, err := currentSnapshot(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger le roster", err)
		return
	}

	byTeam := compliance.Aggregate(snap.Records, snap.Teams, snap.PriorActivityTotal).ByTeam
	utils.Success(w, teamContribution(byTeam))
}

// teamContribution convertit les rollups en parts d'activité. Sans aucune
// activité, toutes les parts sont à zéro plutôt qu'indéfinies.
func teamContribution(byTeam []model.TeamPerformance) []model.TeamContribution {
	total := 0
	for _, t := range byTeam {
		total += t.TotalActivity
	}

	out := make([]model.TeamContribution, 0, len(byTeam))
	for _, t := range byTeam {
		c := model.TeamContribution{Team: t.TeamName}
		if total > 0 {
			c.Percentage = float64(t.TotalActivity) / float64(total) * 100
		}
		out = append(out, c)
	}
	return out
}

// GetTeamComplianceStats renvoie la série hebdomadaire de conformité de
// l'équipe d'un leader sur les ?weeks= dernières semaines (8 par défaut).
// Chaque point est recalculé sur sa propre fenêtre, jamais interpolé.
func GetTeamComplianceStats(w http.ResponseWriter, r *http.Request) {
	leaderID := r.URL.Query().Get("leaderId")
	if leaderID == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "leaderId requis")
		return
	}
	weeks := utils.QueryInt(r, "weeks", 8)
	if weeks <= 0 || weeks > 26 {
		weeks = 8
	}

	ctx := r.Context()
	now := time.Now()

	stats := make([]model.ComplianceWeekStat, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		start := now.AddDate(0, 0, -7*(i+1))
		end := now.AddDate(0, 0, -7*i)

		snap, err := loadRoster(ctx, start, end)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Impossible de charger le roster", err)
			return
		}

		var team model.Team
		found := false
		for _, t := range snap.Teams {
			if t.LeaderID == leaderID {
				team = t
				found = true
				break
			}
		}
		if !found {
			utils.ErrorSimple(w, http.StatusNotFound, "Aucune équipe pour ce leader")
			return
		}

		stat := teamComplianceWeek(snap.Records, team)
		stat.Week = start.Format("2006-01-02")
		stats = append(stats, stat)
	}
	utils.Success(w, stats)
}

// teamComplianceWeek compte les membres suivis et conformes d'une équipe sur
// un snapshot donné
func teamComplianceWeek(records []compliance.Record, team model.Team) model.ComplianceWeekStat {
	var stat model.ComplianceWeekStat
	for _, rec := range records {
		if !team.Belongs(rec.ID) || !rec.Tracked() {
			continue
		}
		stat.MemberCount++
		if rec.Verdicts.Compliant() {
			stat.CompliantCount++
		}
	}
	return stat
}

// GetRosterView applique les filtres et le tri interactifs sur le snapshot
// courant : ?search, ?role, ?team, ?status, ?sortBy, ?sortOrder. Les filtres
// sont conjonctifs, le tri est stable.
func GetRosterView(w http.ResponseWriter, r *http.Request) {
	snap, err := currentSnapshot(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de charger le roster", err)
		return
	}

	params := r.URL.Query()
	q := compliance.Query{
		Search:    params.Get("search"),
		Role:      params.Get("role"),
		Team:      params.Get("team"),
		Status:    params.Get("status"),
		SortField: params.Get("sortBy"),
		SortOrder: params.Get("sortOrder"),
	}

	view := compliance.View(snap.Records, snap.Teams, q)
	summaries := make([]model.AmbassadorSummary, 0, len(view))
	for _, rec := range view {
		summaries = append(summaries, rec.Summary(compliance.TeamNameFor(rec.ID, snap.Teams)))
	}
	utils.Success(w, summaries)
}
