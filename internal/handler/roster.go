package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ChadiEch/ambassador-dashboard/internal/compliance"
	"github.com/ChadiEch/ambassador-dashboard/internal/database"
	"github.com/ChadiEch/ambassador-dashboard/internal/metrics"
	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
	"github.com/ChadiEch/ambassador-dashboard/internal/scanner"
	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
)

// rosterStore garde le dernier bon snapshot du roster. Les endpoints sans
// plage de dates explicite servent depuis ce snapshot ; un fetch périmé ne
// remplace jamais un plus récent (last-request-wins).
var rosterStore compliance.SnapshotStore

// defaultWindow renvoie la fenêtre hebdomadaire courante : les 7 derniers
// jours, bornes [start, end)
func defaultWindow(now time.Time) (time.Time, time.Time) {
	end := now
	start := now.AddDate(0, 0, -7)
	return start, end
}

// loadRoster reconstruit entièrement le roster pour la fenêtre donnée :
// utilisateurs, équipes, quota global, compteurs d'activité normalisés,
// verdicts et états d'avertissement. Chaque appel produit un snapshot neuf,
// l'ancien n'est jamais patché.
func loadRoster(ctx context.Context, start, end time.Time) (*compliance.Snapshot, error) {
	users, err := loadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	teams, err := loadTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}

	rule, err := loadPostingRule(ctx)
	if err != nil {
		return nil, fmt.Errorf("load posting rule: %w", err)
	}
	expected := rule.Expected()

	rawCounts, lastActivity, err := loadActivityCounts(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load activity counts: %w", err)
	}

	warningStates, err := loadWarningStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load warnings: %w", err)
	}

	priorTotal, err := loadPriorActivityTotal(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load prior activity: %w", err)
	}

	records := make([]compliance.Record, 0, len(users))
	for _, u := range users {
		actual := compliance.Normalize(rawCounts[u.ID])

		last := u.LastActivity
		if t, ok := lastActivity[u.ID]; ok {
			last = &t
		}

		ws := warningStates[u.ID]

		records = append(records, compliance.Record{
			ID:               u.ID,
			Name:             u.Name,
			Role:             u.Role,
			Active:           u.Active,
			PhotoURL:         u.PhotoURL,
			Link:             u.Link,
			Actual:           actual,
			Expected:         expected,
			Verdicts:         compliance.Evaluate(actual, expected),
			LastActivity:     last,
			WarningCount:     ws.Count,
			WarningEscalated: ws.Escalated,
		})
	}

	return &compliance.Snapshot{
		Records:            records,
		Teams:              teams,
		PriorActivityTotal: priorTotal,
		FetchedAt:          time.Now(),
	}, nil
}

// currentSnapshot renvoie le snapshot courant, en le construisant au premier
// appel si le rafraîchisseur n'a pas encore publié
func currentSnapshot(ctx context.Context) (*compliance.Snapshot, error) {
	if snap := rosterStore.Current(); snap != nil {
		return snap, nil
	}
	return RefreshRoster(ctx)
}

// RefreshRoster lance un cycle complet de fetch et publie le snapshot
// résultant, sauf si un cycle plus récent a publié entre-temps. En cas
// d'échec amont, le dernier bon snapshot est conservé tel quel.
func RefreshRoster(ctx context.Context) (*compliance.Snapshot, error) {
	token := rosterStore.Begin()

	start, end := defaultWindow(time.Now())
	snap, err := loadRoster(ctx, start, end)
	if err != nil {
		metrics.ObserveSnapshotRefresh("error")
		return rosterStore.Current(), err
	}

	if !rosterStore.Publish(token, snap) {
		// Un fetch plus récent a gagné ; sa donnée est plus fraîche
		metrics.ObserveSnapshotRefresh("stale")
		return rosterStore.Current(), nil
	}
	metrics.ObserveSnapshotRefresh("published")
	return snap, nil
}

// StartRosterRefresher rafraîchit le snapshot à intervalle fixe jusqu'à
// l'annulation du contexte
func StartRosterRefresher(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := RefreshRoster(ctx); err != nil {
					utils.LogError("roster refresh failed: %v", err)
				}
			}
		}
	}()
}

func loadUsers(ctx context.Context) ([]model.User, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT `+scanner.UserColumns+`
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanner.ScanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func loadTeams(ctx context.Context) ([]model.Team, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT id, name, leader_id, member_ids, created_at, updated_at
		FROM teams
		WHERE deleted_at IS NULL
		ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		t, err := scanner.ScanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// loadPostingRule lit le quota global. Aucune règle en base signifie aucun
// quota : toutes les catégories sont exemptes, pas une erreur.
func loadPostingRule(ctx context.Context) (model.PostingRule, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT id, stories_per_week, posts_per_week, reels_per_week, rules_text, updated_at
		FROM posting_rules
		ORDER BY updated_at DESC
		LIMIT 1`)

	rule, err := scanner.ScanPostingRule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PostingRule{}, nil
		}
		return rule, err
	}
	return rule, nil
}

// loadActivityCounts agrège les publications de la fenêtre par utilisateur.
// Les lignes sont groupées par media_type singulier (story/post/reel), la
// forme brute historique que le normaliseur ramène à la forme canonique.
func loadActivityCounts(ctx context.Context, start, end time.Time) (map[string]model.RawCounts, map[string]time.Time, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT user_id, media_type, COUNT(*), MAX(event_time)
		FROM activity_events
		WHERE event_time >= $1 AND event_time < $2
		GROUP BY user_id, media_type`,
		start, end)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	counts := make(map[string]model.RawCounts)
	lastActivity := make(map[string]time.Time)

	for rows.Next() {
		var userID, mediaType string
		var n int
		var last time.Time
		if err := rows.Scan(&userID, &mediaType, &n, &last); err != nil {
			return nil, nil, err
		}

		raw := counts[userID]
		v := n
		switch mediaType {
		case model.MediaStory:
			raw.Story = &v
		case model.MediaPost:
			raw.Post = &v
		case model.MediaReel:
			raw.Reel = &v
		}
		counts[userID] = raw

		if last.After(lastActivity[userID]) {
			lastActivity[userID] = last
		}
	}
	return counts, lastActivity, rows.Err()
}

type warningRow struct {
	Count     int
	Escalated bool
}

func loadWarningStates(ctx context.Context) (map[string]warningRow, error) {
	rows, err := database.DB.Query(ctx, `SELECT user_id, count, escalated FROM warnings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	states := make(map[string]warningRow)
	for rows.Next() {
		var userID string
		var wr warningRow
		if err := rows.Scan(&userID, &wr.Count, &wr.Escalated); err != nil {
			return nil, err
		}
		states[userID] = wr
	}
	return states, rows.Err()
}

// loadPriorActivityTotal compte l'activité de la période précédente de même
// durée, pour l'indicateur de tendance semaine sur semaine
func loadPriorActivityTotal(ctx context.Context, start, end time.Time) (int, error) {
	priorStart := start.Add(-end.Sub(start))

	var n int
	err := database.DB.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM activity_events
		WHERE event_time >= $1 AND event_time < $2`,
		priorStart, start,
	).Scan(&n)
	return n, err
}
