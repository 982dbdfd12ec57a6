package compliance

import (
	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
)

// UnassignedTeamID identifie le pseudo-rollup des ambassadeurs sans équipe
const UnassignedTeamID = "unassigned"

// OverallSummary est le rollup global du roster
type OverallSummary struct {
	TotalAmbassadors int
	CompliantCount   int
	ComplianceRate   float64
	Totals           model.ActivityCounts
	ActivityDelta    int    // total courant moins total de la période précédente
	Trend            string // up, down, neutral
}

// Rollup combine les rollups par équipe et le rollup global
type Rollup struct {
	ByTeam  []model.TeamPerformance
	Overall OverallSummary
}

// Aggregate combine les records évalués avec les équipes pour produire les
// rollups. Les admins et les comptes inactifs sont exclus de tous les
// agrégats. Déterministe : aucune dépendance hors de ses entrées.
// priorActivityTotal est le total d'activité de la période précédente, utilisé
// pour l'indicateur de tendance.
func Aggregate(records []Record, teams []model.Team, priorActivityTotal int) Rollup {
	tracked := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Tracked() {
			tracked = append(tracked, r)
		}
	}

	// Affectation défensive : la gestion du roster garantit en principe
	// qu'un ambassadeur n'est membre que d'une seule équipe, mais une double
	// inscription ne doit pas être comptée deux fois. Première équipe gagne,
	// un leader est rattaché à sa propre équipe.
	assignment := make(map[string]string, len(tracked))
	for _, t := range teams {
		for _, id := range t.MemberIDs {
			if _, claimed := assignment[id]; !claimed {
				assignment[id] = t.ID
			}
		}
		if _, claimed := assignment[t.LeaderID]; !claimed && t.LeaderID != "" {
			assignment[t.LeaderID] = t.ID
		}
	}

	type bucket struct {
		count     int
		compliant int
		totals    model.ActivityCounts
	}
	buckets := make(map[string]*bucket, len(teams)+1)
	overall := OverallSummary{}

	for _, r := range tracked {
		teamID, ok := assignment[r.ID]
		if !ok {
			teamID = UnassignedTeamID
		}
		b := buckets[teamID]
		if b == nil {
			b = &bucket{}
			buckets[teamID] = b
		}
		b.count++
		b.totals.Stories += r.Actual.Stories
		b.totals.Posts += r.Actual.Posts
		b.totals.Reels += r.Actual.Reels
		compliant := r.Verdicts.Compliant()
		if compliant {
			b.compliant++
		}

		overall.TotalAmbassadors++
		overall.Totals.Stories += r.Actual.Stories
		overall.Totals.Posts += r.Actual.Posts
		overall.Totals.Reels += r.Actual.Reels
		if compliant {
			overall.CompliantCount++
		}
	}

	byTeam := make([]model.TeamPerformance, 0, len(buckets))
	for _, t := range teams {
		b := buckets[t.ID]
		if b == nil {
			b = &bucket{}
		}
		byTeam = append(byTeam, teamPerformance(t.ID, t.Name, b.count, b.compliant, b.totals))
	}
	if b := buckets[UnassignedTeamID]; b != nil {
		byTeam = append(byTeam, teamPerformance(UnassignedTeamID, "Unassigned", b.count, b.compliant, b.totals))
	}

	if overall.TotalAmbassadors > 0 {
		overall.ComplianceRate = float64(overall.CompliantCount) / float64(overall.TotalAmbassadors)
	}
	overall.ActivityDelta = overall.Totals.Total() - priorActivityTotal
	switch {
	case overall.ActivityDelta > 0:
		overall.Trend = "up"
	case overall.ActivityDelta < 0:
		overall.Trend = "down"
	default:
		overall.Trend = "neutral"
	}

	return Rollup{ByTeam: byTeam, Overall: overall}
}

func teamPerformance(id, name string, count, compliant int, totals model.ActivityCounts) model.TeamPerformance {
	perf := model.TeamPerformance{
		TeamID:        id,
		TeamName:      name,
		MemberCount:   count,
		TotalActivity: totals.Total(),
		Stories:       totals.Stories,
		Posts:         totals.Posts,
		Reels:         totals.Reels,
	}
	if count > 0 {
		perf.ComplianceRate = float64(compliant) / float64(count)
		perf.AvgActivityPerMember = float64(totals.Total()) / float64(count)
	}
	return perf
}
