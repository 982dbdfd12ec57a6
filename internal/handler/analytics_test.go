package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChadiEch/ambassador-dashboard/internal/compliance"
	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
)

func TestTeamContributionPercentages(t *testing.T) {
	byTeam := []model.TeamPerformance{
		{TeamName: "Alpha", TotalActivity: 30},
		{TeamName: "Beta", TotalActivity: 10},
		{TeamName: "Unassigned", TotalActivity: 0},
	}

	got := teamContribution(byTeam)

	require.Len(t, got, 3)
	assert.Equal(t, "Alpha", got[0].Team)
	assert.InDelta(t, 75.0, got[0].Percentage, 1e-9)
	assert.InDelta(t, 25.0, got[1].Percentage, 1e-9)
	assert.Zero(t, got[2].Percentage)
}

func TestTeamContributionNoActivity(t *testing.T) {
	// Sans aucune activité les parts restent à zéro, jamais NaN
	byTeam := []model.TeamPerformance{
		{TeamName: "Alpha"},
		{TeamName: "Beta"},
	}

	got := teamContribution(byTeam)

	require.Len(t, got, 2)
	for _, c := range got {
		assert.Zero(t, c.Percentage)
	}
}

func TestTeamComplianceWeekCountsMembersAndLeader(t *testing.T) {
	quota := model.ActivityCounts{Stories: 1, Posts: 0, Reels: 0}
	rec := func(id string, role string, active bool, stories int) compliance.Record {
		actual := model.ActivityCounts{Stories: stories}
		return compliance.Record{
			ID: id, Role: role, Active: active,
			Actual: actual, Expected: quota,
			Verdicts: compliance.Evaluate(actual, quota),
		}
	}

	records := []compliance.Record{
		rec("l1", model.RoleLeader, true, 2),     // leader, conforme
		rec("m1", model.RoleAmbassador, true, 0), // membre, non conforme
		rec("m2", model.RoleAmbassador, false, 3), // membre inactif, exclu
		rec("x1", model.RoleAmbassador, true, 5), // hors équipe
	}
	team := model.Team{ID: "t1", LeaderID: "l1", MemberIDs: []string{"m1", "m2"}}

	got := teamComplianceWeek(records, team)

	assert.Equal(t, 2, got.MemberCount)
	assert.Equal(t, 1, got.CompliantCount)
}
