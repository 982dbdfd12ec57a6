package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
)

func makeRecord(id, role string, active bool, actual, expected model.ActivityCounts) Record {
	return Record{
		ID:       id,
		Name:     "User " + id,
		Role:     role,
		Active:   active,
		Actual:   actual,
		Expected: expected,
		Verdicts: Evaluate(actual, expected),
	}
}

func TestAggregateExcludesAdminsAndInactive(t *testing.T) {
	quota := model.ActivityCounts{Stories: 1, Posts: 1, Reels: 1}
	met := model.ActivityCounts{Stories: 2, Posts: 2, Reels: 2}

	records := []Record{
		makeRecord("a1", model.RoleAmbassador, true, met, quota),
		makeRecord("a2", model.RoleAmbassador, true, met, quota),
		makeRecord("a3", model.RoleAmbassador, false, met, quota), // inactif
		makeRecord("l1", model.RoleLeader, true, met, quota),
		makeRecord("adm", model.RoleAdmin, true, met, quota), // admin
	}

	rollup := Aggregate(records, nil, 0)

	assert.Equal(t, 3, rollup.Overall.TotalAmbassadors)
	assert.Equal(t, 3, rollup.Overall.CompliantCount)
	assert.InDelta(t, 1.0, rollup.Overall.ComplianceRate, 1e-9)
}

func TestAggregateByTeamWithUnassigned(t *testing.T) {
	quota := model.ActivityCounts{Stories: 2, Posts: 0, Reels: 0}

	records := []Record{
		makeRecord("a1", model.RoleAmbassador, true, model.ActivityCounts{Stories: 3}, quota),
		makeRecord("a2", model.RoleAmbassador, true, model.ActivityCounts{Stories: 1}, quota),
		makeRecord("a3", model.RoleAmbassador, true, model.ActivityCounts{Stories: 2}, quota),
	}
	teams := []model.Team{
		{ID: "t1", Name: "Alpha", LeaderID: "a1", MemberIDs: []string{"a1", "a2"}},
	}

	rollup := Aggregate(records, teams, 0)

	require.Len(t, rollup.ByTeam, 2)
	alpha := rollup.ByTeam[0]
	assert.Equal(t, "t1", alpha.TeamID)
	assert.Equal(t, 2, alpha.MemberCount)
	assert.Equal(t, 4, alpha.TotalActivity)
	assert.InDelta(t, 0.5, alpha.ComplianceRate, 1e-9)
	assert.InDelta(t, 2.0, alpha.AvgActivityPerMember, 1e-9)

	unassigned := rollup.ByTeam[1]
	assert.Equal(t, UnassignedTeamID, unassigned.TeamID)
	assert.Equal(t, "Unassigned", unassigned.TeamName)
	assert.Equal(t, 1, unassigned.MemberCount)
}

func TestAggregateDoubleMembershipCountedOnce(t *testing.T) {
	// Un ambassadeur inscrit dans deux équipes ne compte qu'une fois,
	// première équipe gagne
	quota := model.ActivityCounts{Stories: 1, Posts: 0, Reels: 0}
	records := []Record{
		makeRecord("a1", model.RoleAmbassador, true, model.ActivityCounts{Stories: 1}, quota),
	}
	teams := []model.Team{
		{ID: "t1", Name: "Alpha", MemberIDs: []string{"a1"}},
		{ID: "t2", Name: "Beta", MemberIDs: []string{"a1"}},
	}

	rollup := Aggregate(records, teams, 0)

	assert.Equal(t, 1, rollup.Overall.TotalAmbassadors)
	require.Len(t, rollup.ByTeam, 2)
	assert.Equal(t, 1, rollup.ByTeam[0].MemberCount)
	assert.Equal(t, 0, rollup.ByTeam[1].MemberCount)
}

func TestAggregateLeaderAttachedToOwnTeam(t *testing.T) {
	quota := model.ActivityCounts{Stories: 1, Posts: 0, Reels: 0}
	records := []Record{
		makeRecord("l1", model.RoleLeader, true, model.ActivityCounts{Stories: 2}, quota),
	}
	teams := []model.Team{
		{ID: "t1", Name: "Alpha", LeaderID: "l1", MemberIDs: []string{}},
	}

	rollup := Aggregate(records, teams, 0)

	require.Len(t, rollup.ByTeam, 1)
	assert.Equal(t, 1, rollup.ByTeam[0].MemberCount)
}

func TestAggregateEmptyRosterHasZeroRate(t *testing.T) {
	rollup := Aggregate(nil, nil, 0)
	assert.Equal(t, 0, rollup.Overall.TotalAmbassadors)
	assert.Zero(t, rollup.Overall.ComplianceRate)
	assert.Equal(t, "neutral", rollup.Overall.Trend)
}

func TestAggregateTrend(t *testing.T) {
	quota := model.ActivityCounts{Stories: 1, Posts: 0, Reels: 0}
	records := []Record{
		makeRecord("a1", model.RoleAmbassador, true, model.ActivityCounts{Stories: 5}, quota),
	}

	up := Aggregate(records, nil, 2)
	assert.Equal(t, "up", up.Overall.Trend)
	assert.Equal(t, 3, up.Overall.ActivityDelta)

	down := Aggregate(records, nil, 9)
	assert.Equal(t, "down", down.Overall.Trend)

	flat := Aggregate(records, nil, 5)
	assert.Equal(t, "neutral", flat.Overall.Trend)
	assert.Equal(t, 0, flat.Overall.ActivityDelta)
}

func TestAggregateDeterministicTeamOrder(t *testing.T) {
	// L'ordre des rollups suit l'ordre des équipes en entrée
	teams := []model.Team{
		{ID: "t2", Name: "Beta"},
		{ID: "t1", Name: "Alpha"},
	}
	rollup := Aggregate(nil, teams, 0)

	require.Len(t, rollup.ByTeam, 2)
	assert.Equal(t, "t2", rollup.ByTeam[0].TeamID)
	assert.Equal(t, "t1", rollup.ByTeam[1].TeamID)
}
