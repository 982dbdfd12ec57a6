package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
)

func viewFixture() ([]Record, []model.Team) {
	quota := model.ActivityCounts{Stories: 2, Posts: 1, Reels: 1}
	t1 := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	records := []Record{
		{
			ID: "u1", Name: "Alice Martin", Role: model.RoleAmbassador, Active: true,
			Actual:   model.ActivityCounts{Stories: 3, Posts: 2, Reels: 1},
			Expected: quota, LastActivity: &t2,
		},
		{
			ID: "u2", Name: "Bruno Lefevre", Role: model.RoleLeader, Active: true,
			Actual:   model.ActivityCounts{Stories: 1, Posts: 0, Reels: 0},
			Expected: quota, LastActivity: &t1,
		},
		{
			ID: "u3", Name: "Chloé Dubois", Role: model.RoleAmbassador, Active: false,
			Actual:   model.ActivityCounts{Stories: 2, Posts: 1, Reels: 1},
			Expected: quota, LastActivity: nil,
		},
	}
	for i := range records {
		records[i].Verdicts = Evaluate(records[i].Actual, records[i].Expected)
	}

	teams := []model.Team{
		{ID: "t1", Name: "Alpha", LeaderID: "u2", MemberIDs: []string{"u1"}},
	}
	return records, teams
}

func TestViewNoFiltersReturnsAll(t *testing.T) {
	records, teams := viewFixture()
	got := View(records, teams, Query{})
	assert.Len(t, got, len(records))
}

func TestViewSearchIsCaseInsensitive(t *testing.T) {
	records, teams := viewFixture()

	got := View(records, teams, Query{Search: "alice"})
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].ID)

	got = View(records, teams, Query{Search: "  DUBOIS "})
	require.Len(t, got, 1)
	assert.Equal(t, "u3", got[0].ID)
}

func TestViewRoleFilter(t *testing.T) {
	records, teams := viewFixture()

	got := View(records, teams, Query{Role: model.RoleLeader})
	require.Len(t, got, 1)
	assert.Equal(t, "u2", got[0].ID)

	got = View(records, teams, Query{Role: FilterAll})
	assert.Len(t, got, 3)
}

func TestViewTeamFilterUsesMemberListOnly(t *testing.T) {
	// Le filtre d'équipe passe par la liste de membres : le leader n'y
	// apparaît que s'il est aussi membre
	records, teams := viewFixture()

	got := View(records, teams, Query{Team: "t1"})
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].ID)
}

func TestViewUnknownTeamMatchesNothing(t *testing.T) {
	records, teams := viewFixture()
	got := View(records, teams, Query{Team: "nope"})
	assert.Empty(t, got)
}

func TestViewStatusFilter(t *testing.T) {
	records, teams := viewFixture()

	active := View(records, teams, Query{Status: "active"})
	assert.Len(t, active, 2)

	inactive := View(records, teams, Query{Status: "inactive"})
	require.Len(t, inactive, 1)
	assert.Equal(t, "u3", inactive[0].ID)
}

func TestViewFiltersAreConjunctive(t *testing.T) {
	records, teams := viewFixture()

	got := View(records, teams, Query{Search: "o", Role: model.RoleAmbassador, Status: "inactive"})
	require.Len(t, got, 1)
	assert.Equal(t, "u3", got[0].ID)
}

func TestViewSortByNameAscAndDesc(t *testing.T) {
	records, teams := viewFixture()

	asc := View(records, teams, Query{SortField: SortByName, SortOrder: OrderAsc})
	assert.Equal(t, []string{"u1", "u2", "u3"}, ids(asc))

	desc := View(records, teams, Query{SortField: SortByName, SortOrder: OrderDesc})
	assert.Equal(t, []string{"u3", "u2", "u1"}, ids(desc))
}

func TestViewSortByActivityAliases(t *testing.T) {
	records, teams := viewFixture()

	byActivity := View(records, teams, Query{SortField: SortByActivity, SortOrder: OrderDesc})
	byActivities := View(records, teams, Query{SortField: SortByActivities, SortOrder: OrderDesc})
	assert.Equal(t, ids(byActivity), ids(byActivities))
	assert.Equal(t, "u1", byActivity[0].ID)
}

func TestViewSortByLastUploadNilIsOldest(t *testing.T) {
	records, teams := viewFixture()

	got := View(records, teams, Query{SortField: SortByLastUpload, SortOrder: OrderAsc})
	assert.Equal(t, "u3", got[0].ID) // jamais publié : classé le plus ancien
	assert.Equal(t, "u1", got[len(got)-1].ID)
}

func TestViewSortIsStableOnTies(t *testing.T) {
	quota := model.ActivityCounts{Stories: 1, Posts: 0, Reels: 0}
	records := []Record{
		makeRecord("a", model.RoleAmbassador, true, model.ActivityCounts{Stories: 2}, quota),
		makeRecord("b", model.RoleAmbassador, true, model.ActivityCounts{Stories: 2}, quota),
		makeRecord("c", model.RoleAmbassador, true, model.ActivityCounts{Stories: 2}, quota),
	}

	got := View(records, nil, Query{SortField: SortByActivity, SortOrder: OrderDesc})
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestViewDoesNotMutateInput(t *testing.T) {
	records, teams := viewFixture()
	original := ids(records)

	_ = View(records, teams, Query{SortField: SortByName, SortOrder: OrderDesc})
	assert.Equal(t, original, ids(records))
}

func TestViewUnknownSortFieldKeepsOrder(t *testing.T) {
	records, teams := viewFixture()
	got := View(records, teams, Query{SortField: "bogus"})
	assert.Equal(t, ids(records), ids(got))
}

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
