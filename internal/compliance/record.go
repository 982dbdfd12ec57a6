package compliance

import (
	"time"

	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
)

// Record est la ligne de roster sur laquelle travaille le moteur : identité,
// compteurs normalisés, verdicts et état d'avertissement. Les records sont
// reconstruits entièrement à chaque cycle de fetch, jamais patchés.
type Record struct {
	ID               string
	Name             string
	Role             string
	Active           bool
	PhotoURL         string
	Link             string
	Actual           model.ActivityCounts
	Expected         model.ActivityCounts
	Verdicts         VerdictSet
	LastActivity     *time.Time
	WarningCount     int
	WarningEscalated bool
}

// Tracked indique si le record compte pour les agrégats de conformité
func (r Record) Tracked() bool {
	return r.Active && r.Role != model.RoleAdmin
}

// Summary convertit le record en DTO sérialisable pour les endpoints analytics
func (r Record) Summary(teamName string) model.AmbassadorSummary {
	return model.AmbassadorSummary{
		ID:               r.ID,
		Name:             r.Name,
		Role:             r.Role,
		Active:           r.Active,
		PhotoURL:         r.PhotoURL,
		Link:             r.Link,
		TeamName:         teamName,
		Actual:           r.Actual,
		Expected:         r.Expected,
		Compliance:       r.Verdicts.Badges(),
		LastActivity:     r.LastActivity,
		WarningsCount:    r.WarningCount,
		WarningEscalated: r.WarningEscalated,
	}
}

// TeamFor retrouve l'équipe d'un utilisateur : membre ou leader de l'équipe
// (un leader appartient à sa propre équipe pour l'affichage). Un utilisateur
// sans équipe est explicitement "non assigné", jamais une erreur.
func TeamFor(userID string, teams []model.Team) (model.Team, bool) {
	for _, t := range teams {
		if t.Belongs(userID) {
			return t, true
		}
	}
	return model.Team{}, false
}

// TeamNameFor renvoie le nom d'équipe affichable, "Unassigned" à défaut
func TeamNameFor(userID string, teams []model.Team) string {
	if t, ok := TeamFor(userID, teams); ok {
		return t.Name
	}
	return "Unassigned"
}
