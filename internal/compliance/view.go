package compliance

import (
	"sort"
	"strings"
	"time"

	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
)

// Valeurs de filtre et de tri acceptées par le pipeline du roster
const (
	FilterAll = "all"

	SortByName       = "name"
	SortByActivity   = "activity"
	SortByActivities = "activities" // alias historique du frontend
	SortByCompliance = "compliance"
	SortByLastUpload = "lastUpload"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Query décrit l'exploration interactive du roster : filtres conjonctifs
// plus une spécification de tri
type Query struct {
	Search    string
	Role      string // all, ambassador, leader
	Team      string // all ou id d'équipe
	Status    string // all, active, inactive
	SortField string
	SortOrder string
}

// View applique la requête sur un snapshot du roster et renvoie une vue
// ordonnée. Fonction pure : le slice d'entrée n'est jamais modifié, la même
// copie en cache peut être refiltrée à chaque changement de paramètre sans
// re-fetch. Le tri est stable : à clés égales l'ordre d'entrée est conservé.
func View(records []Record, teams []model.Team, q Query) []Record {
	var selected model.Team
	filterByTeam := q.Team != "" && q.Team != FilterAll
	if filterByTeam {
		for _, t := range teams {
			if t.ID == q.Team {
				selected = t
				break
			}
		}
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if search != "" && !strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		if q.Role != "" && q.Role != FilterAll && r.Role != q.Role {
			continue
		}
		if filterByTeam && !selected.HasMember(r.ID) {
			continue
		}
		switch q.Status {
		case "active":
			if !r.Active {
				continue
			}
		case "inactive":
			if r.Active {
				continue
			}
		}
		out = append(out, r)
	}

	sortRecords(out, q.SortField, q.SortOrder)
	return out
}

func sortRecords(records []Record, field, order string) {
	if field == "" {
		return
	}
	desc := order == OrderDesc

	less := func(a, b Record) bool { return false }
	switch field {
	case SortByName:
		less = func(a, b Record) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortByActivity, SortByActivities:
		less = func(a, b Record) bool {
			return a.Actual.Total() < b.Actual.Total()
		}
	case SortByCompliance:
		less = func(a, b Record) bool {
			return a.Verdicts.MetCount() < b.Verdicts.MetCount()
		}
	case SortByLastUpload:
		less = func(a, b Record) bool {
			return lastUploadKey(a).Before(lastUploadKey(b))
		}
	default:
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

// lastUploadKey classe les records sans activité connue comme les plus anciens
func lastUploadKey(r Record) time.Time {
	if r.LastActivity == nil {
		return time.Time{}
	}
	return *r.LastActivity
}
