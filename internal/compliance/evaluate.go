package compliance

import (
	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
)

// Verdict est le résultat de conformité d'une seule catégorie de contenu
type Verdict string

const (
	VerdictMet    Verdict = "met"
	VerdictUnmet  Verdict = "unmet"
	VerdictExempt Verdict = "exempt" // quota à zéro : aucune exigence cette période
)

// Color renvoie l'encodage attendu par le frontend : vert quand le quota est
// atteint, rouge quand il ne l'est pas, jaune quand il n'y a pas de quota
// (l'exemption doit rester visuellement distincte de la conformité)
func (v Verdict) Color() string {
	switch v {
	case VerdictMet:
		return "green"
	case VerdictExempt:
		return "yellow"
	default:
		return "red"
	}
}

// VerdictSet regroupe les verdicts des trois catégories
type VerdictSet struct {
	Story Verdict `json:"story"`
	Post  Verdict `json:"post"`
	Reel  Verdict `json:"reel"`
}

// Evaluate calcule le verdict par catégorie : exempt si le quota est nul,
// sinon comparaison entière stricte, sans arrondi ni crédit partiel.
// Fonction pure : toujours recalculée à partir du dernier snapshot.
func Evaluate(actual, expected model.ActivityCounts) VerdictSet {
	return VerdictSet{
		Story: evaluateOne(actual.Stories, expected.Stories),
		Post:  evaluateOne(actual.Posts, expected.Posts),
		Reel:  evaluateOne(actual.Reels, expected.Reels),
	}
}

func evaluateOne(actual, expected int) Verdict {
	if expected == 0 {
		return VerdictExempt
	}
	if actual >= expected {
		return VerdictMet
	}
	return VerdictUnmet
}

// Compliant indique le statut global utilisé pour les tris et agrégats :
// les trois catégories sont met ou exempt, et au moins une exigence existait.
// Un ambassadeur sans aucun quota n'est pas classé "conforme".
func (s VerdictSet) Compliant() bool {
	for _, v := range []Verdict{s.Story, s.Post, s.Reel} {
		if v == VerdictUnmet {
			return false
		}
	}
	allExempt := s.Story == VerdictExempt && s.Post == VerdictExempt && s.Reel == VerdictExempt
	return !allExempt
}

// MetCount renvoie le nombre de catégories au quota (0 à 3), la clé de tri
// "compliance" du roster
func (s VerdictSet) MetCount() int {
	n := 0
	for _, v := range []Verdict{s.Story, s.Post, s.Reel} {
		if v == VerdictMet {
			n++
		}
	}
	return n
}

// Badges sérialise les verdicts dans la forme consommée par le frontend
func (s VerdictSet) Badges() model.ComplianceBadges {
	return model.ComplianceBadges{
		Story: s.Story.Color(),
		Post:  s.Post.Color(),
		Reel:  s.Reel.Color(),
	}
}
