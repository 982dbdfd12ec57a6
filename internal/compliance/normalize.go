package compliance

import (
	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
)

// Normalize convertit un enregistrement brut de la source analytics en
// compteurs canoniques. Les exports historiques utilisent les clés singulières
// (story/post/reel), les récents les clés plurielles ; le pluriel gagne quand
// les deux sont présents et toute clé absente vaut 0. L'absence de donnée
// n'est jamais une erreur.
func Normalize(raw model.RawCounts) model.ActivityCounts {
	return model.ActivityCounts{
		Stories: pickCount(raw.Stories, raw.Story),
		Posts:   pickCount(raw.Posts, raw.Post),
		Reels:   pickCount(raw.Reels, raw.Reel),
	}
}

func pickCount(plural, singular *int) int {
	v := 0
	switch {
	case plural != nil:
		v = *plural
	case singular != nil:
		v = *singular
	}
	if v < 0 {
		return 0
	}
	return v
}
