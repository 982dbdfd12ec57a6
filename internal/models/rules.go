package model

// PostingRule définit les quotas hebdomadaires globaux par catégorie.
// Un quota à zéro signifie "exempt" pour la catégorie, pas "interdit".
type PostingRule struct {
	ID             string `json:"id"`
	StoriesPerWeek int    `json:"stories_per_week"`
	PostsPerWeek   int    `json:"posts_per_week"`
	ReelsPerWeek   int    `json:"reels_per_week"`
	RulesText      string `json:"rulesText,omitempty"`
	DateFields
}

// Expected convertit la règle en compteurs attendus canoniques
func (r PostingRule) Expected() ActivityCounts {
	return ActivityCounts{
		Stories: r.StoriesPerWeek,
		Posts:   r.PostsPerWeek,
		Reels:   r.ReelsPerWeek,
	}
}
