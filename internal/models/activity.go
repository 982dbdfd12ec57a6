package model

import "time"

// Types de contenu suivis (clés singulières côté base et côté badge)
const (
	MediaStory = "story"
	MediaPost  = "post"
	MediaReel  = "reel"
)

// ActivityCounts est la forme canonique des compteurs d'activité :
// les trois catégories sont toujours présentes (0 par défaut)
type ActivityCounts struct {
	Stories int `json:"stories"`
	Posts   int `json:"posts"`
	Reels   int `json:"reels"`
}

// Total renvoie la somme des trois catégories
func (c ActivityCounts) Total() int {
	return c.Stories + c.Posts + c.Reels
}

// RawCounts est la forme brute renvoyée par la source analytics : certains
// exports utilisent les clés plurielles, d'autres les clés singulières
// historiques. Les deux orthographes coexistent parfois dans un même export.
type RawCounts struct {
	Stories *int `json:"stories,omitempty"`
	Story   *int `json:"story,omitempty"`
	Posts   *int `json:"posts,omitempty"`
	Post    *int `json:"post,omitempty"`
	Reels   *int `json:"reels,omitempty"`
	Reel    *int `json:"reel,omitempty"`
}

// ActivityEvent représente une publication individuelle (synchronisée ou
// saisie manuellement par un admin)
type ActivityEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MediaType string    `json:"mediaType"` // story, post, reel
	Timestamp time.Time `json:"timestamp"`
	Permalink string    `json:"permalink,omitempty"`
	Source    string    `json:"source"` // api, manual
}

// ComplianceBadges est la forme sérialisée des verdicts par catégorie,
// telle que le frontend la consomme (green / red / yellow)
type ComplianceBadges struct {
	Story string `json:"story"`
	Post  string `json:"post"`
	Reel  string `json:"reel"`
}

// AmbassadorSummary est la ligne de roster renvoyée par les endpoints
// analytics : identité + compteurs + verdicts + état d'avertissement
type AmbassadorSummary struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Role             string           `json:"role,omitempty"`
	Active           bool             `json:"active"`
	PhotoURL         string           `json:"photoUrl,omitempty"`
	Link             string           `json:"link,omitempty"`
	TeamName         string           `json:"teamName,omitempty"`
	Actual           ActivityCounts   `json:"actual"`
	Expected         ActivityCounts   `json:"expected"`
	Compliance       ComplianceBadges `json:"compliance"`
	LastActivity     *time.Time       `json:"lastActivity,omitempty"`
	WarningsCount    int              `json:"warningsCount"`
	WarningEscalated bool             `json:"warningEscalated"`
}
