package model

// Team représente une équipe d'ambassadeurs menée par un leader
type Team struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	LeaderID  string   `json:"leaderId"`
	MemberIDs []string `json:"memberIds"`
	DateFields
}

// HasMember indique si l'utilisateur fait partie des membres de l'équipe
func (t Team) HasMember(userID string) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Belongs indique si l'utilisateur appartient à l'équipe pour l'affichage :
// soit comme membre, soit comme leader de l'équipe
func (t Team) Belongs(userID string) bool {
	return t.LeaderID == userID || t.HasMember(userID)
}
