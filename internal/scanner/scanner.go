package scanner

import (
	"database/sql"

	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

// ScanUser scanne une ligne SQL vers un User. Les colonnes optionnelles
// passent par les convertisseurs NULL pour garder des valeurs par défaut
// propres côté JSON.
func ScanUser(row pgx.Row) (model.User, error) {
	var u model.User
	var instagram, dob, phone, participation, note, photoURL, link sql.NullString
	var lastActivity sql.NullTime

	err := row.Scan(
		&u.ID, &u.Name, &u.Username, &u.Role, &u.Active,
		&instagram, &dob, &phone, &participation, &note, &photoURL, &link,
		&lastActivity, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return u, err
	}

	u.Instagram = utils.NullStringToString(instagram)
	u.DOB = utils.NullStringToString(dob)
	u.Phone = utils.NullStringToString(phone)
	u.ParticipationDate = utils.NullStringToString(participation)
	u.Note = utils.NullStringToString(note)
	u.PhotoURL = utils.NullStringToString(photoURL)
	u.Link = utils.NullStringToString(link)
	u.LastActivity = utils.NullTimeToPointer(lastActivity)

	return u, nil
}

// UserColumns est la liste de colonnes attendue par ScanUser
const UserColumns = `
	id, name, username, role, active,
	instagram, dob, phone, participation_date, note, photo_url, link,
	last_activity, created_at, updated_at`

// ScanTeam scanne une ligne SQL vers une Team, avec pq.Array pour la colonne
// member_ids (uuid[])
func ScanTeam(row pgx.Row) (model.Team, error) {
	var t model.Team
	var memberIDs pq.StringArray

	err := row.Scan(&t.ID, &t.Name, &t.LeaderID, pq.Array(&memberIDs), &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}

	t.MemberIDs = []string(memberIDs)
	if t.MemberIDs == nil {
		t.MemberIDs = []string{}
	}

	return t, nil
}

// ScanFeedbackNote scanne une ligne SQL vers une FeedbackNote
func ScanFeedbackNote(row pgx.Row) (model.FeedbackNote, error) {
	var n model.FeedbackNote
	err := row.Scan(&n.ID, &n.UserID, &n.UserName, &n.Role, &n.Message, &n.Archived, &n.CreatedAt)
	return n, err
}

// ScanActivityEvent scanne une ligne SQL vers un ActivityEvent
func ScanActivityEvent(row pgx.Row) (model.ActivityEvent, error) {
	var e model.ActivityEvent
	var permalink sql.NullString
	err := row.Scan(&e.ID, &e.UserID, &e.MediaType, &e.Timestamp, &permalink, &e.Source)
	if err != nil {
		return e, err
	}
	e.Permalink = utils.NullStringToString(permalink)
	return e, nil
}

// ScanPostingRule scanne une ligne SQL vers une PostingRule
func ScanPostingRule(row pgx.Row) (model.PostingRule, error) {
	var r model.PostingRule
	var text sql.NullString
	err := row.Scan(&r.ID, &r.StoriesPerWeek, &r.PostsPerWeek, &r.ReelsPerWeek, &text, &r.UpdatedAt)
	if err != nil {
		return r, err
	}
	r.RulesText = utils.NullStringToString(text)
	return r, nil
}
