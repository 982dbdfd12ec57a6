package handler

import (
	"net/http"

	"github.com/ChadiEch/ambassador-dashboard/internal/database"
	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
	"github.com/ChadiEch/ambassador-dashboard/internal/scanner"
	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
)

type teamRequest struct {
	Name      string   `json:"name"`
	LeaderID  string   `json:"leaderId"`
	MemberIDs []string `json:"memberIds"`
}

// GetTeams liste toutes les équipes avec leurs membres
func GetTeams(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(r.Context(), `
		SELECT id, name, leader_id, member_ids, created_at, updated_at
		FROM teams
		WHERE deleted_at IS NULL
		ORDER BY name`)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query teams", err)
		return
	}
	defer rows.Close()

	teams := []model.Team{}
	for rows.Next() {
		t, err := scanner.ScanTeam(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan team row", err)
			return
		}
		teams = append(teams, t)
	}

	utils.Success(w, teams)
}

// CreateTeam crée une équipe. La gestion du roster garantit qu'un ambassadeur
// n'est membre que d'une seule équipe : il est retiré des autres équipes avant
// insertion.
func CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" || req.LeaderID == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name and leaderId are required")
		return
	}
	if req.MemberIDs == nil {
		req.MemberIDs = []string{}
	}

	ctx := r.Context()

	if err := removeFromOtherTeams(r, nil, req.MemberIDs); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not reassign members", err)
		return
	}

	var team model.Team
	err := database.DB.QueryRow(ctx,
		`INSERT INTO teams(name, leader_id, member_ids, created_at, updated_at)
		 VALUES($1,$2,$3,NOW(),NOW())
		 RETURNING id, created_at, updated_at`,
		req.Name, req.LeaderID, pq.Array(req.MemberIDs),
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create team", err)
		return
	}

	team.Name = req.Name
	team.LeaderID = req.LeaderID
	team.MemberIDs = req.MemberIDs
	utils.Created(w, team)
}

// UpdateTeam met à jour le nom, le leader et les membres d'une équipe
func UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req teamRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.MemberIDs == nil {
		req.MemberIDs = []string{}
	}

	if err := removeFromOtherTeams(r, excludeTeamID(id), req.MemberIDs); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not reassign members", err)
		return
	}

	res, err := database.DB.Exec(r.Context(),
		`UPDATE teams
		 SET name=$1, leader_id=$2, member_ids=$3, updated_at=NOW()
		 WHERE id=$4 AND deleted_at IS NULL`,
		req.Name, req.LeaderID, pq.Array(req.MemberIDs), id,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update team", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "team not found")
		return
	}

	utils.Success(w, model.Team{ID: id, Name: req.Name, LeaderID: req.LeaderID, MemberIDs: req.MemberIDs})
}

// DeleteTeam supprime une équipe (soft delete) ; ses membres deviennent
// "non assignés" dans les agrégats, jamais une erreur
func DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	res, err := database.DB.Exec(r.Context(),
		`UPDATE teams SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete team", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "team not found")
		return
	}

	utils.Message(w, "team deleted")
}

// excludeTeamID convertit un id d'équipe en paramètre nullable pour la
// requête d'exclusivité. La colonne id est de type uuid : une chaîne vide ne
// passe jamais le cast côté serveur, seul NULL désigne "aucune équipe à
// épargner" (création).
func excludeTeamID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// removeFromOtherTeams retire les ids donnés des member_ids de toutes les
// autres équipes (exclusivité d'appartenance). exceptID est nil à la création,
// l'équipe en cours de modification sinon.
func removeFromOtherTeams(r *http.Request, exceptID *string, memberIDs []string) error {
	if len(memberIDs) == 0 {
		return nil
	}
	_, err := database.DB.Exec(r.Context(),
		`UPDATE teams
		 SET member_ids = ARRAY(
			SELECT m FROM unnest(member_ids) AS m
			WHERE NOT (m = ANY($1))
		 ), updated_at=NOW()
		 WHERE deleted_at IS NULL
		   AND ($2::uuid IS NULL OR id <> $2::uuid)
		   AND member_ids && $1`,
		pq.Array(memberIDs), exceptID,
	)
	return err
}
