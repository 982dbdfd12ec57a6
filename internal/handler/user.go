package handler

import (
	"net/http"
	"time"

	"github.com/ChadiEch/ambassador-dashboard/internal/cache"
	"github.com/ChadiEch/ambassador-dashboard/internal/database"
	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
	"github.com/ChadiEch/ambassador-dashboard/internal/scanner"
	"github.com/ChadiEch/ambassador-dashboard/internal/services"
	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
	"github.com/gorilla/mux"
	"github.com/oklog/ulid/v2"

	"golang.org/x/crypto/bcrypt"
)

// Cloudinary est le service d'upload de photos, initialisé dans main.
// Nil si la configuration Cloudinary est absente.
var Cloudinary *services.CloudinaryService

// GetUsers liste tous les utilisateurs non supprimés
func GetUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(r.Context(), `
		SELECT `+scanner.UserColumns+`
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY name`)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query users", err)
		return
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanner.ScanUser(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan user row", err)
			return
		}
		users = append(users, u)
	}

	utils.Success(w, users)
}

// GetUser récupère un utilisateur par id
func GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	row := database.DB.QueryRow(r.Context(), `
		SELECT `+scanner.UserColumns+`
		FROM users
		WHERE id=$1 AND deleted_at IS NULL`, id)

	user, err := scanner.ScanUser(row)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "user not found", err)
		return
	}

	utils.Success(w, user)
}

// CreateUser crée un ambassadeur ou un leader
func CreateUser(w http.ResponseWriter, r *http.Request) {
	var user model.User
	if err := utils.DecodeJSON(r, &user); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if user.Name == "" || user.Username == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name and username are required")
		return
	}
	if user.Role == "" {
		user.Role = model.RoleAmbassador
	}
	if user.Role != model.RoleAmbassador && user.Role != model.RoleLeader && user.Role != model.RoleAdmin {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid role")
		return
	}

	password := user.Password
	if password == "" {
		password = "changeme"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	err = database.DB.QueryRow(r.Context(),
		`INSERT INTO users(name, username, password_hash, role, active,
			instagram, dob, phone, participation_date, note, photo_url, link,
			created_at, updated_at)
		 VALUES($1,$2,$3,$4,true,$5,$6,$7,$8,$9,$10,$11,NOW(),NOW())
		 RETURNING id, created_at, updated_at`,
		user.Name, user.Username, string(hashed), user.Role,
		user.Instagram, user.DOB, user.Phone, user.ParticipationDate,
		user.Note, user.PhotoURL, user.Link,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create user", err)
		return
	}

	user.Active = true
	user.Password = ""
	utils.Created(w, user)
}

// UpdateUser met à jour le profil d'un utilisateur
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var user model.User
	if err := utils.DecodeJSON(r, &user); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	_, err := database.DB.Exec(r.Context(),
		`UPDATE users
		 SET name=$1, username=$2, role=$3, instagram=$4, dob=$5, phone=$6,
		     participation_date=$7, note=$8, photo_url=$9, link=$10, updated_at=NOW()
		 WHERE id=$11 AND deleted_at IS NULL`,
		user.Name, user.Username, user.Role, user.Instagram, user.DOB, user.Phone,
		user.ParticipationDate, user.Note, user.PhotoURL, user.Link, id,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update user", err)
		return
	}

	// Mot de passe changé uniquement s'il est fourni
	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
			return
		}
		if _, err := database.DB.Exec(r.Context(),
			`UPDATE users SET password_hash=$1 WHERE id=$2`, string(hashed), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not update password", err)
			return
		}
	}

	user.ID = id
	user.Password = ""
	utils.Success(w, user)
}

// ToggleUserActive bascule le drapeau actif (réactivation comprise)
func ToggleUserActive(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var active bool
	err := database.DB.QueryRow(r.Context(),
		`UPDATE users SET active = NOT active, updated_at=NOW()
		 WHERE id=$1 AND deleted_at IS NULL
		 RETURNING active`,
		id,
	).Scan(&active)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "user not found", err)
		return
	}

	utils.Success(w, map[string]interface{}{"id": id, "active": active})
}

// DeactivateUser désactive un ambassadeur actif. La demande doit être
// accompagnée d'un feedback (motif + note 0-10) ; elle est rejetée localement
// avant toute écriture si l'un des deux manque.
func DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var feedback model.DeactivationFeedback
	if err := utils.DecodeJSON(r, &feedback); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := feedback.Validate(); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
		return
	}
	if feedback.Date.IsZero() {
		feedback.Date = time.Now()
	}

	ctx := r.Context()

	var active bool
	if err := database.DB.QueryRow(ctx,
		`SELECT active FROM users WHERE id=$1 AND deleted_at IS NULL`, id,
	).Scan(&active); err != nil {
		utils.Error(w, http.StatusNotFound, "user not found", err)
		return
	}
	if !active {
		utils.ErrorSimple(w, http.StatusConflict, "user is already deactivated")
		return
	}

	if _, err := database.DB.Exec(ctx,
		`INSERT INTO deactivation_feedback(id, user_id, reason, rating, note, date)
		 VALUES($1,$2,$3,$4,$5,$6)`,
		ulid.Make().String(), id, feedback.Reason, *feedback.Rating, feedback.Note, feedback.Date,
	); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not record deactivation feedback", err)
		return
	}

	if _, err := database.DB.Exec(ctx,
		`UPDATE users SET active=false, updated_at=NOW() WHERE id=$1`, id,
	); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not deactivate user", err)
		return
	}

	cache.Invalidate(ctx, cacheKeyDashboardStats, cacheKeyTeamPerformance)
	utils.Message(w, "user deactivated")
}

// DeleteUser supprime un utilisateur (soft delete)
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	res, err := database.DB.Exec(r.Context(),
		`UPDATE users SET deleted_at=NOW(), active=false WHERE id=$1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete user", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found")
		return
	}

	utils.Message(w, "user deleted")
}

// UploadProfilePhoto upload la photo de profil via Cloudinary et enregistre
// l'URL sécurisée sur le profil
func UploadProfilePhoto(w http.ResponseWriter, r *http.Request) {
	if Cloudinary == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "photo upload is not configured")
		return
	}

	id := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("photo")
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing photo file")
		return
	}
	defer file.Close()

	url, err := Cloudinary.UploadProfilePhoto(r.Context(), file, id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload photo", err)
		return
	}

	if _, err := database.DB.Exec(r.Context(),
		`UPDATE users SET photo_url=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`,
		url, id,
	); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save photo url", err)
		return
	}

	utils.Success(w, map[string]string{"photoUrl": url})
}
