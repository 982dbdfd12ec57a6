package handler

import (
	"net/http"

	"github.com/ChadiEch/ambassador-dashboard/internal/database"
	"github.com/ChadiEch/ambassador-dashboard/internal/middleware"
	model "github.com/ChadiEch/ambassador-dashboard/internal/models"
	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
	"github.com/jackc/pgx/v5"

	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login authentifie un utilisateur et ouvre une session
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "username and password are required")
		return
	}

	ctx := r.Context()

	var user model.User
	var passwordHash string
	err := database.DB.QueryRow(ctx,
		`SELECT id, name, username, role, active, password_hash
		 FROM users
		 WHERE username=$1 AND deleted_at IS NULL`,
		req.Username,
	).Scan(&user.ID, &user.Name, &user.Username, &user.Role, &user.Active, &passwordHash)

	if err == pgx.ErrNoRows {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !user.Active {
		utils.ErrorSimple(w, http.StatusForbidden, "account is deactivated")
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, loginResponse{Token: token, User: user})
}

// Logout invalide la session courante
func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "missing session token")
		return
	}

	if err := utils.InvalidateSession(r.Context(), token); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not invalidate session", err)
		return
	}

	utils.Message(w, "logged out")
}
