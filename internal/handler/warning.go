package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
	"github.com/ChadiEch/ambassador-dashboard/internal/warnings"
)

// GetWarningState renvoie l'état d'avertissement courant d'un utilisateur.
// Un utilisateur jamais averti est à zéro, pas en erreur.
func GetWarningState(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	state, err := warnings.GetState(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de lire les avertissements", err)
		return
	}
	utils.Success(w, state)
}

// IncrementWarning ajoute un avertissement. No-op silencieux pendant une
// fenêtre de pause ; l'escalade se déclenche au seuil et reste collante.
func IncrementWarning(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	state, err := warnings.IncrementWarnings(r.Context(), userID, time.Now())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible d'incrémenter les avertissements", err)
		return
	}
	utils.LogInfo("warning incremented for %s: count=%d status=%s", userID, state.Count, state.Status())
	utils.Success(w, state)
}

// ClearWarning remet le compteur à zéro et lève l'escalade. C'est la seule
// façon de sortir de l'état escaladé.
func ClearWarning(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	state, err := warnings.ClearWarnings(r.Context(), userID, time.Now())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de réinitialiser les avertissements", err)
		return
	}
	utils.Success(w, state)
}

type pauseRequest struct {
	Until time.Time `json:"until"`
}

// PauseWarning ouvre une fenêtre de pause pendant laquelle les incréments
// sont ignorés (congés, absence justifiée)
func PauseWarning(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req pauseRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Corps de requête invalide", err)
		return
	}
	if !req.Until.After(time.Now()) {
		utils.ErrorSimple(w, http.StatusBadRequest, "La fin de pause doit être dans le futur")
		return
	}

	state, err := warnings.PauseWarnings(r.Context(), userID, req.Until, time.Now())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Impossible de suspendre les avertissements", err)
		return
	}
	utils.Success(w, state)
}
