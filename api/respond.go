package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	ledgerservice "github.com/tarok-klub/tarok-backend/app/modules/ledger/application"
	ledgerdb "github.com/tarok-klub/tarok-backend/app/modules/ledger/infrastructure/repositories"
	profileservice "github.com/tarok-klub/tarok-backend/app/modules/profile/application"
	profiledb "github.com/tarok-klub/tarok-backend/app/modules/profile/infrastructure/repositories"
	statsdb "github.com/tarok-klub/tarok-backend/app/modules/stats/infrastructure/repositories"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondServiceError maps domain errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgerdb.ErrGameNotFound),
		errors.Is(err, ledgerdb.ErrPlayerNotFound),
		errors.Is(err, ledgerdb.ErrTokenNotFound),
		errors.Is(err, statsdb.ErrGameNotFound),
		errors.Is(err, profiledb.ErrProfileNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledgerservice.ErrZeroPoints),
		errors.Is(err, ledgerservice.ErrNoPlayers),
		errors.Is(err, ledgerservice.ErrDuplicatePlayer),
		errors.Is(err, profileservice.ErrEmptyName):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledgerservice.ErrGameFinished):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, param))
}
