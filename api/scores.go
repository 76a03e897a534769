package api

import (
	"net/http"
)

type recordScoreRequest struct {
	Points int  `json:"points"`
	Played bool `json:"played"`
}

func (s *Server) handleRecordScore(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	var req recordScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.ledger.RecordScore(r.Context(), playerID, req.Points, req.Played)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if result.IsFailure() {
		respondJSON(w, http.StatusUnprocessableEntity, result.Failure)
		return
	}
	respondJSON(w, http.StatusCreated, result.Success)
}

func (s *Server) handleAddTokenRound(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	tokens, err := s.ledger.AddTokenRound(r.Context(), gameID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tokens)
}

func (s *Server) handleToggleToken(w http.ResponseWriter, r *http.Request) {
	tokenID, err := pathUUID(r, "tokenID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid token id")
		return
	}

	token, err := s.ledger.ToggleToken(r.Context(), tokenID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, token)
}
