package api

import (
	"net/http"
)

type createGameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	game, err := s.ledger.CreateGame(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, game)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	games, err := s.ledger.ListGames(r.Context(), activeOnly)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, games)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	detail, err := s.ledger.GetGame(r.Context(), gameID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	if err := s.ledger.DeleteGame(r.Context(), gameID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleFinishGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	result, err := s.ledger.FinishGame(r.Context(), gameID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if result.IsFailure() {
		respondJSON(w, http.StatusConflict, result.Failure)
		return
	}
	respondJSON(w, http.StatusOK, result.Success)
}

func (s *Server) handleGameHistory(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	history, err := s.ledger.GameHistory(r.Context(), gameID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}
