package api

import (
	"net/http"

	"github.com/google/uuid"

	ledgerservice "github.com/tarok-klub/tarok-backend/app/modules/ledger/application"
)

type addPlayersRequest struct {
	Seats []struct {
		Name      string     `json:"name"`
		ProfileID *uuid.UUID `json:"profile_id,omitempty"`
	} `json:"seats"`
}

func (s *Server) handleAddPlayers(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	var req addPlayersRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Seats) == 0 {
		respondError(w, http.StatusBadRequest, "seats must not be empty")
		return
	}

	seats := make([]ledgerservice.NewSeat, 0, len(req.Seats))
	for _, seat := range req.Seats {
		seats = append(seats, ledgerservice.NewSeat{
			Name:      seat.Name,
			ProfileID: seat.ProfileID,
		})
	}

	players, err := s.ledger.AddPlayers(r.Context(), gameID, seats)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, players)
}

func (s *Server) handleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	if err := s.ledger.RemovePlayer(r.Context(), playerID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handlePlayerHistory(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	history, err := s.ledger.PlayerHistory(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid player id")
		return
	}
	repair := r.URL.Query().Get("repair") == "true"

	result, err := s.ledger.RecomputeTotal(r.Context(), playerID, repair)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
