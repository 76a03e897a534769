package api

import (
	"net/http"
	"time"

	statsservice "github.com/tarok-klub/tarok-backend/app/modules/stats/application"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	var since *time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := statsservice.ParseSince(raw, time.Now())
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		since = &parsed
	}

	board, err := s.stats.Leaderboard(r.Context(), since)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, board)
}

func (s *Server) handleGameStandings(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	standings, err := s.stats.GameStandings(r.Context(), gameID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, standings)
}

func (s *Server) handleProgressionChart(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	chart, err := s.stats.ProgressionChart(r.Context(), gameID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", chart.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(chart.PNG)
}

func (s *Server) handleExportStandings(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	export, err := s.stats.ExportStandings(r.Context(), gameID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Data)
}
