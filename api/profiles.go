package api

import (
	"net/http"
)

type createProfileRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleGetOrCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := s.profiles.GetOrCreateByName(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		profiles, err := s.profiles.SearchProfiles(r.Context(), q)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, profiles)
		return
	}

	profiles, err := s.profiles.ListProfiles(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profileID, err := pathUUID(r, "profileID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	profile, err := s.profiles.GetProfile(r.Context(), profileID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
