package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"driveshare/service"
)

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, s.log, fmt.Errorf("%w: invalid json body", service.ErrValidation))
		return
	}

	user, err := s.svc.User().Register(r.Context(), body.Name, body.Email)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	user, err := s.svc.User().GetByID(r.Context(), id)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	carID, err := uuid.Parse(chi.URLParam(r, "carID"))
	if err != nil {
		respondError(w, s.log, fmt.Errorf("%w: invalid carID", service.ErrValidation))
		return
	}

	favorited, err := s.svc.Favorite().Toggle(r.Context(), userID, carID)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"favorited": favorited})
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	cars, err := s.svc.Favorite().GetByUser(r.Context(), userID)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusOK, cars)
}
