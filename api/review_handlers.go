package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"driveshare/pkg/models"
	"driveshare/service"
)

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	carID, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	actor, err := actorID(r)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	var body struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, s.log, fmt.Errorf("%w: invalid json body", service.ErrValidation))
		return
	}

	review, err := s.svc.Review().Create(r.Context(), &models.Review{
		CarID:   carID,
		UserID:  actor,
		Rating:  body.Rating,
		Comment: body.Comment,
	})
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, review)
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	carID, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	reviews, err := s.svc.Review().GetByCar(r.Context(), carID)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusOK, reviews)
}
