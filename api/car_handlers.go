package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"driveshare/pkg/models"
	"driveshare/service"
)

func (s *Server) createCar(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	var car models.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		respondError(w, s.log, fmt.Errorf("%w: invalid json body", service.ErrValidation))
		return
	}
	car.OwnerID = actor

	created, err := s.svc.Car().Create(r.Context(), &car)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) listCars(w http.ResponseWriter, r *http.Request) {
	cars, err := s.svc.Car().GetListed(r.Context())
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusOK, cars)
}

func (s *Server) getCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	car, err := s.svc.Car().GetByID(r.Context(), id)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusOK, car)
}

func (s *Server) setCarListed(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
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
		Listed bool `json:"listed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, s.log, fmt.Errorf("%w: invalid json body", service.ErrValidation))
		return
	}

	if err := s.svc.Car().SetListed(r.Context(), id, body.Listed, actor); err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"listed": body.Listed})
}

func (s *Server) deleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	actor, err := actorID(r)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	if err := s.svc.Car().Delete(r.Context(), id, actor); err != nil {
		respondError(w, s.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
