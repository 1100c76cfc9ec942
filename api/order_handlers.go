package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"driveshare/pkg/models"
	"driveshare/service"
)

// Authentication is out of scope; the acting user arrives in a header
// set by the gateway in front of this service.
const actorHeader = "X-Actor-ID"

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req service.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, s.log, fmt.Errorf("%w: invalid json body", service.ErrValidation))
		return
	}

	order, err := s.svc.Order().Create(r.Context(), req)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	order, err := s.svc.Order().GetByID(r.Context(), id)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
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
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, s.log, fmt.Errorf("%w: invalid json body", service.ErrValidation))
		return
	}

	order, err := s.svc.Order().UpdateStatus(r.Context(), id, body.Status, actor)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (s *Server) listUserOrders(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	orders, err := s.svc.Order().GetUserOrders(r.Context(), id)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) listOwnerOrders(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	orders, err := s.svc.Order().GetOwnerOrders(r.Context(), id)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) ownerStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	stats, err := s.svc.Order().GetOwnerStats(r.Context(), id)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) carAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	pickup, err := models.ParseDate(r.URL.Query().Get("pickup"))
	if err != nil {
		respondError(w, s.log, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}
	ret, err := models.ParseDate(r.URL.Query().Get("return"))
	if err != nil {
		respondError(w, s.log, fmt.Errorf("%w: %v", service.ErrValidation, err))
		return
	}
	if pickup.After(ret) {
		respondError(w, s.log, fmt.Errorf("%w: return must not be before pickup", service.ErrValidation))
		return
	}

	available, err := s.svc.Availability().IsAvailable(r.Context(), id, pickup, ret)
	if err != nil {
		respondError(w, s.log, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"available": available})
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", service.ErrValidation, name)
	}
	return id, nil
}

func actorID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.Header.Get(actorHeader))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: missing or invalid %s header", service.ErrValidation, actorHeader)
	}
	return id, nil
}
