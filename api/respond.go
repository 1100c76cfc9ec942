package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"driveshare/pkg/logger"
	"driveshare/service"
	"driveshare/storage"
)

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func respondError(w http.ResponseWriter, log logger.ILogger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		respondJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrCarUnavailable),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, storage.ErrStatusConflict):
		respondJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		log.Error("internal error", logger.Error(err))
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
