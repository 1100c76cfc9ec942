package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"driveshare/api/middleware"
	"driveshare/config"
	"driveshare/pkg/logger"
	"driveshare/service"
)

type Server struct {
	svc service.IServiceManager
	log logger.ILogger
}

func NewServer(svc service.IServiceManager, log logger.ILogger) *Server {
	return &Server{svc: svc, log: log}
}

func (s *Server) Router(cfg config.Config, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.Idempotency(redisClient, cfg.IdempotencyTTL)).
			Post("/orders", s.createOrder)
		r.Get("/orders/{id}", s.getOrder)
		r.Patch("/orders/{id}/status", s.updateOrderStatus)

		r.Post("/users", s.createUser)
		r.Get("/users/{id}", s.getUser)
		r.Get("/users/{id}/orders", s.listUserOrders)
		r.Post("/users/{id}/favorites/{carID}", s.toggleFavorite)
		r.Get("/users/{id}/favorites", s.listFavorites)

		r.Get("/owners/{id}/orders", s.listOwnerOrders)
		r.Get("/owners/{id}/stats", s.ownerStats)

		r.Post("/cars", s.createCar)
		r.Get("/cars", s.listCars)
		r.Get("/cars/{id}", s.getCar)
		r.Get("/cars/{id}/availability", s.carAvailability)
		r.Patch("/cars/{id}/listed", s.setCarListed)
		r.Delete("/cars/{id}", s.deleteCar)
		r.Post("/cars/{id}/reviews", s.createReview)
		r.Get("/cars/{id}/reviews", s.listReviews)
	})

	return r
}
