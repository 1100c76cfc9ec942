package service

import (
	"driveshare/pkg/logger"
	"driveshare/storage"
)

type IServiceManager interface {
	User() UserService
	Car() CarService
	Order() OrderService
	Availability() AvailabilityService
	Review() ReviewService
	Favorite() FavoriteService
}

type service struct {
	userService         UserService
	carService          CarService
	orderService        OrderService
	availabilityService AvailabilityService
	reviewService       ReviewService
	favoriteService     FavoriteService
}

func New(stg storage.IStorage, notifier Notifier, log logger.ILogger) IServiceManager {
	availability := NewAvailabilityService(stg, log)

	return &service{
		userService:         NewUserService(stg, log),
		carService:          NewCarService(stg, log),
		orderService:        NewOrderService(stg, availability, notifier, log),
		availabilityService: availability,
		reviewService:       NewReviewService(stg, log),
		favoriteService:     NewFavoriteService(stg, log),
	}
}

func (s *service) User() UserService                 { return s.userService }
func (s *service) Car() CarService                   { return s.carService }
func (s *service) Order() OrderService               { return s.orderService }
func (s *service) Availability() AvailabilityService { return s.availabilityService }
func (s *service) Review() ReviewService             { return s.reviewService }
func (s *service) Favorite() FavoriteService         { return s.favoriteService }
