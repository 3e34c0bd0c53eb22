package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aditya/go-ridepool/internal/cache"
	apperrors "github.com/aditya/go-ridepool/internal/errors"
	"github.com/aditya/go-ridepool/internal/models"
	"github.com/aditya/go-ridepool/internal/repository"
)

type TripService interface {
	CreateTrip(ctx context.Context, driver *models.User, req *models.CreateTripRequest) (*models.Trip, error)
	ListActiveTrips(ctx context.Context) ([]models.TripResponse, error)
	ListByDriver(ctx context.Context, driverID string) ([]models.Trip, error)
	CompleteTrip(ctx context.Context, driver *models.User, tripID string) (*models.Trip, error)
}

type tripService struct {
	tripRepo    repository.TripRepository
	marketplace cache.MarketplaceCache
}

func NewTripService(tripRepo repository.TripRepository, marketplace cache.MarketplaceCache) TripService {
	return &tripService{tripRepo: tripRepo, marketplace: marketplace}
}

func (s *tripService) CreateTrip(ctx context.Context, driver *models.User, req *models.CreateTripRequest) (*models.Trip, error) {
	if !driver.IsDriver() {
		return nil, apperrors.Forbidden("only drivers can create trips")
	}

	departure, err := time.ParseInLocation(models.DepartureTimeWireFormat, req.DepartureTime, time.Local)
	if err != nil {
		return nil, apperrors.Validation("invalid departure time, expected YYYY-MM-DDTHH:MM")
	}
	if !departure.After(time.Now()) {
		return nil, apperrors.Validation("departure time must be in the future")
	}

	trip := &models.Trip{
		DriverID:       driver.ID,
		StartPoint:     req.StartPoint,
		EndPoint:       req.EndPoint,
		DepartureTime:  departure,
		AvailableSeats: req.AvailableSeats,
		Price:          req.Price,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	// Let the next marketplace read pick up the new trip.
	trip.DriverName = &driver.Name
	trip.DriverCarModel = driver.CarModel
	trip.DriverPlateNumber = driver.PlateNumber
	trip.DriverRating = &driver.Rating
	s.invalidateMarketplace(ctx)

	return trip, nil
}

func (s *tripService) ListActiveTrips(ctx context.Context) ([]models.TripResponse, error) {
	if s.marketplace != nil {
		cached, err := s.marketplace.GetActiveTrips(ctx)
		if err != nil {
			logrus.WithError(err).Warn("marketplace cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	trips, err := s.tripRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]models.TripResponse, 0, len(trips))
	for i := range trips {
		responses = append(responses, *trips[i].ToResponse())
	}

	if s.marketplace != nil {
		if err := s.marketplace.SetActiveTrips(ctx, responses); err != nil {
			logrus.WithError(err).Warn("marketplace cache write failed")
		}
	}
	return responses, nil
}

func (s *tripService) ListByDriver(ctx context.Context, driverID string) ([]models.Trip, error) {
	return s.tripRepo.ListByDriver(ctx, driverID)
}

func (s *tripService) CompleteTrip(ctx context.Context, driver *models.User, tripID string) (*models.Trip, error) {
	trip, err := s.tripRepo.Complete(ctx, tripID, driver.ID)
	if err != nil {
		switch err {
		case apperrors.ErrNotFound:
			return nil, apperrors.NotFound("trip")
		case apperrors.ErrForbidden:
			return nil, apperrors.Forbidden("not the driver of this trip")
		case apperrors.ErrTripNotCompletable:
			return nil, apperrors.State("trip cannot be completed in its current state")
		default:
			return nil, err
		}
	}

	s.invalidateMarketplace(ctx)
	return trip, nil
}

func (s *tripService) invalidateMarketplace(ctx context.Context) {
	if s.marketplace == nil {
		return
	}
	if err := s.marketplace.Invalidate(ctx); err != nil {
		logrus.WithError(err).Warn("marketplace cache invalidation failed")
	}
}
