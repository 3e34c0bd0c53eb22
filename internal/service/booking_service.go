package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/aditya/go-ridepool/internal/cache"
	apperrors "github.com/aditya/go-ridepool/internal/errors"
	"github.com/aditya/go-ridepool/internal/models"
	"github.com/aditya/go-ridepool/internal/repository"
)

type BookingService interface {
	BookTrip(ctx context.Context, passenger *models.User, req *models.CreateBookingRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, passenger *models.User, bookingID string) (*models.Booking, error)
	ListByPassenger(ctx context.Context, passengerID string) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	marketplace cache.MarketplaceCache
}

func NewBookingService(bookingRepo repository.BookingRepository, marketplace cache.MarketplaceCache) BookingService {
	return &bookingService{bookingRepo: bookingRepo, marketplace: marketplace}
}

func (s *bookingService) BookTrip(ctx context.Context, passenger *models.User, req *models.CreateBookingRequest) (*models.Booking, error) {
	if !passenger.IsPassenger() {
		return nil, apperrors.Forbidden("only passengers can book trips")
	}

	seats := req.Seats
	if seats == 0 {
		seats = 1
	}

	booking, err := s.bookingRepo.Book(ctx, req.TripID, passenger.ID, seats)
	if err != nil {
		switch err {
		case apperrors.ErrNotFound:
			return nil, apperrors.NotFound("trip")
		case apperrors.ErrTripNotOpen:
			return nil, apperrors.State("trip is not open for booking")
		case apperrors.ErrNotEnoughSeats:
			return nil, apperrors.State("not enough seats available")
		case apperrors.ErrAlreadyBooked:
			return nil, apperrors.Conflict("you already have a booking on this trip")
		default:
			return nil, err
		}
	}

	booking.Passenger = passenger
	s.invalidateMarketplace(ctx)
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, passenger *models.User, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.Cancel(ctx, bookingID, passenger.ID)
	if err != nil {
		switch err {
		case apperrors.ErrNotFound:
			return nil, apperrors.NotFound("booking")
		case apperrors.ErrForbidden:
			return nil, apperrors.Forbidden("not your booking")
		case apperrors.ErrBookingNotConfirmed:
			return nil, apperrors.State("booking cannot be cancelled in its current state")
		default:
			return nil, err
		}
	}

	s.invalidateMarketplace(ctx)
	return booking, nil
}

func (s *bookingService) ListByPassenger(ctx context.Context, passengerID string) ([]models.Booking, error) {
	return s.bookingRepo.ListByPassenger(ctx, passengerID)
}

func (s *bookingService) invalidateMarketplace(ctx context.Context) {
	if s.marketplace == nil {
		return
	}
	if err := s.marketplace.Invalidate(ctx); err != nil {
		logrus.WithError(err).Warn("marketplace cache invalidation failed")
	}
}
