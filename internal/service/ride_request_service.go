package service

import (
	"context"
	"time"

	apperrors "github.com/aditya/go-ridepool/internal/errors"
	"github.com/aditya/go-ridepool/internal/models"
	"github.com/aditya/go-ridepool/internal/repository"
)

type RideRequestService interface {
	CreateRequest(ctx context.Context, passenger *models.User, req *models.CreateRideRequestRequest) (*models.RideRequest, error)
	// ListRequests shows drivers the open demand and passengers their own
	// request history.
	ListRequests(ctx context.Context, actor *models.User) ([]models.RideRequest, error)
	CancelRequest(ctx context.Context, passenger *models.User, requestID string) (*models.RideRequest, error)
	MatchRequest(ctx context.Context, driver *models.User, requestID string) (*models.RideRequest, error)
}

type rideRequestService struct {
	requestRepo repository.RideRequestRepository
}

func NewRideRequestService(requestRepo repository.RideRequestRepository) RideRequestService {
	return &rideRequestService{requestRepo: requestRepo}
}

func (s *rideRequestService) CreateRequest(ctx context.Context, passenger *models.User, req *models.CreateRideRequestRequest) (*models.RideRequest, error) {
	if !passenger.IsPassenger() {
		return nil, apperrors.Forbidden("only passengers can post ride requests")
	}

	departure, err := time.ParseInLocation(models.DepartureTimeWireFormat, req.DepartureTime, time.Local)
	if err != nil {
		return nil, apperrors.Validation("invalid departure time, expected YYYY-MM-DDTHH:MM")
	}
	if !departure.After(time.Now()) {
		return nil, apperrors.Validation("departure time must be in the future")
	}

	request := &models.RideRequest{
		PassengerID:   passenger.ID,
		StartPoint:    req.StartPoint,
		EndPoint:      req.EndPoint,
		DepartureTime: departure,
		Seats:         req.Seats,
		Note:          req.Note,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	request.PassengerName = &passenger.Name
	return request, nil
}

func (s *rideRequestService) ListRequests(ctx context.Context, actor *models.User) ([]models.RideRequest, error) {
	if actor.IsDriver() {
		return s.requestRepo.ListActive(ctx)
	}
	return s.requestRepo.ListByPassenger(ctx, actor.ID)
}

func (s *rideRequestService) CancelRequest(ctx context.Context, passenger *models.User, requestID string) (*models.RideRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperrors.NotFound("ride request")
	}
	if request.PassengerID != passenger.ID {
		return nil, apperrors.Forbidden("not your ride request")
	}

	return s.transition(ctx, request, models.RideRequestStatusCancelled)
}

// MatchRequest lets a driver claim an active request, marking it matched.
func (s *rideRequestService) MatchRequest(ctx context.Context, driver *models.User, requestID string) (*models.RideRequest, error) {
	if !driver.IsDriver() {
		return nil, apperrors.Forbidden("only drivers can match ride requests")
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperrors.NotFound("ride request")
	}

	return s.transition(ctx, request, models.RideRequestStatusMatched)
}

// transition moves an active request to the target status with a
// compare-and-swap, so two drivers cannot both match the same request.
func (s *rideRequestService) transition(ctx context.Context, request *models.RideRequest, to string) (*models.RideRequest, error) {
	ok, err := s.requestRepo.UpdateStatusIf(ctx, request.ID, models.RideRequestStatusActive, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.State("ride request is not active")
	}
	request.Status = to
	return request, nil
}
