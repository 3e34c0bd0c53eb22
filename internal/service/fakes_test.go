package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/aditya/go-ridepool/internal/models"
)

// In-memory fakes for the repository and cache interfaces.

type fakeUserRepo struct {
	users     map[string]*models.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int, error) {
	return len(f.users), nil
}

type fakeTripRepo struct {
	trips       map[string]*models.Trip
	bookings    []*models.Booking
	created     []*models.Trip
	completeErr error
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: map[string]*models.Trip{}}
}

func (f *fakeTripRepo) Create(_ context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	trip.Status = models.TripStatusActive
	f.trips[trip.ID] = trip
	f.created = append(f.created, trip)
	return nil
}

func (f *fakeTripRepo) GetByID(_ context.Context, id string) (*models.Trip, error) {
	return f.trips[id], nil
}

func (f *fakeTripRepo) ListActive(_ context.Context) ([]models.Trip, error) {
	trips := []models.Trip{}
	for _, t := range f.trips {
		if t.Status == models.TripStatusActive {
			trips = append(trips, *t)
		}
	}
	return trips, nil
}

func (f *fakeTripRepo) ListByDriver(_ context.Context, driverID string) ([]models.Trip, error) {
	trips := []models.Trip{}
	for _, t := range f.trips {
		if t.DriverID == driverID {
			trips = append(trips, *t)
		}
	}
	return trips, nil
}

func (f *fakeTripRepo) Complete(_ context.Context, tripID, driverID string) (*models.Trip, error) {
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	trip := f.trips[tripID]
	trip.Status = models.TripStatusCompleted
	// Only confirmed bookings ride along; cancelled ones stay untouched.
	for _, b := range f.bookings {
		if b.TripID == tripID && b.Status == models.BookingStatusConfirmed {
			b.Status = models.BookingStatusCompleted
		}
	}
	return trip, nil
}

func (f *fakeTripRepo) Count(_ context.Context) (int, error) {
	return len(f.trips), nil
}

type fakeBookingRepo struct {
	bookings  map[string]*models.Booking
	bookErr   error
	cancelErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*models.Booking{}}
}

func (f *fakeBookingRepo) Book(_ context.Context, tripID, passengerID string, seats int) (*models.Booking, error) {
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	booking := &models.Booking{
		ID:          uuid.New().String(),
		TripID:      tripID,
		PassengerID: passengerID,
		Seats:       seats,
		Status:      models.BookingStatusConfirmed,
	}
	f.bookings[booking.ID] = booking
	return booking, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, bookingID, passengerID string) (*models.Booking, error) {
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	booking := f.bookings[bookingID]
	booking.Status = models.BookingStatusCancelled
	return booking, nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) ListByPassenger(_ context.Context, passengerID string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	for _, b := range f.bookings {
		if b.PassengerID == passengerID {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (f *fakeBookingRepo) Count(_ context.Context) (int, error) {
	return len(f.bookings), nil
}

type fakeRideRequestRepo struct {
	requests map[string]*models.RideRequest
}

func newFakeRideRequestRepo() *fakeRideRequestRepo {
	return &fakeRideRequestRepo{requests: map[string]*models.RideRequest{}}
}

func (f *fakeRideRequestRepo) Create(_ context.Context, req *models.RideRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	req.Status = models.RideRequestStatusActive
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRideRequestRepo) GetByID(_ context.Context, id string) (*models.RideRequest, error) {
	return f.requests[id], nil
}

func (f *fakeRideRequestRepo) ListActive(_ context.Context) ([]models.RideRequest, error) {
	reqs := []models.RideRequest{}
	for _, r := range f.requests {
		if r.Status == models.RideRequestStatusActive {
			reqs = append(reqs, *r)
		}
	}
	return reqs, nil
}

func (f *fakeRideRequestRepo) ListByPassenger(_ context.Context, passengerID string) ([]models.RideRequest, error) {
	reqs := []models.RideRequest{}
	for _, r := range f.requests {
		if r.PassengerID == passengerID {
			reqs = append(reqs, *r)
		}
	}
	return reqs, nil
}

func (f *fakeRideRequestRepo) UpdateStatusIf(_ context.Context, id, from, to string) (bool, error) {
	req, ok := f.requests[id]
	if !ok || req.Status != from {
		return false, nil
	}
	req.Status = to
	return true, nil
}

func (f *fakeRideRequestRepo) Count(_ context.Context) (int, error) {
	return len(f.requests), nil
}

type fakeMessageRepo struct {
	messages map[string]*models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[string]*models.Message{}}
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	f.messages[msg.ID] = msg
	return nil
}

func (f *fakeMessageRepo) GetByID(_ context.Context, id string) (*models.Message, error) {
	return f.messages[id], nil
}

func (f *fakeMessageRepo) ListByUser(_ context.Context, userID string) ([]models.Message, error) {
	msgs := []models.Message{}
	for _, m := range f.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			msgs = append(msgs, *m)
		}
	}
	return msgs, nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, id string) error {
	f.messages[id].IsRead = true
	return nil
}

type fakeMarketplace struct {
	cached        []models.TripResponse
	invalidations int
}

func (f *fakeMarketplace) GetActiveTrips(_ context.Context) ([]models.TripResponse, error) {
	return f.cached, nil
}

func (f *fakeMarketplace) SetActiveTrips(_ context.Context, trips []models.TripResponse) error {
	f.cached = trips
	return nil
}

func (f *fakeMarketplace) Invalidate(_ context.Context) error {
	f.cached = nil
	f.invalidations++
	return nil
}

func driverUser(name string) *models.User {
	car := "Honda City"
	plate := "KA01AB1234"
	return &models.User{
		ID:          uuid.New().String(),
		Name:        name,
		Phone:       "+919800000001",
		UserType:    models.UserTypeDriver,
		CarModel:    &car,
		PlateNumber: &plate,
		Rating:      5.0,
	}
}

func passengerUser(name string) *models.User {
	return &models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Phone:    "+919800000002",
		UserType: models.UserTypePassenger,
		Rating:   5.0,
	}
}
