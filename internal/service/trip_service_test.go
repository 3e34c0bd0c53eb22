package service

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/aditya/go-ridepool/internal/errors"
	"github.com/aditya/go-ridepool/internal/models"
)

func futureDeparture() string {
	return time.Now().Add(48 * time.Hour).Format(models.DepartureTimeWireFormat)
}

func TestCreateTrip(t *testing.T) {
	trips := newFakeTripRepo()
	marketplace := &fakeMarketplace{}
	svc := NewTripService(trips, marketplace)
	driver := driverUser("Rahul Kumar")

	trip, err := svc.CreateTrip(context.Background(), driver, &models.CreateTripRequest{
		StartPoint:     "Koramangala",
		EndPoint:       "Whitefield",
		DepartureTime:  futureDeparture(),
		AvailableSeats: 3,
		Price:          150,
	})
	if err != nil {
		t.Fatalf("CreateTrip() error = %v", err)
	}
	if trip.Status != models.TripStatusActive {
		t.Errorf("status = %q, want %q", trip.Status, models.TripStatusActive)
	}
	if trip.DriverID != driver.ID {
		t.Errorf("driver_id = %q, want %q", trip.DriverID, driver.ID)
	}
	if trip.DriverName == nil || *trip.DriverName != driver.Name {
		t.Errorf("driver name = %v, want %q", trip.DriverName, driver.Name)
	}
	if marketplace.invalidations != 1 {
		t.Errorf("cache invalidations = %d, want 1", marketplace.invalidations)
	}
}

func TestCreateTripRejectsPassengers(t *testing.T) {
	svc := NewTripService(newFakeTripRepo(), &fakeMarketplace{})

	_, err := svc.CreateTrip(context.Background(), passengerUser("Priya Sharma"), &models.CreateTripRequest{
		StartPoint:     "Koramangala",
		EndPoint:       "Whitefield",
		DepartureTime:  futureDeparture(),
		AvailableSeats: 3,
		Price:          150,
	})
	apiErr, ok := err.(*apperrors.APIError)
	if !ok {
		t.Fatalf("CreateTrip() error = %v, want APIError", err)
	}
	if apiErr.StatusCode != 403 {
		t.Errorf("status = %d, want 403", apiErr.StatusCode)
	}
}

func TestCreateTripDepartureValidation(t *testing.T) {
	svc := NewTripService(newFakeTripRepo(), &fakeMarketplace{})
	driver := driverUser("Amit Patel")

	tests := []struct {
		name      string
		departure string
	}{
		{"malformed", "tomorrow at noon"},
		{"wrong layout", "2026-09-01 10:00"},
		{"in the past", time.Now().Add(-time.Hour).Format(models.DepartureTimeWireFormat)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTrip(context.Background(), driver, &models.CreateTripRequest{
				StartPoint:     "Koramangala",
				EndPoint:       "Whitefield",
				DepartureTime:  tt.departure,
				AvailableSeats: 3,
				Price:          150,
			})
			apiErr, ok := err.(*apperrors.APIError)
			if !ok {
				t.Fatalf("CreateTrip() error = %v, want APIError", err)
			}
			if apiErr.StatusCode != 400 {
				t.Errorf("status = %d, want 400", apiErr.StatusCode)
			}
		})
	}
}

func TestListActiveTripsUsesCache(t *testing.T) {
	trips := newFakeTripRepo()
	marketplace := &fakeMarketplace{}
	svc := NewTripService(trips, marketplace)
	ctx := context.Background()
	driver := driverUser("Sneha Singh")

	if _, err := svc.CreateTrip(ctx, driver, &models.CreateTripRequest{
		StartPoint:     "Hebbal",
		EndPoint:       "MG Road",
		DepartureTime:  futureDeparture(),
		AvailableSeats: 2,
		Price:          100,
	}); err != nil {
		t.Fatalf("CreateTrip() error = %v", err)
	}

	// First read populates the cache.
	listed, err := svc.ListActiveTrips(ctx)
	if err != nil {
		t.Fatalf("ListActiveTrips() error = %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("len = %d, want 1", len(listed))
	}
	if marketplace.cached == nil {
		t.Fatal("expected cache to be populated")
	}

	// Second read is served from the cache even if the table changes.
	trips.trips = map[string]*models.Trip{}
	listed, err = svc.ListActiveTrips(ctx)
	if err != nil {
		t.Fatalf("ListActiveTrips() error = %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("cached len = %d, want 1", len(listed))
	}
}

func TestCompleteTripErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		repoErr    error
		wantStatus int
	}{
		{"unknown trip", apperrors.ErrNotFound, 404},
		{"someone else's trip", apperrors.ErrForbidden, 403},
		{"already completed", apperrors.ErrTripNotCompletable, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trips := newFakeTripRepo()
			trips.completeErr = tt.repoErr
			svc := NewTripService(trips, &fakeMarketplace{})

			_, err := svc.CompleteTrip(context.Background(), driverUser("Vikram Rao"), "trip-1")
			apiErr, ok := err.(*apperrors.APIError)
			if !ok {
				t.Fatalf("CompleteTrip() error = %v, want APIError", err)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestCompleteTripFinalizesConfirmedBookingsOnly(t *testing.T) {
	trips := newFakeTripRepo()
	svc := NewTripService(trips, &fakeMarketplace{})
	driver := driverUser("Deepa Nair")
	ctx := context.Background()

	trip := &models.Trip{DriverID: driver.ID}
	if err := trips.Create(ctx, trip); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	confirmed := &models.Booking{TripID: trip.ID, Status: models.BookingStatusConfirmed}
	cancelled := &models.Booking{TripID: trip.ID, Status: models.BookingStatusCancelled}
	elsewhere := &models.Booking{TripID: "other-trip", Status: models.BookingStatusConfirmed}
	trips.bookings = []*models.Booking{confirmed, cancelled, elsewhere}

	if _, err := svc.CompleteTrip(ctx, driver, trip.ID); err != nil {
		t.Fatalf("CompleteTrip() error = %v", err)
	}

	if confirmed.Status != models.BookingStatusCompleted {
		t.Errorf("confirmed booking status = %q, want %q", confirmed.Status, models.BookingStatusCompleted)
	}
	if cancelled.Status != models.BookingStatusCancelled {
		t.Errorf("cancelled booking status = %q, want %q", cancelled.Status, models.BookingStatusCancelled)
	}
	if elsewhere.Status != models.BookingStatusConfirmed {
		t.Errorf("other trip's booking status = %q, want %q", elsewhere.Status, models.BookingStatusConfirmed)
	}
}

func TestCompleteTripInvalidatesCache(t *testing.T) {
	trips := newFakeTripRepo()
	marketplace := &fakeMarketplace{}
	svc := NewTripService(trips, marketplace)
	driver := driverUser("Anita Reddy")

	trip := &models.Trip{DriverID: driver.ID, Status: models.TripStatusActive}
	if err := trips.Create(context.Background(), trip); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	marketplace.invalidations = 0

	completed, err := svc.CompleteTrip(context.Background(), driver, trip.ID)
	if err != nil {
		t.Fatalf("CompleteTrip() error = %v", err)
	}
	if completed.Status != models.TripStatusCompleted {
		t.Errorf("status = %q, want %q", completed.Status, models.TripStatusCompleted)
	}
	if marketplace.invalidations != 1 {
		t.Errorf("cache invalidations = %d, want 1", marketplace.invalidations)
	}
}
