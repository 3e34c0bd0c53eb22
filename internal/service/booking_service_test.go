package service

import (
	"context"
	"testing"

	apperrors "github.com/aditya/go-ridepool/internal/errors"
	"github.com/aditya/go-ridepool/internal/models"
)

func TestBookTripDefaultsToOneSeat(t *testing.T) {
	bookings := newFakeBookingRepo()
	svc := NewBookingService(bookings, &fakeMarketplace{})

	booking, err := svc.BookTrip(context.Background(), passengerUser("Priya Sharma"), &models.CreateBookingRequest{
		TripID: "trip-1",
	})
	if err != nil {
		t.Fatalf("BookTrip() error = %v", err)
	}
	if booking.Seats != 1 {
		t.Errorf("seats = %d, want 1", booking.Seats)
	}
	if booking.Status != models.BookingStatusConfirmed {
		t.Errorf("status = %q, want %q", booking.Status, models.BookingStatusConfirmed)
	}
	if booking.Passenger == nil {
		t.Error("expected passenger attached to booking")
	}
}

func TestBookTripRejectsDrivers(t *testing.T) {
	svc := NewBookingService(newFakeBookingRepo(), &fakeMarketplace{})

	_, err := svc.BookTrip(context.Background(), driverUser("Rahul Kumar"), &models.CreateBookingRequest{
		TripID: "trip-1",
	})
	apiErr, ok := err.(*apperrors.APIError)
	if !ok {
		t.Fatalf("BookTrip() error = %v, want APIError", err)
	}
	if apiErr.StatusCode != 403 {
		t.Errorf("status = %d, want 403", apiErr.StatusCode)
	}
}

func TestBookTripErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		repoErr    error
		wantStatus int
	}{
		{"unknown trip", apperrors.ErrNotFound, 404},
		{"trip not open", apperrors.ErrTripNotOpen, 400},
		{"not enough seats", apperrors.ErrNotEnoughSeats, 400},
		{"already booked", apperrors.ErrAlreadyBooked, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := newFakeBookingRepo()
			bookings.bookErr = tt.repoErr
			svc := NewBookingService(bookings, &fakeMarketplace{})

			_, err := svc.BookTrip(context.Background(), passengerUser("Amit Patel"), &models.CreateBookingRequest{
				TripID: "trip-1",
				Seats:  2,
			})
			apiErr, ok := err.(*apperrors.APIError)
			if !ok {
				t.Fatalf("BookTrip() error = %v, want APIError", err)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestBookTripInvalidatesCache(t *testing.T) {
	marketplace := &fakeMarketplace{}
	svc := NewBookingService(newFakeBookingRepo(), marketplace)

	if _, err := svc.BookTrip(context.Background(), passengerUser("Sneha Singh"), &models.CreateBookingRequest{
		TripID: "trip-1",
		Seats:  2,
	}); err != nil {
		t.Fatalf("BookTrip() error = %v", err)
	}
	if marketplace.invalidations != 1 {
		t.Errorf("cache invalidations = %d, want 1", marketplace.invalidations)
	}
}

func TestCancelBookingErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		repoErr    error
		wantStatus int
	}{
		{"unknown booking", apperrors.ErrNotFound, 404},
		{"someone else's booking", apperrors.ErrForbidden, 403},
		{"already cancelled", apperrors.ErrBookingNotConfirmed, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := newFakeBookingRepo()
			bookings.cancelErr = tt.repoErr
			svc := NewBookingService(bookings, &fakeMarketplace{})

			_, err := svc.CancelBooking(context.Background(), passengerUser("Neha Gupta"), "booking-1")
			apiErr, ok := err.(*apperrors.APIError)
			if !ok {
				t.Fatalf("CancelBooking() error = %v, want APIError", err)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestCancelBooking(t *testing.T) {
	bookings := newFakeBookingRepo()
	marketplace := &fakeMarketplace{}
	svc := NewBookingService(bookings, marketplace)
	passenger := passengerUser("Vikram Rao")
	ctx := context.Background()

	booking, err := svc.BookTrip(ctx, passenger, &models.CreateBookingRequest{TripID: "trip-1", Seats: 2})
	if err != nil {
		t.Fatalf("BookTrip() error = %v", err)
	}
	marketplace.invalidations = 0

	cancelled, err := svc.CancelBooking(ctx, passenger, booking.ID)
	if err != nil {
		t.Fatalf("CancelBooking() error = %v", err)
	}
	if cancelled.Status != models.BookingStatusCancelled {
		t.Errorf("status = %q, want %q", cancelled.Status, models.BookingStatusCancelled)
	}
	if marketplace.invalidations != 1 {
		t.Errorf("cache invalidations = %d, want 1", marketplace.invalidations)
	}
}
