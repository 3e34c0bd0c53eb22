//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aditya/go-ridepool/internal/config"
	"github.com/aditya/go-ridepool/internal/database"
	"github.com/aditya/go-ridepool/internal/models"
	"github.com/aditya/go-ridepool/internal/repository"
)

var (
	firstNames = []string{"Rahul", "Priya", "Amit", "Sneha", "Vikram", "Anita", "Raj", "Neha", "Suresh", "Kavita",
		"Arun", "Deepa", "Kiran", "Meera", "Sanjay", "Ritu", "Vijay", "Pooja", "Manoj", "Swati"}
	lastNames = []string{"Kumar", "Sharma", "Patel", "Singh", "Reddy", "Rao", "Gupta", "Joshi", "Nair", "Menon"}

	carModels = []string{"Maruti Swift", "Hyundai i20", "Honda City", "Toyota Innova", "Tata Nexon"}

	places = []string{"Koramangala", "Indiranagar", "Whitefield", "Electronic City", "HSR Layout",
		"Jayanagar", "Marathahalli", "Hebbal", "BTM Layout", "MG Road"}
)

func main() {
	rand.Seed(time.Now().UnixNano())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.DatabaseURL, cfg.DBMaxConnections, cfg.DBMaxIdleConnections)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	userRepo := repository.NewUserRepository(db.DB)
	tripRepo := repository.NewTripRepository(db.DB)
	requestRepo := repository.NewRideRequestRepository(db.DB)
	messageRepo := repository.NewMessageRepository(db.DB)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// Drivers
	log.Println("Creating 10 drivers...")
	driverIDs := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		car := carModels[rand.Intn(len(carModels))]
		plate := fmt.Sprintf("KA%02d%c%c%04d", rand.Intn(60)+1,
			'A'+rune(rand.Intn(26)), 'A'+rune(rand.Intn(26)), rand.Intn(10000))
		user := &models.User{
			Name:         randomName(),
			Phone:        fmt.Sprintf("+9198%08d", rand.Intn(100000000)),
			PasswordHash: string(hash),
			UserType:     models.UserTypeDriver,
			CarModel:     &car,
			PlateNumber:  &plate,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create driver: %v", err)
		}
		driverIDs = append(driverIDs, user.ID)
	}

	// Passengers
	log.Println("Creating 20 passengers...")
	passengerIDs := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		user := &models.User{
			Name:         randomName(),
			Phone:        fmt.Sprintf("+9197%08d", rand.Intn(100000000)),
			PasswordHash: string(hash),
			UserType:     models.UserTypePassenger,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create passenger: %v", err)
		}
		passengerIDs = append(passengerIDs, user.ID)
	}

	// Trips over the next week
	log.Println("Creating 30 trips...")
	for i := 0; i < 30; i++ {
		start, end := randomRoute()
		trip := &models.Trip{
			DriverID:       driverIDs[rand.Intn(len(driverIDs))],
			StartPoint:     start,
			EndPoint:       end,
			DepartureTime:  time.Now().Add(time.Duration(rand.Intn(7*24)+1) * time.Hour),
			AvailableSeats: rand.Intn(4) + 1,
			Price:          float64(rand.Intn(40)+10) * 10,
		}
		if err := tripRepo.Create(ctx, trip); err != nil {
			log.Fatalf("Failed to create trip: %v", err)
		}
	}

	// Ride requests
	log.Println("Creating 10 ride requests...")
	for i := 0; i < 10; i++ {
		start, end := randomRoute()
		req := &models.RideRequest{
			PassengerID:   passengerIDs[rand.Intn(len(passengerIDs))],
			StartPoint:    start,
			EndPoint:      end,
			DepartureTime: time.Now().Add(time.Duration(rand.Intn(7*24)+1) * time.Hour),
			Seats:         rand.Intn(3) + 1,
			Note:          "Flexible on timing",
		}
		if err := requestRepo.Create(ctx, req); err != nil {
			log.Fatalf("Failed to create ride request: %v", err)
		}
	}

	// A first conversation so the inbox is not empty.
	log.Println("Creating welcome message...")
	msg := &models.Message{
		SenderID:   driverIDs[0],
		ReceiverID: passengerIDs[0],
		Content:    "Hi! Saw your request, I drive that route every morning.",
	}
	if err := messageRepo.Create(ctx, msg); err != nil {
		log.Fatalf("Failed to create message: %v", err)
	}

	log.Println("Seed data created. All accounts use password \"password123\".")
}

func randomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

func randomRoute() (string, string) {
	start := places[rand.Intn(len(places))]
	end := places[rand.Intn(len(places))]
	for end == start {
		end = places[rand.Intn(len(places))]
	}
	return start, end
}
