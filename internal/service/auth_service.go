package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/aditya/go-ridepool/internal/auth"
	apperrors "github.com/aditya/go-ridepool/internal/errors"
	"github.com/aditya/go-ridepool/internal/models"
	"github.com/aditya/go-ridepool/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	// Authenticate resolves a bearer token to the acting user. A token for a
	// deleted user fails the same way a bad token does.
	Authenticate(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User, req *models.UpdateProfileRequest) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	existing, err := s.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("phone already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		UserType:     req.UserType,
		Rating:       5.0,
	}
	if user.IsDriver() {
		if req.CarModel != "" {
			user.CarModel = &req.CarModel
		}
		if req.PlateNumber != "" {
			user.PlateNumber = &req.PlateNumber
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == apperrors.ErrConflict {
			return nil, apperrors.Conflict("phone already registered")
		}
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Auth("invalid phone or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Auth("invalid phone or password")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.Auth("missing authentication token")
	}

	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperrors.Auth("invalid or expired token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Auth("invalid or expired token")
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, user *models.User, req *models.UpdateProfileRequest) (*models.User, error) {
	if req.Name != "" {
		user.Name = req.Name
	}

	// Vehicle fields are driver-only; silently ignored for passengers.
	if user.IsDriver() {
		if req.CarModel != "" {
			carModel := req.CarModel
			user.CarModel = &carModel
		}
		if req.PlateNumber != "" {
			plate := req.PlateNumber
			user.PlateNumber = &plate
		}
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
