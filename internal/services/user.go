package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/dlcastillo/storefront/internal/errors"
	"github.com/dlcastillo/storefront/internal/models"
	repository "github.com/dlcastillo/storefront/internal/repositories"
	"github.com/dlcastillo/storefront/internal/repositories/redis"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// UserService is the session and identity provider. Identity is a JWT; the
// admin flag derives from the profile's stored role attribute.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Profile(ctx context.Context, userID uuid.UUID) (*models.ProfileResponse, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

type userService struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	redisRepo *redis.RedisRepo
	jwtKey    []byte
}

func NewUserService(users repository.UserRepository, profiles repository.ProfileRepository, redisRepo *redis.RedisRepo, jwtKey []byte) UserService {
	return &userService{
		users:     users,
		profiles:  profiles,
		redisRepo: redisRepo,
		jwtKey:    jwtKey,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	existingUser, _ := s.users.GetByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, apperrors.DuplicateEntryError("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.GatewayError("Failed to create user").WithError(err)
	}

	// Every identity gets a profile row; the role flag starts as customer
	// and only a privileged backend action promotes it.
	profile := &models.UserProfile{
		UserID:   user.ID,
		Role:     models.RoleCustomer,
		FullName: &user.Name,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, apperrors.GatewayError("Failed to create user profile").WithError(err)
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	allowed, remaining, retryAfter, err := s.redisRepo.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: remaining,
		}, nil
	}

	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, apperrors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(time.Until(claims.ExpiresAt.Time).Seconds()),
	}, nil
}

func (s *userService) Profile(ctx context.Context, userID uuid.UUID) (*models.ProfileResponse, error) {

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFoundError("User not found").WithError(err)
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.GatewayError("Failed to fetch user profile").WithError(err)
	}

	return &models.ProfileResponse{User: user, Profile: profile}, nil
}

// IsAdmin reports whether the stored role flag marks the user as an
// administrator. A missing profile means customer.
func (s *userService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.GatewayError("Failed to fetch user profile").WithError(err)
	}

	return profile.IsAdmin(), nil
}
