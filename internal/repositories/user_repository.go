package repository

import (
	"context"
	"fmt"

	"github.com/dlcastillo/storefront/internal/gateway"
	"github.com/dlcastillo/storefront/internal/models"
	"github.com/dlcastillo/storefront/internal/utils"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type userRepository struct {
	gw *gateway.Client
}

func NewUserRepo(gw *gateway.Client) UserRepository {
	return &userRepository{gw: gw}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	row, err := r.gw.InsertReturning(gwCtx, "users", gateway.Values{
		"name":     user.Name,
		"email":    user.Email,
		"password": user.Password,
	}, "id", "created_at", "updated_at")
	if err != nil {
		return err
	}

	return row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	return r.scanUser(gwCtx, gateway.Eq("email", email))
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	return r.scanUser(gwCtx, gateway.Eq("id", id))
}

func (r *userRepository) scanUser(ctx context.Context, filter gateway.Filter) (*models.User, error) {

	row, err := r.gw.SelectRow(ctx, gateway.Query{
		Table:   "users",
		Columns: []string{"id", "name", "email", "password", "created_at", "updated_at"},
		Filters: []gateway.Filter{filter},
	})
	if err != nil {
		return nil, err
	}

	user := &models.User{}

	err = row.Scan(&user.ID, &user.Name, &user.Email, &user.Password,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.UserProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
}

type profileRepository struct {
	gw *gateway.Client
}

func NewProfileRepo(gw *gateway.Client) ProfileRepository {
	return &profileRepository{gw: gw}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	row, err := r.gw.InsertReturning(gwCtx, "user_profiles", gateway.Values{
		"user_id":   profile.UserID,
		"role":      profile.Role,
		"full_name": profile.FullName,
	}, "id", "created_at")
	if err != nil {
		return err
	}

	return row.Scan(&profile.ID, &profile.CreatedAt)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	gwCtx, cancel := utils.WithGatewayTimeout(ctx)
	defer cancel()

	row, err := r.gw.SelectRow(gwCtx, gateway.Query{
		Table:   "user_profiles",
		Columns: []string{"id", "user_id", "role", "full_name", "created_at"},
		Filters: []gateway.Filter{gateway.Eq("user_id", userID)},
	})
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{}

	err = row.Scan(&profile.ID, &profile.UserID, &profile.Role,
		&profile.FullName, &profile.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	return profile, nil
}
