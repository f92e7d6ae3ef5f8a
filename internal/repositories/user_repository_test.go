package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dlcastillo/storefront/internal/gateway"
	"github.com/dlcastillo/storefront/internal/models"
	repository "github.com/dlcastillo/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRepoFixture(t *testing.T) (repository.UserRepository, repository.ProfileRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	gw := gateway.NewWithDB(db)

	return repository.NewUserRepo(gw), repository.NewProfileRepo(gw), mock
}

func TestUserRepository(t *testing.T) {
	ctx := t.Context()

	userSelectSQL := regexp.QuoteMeta(
		`SELECT id, name, email, password, created_at, updated_at FROM users`)

	t.Run("Create_Success", func(t *testing.T) {
		// Arrange
		users, _, mock := userRepoFixture(t)

		user := &models.User{
			Name:     "Dana Cruz",
			Email:    "dana@example.com",
			Password: "$2a$10$hashedpassword",
		}
		newID := uuid.New()
		now := time.Now()

		expectedSQL := regexp.QuoteMeta(
			`INSERT INTO users (email, name, password) VALUES ($1, $2, $3) ` +
				`RETURNING id, created_at, updated_at`)

		mock.ExpectQuery(expectedSQL).
			WithArgs(user.Email, user.Name, user.Password).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(newID, now, now))

		// Act
		err := users.Create(ctx, user)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, newID, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetByEmail_Success", func(t *testing.T) {
		// Arrange
		users, _, mock := userRepoFixture(t)

		expected := &models.User{
			ID:       uuid.New(),
			Name:     "Dana Cruz",
			Email:    "dana@example.com",
			Password: "$2a$10$hashedpassword",
		}

		mock.ExpectQuery(userSelectSQL + regexp.QuoteMeta(` WHERE email = $1 LIMIT 1`)).
			WithArgs(expected.Email).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "name", "email", "password", "created_at", "updated_at",
			}).AddRow(expected.ID, expected.Name, expected.Email, expected.Password,
				expected.CreatedAt, expected.UpdatedAt))

		// Act
		user, err := users.GetByEmail(ctx, expected.Email)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, expected.ID, user.ID)
		assert.Equal(t, expected.Password, user.Password)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetByEmail_NotFound", func(t *testing.T) {
		// Arrange
		users, _, mock := userRepoFixture(t)

		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		// Act
		user, err := users.GetByEmail(ctx, "nobody@example.com")

		// Assert
		require.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("GetByID_Success", func(t *testing.T) {
		// Arrange
		users, _, mock := userRepoFixture(t)
		userID := uuid.New()

		mock.ExpectQuery(userSelectSQL + regexp.QuoteMeta(` WHERE id = $1 LIMIT 1`)).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "name", "email", "password", "created_at", "updated_at",
			}).AddRow(userID, "Dana Cruz", "dana@example.com", "hash", time.Now(), time.Now()))

		// Act
		user, err := users.GetByID(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileRepository(t *testing.T) {
	ctx := t.Context()

	t.Run("Create_Success", func(t *testing.T) {
		// Arrange
		_, profiles, mock := userRepoFixture(t)

		fullName := "Dana Cruz"
		profile := &models.UserProfile{
			UserID:   uuid.New(),
			Role:     models.RoleCustomer,
			FullName: &fullName,
		}
		newID := uuid.New()

		expectedSQL := regexp.QuoteMeta(
			`INSERT INTO user_profiles (full_name, role, user_id) VALUES ($1, $2, $3) ` +
				`RETURNING id, created_at`)

		mock.ExpectQuery(expectedSQL).
			WithArgs(profile.FullName, profile.Role, profile.UserID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
				AddRow(newID, time.Now()))

		// Act
		err := profiles.Create(ctx, profile)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, newID, profile.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetByUserID_Success", func(t *testing.T) {
		// Arrange
		_, profiles, mock := userRepoFixture(t)
		userID := uuid.New()

		expectedSQL := regexp.QuoteMeta(
			`SELECT id, user_id, role, full_name, created_at FROM user_profiles ` +
				`WHERE user_id = $1 LIMIT 1`)

		mock.ExpectQuery(expectedSQL).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "role", "full_name", "created_at",
			}).AddRow(uuid.New(), userID, "admin", "Site Admin", time.Now()))

		// Act
		profile, err := profiles.GetByUserID(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, profile.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetByUserID_NotFound", func(t *testing.T) {
		// Arrange
		_, profiles, mock := userRepoFixture(t)
		userID := uuid.New()

		mock.ExpectQuery("SELECT (.+) FROM user_profiles").
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		// Act
		profile, err := profiles.GetByUserID(ctx, userID)

		// Assert
		require.Error(t, err)
		assert.Nil(t, profile)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
