package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeagle1193/tukki-api-sub000/config"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/repository"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/db"
	"github.com/wolfeagle1193/tukki-api-sub000/pkg/util"
	"gorm.io/gorm"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:             "test-jwt-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}
}

func setupAuthServiceTest(t *testing.T) (*gorm.DB, AuthService) {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	return testDB, NewAuthService(userRepo, testJWTConfig())
}

func TestAuthService_Register(t *testing.T) {
	testDB, authService := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name    string
		req     *RegisterRequest
		wantErr error
	}{
		{
			name: "Valid registration",
			req: &RegisterRequest{
				Email:    "test@example.com",
				Password: "password123",
				Name:     "Test User",
			},
			wantErr: nil,
		},
		{
			name: "Duplicate email",
			req: &RegisterRequest{
				Email:    "test@example.com",
				Password: "password456",
				Name:     "Another User",
			},
			wantErr: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Register(tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, tokens)
				assert.Equal(t, tt.req.Email, user.Email)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB, authService := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := authService.Register(&RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     *LoginRequest
		wantErr error
	}{
		{
			name:    "Valid login",
			req:     &LoginRequest{Email: "test@example.com", Password: "password123"},
			wantErr: nil,
		},
		{
			name:    "Wrong password",
			req:     &LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "Non-existing user",
			req:     &LoginRequest{Email: "notfound@example.com", Password: "password123"},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Login(tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, tokens)
				assert.NotEmpty(t, tokens.AccessToken)
			}
		})
	}
}

func TestAuthService_GetUserByID(t *testing.T) {
	testDB, authService := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user, _, err := authService.Register(&RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	})
	require.NoError(t, err)

	found, err := authService.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = authService.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	testDB, authService := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user, _, err := authService.Register(&RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	})
	require.NoError(t, err)

	newName := "Renamed User"
	newImage := "https://cdn.example.com/avatar.jpg"
	updated, err := authService.UpdateProfile(user.ID, &UpdateProfileRequest{
		Name:         &newName,
		ProfileImage: &newImage,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, newImage, updated.ProfileImage)

	// omitted fields stay as they are
	updated, err = authService.UpdateProfile(user.ID, &UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, newImage, updated.ProfileImage)

	_, err = authService.UpdateProfile(9999, &UpdateProfileRequest{Name: &newName})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_PasswordSecurity(t *testing.T) {
	testDB, authService := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	password := "mySecretPassword123"
	user, _, err := authService.Register(&RegisterRequest{
		Email:    "test@example.com",
		Password: password,
		Name:     "Test User",
	})
	require.NoError(t, err)

	assert.NotEqual(t, password, user.PasswordHash)
	assert.Contains(t, user.PasswordHash, "$2a$")
}

func TestAuthService_RefreshTokens(t *testing.T) {
	testDB, authService := setupAuthServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user, tokens, err := authService.Register(&RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	})
	require.NoError(t, err)

	refreshed, err := authService.RefreshTokens(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	claims, err := util.ValidateToken(refreshed.AccessToken, "test-jwt-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)

	_, err = authService.RefreshTokens("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
