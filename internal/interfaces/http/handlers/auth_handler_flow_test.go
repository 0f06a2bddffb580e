package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/usecases"
	"garagesale.backend/pkg/crypto"
	"garagesale.backend/pkg/jwt"
	redispkg "garagesale.backend/pkg/redis"
)

const testSessionKey = "0000000000000000000000000000000000000000000000000000000000000000"

func newAuthFlowHandler(t *testing.T, repo userRepoStub) *AuthHandler {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	t.Cleanup(srv.Close)
	redispkg.SetClient(redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()}))

	sessionStore, err := redispkg.NewSessionStore(testSessionKey)
	require.NoError(t, err)

	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthHandler(usecases.NewAuthUsecase(repo, jwtService, sessionStore))
}

func TestAuthHandler_RegisterLoginAndMeFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hash, err := crypto.HashPassword("correct-horse-1")
	require.NoError(t, err)

	existing := &entities.User{
		ID:           uuid.New(),
		Email:        "exists@garagesale.pk",
		Name:         "Existing User",
		PasswordHash: hash,
		Role:         entities.UserRoleUser,
		IsActive:     true,
	}

	var created *entities.User
	repo := userRepoStub{
		getByEmailFn: func(_ context.Context, email string) (*entities.User, error) {
			if email == existing.Email {
				return existing, nil
			}
			return nil, domainerrors.ErrNotFound
		},
		createFn: func(_ context.Context, u *entities.User) error {
			created = u
			return nil
		},
		getByIDFn: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			if created != nil && created.ID == id {
				return created, nil
			}
			if existing.ID == id {
				return existing, nil
			}
			return nil, domainerrors.ErrNotFound
		},
	}
	h := newAuthFlowHandler(t, repo)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.RefreshToken)
	r.POST("/auth/logout", h.Logout)

	// new account
	w := doJSON(t, r, http.MethodPost, "/auth/register", `{"email":"new@garagesale.pk","name":"New User","password":"correct-horse-1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var auth entities.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	require.NotEmpty(t, auth.AccessToken)
	require.NotEmpty(t, auth.RefreshToken)
	require.NotEmpty(t, auth.SessionID)
	require.Equal(t, entities.VerificationUnverified, auth.User.VerificationStatus)

	// duplicate email
	w = doJSON(t, r, http.MethodPost, "/auth/register", `{"email":"exists@garagesale.pk","name":"Existing User","password":"correct-horse-1"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "Email already registered")

	// wrong password
	w = doJSON(t, r, http.MethodPost, "/auth/login", `{"email":"exists@garagesale.pk","password":"wrong-password1"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), domainerrors.CodeInvalidCredentials)

	// good login
	w = doJSON(t, r, http.MethodPost, "/auth/login", `{"email":"exists@garagesale.pk","password":"correct-horse-1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	require.NotEmpty(t, auth.SessionID)

	// rotate tokens
	w = doJSON(t, r, http.MethodPost, "/auth/refresh", `{"refreshToken":"`+auth.RefreshToken+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/refresh", `{"refreshToken":"garbage"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid or expired refresh token")

	// logout via header
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("X-Session-Id", auth.SessionID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_LoginDisabledAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hash, err := crypto.HashPassword("correct-horse-1")
	require.NoError(t, err)

	repo := userRepoStub{
		getByEmailFn: func(_ context.Context, email string) (*entities.User, error) {
			return &entities.User{
				ID:           uuid.New(),
				Email:        email,
				PasswordHash: hash,
				IsActive:     false,
			}, nil
		},
	}
	h := newAuthFlowHandler(t, repo)

	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := doJSON(t, r, http.MethodPost, "/auth/login", `{"email":"off@garagesale.pk","password":"correct-horse-1"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "Account is disabled")
}

func TestAuthHandler_ChangePasswordFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hash, err := crypto.HashPassword("correct-horse-1")
	require.NoError(t, err)
	userID := uuid.New()

	var newHash string
	repo := userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			return &entities.User{ID: userID, PasswordHash: hash, IsActive: true}, nil
		},
		updatePassFn: func(_ context.Context, id uuid.UUID, passwordHash string) error {
			newHash = passwordHash
			return nil
		},
	}
	h := newAuthFlowHandler(t, repo)

	r := gin.New()
	r.POST("/auth/change-password", withUser(userID, h.ChangePassword))
	r.GET("/auth/me", withUser(userID, h.GetMe))

	w := doJSON(t, r, http.MethodPost, "/auth/change-password", `{"currentPassword":"wrong-password1","newPassword":"new-password-12"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Current password is incorrect")

	w = doJSON(t, r, http.MethodPost, "/auth/change-password", `{"currentPassword":"correct-horse-1","newPassword":"new-password-12"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, newHash)
	require.True(t, crypto.CheckPassword("new-password-12", newHash))

	w = doJSON(t, r, http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), userID.String())
}
