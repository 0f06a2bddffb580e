package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/domain/repositories"
	"garagesale.backend/pkg/crypto"
	"garagesale.backend/pkg/jwt"
	"garagesale.backend/pkg/redis"
)

// sessionTTL matches the refresh token lifetime so a session outlives its
// access token but not its refresh token.
const sessionTTL = 7 * 24 * time.Hour

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	jwtService   *jwt.JWTService
	sessionStore *redis.SessionStore
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.JWTService,
	sessionStore *redis.SessionStore,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// Register registers a new user. New accounts start unverified; verification
// is a separate submission step.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*entities.AuthResponse, error) {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:              input.Email,
		Name:               input.Name,
		PasswordHash:       passwordHash,
		Role:               entities.UserRoleUser,
		IsActive:           true,
		VerificationStatus: entities.VerificationUnverified,
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return u.issueSession(ctx, user)
}

// Login authenticates a user and opens a session
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domainerrors.ErrAccountDisabled
	}

	return u.issueSession(ctx, user)
}

// Logout tears down the server-side session
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return u.sessionStore.DeleteSession(ctx, sessionID)
}

// RefreshToken rotates the token pair from a valid refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domainerrors.ErrAccountDisabled
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// ChangePassword verifies the current password before setting a new one
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	newHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePassword(ctx, userID, newHash)
}

func (u *AuthUsecase) issueSession(ctx context.Context, user *entities.User) (*entities.AuthResponse, error) {
	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	sessionID, err := crypto.GenerateSessionID()
	if err != nil {
		return nil, err
	}

	session := &redis.SessionData{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		UserID:       user.ID.String(),
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
	}
	if err := u.sessionStore.CreateSession(ctx, sessionID, session, sessionTTL); err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		SessionID:    sessionID,
		User:         user,
	}, nil
}
