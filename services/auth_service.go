package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"openboard-api/models"
	"openboard-api/repositories"
	"openboard-api/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	LoginWithOAuth(ctx context.Context, providerToken string) (*models.AuthResponse, error)
	// ResolveToken turns a bearer token into the acting user. With
	// required=false an empty token yields (nil, nil): an anonymous but
	// valid request.
	ResolveToken(tokenString string, required bool, now time.Time) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	codec    *token.Codec
	profiles ProfileFetcher
}

func NewAuthService(userRepo repositories.UserRepository, codec *token.Codec, profiles ProfileFetcher) AuthService {
	return &authService{
		userRepo: userRepo,
		codec:    codec,
		profiles: profiles,
	}
}

func (s *authService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	if existing, err := s.userRepo.GetByEmail(req.Email); err == nil && existing != nil {
		return nil, models.NewAppError(models.CodeDuplicateAccount)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewExternalError("hash", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, models.NewExternalError("User.Create", err)
	}

	return s.issueFor(user)
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewAppError(models.CodeFailedAuthentication)
		}
		return nil, models.NewExternalError("User.GetByEmail", err)
	}

	if user.Password == "" {
		// OAuth-only account
		return nil, models.NewAppError(models.CodeFailedAuthentication)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.NewAppError(models.CodeFailedAuthentication)
	}

	return s.issueFor(user)
}

func (s *authService) LoginWithOAuth(ctx context.Context, providerToken string) (*models.AuthResponse, error) {
	profile, err := s.profiles.Fetch(ctx, providerToken)
	if err != nil {
		return nil, models.NewAppError(models.CodeFailedAuthentication)
	}

	user, err := s.userRepo.GetByOAuthSubject(profile.Subject)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewExternalError("User.GetByOAuthSubject", err)
		}
		user = newOAuthUser(profile)
		if err := s.userRepo.Create(user); err != nil {
			return nil, models.NewExternalError("User.Create", err)
		}
	}

	return s.issueFor(user)
}

func newOAuthUser(profile *OAuthProfile) *models.User {
	username := profile.Username
	if username == "" {
		username = fmt.Sprintf("user-%s", profile.Subject)
	}
	user := &models.User{
		Username:     username,
		Email:        profile.Email,
		OAuthSubject: &profile.Subject,
	}
	if profile.ProfileImageURL != "" {
		user.ProfileImageURL = &profile.ProfileImageURL
	}
	return user
}

func (s *authService) ResolveToken(tokenString string, required bool, now time.Time) (*models.User, error) {
	if tokenString == "" {
		if required {
			return nil, models.NewAppError(models.CodeRequiredPermission)
		}
		return nil, nil
	}

	payload, err := s.codec.Verify(tokenString, now)
	if err != nil {
		if models.IsCode(err, models.CodeExpiredToken) {
			return nil, models.NewAppError(models.CodeExpiredPermission)
		}
		// Malformed, tampered, and unreadable envelopes all collapse to
		// the same rejection.
		return nil, models.NewAppError(models.CodeInvalidPermission)
	}

	user, err := s.userRepo.GetByID(payload.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A token can outlive its subject.
			return nil, models.NewAppError(models.CodeInvalidPermission)
		}
		return nil, models.NewExternalError("User.GetByID", err)
	}
	return user, nil
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *authService) issueFor(user *models.User) (*models.AuthResponse, error) {
	tok, expiresAt, err := s.codec.Issue(user.ID, time.Now())
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		Token:     tok,
		ExpiresAt: expiresAt,
		User:      models.NewUserView(user),
	}, nil
}
