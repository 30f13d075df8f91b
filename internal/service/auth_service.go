package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dom/hero-archive/internal/authz"
	"github.com/dom/hero-archive/internal/config"
	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	errInvalidCredentials = &domain.Error{
		Kind:    domain.KindUnauthenticated,
		Message: domain.ErrInvalidCredentials.Error(),
		Err:     domain.ErrInvalidCredentials,
	}
	errLocalAuthDisabled = domain.Unavailable("local sign-in is disabled", nil)
)

// AuthService issues tokens for local accounts. Verification lives in authz.
type AuthService struct {
	userRepo   repository.UserRepository
	authorizer *authz.Authorizer
	verifier   authz.TokenVerifier
	cfg        *config.Config
}

func NewAuthService(userRepo repository.UserRepository, authorizer *authz.Authorizer, verifier authz.TokenVerifier, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		authorizer: authorizer,
		verifier:   verifier,
		cfg:        cfg,
	}
}

type RegisterInput struct {
	Password    string
	DisplayName string
}

type LoginInput struct {
	DisplayName string
	Password    string
}

type AuthResult struct {
	User        *domain.User
	AccessToken string
	ExpiresAt   time.Time
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if !s.cfg.LocalAuthEnabled() {
		return nil, errLocalAuthDisabled
	}

	name := strings.TrimSpace(input.DisplayName)

	// Check if display name exists
	existing, err := s.userRepo.GetByDisplayName(ctx, name)
	if err == nil && existing != nil {
		return nil, domain.Conflict(domain.ErrDisplayNameExists.Error(), domain.ErrDisplayNameExists)
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.InvalidArgument("password cannot be used", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		PasswordHash: string(hashedPassword),
		DisplayName:  name,
		Role:         domain.UserRoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// a concurrent registration is caught by the unique index
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.result(user)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if !s.cfg.LocalAuthEnabled() {
		return nil, errLocalAuthDisabled
	}

	user, err := s.userRepo.GetByDisplayName(ctx, strings.TrimSpace(input.DisplayName))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	return s.result(user)
}

func (s *AuthService) result(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, AccessToken: token, ExpiresAt: expiresAt}, nil
}

// IssueToken signs an HS256 access token carrying the user's id, name and role.
func (s *AuthService) IssueToken(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)

	claims := authz.Claims{
		Name: user.DisplayName,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, domain.Unavailable("service unavailable", err)
	}
	return signed, expiresAt, nil
}

// Me returns the account behind the credential.
func (s *AuthService) Me(ctx context.Context, credential string) (*domain.User, error) {
	id, err := authorize(ctx, s.authorizer, authz.Operation{
		Resource:   authz.ResourceAccount,
		Action:     authz.ActionRead,
		Credential: credential,
	})
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id.SubjectID)
}

// Identify verifies an optional credential. An empty credential yields a
// nil identity and no error.
func (s *AuthService) Identify(credential string) (*authz.Identity, error) {
	if credential == "" {
		return nil, nil
	}
	return s.verifier.Verify(credential)
}
