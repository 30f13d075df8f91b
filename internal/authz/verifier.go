package authz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/dom/hero-archive/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// VerifierConfig is built once at startup and never mutated.
type VerifierConfig struct {
	Secret []byte
	Issuer string
	Roles  []domain.UserRole
	Leeway time.Duration
}

func (c VerifierConfig) allowsRole(role domain.UserRole) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Claims is the token payload issued at login and checked on every request.
type Claims struct {
	Name string          `json:"name"`
	Role domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenVerifier turns an Authorization header value into an Identity.
type TokenVerifier interface {
	Verify(header string) (*Identity, error)
}

// Verifier checks signed bearer tokens. All failures return the same
// Unauthenticated error.
type Verifier struct {
	cfg     VerifierConfig
	keyfunc jwt.Keyfunc
	methods []string
	logger  *slog.Logger
}

var errUnauthenticated = domain.Unauthenticated("invalid or missing credentials")

// NewVerifier returns a verifier for HS256 tokens signed with cfg.Secret.
func NewVerifier(cfg VerifierConfig, logger *slog.Logger) (*Verifier, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("verification secret cannot be empty")
	}
	if len(cfg.Roles) == 0 {
		cfg.Roles = domain.AllUserRoles
	}
	secret := append([]byte(nil), cfg.Secret...)
	cfg.Secret = secret

	return &Verifier{
		cfg: cfg,
		keyfunc: func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return secret, nil
		},
		methods: []string{jwt.SigningMethodHS256.Alg()},
		logger:  logger,
	}, nil
}

// NewJWKSVerifier returns a verifier that checks RS256/ES256 tokens against a
// remote key set. Keys are cached and refreshed by keyfunc.
func NewJWKSVerifier(ctx context.Context, jwksURL string, cfg VerifierConfig, logger *slog.Logger) (*Verifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}
	if len(cfg.Roles) == 0 {
		cfg.Roles = domain.AllUserRoles
	}

	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}
	logger.Info("token verifier using remote key set", "jwks_url", jwksURL)

	return &Verifier{
		cfg:     cfg,
		keyfunc: jwks.Keyfunc,
		methods: []string{"RS256", "ES256"},
		logger:  logger,
	}, nil
}

// Verify validates the value of an Authorization header. The header must be
// exactly "Bearer <token>".
func (v *Verifier) Verify(header string) (*Identity, error) {
	if header == "" {
		return nil, errUnauthenticated
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		v.logger.Debug("rejected credential", "op", "authz.Verify", "reason", "malformed header")
		return nil, errUnauthenticated
	}

	return v.VerifyToken(parts[1])
}

// VerifyToken validates a raw token string.
func (v *Verifier) VerifyToken(tokenString string) (*Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(v.methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.cfg.Leeway),
	}
	if v.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, v.keyfunc, opts...)
	if err != nil {
		v.logger.Debug("rejected credential", "op", "authz.Verify", "reason", err.Error())
		return nil, errUnauthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errUnauthenticated
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		v.logger.Debug("rejected credential", "op", "authz.Verify", "reason", "subject is not a user id")
		return nil, errUnauthenticated
	}

	role := claims.Role
	if role == "" {
		role = domain.UserRoleUser
	}
	if !v.cfg.allowsRole(role) {
		v.logger.Debug("rejected credential", "op", "authz.Verify", "reason", "unknown role", "role", role)
		return nil, errUnauthenticated
	}

	return &Identity{
		SubjectID:   subject,
		DisplayName: claims.Name,
		Role:        role,
	}, nil
}
