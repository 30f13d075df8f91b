package authz_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dom/hero-archive/internal/authz"
	"github.com/dom/hero-archive/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "authz-test-secret"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testVerifierConfig() authz.VerifierConfig {
	return authz.VerifierConfig{
		Secret: []byte(testSecret),
		Issuer: "hero-archive-test",
		Roles:  domain.AllUserRoles,
	}
}

func newVerifier(t *testing.T) *authz.Verifier {
	t.Helper()
	v, err := authz.NewVerifier(testVerifierConfig(), discardLogger())
	require.NoError(t, err)
	return v
}

type tokenOpts struct {
	subject string
	role    domain.UserRole
	issuer  string
	expires time.Time
	secret  string
	method  jwt.SigningMethod
}

func signToken(t *testing.T, o tokenOpts) string {
	t.Helper()
	if o.issuer == "" {
		o.issuer = "hero-archive-test"
	}
	if o.expires.IsZero() {
		o.expires = time.Now().Add(time.Hour)
	}
	if o.secret == "" {
		o.secret = testSecret
	}
	if o.method == nil {
		o.method = jwt.SigningMethodHS256
	}

	claims := authz.Claims{
		Name: "tester",
		Role: o.role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   o.subject,
			Issuer:    o.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(o.expires),
		},
	}
	token, err := jwt.NewWithClaims(o.method, claims).SignedString([]byte(o.secret))
	require.NoError(t, err)
	return token
}

func bearer(t *testing.T, subject uuid.UUID, role domain.UserRole) string {
	t.Helper()
	return "Bearer " + signToken(t, tokenOpts{subject: subject.String(), role: role})
}

// memoryOwners is an in-memory OwnerLookup.
type memoryOwners struct {
	mu     sync.Mutex
	owners map[uint]uuid.UUID
	err    error
	calls  int
}

func newMemoryOwners() *memoryOwners {
	return &memoryOwners{owners: make(map[uint]uuid.UUID)}
}

func (m *memoryOwners) OwnerOf(ctx context.Context, id uint) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return uuid.Nil, m.err
	}
	owner, ok := m.owners[id]
	if !ok {
		return uuid.Nil, domain.NotFound("missing")
	}
	return owner, nil
}

// memoryFavorites is an in-memory FavoriteIndex.
type memoryFavorites struct {
	pairs map[string]bool
	err   error
}

func (m *memoryFavorites) Exists(ctx context.Context, userID uuid.UUID, heroID uint) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.pairs[pairKey(userID, heroID)], nil
}

func pairKey(userID uuid.UUID, heroID uint) string {
	return fmt.Sprintf("%s/%d", userID, heroID)
}
