package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	displayName string
	password    string
	role        domain.UserRole
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		displayName: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
		role:        domain.UserRoleUser,
	}
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// AsAdmin gives the user the admin role
func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.role = domain.UserRoleAdmin
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	// MinCost keeps the suite fast; production uses DefaultCost.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndAuthenticate creates the user and returns it with a signed access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, _ := b.Build(t, ts.DB.DB)
	return user, IssueToken(t, ts, user)
}

// IssueToken signs an access token for user with the server's secret
func IssueToken(t *testing.T, ts *TestServer, user *domain.User) string {
	t.Helper()

	token, _, err := ts.Services.Auth.IssueToken(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Role        string `json:"role"`
	} `json:"user"`
	AccessToken string `json:"accessToken"`
}

// HeroBuilder creates test heroes
type HeroBuilder struct {
	hero domain.Hero
}

// NewHeroBuilder creates a new HeroBuilder with valid default stats
func NewHeroBuilder() *HeroBuilder {
	return &HeroBuilder{hero: domain.Hero{
		Name:        fmt.Sprintf("Hero_%s", uuid.New().String()[:8]),
		Role:        domain.HeroRoleFighter,
		Specialty:   "Test specialty",
		Difficulty:  3,
		Durability:  50,
		Offense:     50,
		ControlStat: 50,
		Movement:    50,
	}}
}

// WithName sets the hero name
func (b *HeroBuilder) WithName(name string) *HeroBuilder {
	b.hero.Name = name
	return b
}

// WithRole sets the hero role
func (b *HeroBuilder) WithRole(role domain.HeroRole) *HeroBuilder {
	b.hero.Role = role
	return b
}

// WithDifficulty sets the difficulty
func (b *HeroBuilder) WithDifficulty(d int) *HeroBuilder {
	b.hero.Difficulty = d
	return b
}

// Build creates the hero in the database
func (b *HeroBuilder) Build(t *testing.T, db *gorm.DB) *domain.Hero {
	t.Helper()

	hero := b.hero
	if err := db.Create(&hero).Error; err != nil {
		t.Fatalf("failed to create hero: %v", err)
	}
	return &hero
}

// SeedHeroes creates count heroes in the database
func SeedHeroes(t *testing.T, db *gorm.DB, count int) []*domain.Hero {
	t.Helper()

	heroes := make([]*domain.Hero, count)
	for i := 0; i < count; i++ {
		heroes[i] = NewHeroBuilder().
			WithName(fmt.Sprintf("Test Hero %02d", i)).
			WithRole(domain.AllHeroRoles[i%len(domain.AllHeroRoles)]).
			Build(t, db)
	}
	return heroes
}

// HeroIDs returns the ids of heroes in order
func HeroIDs(heroes []*domain.Hero) []uint {
	ids := make([]uint, len(heroes))
	for i, h := range heroes {
		ids[i] = h.ID
	}
	return ids
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	bodyReader := bytes.NewBuffer(nil)
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// Do sends req and fails the test on transport errors
func Do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
