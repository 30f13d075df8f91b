package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type heroesBody struct {
	Heroes []domain.Hero `json:"heroes"`
}

func TestHeroHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewHeroBuilder().WithName("Corvin").WithRole(domain.HeroRoleAssassin).Build(t, ts.DB.DB)
	testutil.NewHeroBuilder().WithName("Aldric").WithRole(domain.HeroRoleFighter).Build(t, ts.DB.DB)
	testutil.NewHeroBuilder().WithName("Brisa").WithRole(domain.HeroRoleMarksman).Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		want           []string
	}{
		{name: "all", query: "", expectedStatus: http.StatusOK, want: []string{"Aldric", "Brisa", "Corvin"}},
		{name: "by role, any case", query: "?role=marksman", expectedStatus: http.StatusOK, want: []string{"Brisa"}},
		{name: "search", query: "?search=OR", expectedStatus: http.StatusOK, want: []string{"Corvin"}},
		{name: "no match", query: "?search=zzz", expectedStatus: http.StatusOK, want: []string{}},
		{name: "unknown role", query: "?role=Wizard", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/heroes"+tt.query), nil, ""))
			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var body heroesBody
			testutil.AssertJSONResponse(t, resp, &body)
			names := make([]string, len(body.Heroes))
			for i, h := range body.Heroes {
				names[i] = h.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestHeroHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)
	hero := testutil.NewHeroBuilder().WithName("Aldric").Build(t, ts.DB.DB)

	resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL(fmt.Sprintf("/heroes/%d", hero.ID)), nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var got domain.Hero
	testutil.AssertJSONResponse(t, resp, &got)
	assert.Equal(t, "Aldric", got.Name)

	for _, path := range []string{"/heroes/9999", "/heroes/abc", "/heroes/0"} {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL(path), nil, ""))
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "hero not found")
	}
}

func TestHeroHandler_AdminWrites(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, adminToken := testutil.NewUserBuilder().AsAdmin().BuildAndAuthenticate(t, ts)
	_, userToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	testhero := func(durability int) map[string]interface{} {
		return map[string]interface{}{
			"name":       "Testhero",
			"role":       "Tank",
			"durability": durability,
		}
	}

	t.Run("anonymous", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/heroes"), testhero(80), ""))
		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "invalid or missing credentials")
	})

	t.Run("regular user", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/heroes"), testhero(80), userToken))
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "insufficient permissions")
	})

	t.Run("regular user with a malformed body is still forbidden", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/heroes"), "not an object", userToken)
		testutil.AssertStatusCode(t, testutil.Do(t, req), http.StatusForbidden)
	})

	t.Run("durability out of range", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/heroes"), testhero(150), adminToken))
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)

		heroes, err := ts.Repos.Hero.List(t.Context(), domain.HeroFilter{})
		require.NoError(t, err)
		assert.Empty(t, heroes)
	})

	var created domain.Hero
	t.Run("admin creates with default difficulty", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/heroes"), testhero(80), adminToken))
		testutil.AssertStatusCode(t, resp, http.StatusCreated)
		testutil.AssertJSONResponse(t, resp, &created)
		assert.Equal(t, 80, created.Durability)
		assert.Equal(t, 1, created.Difficulty)
	})

	t.Run("explicit zero difficulty is invalid", func(t *testing.T) {
		body := map[string]interface{}{"name": "Zero", "role": "Mage", "difficulty": 0}
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/heroes"), body, adminToken))
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("duplicate name", func(t *testing.T) {
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/heroes"), testhero(10), adminToken))
		testutil.AssertErrorResponse(t, resp, http.StatusConflict, "hero name already exists")
	})

	t.Run("partial update", func(t *testing.T) {
		path := ts.APIURL(fmt.Sprintf("/heroes/%d", created.ID))
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPut, path, map[string]int{"movement": 70}, adminToken))
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var updated domain.Hero
		testutil.AssertJSONResponse(t, resp, &updated)
		assert.Equal(t, 70, updated.Movement)
		assert.Equal(t, 80, updated.Durability)
	})

	t.Run("delete", func(t *testing.T) {
		path := ts.APIURL(fmt.Sprintf("/heroes/%d", created.ID))
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodDelete, path, nil, adminToken))
		testutil.AssertStatusCode(t, resp, http.StatusNoContent)

		resp = testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodDelete, path, nil, adminToken))
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}
