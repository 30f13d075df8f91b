package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/testutil"
	"github.com/dom/hero-archive/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocket_Welcome(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().WithDisplayName("watcher").BuildAndAuthenticate(t, ts)

	tests := []struct {
		name          string
		token         string
		authenticated bool
		displayName   string
	}{
		{name: "anonymous", token: "", authenticated: false},
		{name: "signed in", token: token, authenticated: true, displayName: "watcher"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testutil.NewWSClient(t, ts.WebSocketURL(tt.token))

			msg := client.ExpectMessage(websocket.MessageTypeWelcome, 2*time.Second)
			var welcome websocket.WelcomePayload
			testutil.DecodePayload(t, msg, &welcome)
			assert.Equal(t, tt.authenticated, welcome.Authenticated)
			assert.Equal(t, tt.displayName, welcome.DisplayName)
		})
	}
}

func TestWebSocket_RejectsBadToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	conn, resp, err := testutil.DialWS(ts.WebSocketURL("not-a-token"))
	if conn != nil {
		conn.Close()
	}
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebSocket_CatalogEvents(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, adminToken := testutil.NewUserBuilder().AsAdmin().BuildAndAuthenticate(t, ts)

	client := testutil.NewWSClient(t, ts.WebSocketURL(""))
	client.ExpectMessage(websocket.MessageTypeWelcome, 2*time.Second)
	require.Eventually(t, func() bool { return ts.Hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	body := map[string]interface{}{"name": "Vesper", "role": "Mage", "offense": 90}
	resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/heroes"), body, adminToken))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	msg := client.ExpectMessage(websocket.MessageTypeHeroCreated, 2*time.Second)
	var hero domain.Hero
	testutil.DecodePayload(t, msg, &hero)
	assert.Equal(t, "Vesper", hero.Name)
	assert.Equal(t, 90, hero.Offense)

	t.Run("rejected writes publish nothing", func(t *testing.T) {
		_, userToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		body := map[string]interface{}{"name": "Intruder", "role": "Tank"}
		resp := testutil.Do(t, testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/heroes"), body, userToken))
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)

		client.ExpectNoMessage(300 * time.Millisecond)
	})
}
