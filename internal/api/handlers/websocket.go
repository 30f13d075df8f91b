package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dom/hero-archive/internal/service"
	"github.com/dom/hero-archive/internal/websocket"
	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub         *websocket.Hub
	authService *service.AuthService
	upgrader    ws.Upgrader
}

// NewWebSocketHandler accepts connections from allowedOrigins, or from any
// origin when the list contains "*".
func NewWebSocketHandler(hub *websocket.Hub, authService *service.AuthService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// Handle upgrades the connection. A credential is optional; when one is
// given as ?token= or in the Authorization header it must verify.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	cred := credential(r)
	if token := r.URL.Query().Get("token"); token != "" {
		cred = "Bearer " + token
	}

	identity, err := h.authService.Identify(cred)
	if err != nil {
		writeError(w, r, "websocket.Handle", err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "op", "websocket.Handle", "error", err)
		return
	}

	userID := uuid.Nil
	welcome := websocket.WelcomePayload{}
	if identity != nil {
		userID = identity.SubjectID
		welcome.Authenticated = true
		welcome.DisplayName = identity.DisplayName
	}

	client := websocket.NewClient(h.hub, conn, userID)
	if msg, err := websocket.NewMessage(websocket.MessageTypeWelcome, welcome); err == nil {
		client.Send(msg)
	}
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

func originChecker(allowed []string) func(r *http.Request) bool {
	for _, o := range allowed {
		if o == "*" {
			return func(r *http.Request) bool { return true }
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}
