// internal/websocket/hub.go
package websocket

import (
	"context"
	"errors"
	"sync"

	wstypes "ims-service/internal/domain/websocket"
	"ims-service/internal/pkg/jwt"
	"ims-service/internal/pkg/session"

	"go.uber.org/zap"
)

var ErrTokenBlacklisted = errors.New("token has been revoked")

// Hub fans real-time events out to connected clients, keyed by user ID. A
// user may hold several connections (multiple tabs); every one of them
// receives the user's events.
type Hub struct {
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage

	jwtVerifier    *jwt.Verifier
	sessionManager *session.Manager
	logger         *zap.Logger
}

// BroadcastMessage targets specific users, or everyone when UserIDs is nil.
type BroadcastMessage struct {
	UserIDs []int64
	Message *wstypes.WSMessage
}

func NewHub(jwtVerifier *jwt.Verifier, sessionManager *session.Manager, logger *zap.Logger) *Hub {
	return &Hub{
		clients:        make(map[int64]map[*Client]bool),
		Register:       make(chan *Client),
		unregister:     make(chan *Client),
		broadcast:      make(chan *BroadcastMessage, 256),
		jwtVerifier:    jwtVerifier,
		sessionManager: sessionManager,
		logger:         logger,
	}
}

// AuthenticateClient validates the JWT and live session behind a websocket
// upgrade request.
func (h *Hub) AuthenticateClient(ctx context.Context, token string) (*ClientAuth, error) {
	claims, err := h.jwtVerifier.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	blacklisted, err := h.sessionManager.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, ErrTokenBlacklisted
	}

	sessionData, err := h.sessionManager.GetSession(ctx, claims.UserID, claims.ID)
	if err != nil {
		return nil, err
	}

	return &ClientAuth{
		UserID:    claims.UserID,
		SessionID: claims.ID,
		Role:      claims.Role,
		Email:     sessionData.Email,
	}, nil
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info("websocket client connected",
		zap.Int64("user_id", client.userID),
		zap.String("session_id", client.sessionID),
		zap.Int("total", h.totalClients()),
	)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"user_id":    client.userID,
		"session_id": client.sessionID,
		"role":       client.role,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}

	delete(clients, client)
	client.Close()
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info("websocket client disconnected",
		zap.Int64("user_id", client.userID),
		zap.String("session_id", client.sessionID),
		zap.Int("total", h.totalClients()),
	)
}

func (h *Hub) deliver(msg *BroadcastMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.UserIDs == nil {
		for _, clients := range h.clients {
			for client := range clients {
				client.SendMessage(msg.Message)
			}
		}
		return
	}

	for _, userID := range msg.UserIDs {
		for client := range h.clients[userID] {
			client.SendMessage(msg.Message)
		}
	}
}

// BroadcastNotification pushes a freshly created notification to the user.
func (h *Hub) BroadcastNotification(userID int64, n *wstypes.NotificationData) {
	h.broadcast <- &BroadcastMessage{
		UserIDs: []int64{userID},
		Message: wstypes.NewMessage(wstypes.EventTypeNotification, n),
	}
}

// BroadcastNotificationCount pushes the new unread count after any change.
func (h *Hub) BroadcastNotificationCount(userID int64, count int) {
	h.broadcast <- &BroadcastMessage{
		UserIDs: []int64{userID},
		Message: wstypes.NewMessage(wstypes.EventTypeNotificationCount, map[string]interface{}{
			"unread_count": count,
		}),
	}
}

// BroadcastSystemAlert pushes an alert to every connected client.
func (h *Hub) BroadcastSystemAlert(alert *wstypes.SystemAlertData) {
	h.broadcast <- &BroadcastMessage{
		Message: wstypes.NewMessage(wstypes.EventTypeSystemAlert, alert),
	}
}

// ForceLogout tells a user's clients their session was invalidated.
func (h *Hub) ForceLogout(userID int64, jti string, reason string) {
	h.broadcast <- &BroadcastMessage{
		UserIDs: []int64{userID},
		Message: wstypes.NewMessage(wstypes.EventTypeForceLogout, wstypes.ForceLogoutData{
			Reason: reason,
			JTI:    jti,
		}),
	}
}

func (h *Hub) IsUserConnected(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

// caller holds h.mu
func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
	h.clients = make(map[int64]map[*Client]bool)
}
