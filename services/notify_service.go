package services

import (
	"log"
	"os"
	"sync"
	"time"

	"campus-backend/models"

	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Notification event types pushed to connected clients.
const (
	EventLoanDecision        = "loan.decision"
	EventReservationDecision = "reservation.decision"
)

// Notification is the frame sent over the websocket.
type Notification struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is one connected websocket session.
type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan Notification
	Hub    *NotifyHub
}

// NotifyHub fans workflow decisions out to the websocket sessions of the
// affected user. Delivery is best effort: a slow or gone client is
// dropped, never waited on.
type NotifyHub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

func NewNotifyHub() *NotifyHub {
	return &NotifyHub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the client set. Call it once, in its own goroutine.
func (h *NotifyHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("notify: user %d connected, %d clients total", client.UserID, len(h.clients))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
		}
	}
}

// NotifyUser sends a notification to every session of one user.
func (h *NotifyHub) NotifyUser(userID uint, n Notification) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for client := range h.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.Send <- n:
		default:
			// Slow consumer, drop it; the reader pump will clean up.
		}
	}
}

// NotifyLoanDecision pushes the outcome of an admin loan action to the
// loan's owner.
func (h *NotifyHub) NotifyLoanDecision(loan *models.Loan) {
	h.NotifyUser(loan.UserID, Notification{Type: EventLoanDecision, Payload: loan})
}

// NotifyReservationDecision pushes the outcome of an admin reservation
// action to the reservation's owner.
func (h *NotifyHub) NotifyReservationDecision(reservation *models.Reservation) {
	h.NotifyUser(reservation.UserID, Notification{Type: EventReservationDecision, Payload: reservation})
}

// HandleWebSocket authenticates the upgrade via the token query parameter
// and runs the session pumps until the peer goes away.
func (h *NotifyHub) HandleWebSocket(c *websocket.Conn) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.Close()
		return
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "campus-secret-key-change-in-production"
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		c.Close()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.Close()
		return
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		c.Close()
		return
	}

	client := &Client{
		UserID: uint(userIDFloat),
		Conn:   c,
		Send:   make(chan Notification, 64),
		Hub:    h,
	}

	h.register <- client

	go client.writePump()
	client.readPump()
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case n, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(n); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; the channel is push only. It exists
// to notice the close handshake and unregister the client.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
