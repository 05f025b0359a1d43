// Package ws pushes freshly created notifications to connected browsers.
// It is a delivery optimization only: the inbox rows in the database are
// the source of truth, so a user with no open socket just polls.
package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// NotificationEvent is the payload pushed for one new notification
type NotificationEvent struct {
	NotificationID string `json:"notification_id"`
	TripID         string `json:"trip_id,omitempty"`
	Type           string `json:"notification_type"`
	Title          string `json:"title"`
	Message        string `json:"message"`
}

// Message is the wire frame sent to clients
type Message struct {
	Type string            `json:"type"`
	Data NotificationEvent `json:"data"`
	Time int64             `json:"time"`
}

// Hub maintains the set of connected clients per user and routes
// notification events to them.
type Hub struct {
	// Registered clients by user ID
	clients map[uuid.UUID]map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// events to deliver
	events chan userMessage

	mutex sync.RWMutex
}

type userMessage struct {
	userID uuid.UUID
	msg    Message
}

// NewHub creates a new notification hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan userMessage, 64),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case um := <-h.events:
			h.deliverToUser(um.userID, um.msg)
		}
	}
}

// Push queues a notification event for every open connection of userID.
// Never blocks: if the hub's queue is full the event is dropped (the DB
// row still exists, so nothing is lost).
func (h *Hub) Push(userID uuid.UUID, event NotificationEvent) {
	select {
	case h.events <- userMessage{userID: userID, msg: Message{Type: "notification", Data: event}}:
	default:
		log.Printf("ws: event queue full, dropping push for user %s", userID.String())
	}
}

// ConnectedUsers returns the user IDs with at least one open socket
func (h *Hub) ConnectedUsers() []uuid.UUID {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	users := make([]uuid.UUID, 0, len(h.clients))
	for userID := range h.clients {
		users = append(users, userID)
	}
	return users
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	log.Printf("ws: client registered for user %s (%d open)",
		client.userID.String(), len(h.clients[client.userID]))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)
			if len(clients) == 0 {
				delete(h.clients, client.userID)
			}
		}
	}
}

func (h *Hub) deliverToUser(userID uuid.UUID, msg Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- msg:
		default:
			// Slow consumer; drop this frame rather than block the hub
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS already restricts the API; sockets follow the same policy
		return true
	},
}

// ServeWS upgrades an authenticated request and starts the client pumps
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	client := &Client{
		userID: userID,
		hub:    h,
		conn:   conn,
		send:   make(chan Message, 256),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}
