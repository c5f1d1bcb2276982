package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType определяет типы событий ленты
type EventType string

const (
	// Системные типы
	TypePing EventType = "ping"
	TypePong EventType = "pong"

	// Типы событий
	TypePublication EventType = "publication"
	TypeFollow      EventType = "follow"
)

type Event struct {
	Type      EventType       `json:"type"`
	UserID    uuid.UUID       `json:"user_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type Hub struct {
	clients map[uuid.UUID]*Client

	// Клиенты по UserID (один пользователь может иметь несколько соединений)
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	// Каналы для регистрации/отмены регистрации
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.UserID][client.ID] = client

	log.Printf("Client registered: %s (User: %s)", client.ID, client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		if userClients, ok := h.userClients[client.UserID]; ok {
			delete(userClients, client.ID)
			if len(userClients) == 0 {
				delete(h.userClients, client.UserID)
			}
		}

		delete(h.clients, client.ID)
		close(client.Send)

		log.Printf("Client unregistered: %s (User: %s)", client.ID, client.UserID)
	}
}

// SendToUser отправляет событие всем соединениям пользователя
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.userClients[userID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- message:
			default:
				log.Printf("Client %s: %v", client.ID, ErrClientQueueFull)
			}
		}
	}
}

// NotifyUsers отправляет событие каждому пользователю из списка
func (h *Hub) NotifyUsers(userIDs []uuid.UUID, eventType EventType, fromUserID uuid.UUID, data interface{}) {
	event := Event{
		Type:      eventType,
		UserID:    fromUserID,
		Timestamp: time.Now(),
	}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			log.Printf("NotifyUsers: marshal failed: %v", err)
			return
		}
		event.Data = jsonData
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("NotifyUsers: marshal failed: %v", err)
		return
	}

	for _, userID := range userIDs {
		h.SendToUser(userID, payload)
	}
}

// GetOnlineUsers возвращает список онлайн пользователей
func (h *Hub) GetOnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Event{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}
