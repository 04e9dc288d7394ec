package chat

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Ravindra230104/EduGather-server/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const redisChannel = "chat.messages"

// Hub owns the connected-client set and the message log. Everything that
// touches the set goes through its channels, so Run is the only goroutine
// that reads or writes it.
type Hub struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger *slog.Logger

	// id tags redis publications so this instance skips its own echoes.
	id string

	register   chan *Client
	unregister chan *Client
	inbound    chan inbound
	remote     chan []byte
}

type inbound struct {
	Sender string `json:"sender"`
	Body   string `json:"body"`
}

type envelope struct {
	Origin  string         `json:"origin"`
	Message models.Message `json:"message"`
}

// NewHub wires the relay. rdb may be nil; the hub then fans out to local
// clients only.
func NewHub(db *gorm.DB, rdb *redis.Client, logger *slog.Logger) *Hub {
	return &Hub{
		db:         db,
		rdb:        rdb,
		logger:     logger,
		id:         uuid.NewString(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inbound, 64),
		remote:     make(chan []byte, 64),
	}
}

func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("Chat relay starting")
	if h.rdb != nil {
		go h.subscribe(ctx)
	}

	clients := make(map[*Client]bool)
	for {
		select {
		case client := <-h.register:
			clients[client] = true
			h.replay(ctx, client)
		case client := <-h.unregister:
			if _, ok := clients[client]; ok {
				delete(clients, client)
				close(client.send)
			}
		case msg := <-h.inbound:
			payload, err := h.persist(ctx, msg)
			if err != nil {
				h.logger.Error("Failed to persist chat message", "error", err)
				continue
			}
			h.fanOut(clients, payload)
			h.publish(ctx, payload)
		case payload := <-h.remote:
			h.fanOut(clients, payload)
		case <-ctx.Done():
			h.logger.Info("Chat relay stopping")
			for client := range clients {
				close(client.send)
			}
			return
		}
	}
}

// History returns the full persisted log, oldest first.
func (h *Hub) History(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	if err := h.db.WithContext(ctx).Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// replay pushes the whole log to one freshly connected client. That replay
// is the only mitigation for messages missed while offline.
func (h *Hub) replay(ctx context.Context, client *Client) {
	messages, err := h.History(ctx)
	if err != nil {
		h.logger.Error("Failed to load chat history", "error", err)
		return
	}
	for _, msg := range messages {
		payload, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		select {
		case client.send <- payload:
		default:
			h.logger.Warn("Client send buffer full during replay")
			return
		}
	}
}

func (h *Hub) persist(ctx context.Context, msg inbound) ([]byte, error) {
	message := models.Message{Sender: msg.Sender, Body: msg.Body}
	if err := h.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, err
	}
	return json.Marshal(message)
}

// fanOut delivers to every client, the sender included. A client that
// cannot keep up is dropped; it will get the full log again on reconnect.
func (h *Hub) fanOut(clients map[*Client]bool, payload []byte) {
	for client := range clients {
		select {
		case client.send <- payload:
		default:
			delete(clients, client)
			close(client.send)
		}
	}
}

func (h *Hub) publish(ctx context.Context, payload []byte) {
	if h.rdb == nil {
		return
	}
	var message models.Message
	if err := json.Unmarshal(payload, &message); err != nil {
		return
	}
	data, err := json.Marshal(envelope{Origin: h.id, Message: message})
	if err != nil {
		return
	}
	if err := h.rdb.Publish(ctx, redisChannel, data).Err(); err != nil {
		h.logger.Warn("Failed to publish chat message to broker", "error", err)
	}
}

// subscribe rebroadcasts messages persisted by other instances.
func (h *Hub) subscribe(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for {
		select {
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				continue
			}
			if env.Origin == h.id {
				continue
			}
			payload, err := json.Marshal(env.Message)
			if err != nil {
				continue
			}
			select {
			case h.remote <- payload:
			default:
				h.logger.Warn("Remote chat buffer full, dropping message")
			}
		case <-ctx.Done():
			return
		}
	}
}
