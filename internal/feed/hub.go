// Package feed broadcasts complaint events to dashboard WebSocket clients.
// Events arrive over Redis Pub/Sub so every server instance sees submissions
// handled by any other instance.
package feed

import (
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"sauti/backend/internal/logger"
	"sauti/backend/internal/models"
)

// Subscriber hands out a subscription to the live-feed channel.
type Subscriber interface {
	SubscribeToFeed() *redis.PubSub
}

// Hub owns the set of connected dashboard clients and fans events out to
// them. All client bookkeeping happens on the Run goroutine.
type Hub struct {
	Clients      map[*Client]bool
	RegisterCh   chan *Client
	UnregisterCh chan *Client
	BroadcastCh  chan models.ComplaintEvent

	subscriber Subscriber
	log        *logrus.Entry
}

func NewHub(sub Subscriber, log *logger.Logger) *Hub {
	return &Hub{
		Clients:      make(map[*Client]bool),
		RegisterCh:   make(chan *Client),
		UnregisterCh: make(chan *Client),
		BroadcastCh:  make(chan models.ComplaintEvent, 64),
		subscriber:   sub,
		log:          log.WithComponent("feed"),
	}
}

// Run starts the Redis listener and dispatches events until the process
// exits. Call it on its own goroutine.
func (h *Hub) Run() {
	go h.listen()

	for {
		select {
		case client := <-h.RegisterCh:
			h.Clients[client] = true

		case client := <-h.UnregisterCh:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}

		case event := <-h.BroadcastCh:
			for client := range h.Clients {
				select {
				case client.Send <- event:
				default:
					// Slow client: drop it rather than stall the feed.
					delete(h.Clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// listen pumps Redis Pub/Sub messages into the broadcast channel.
func (h *Hub) listen() {
	pubsub := h.subscriber.SubscribeToFeed()
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var event models.ComplaintEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			h.log.WithError(err).Warn("dropping malformed feed event")
			continue
		}
		h.BroadcastCh <- event
	}
}
