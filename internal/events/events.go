package events

import (
	"context"
	"encoding/json"
	"server/config"
	"server/internal/database"
	"server/internal/logger"

	"github.com/valkey-io/valkey-go"
)

const (
	TypeCaseCreated  = "case.created"
	TypeCaseAnalyzed = "case.analyzed"
	TypeCaseDeleted  = "case.deleted"
)

// Event is a per-user notification published over valkey pub/sub and
// forwarded to that user's websocket connections.
type Event struct {
	Type    string         `json:"type"`
	UserID  string         `json:"userId"`
	Payload map[string]any `json:"payload,omitempty"`
}

type EventBus struct {
	client database.CacheClient
	config config.Config
	log    logger.Logger
}

func New(client database.CacheClient, config config.Config) *EventBus {
	return &EventBus{
		client: client,
		config: config,
		log:    logger.New("events"),
	}
}

func userChannel(userID string) string {
	return "events:user:" + userID
}

func (b *EventBus) Publish(ctx context.Context, event Event) error {
	log := b.log.Function("Publish")

	if b.client == nil {
		return log.ErrMsg("event bus has no cache client")
	}
	if event.UserID == "" {
		return log.ErrMsg("event has no user id")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "type", event.Type)
	}

	cmd := b.client.B().Publish().
		Channel(userChannel(event.UserID)).
		Message(string(data)).
		Build()
	if err := b.client.Do(ctx, cmd).Error(); err != nil {
		return log.Err("failed to publish event", err, "type", event.Type)
	}

	return nil
}

// Subscribe blocks delivering the user's events to fn until ctx is
// cancelled or the connection drops.
func (b *EventBus) Subscribe(ctx context.Context, userID string, fn func(Event)) error {
	log := b.log.Function("Subscribe")

	if b.client == nil {
		return log.ErrMsg("event bus has no cache client")
	}

	cmd := b.client.B().Subscribe().Channel(userChannel(userID)).Build()
	err := b.client.Receive(ctx, cmd, func(msg valkey.PubSubMessage) {
		var event Event
		if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
			log.Er("failed to unmarshal event", err, "channel", msg.Channel)
			return
		}
		fn(event)
	})
	if err != nil && ctx.Err() == nil {
		return log.Err("subscription ended", err, "userID", userID)
	}

	return nil
}

func (b *EventBus) Close() error {
	// Clients are owned and closed by database.DB.
	return nil
}
