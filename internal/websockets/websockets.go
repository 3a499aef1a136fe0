package websockets

import (
	"context"
	"server/internal/events"
	"server/internal/logger"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Manager forwards a user's events (analysis completions, case changes)
// to their open websocket connections.
type Manager struct {
	eventBus *events.EventBus
	log      logger.Logger
}

func New(eventBus *events.EventBus) (*Manager, error) {
	log := logger.New("websockets")

	if eventBus == nil {
		return nil, log.ErrMsg("websocket manager requires an event bus")
	}

	return &Manager{
		eventBus: eventBus,
		log:      log,
	}, nil
}

// HandleWebSocket serves one authenticated connection. It subscribes to
// the session user's event channel and writes each event as a JSON
// frame until the client goes away.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	userID, _ := c.Locals("userID").(string)
	if userID == "" {
		log.Warn("websocket connection without session user")
		_ = c.Close()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer c.Close()

	// Read pump: the client sends nothing we act on, but reads detect
	// disconnects and service control frames.
	go func() {
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	var writeMu sync.Mutex
	err := m.eventBus.Subscribe(ctx, userID, func(event events.Event) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := c.WriteJSON(event); err != nil {
			log.Warn("failed to write event to websocket", "userID", userID, "error", err)
			cancel()
		}
	})
	if err != nil {
		log.Warn("event subscription ended with error", "userID", userID, "error", err)
	}
}
