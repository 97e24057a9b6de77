package websockets

import (
	"encoding/json"
	"sync"

	"server/config"
	"server/internal/database"
	"server/internal/events"
	"server/internal/logger"

	"github.com/gofiber/websocket/v2"
)

// Manager pushes assessment events to connected provider dashboards. Each
// connection is keyed by the provider it authenticated as; events are only
// delivered to the assigned provider.
type Manager struct {
	log logger.Logger

	mu    sync.RWMutex
	conns map[*websocket.Conn]string
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) (*Manager, error) {
	m := &Manager{
		log:   logger.New("websockets"),
		conns: make(map[*websocket.Conn]string),
	}

	eventBus.Subscribe(m.broadcast)

	return m, nil
}

// HandleWebSocket owns the connection lifecycle. The provider ID is resolved
// by the auth middleware before the upgrade and stashed in locals.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	providerID, _ := c.Locals("providerID").(string)
	if providerID == "" {
		log.Warn("rejecting websocket without provider identity")
		_ = c.Close()
		return
	}

	m.register(c, providerID)
	defer m.unregister(c)

	log.Info("Provider connected", "providerID", providerID)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	log.Info("Provider disconnected", "providerID", providerID)
}

func (m *Manager) register(c *websocket.Conn, providerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[c] = providerID
}

func (m *Manager) unregister(c *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, c)
	_ = c.Close()
}

func (m *Manager) broadcast(event events.AssessmentEvent) {
	log := m.log.Function("broadcast")

	payload, err := json.Marshal(event)
	if err != nil {
		log.Er("failed to marshal event for websocket", err)
		return
	}

	m.mu.RLock()
	targets := make([]*websocket.Conn, 0, len(m.conns))
	for conn, providerID := range m.conns {
		if event.ProviderID != "" && providerID == event.ProviderID {
			targets = append(targets, conn)
		}
	}
	m.mu.RUnlock()

	for _, conn := range targets {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warn("failed to push event to provider", "error", err)
		}
	}
}
