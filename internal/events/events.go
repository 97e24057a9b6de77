package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"server/config"
	"server/internal/database"
	"server/internal/logger"

	"github.com/valkey-io/valkey-go"
)

const assessmentChannel = "events:assessment"

// AssessmentEvent is published whenever an assessment is recorded, so
// provider dashboards can update live.
type AssessmentEvent struct {
	PatientID   string    `json:"patientId"`
	PatientName string    `json:"patientName"`
	ProviderID  string    `json:"providerId,omitempty"`
	RiskLevel   string    `json:"riskLevel"`
	At          time.Time `json:"at"`
}

type Handler func(AssessmentEvent)

// EventBus fans assessment events out over valkey pubsub. In-process
// subscribers are served from a background receive loop; publishing is safe
// from any goroutine.
type EventBus struct {
	client database.CacheClient
	log    logger.Logger

	mu       sync.RWMutex
	handlers []Handler

	cancel context.CancelFunc
}

func New(client database.CacheClient, config config.Config) *EventBus {
	bus := &EventBus{
		client: client,
		log:    logger.New("events"),
	}

	if client != nil {
		ctx, cancel := context.WithCancel(context.Background())
		bus.cancel = cancel
		go bus.receive(ctx)
	}

	return bus
}

func (b *EventBus) Publish(ctx context.Context, event AssessmentEvent) error {
	log := b.log.Function("Publish")

	if b.client == nil {
		b.dispatch(event)
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal assessment event", err)
	}

	cmd := b.client.B().Publish().Channel(assessmentChannel).Message(string(payload)).Build()
	if err := b.client.Do(ctx, cmd).Error(); err != nil {
		return log.Err("failed to publish assessment event", err)
	}

	return nil
}

func (b *EventBus) Subscribe(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

func (b *EventBus) Close() error {
	if b.cancel != nil {
		b.cancel()
	}
	return nil
}

func (b *EventBus) receive(ctx context.Context) {
	log := b.log.Function("receive")

	err := b.client.Receive(ctx, b.client.B().Subscribe().Channel(assessmentChannel).Build(),
		func(msg valkey.PubSubMessage) {
			var event AssessmentEvent
			if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
				log.Warn("dropping malformed assessment event", "error", err)
				return
			}
			b.dispatch(event)
		})
	if err != nil && ctx.Err() == nil {
		log.Er("event subscription ended", err)
	}
}

func (b *EventBus) dispatch(event AssessmentEvent) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}
