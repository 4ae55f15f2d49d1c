package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"bebidashop/internal/models"
	"bebidashop/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventWriter is what EventPublisher needs from a producer
type EventWriter interface {
	PublishEvent(ctx context.Context, key string, event interface{}) error
}

// EventPublisher handles publishing storefront events
type EventPublisher struct {
	producer EventWriter
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer EventWriter) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishCartItemAdded publishes CartItemAdded event
func (ep *EventPublisher) PublishCartItemAdded(ctx context.Context, event *models.CartItemAddedEvent) error {
	return ep.producer.PublishEvent(ctx, "cart-"+event.SessionID, event)
}

// PublishCartCleared publishes CartCleared event
func (ep *EventPublisher) PublishCartCleared(ctx context.Context, event *models.CartClearedEvent) error {
	return ep.producer.PublishEvent(ctx, "cart-"+event.SessionID, event)
}

// PublishPurchaseIntent publishes PurchaseIntent event
func (ep *EventPublisher) PublishPurchaseIntent(ctx context.Context, event *models.PurchaseIntentEvent) error {
	key := "item-" + event.ItemID
	if event.SessionID != "" {
		key = "cart-" + event.SessionID
	}
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming catalog events
type EventHandler struct {
	onCatalogUpdated func(context.Context, *models.CatalogUpdatedEvent) error
	logger           *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{logger: util.GetLogger()}
}

// OnCatalogUpdated registers a handler for CatalogUpdated events
func (eh *EventHandler) OnCatalogUpdated(handler func(context.Context, *models.CatalogUpdatedEvent) error) {
	eh.onCatalogUpdated = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	eh.logger.Info("Handling event",
		zap.String("type", baseEvent.EventType),
		zap.String("event_id", baseEvent.EventID))

	switch baseEvent.EventType {
	case models.EventTypeCatalogUpdated:
		if eh.onCatalogUpdated != nil {
			var event models.CatalogUpdatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal CatalogUpdated event: %w", err)
			}
			return eh.onCatalogUpdated(ctx, &event)
		}

	default:
		eh.logger.Debug("Unhandled event type", zap.String("type", baseEvent.EventType))
	}

	return nil
}
