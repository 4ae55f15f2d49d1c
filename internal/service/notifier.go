package service

import (
	"context"
	"time"

	"bebidashop/internal/models"
	"bebidashop/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationStore keeps per-session notifications with expiry
type NotificationStore interface {
	PushNotification(ctx context.Context, key string, n models.Notification, ttl time.Duration) error
	ListNotifications(ctx context.Context, key string, now time.Time) ([]models.Notification, error)
}

// CounterStore keeps the item count shown by the cart badge
type CounterStore interface {
	SetCartCount(ctx context.Context, key string, count int) error
}

// NotificationCenter queues transient notifications that dismiss themselves after ttl
type NotificationCenter struct {
	store     NotificationStore
	keyPrefix string
	ttl       time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// NewNotificationCenter creates a notification center
func NewNotificationCenter(store NotificationStore, keyPrefix string, ttl time.Duration) *NotificationCenter {
	return &NotificationCenter{
		store:     store,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		now:       time.Now,
		logger:    util.GetLogger(),
	}
}

// Notify queues a message for the session. Failures are only logged.
func (nc *NotificationCenter) Notify(ctx context.Context, sessionID, message, severity string) {
	now := nc.now()
	n := models.Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(nc.ttl),
	}

	if err := nc.store.PushNotification(ctx, SessionKey(nc.keyPrefix, sessionID), n, nc.ttl); err != nil {
		nc.logger.Error("Failed to queue notification",
			zap.String("session_id", sessionID),
			zap.String("severity", severity),
			zap.Error(err))
	}
}

// Active returns the session's notifications that have not been dismissed yet
func (nc *NotificationCenter) Active(ctx context.Context, sessionID string) ([]models.Notification, error) {
	return nc.store.ListNotifications(ctx, SessionKey(nc.keyPrefix, sessionID), nc.now())
}

// NewCartCounter returns an observer that stores the cart badge count
func NewCartCounter(store CounterStore, keyPrefix string) CartObserver {
	logger := util.GetLogger()
	return func(ctx context.Context, sessionID string, itemCount int) {
		if err := store.SetCartCount(ctx, SessionKey(keyPrefix, sessionID), itemCount); err != nil {
			logger.Error("Failed to update cart counter",
				zap.String("session_id", sessionID),
				zap.Error(err))
		}
	}
}

// NoopPublisher drops events; used when Kafka is disabled
type NoopPublisher struct{}

func (NoopPublisher) PublishCartItemAdded(context.Context, *models.CartItemAddedEvent) error {
	return nil
}

func (NoopPublisher) PublishCartCleared(context.Context, *models.CartClearedEvent) error {
	return nil
}

func (NoopPublisher) PublishPurchaseIntent(context.Context, *models.PurchaseIntentEvent) error {
	return nil
}
