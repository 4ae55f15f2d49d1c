package service

import (
	"context"
	"fmt"
	"time"

	"bebidashop/internal/models"
	"bebidashop/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartStorage persists one cart per key, replaced wholesale on every write
type CartStorage interface {
	LoadCart(ctx context.Context, key string) ([]models.CartLine, error)
	SaveCart(ctx context.Context, key string, lines []models.CartLine) error
	AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, lockKey string) error
}

// Notifier shows transient feedback to a session
type Notifier interface {
	Notify(ctx context.Context, sessionID, message, severity string)
}

// EventPublisher is the outgoing event contract of the storefront
type EventPublisher interface {
	PublishCartItemAdded(ctx context.Context, event *models.CartItemAddedEvent) error
	PublishCartCleared(ctx context.Context, event *models.CartClearedEvent) error
	PublishPurchaseIntent(ctx context.Context, event *models.PurchaseIntentEvent) error
}

// CartObserver is told the new item count after every cart mutation
type CartObserver func(ctx context.Context, sessionID string, itemCount int)

// CartResult is the cart state after an operation
type CartResult struct {
	Lines     []models.CartLine `json:"items"`
	ItemCount int               `json:"item_count"`
	Total     decimal.Decimal   `json:"total"`
}

// CartOptions tunes the cart service
type CartOptions struct {
	KeyPrefix string
	LockTTL   time.Duration
}

// CartService is the single owner of cart quantity and stock logic
type CartService struct {
	catalog   *CatalogService
	storage   CartStorage
	notifier  Notifier
	publisher EventPublisher
	observers []CartObserver
	keyPrefix string
	lockTTL   time.Duration
	logger    *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	catalog *CatalogService,
	storage CartStorage,
	notifier Notifier,
	publisher EventPublisher,
	opts CartOptions,
) *CartService {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "carrito"
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 5 * time.Second
	}
	return &CartService{
		catalog:   catalog,
		storage:   storage,
		notifier:  notifier,
		publisher: publisher,
		keyPrefix: opts.KeyPrefix,
		lockTTL:   opts.LockTTL,
		logger:    util.GetLogger(),
	}
}

// OnCartChanged registers an observer for item count changes
func (s *CartService) OnCartChanged(observer CartObserver) {
	s.observers = append(s.observers, observer)
}

// CartKey returns the storage key of a session's cart
func (s *CartService) CartKey(sessionID string) string {
	return SessionKey(s.keyPrefix, sessionID)
}

// SessionKey joins the cart key prefix and a session id
func SessionKey(prefix, sessionID string) string {
	return prefix + ":" + sessionID
}

// AddToCart adds one unit of an offer or combo to the session cart
func (s *CartService) AddToCart(ctx context.Context, sessionID, itemID string, itemType models.ItemType) (*CartResult, error) {
	ctx, span := util.StartSpan(ctx, "CartService.AddToCart",
		append(util.ItemAttrs(itemID, string(itemType)), util.SessionAttr(sessionID))...)
	defer span.End()

	snapshot, err := s.catalog.Snapshot()
	if err != nil {
		return nil, err
	}

	item, ok := snapshot.Find(itemID, itemType)
	if !ok {
		util.CartAddRejectedTotal.WithLabelValues("not_found").Inc()
		s.logger.Error("Product not found",
			zap.String("item_id", itemID),
			zap.String("item_type", string(itemType)))
		return nil, fmt.Errorf("%w: %s %s", ErrItemNotFound, itemType, itemID)
	}

	if item.Stock <= 0 {
		util.CartAddRejectedTotal.WithLabelValues("out_of_stock").Inc()
		s.notify(ctx, sessionID, "❌ Producto sin stock", models.SeverityError)
		return nil, fmt.Errorf("%w: %s", ErrOutOfStock, itemID)
	}

	key := s.CartKey(sessionID)
	unlock, err := s.lock(ctx, key)
	if err != nil {
		return nil, err
	}
	defer unlock()

	lines, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}

	quantity := 1
	if idx := indexOf(lines, itemID); idx >= 0 {
		if lines[idx].Quantity >= item.Stock {
			util.CartAddRejectedTotal.WithLabelValues("stock_ceiling").Inc()
			s.notify(ctx, sessionID, "⚠️ Stock máximo alcanzado", models.SeverityWarning)
			return nil, fmt.Errorf("%w: %s at %d", ErrStockCeilingReached, itemID, lines[idx].Quantity)
		}
		lines[idx].Quantity++
		quantity = lines[idx].Quantity
	} else {
		lines = append(lines, models.CartLine{
			ID:           item.ID,
			Type:         itemType,
			Name:         item.Name,
			UnitPrice:    item.SellingPrice(),
			ImageToken:   item.ImageToken,
			Quantity:     1,
			StockCeiling: item.Stock,
		})
	}

	if err := s.save(ctx, key, lines); err != nil {
		return nil, err
	}

	count := CountItems(lines)
	s.changed(ctx, sessionID, count)
	s.notify(ctx, sessionID, fmt.Sprintf("✅ %s agregado al carrito", item.Name), models.SeveritySuccess)
	util.CartItemsAddedTotal.WithLabelValues(string(itemType)).Inc()

	event := &models.CartItemAddedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeCartItemAdded,
			Timestamp: time.Now(),
		},
		SessionID: sessionID,
		ItemID:    item.ID,
		ItemType:  itemType,
		Quantity:  quantity,
		ItemCount: count,
	}
	if err := s.publisher.PublishCartItemAdded(ctx, event); err != nil {
		s.logger.Error("Failed to publish CartItemAdded event", zap.Error(err))
	}

	util.SessionLogger(sessionID).Info("Item added to cart",
		zap.String("item_id", item.ID),
		zap.Int("quantity", quantity))

	return &CartResult{Lines: lines, ItemCount: count, Total: CartTotal(lines)}, nil
}

// GetCart returns a snapshot of the session cart
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*CartResult, error) {
	lines, err := s.load(ctx, s.CartKey(sessionID))
	if err != nil {
		return nil, err
	}
	return &CartResult{Lines: lines, ItemCount: CountItems(lines), Total: CartTotal(lines)}, nil
}

// ClearCart empties the session cart
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	ctx, span := util.StartSpan(ctx, "CartService.ClearCart", util.SessionAttr(sessionID))
	defer span.End()

	key := s.CartKey(sessionID)
	unlock, err := s.lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.save(ctx, key, []models.CartLine{}); err != nil {
		return err
	}

	s.changed(ctx, sessionID, 0)
	util.CartsClearedTotal.Inc()

	event := &models.CartClearedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeCartCleared,
			Timestamp: time.Now(),
		},
		SessionID: sessionID,
	}
	if err := s.publisher.PublishCartCleared(ctx, event); err != nil {
		s.logger.Error("Failed to publish CartCleared event", zap.Error(err))
	}

	util.SessionLogger(sessionID).Info("Cart cleared")
	return nil
}

// GetCartTotal returns the sum of unit price times quantity
func (s *CartService) GetCartTotal(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	lines, err := s.load(ctx, s.CartKey(sessionID))
	if err != nil {
		return decimal.Zero, err
	}
	return CartTotal(lines), nil
}

// ItemCount returns the sum of quantities in the session cart
func (s *CartService) ItemCount(ctx context.Context, sessionID string) (int, error) {
	lines, err := s.load(ctx, s.CartKey(sessionID))
	if err != nil {
		return 0, err
	}
	return CountItems(lines), nil
}

// CartTotal sums unit price times quantity over lines
func CartTotal(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// CountItems sums the quantities of lines
func CountItems(lines []models.CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

func indexOf(lines []models.CartLine, id string) int {
	for i := range lines {
		if lines[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *CartService) load(ctx context.Context, key string) ([]models.CartLine, error) {
	start := time.Now()
	defer func() {
		util.CartStorageLatency.WithLabelValues("load").Observe(time.Since(start).Seconds())
	}()

	lines, err := s.storage.LoadCart(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return lines, nil
}

func (s *CartService) save(ctx context.Context, key string, lines []models.CartLine) error {
	start := time.Now()
	defer func() {
		util.CartStorageLatency.WithLabelValues("save").Observe(time.Since(start).Seconds())
	}()

	if err := s.storage.SaveCart(ctx, key, lines); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// lock serializes mutations of one cart, waiting up to the lock TTL
func (s *CartService) lock(ctx context.Context, key string) (func(), error) {
	deadline := time.Now().Add(s.lockTTL)
	for {
		ok, err := s.storage.AcquireLock(ctx, key, s.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to lock cart: %w", err)
		}
		if ok {
			return func() {
				if err := s.storage.ReleaseLock(context.Background(), key); err != nil {
					s.logger.Error("Failed to release cart lock", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrCartBusy, key)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func (s *CartService) changed(ctx context.Context, sessionID string, count int) {
	for _, observer := range s.observers {
		observer(ctx, sessionID, count)
	}
}

func (s *CartService) notify(ctx context.Context, sessionID, message, severity string) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, sessionID, message, severity)
	}
}
