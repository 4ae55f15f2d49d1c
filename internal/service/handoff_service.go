package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bebidashop/internal/models"
	"bebidashop/internal/pricing"
	"bebidashop/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandoffService builds the WhatsApp links that hand purchase intent off to the shop
type HandoffService struct {
	catalog   *CatalogService
	carts     *CartService
	publisher EventPublisher
	logger    *zap.Logger
}

// NewHandoffService creates a new handoff service
func NewHandoffService(catalog *CatalogService, carts *CartService, publisher EventPublisher) *HandoffService {
	return &HandoffService{
		catalog:   catalog,
		carts:     carts,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// ProductLink builds the link for a single item. An empty or "simple" type
// selects the built-in products; "individual" and "combo" select offers and combos.
func (h *HandoffService) ProductLink(ctx context.Context, itemID, itemType string) (string, error) {
	ctx, span := util.StartSpan(ctx, "HandoffService.ProductLink", util.ItemAttrs(itemID, itemType)...)
	defer span.End()

	snapshot, err := h.catalog.Snapshot()
	if err != nil {
		return "", err
	}

	var (
		item *models.CatalogItem
		ok   bool
	)
	switch itemType {
	case "", string(models.KindSimple):
		item, ok = snapshot.FindProduct(itemID)
	default:
		item, ok = snapshot.Find(itemID, models.ItemType(itemType))
	}
	if !ok {
		return "", fmt.Errorf("%w: %s %s", ErrItemNotFound, itemType, itemID)
	}

	symbol := h.catalog.CurrencySymbol()
	price := pricing.FormatPrice(item.SellingPrice(), symbol)

	message := item.PurchaseMessage
	if message == "" {
		message = fmt.Sprintf("Hola! Me interesa %s de %s", item.Name, price)
	}

	link := pricing.BuildExternalMessageLink(h.catalog.WhatsAppNumber(), message)
	h.publish(ctx, &models.PurchaseIntentEvent{ItemID: item.ID, Total: price, Link: link})
	util.PurchaseLinksTotal.WithLabelValues("product").Inc()

	return link, nil
}

// CartLink builds a link whose message lists the whole session cart
func (h *HandoffService) CartLink(ctx context.Context, sessionID string) (string, error) {
	ctx, span := util.StartSpan(ctx, "HandoffService.CartLink", util.SessionAttr(sessionID))
	defer span.End()

	cart, err := h.carts.GetCart(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if len(cart.Lines) == 0 {
		return "", ErrEmptyCart
	}

	symbol := h.catalog.CurrencySymbol()
	total := pricing.FormatPrice(cart.Total, symbol)

	var b strings.Builder
	b.WriteString("Hola! Me interesa realizar el siguiente pedido:\n")
	for _, line := range cart.Lines {
		fmt.Fprintf(&b, "- %d x %s (%s)\n", line.Quantity, line.Name, pricing.FormatPrice(line.UnitPrice, symbol))
	}
	fmt.Fprintf(&b, "Total: %s", total)

	link := pricing.BuildExternalMessageLink(h.catalog.WhatsAppNumber(), b.String())
	h.publish(ctx, &models.PurchaseIntentEvent{SessionID: sessionID, Total: total, Link: link})
	util.PurchaseLinksTotal.WithLabelValues("cart").Inc()

	return link, nil
}

func (h *HandoffService) publish(ctx context.Context, event *models.PurchaseIntentEvent) {
	event.BaseEvent = models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: models.EventTypePurchaseIntent,
		Timestamp: time.Now(),
	}
	if err := h.publisher.PublishPurchaseIntent(ctx, event); err != nil {
		h.logger.Error("Failed to publish PurchaseIntent event", zap.Error(err))
	}
}
