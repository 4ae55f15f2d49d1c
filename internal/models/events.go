package models

import "time"

// Event types
const (
	EventTypeCartItemAdded  = "CART_ITEM_ADDED"
	EventTypeCartCleared    = "CART_CLEARED"
	EventTypePurchaseIntent = "PURCHASE_INTENT"
	EventTypeCatalogUpdated = "CATALOG_UPDATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemAddedEvent published after a successful add-to-cart
type CartItemAddedEvent struct {
	BaseEvent
	SessionID string   `json:"session_id"`
	ItemID    string   `json:"item_id"`
	ItemType  ItemType `json:"item_type"`
	Quantity  int      `json:"quantity"`
	ItemCount int      `json:"item_count"`
}

// CartClearedEvent published when a cart is emptied
type CartClearedEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
}

// PurchaseIntentEvent published when a purchase handoff link is built
type PurchaseIntentEvent struct {
	BaseEvent
	SessionID string `json:"session_id,omitempty"`
	ItemID    string `json:"item_id,omitempty"`
	Total     string `json:"total"`
	Link      string `json:"link"`
}

// CatalogUpdatedEvent is consumed to refresh the catalog snapshot
type CatalogUpdatedEvent struct {
	BaseEvent
	Source string `json:"source,omitempty"`
}
