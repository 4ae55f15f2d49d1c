package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemKind tells the catalog variants apart
type ItemKind string

const (
	KindSimple ItemKind = "simple"
	KindOffer  ItemKind = "offer"
	KindCombo  ItemKind = "combo"
)

// ItemType is the variant tag used by add-to-cart requests and cart lines
type ItemType string

const (
	ItemTypeIndividual ItemType = "individual"
	ItemTypeCombo      ItemType = "combo"
)

// Categories
const (
	CategoryAlcoholic    = "alcoholic"
	CategoryNonAlcoholic = "non-alcoholic"
)

// CatalogItem represents a simple product, an offer or a combo
type CatalogItem struct {
	ID              string          `db:"id" json:"id"`
	Kind            ItemKind        `db:"-" json:"kind,omitempty"`
	Name            string          `db:"nombre" json:"nombre"`
	Description     string          `db:"descripcion" json:"descripcion"`
	ImageToken      string          `db:"imagen" json:"imagen"`
	Brand           string          `db:"marca" json:"marca,omitempty"`
	Badge           string          `db:"badge" json:"badge,omitempty"`
	Category        string          `db:"categoria" json:"categoria,omitempty"`
	IsPremium       bool            `db:"premium" json:"premium,omitempty"`
	Featured        bool            `db:"destacado" json:"destacado"`
	Price           decimal.Decimal `db:"precio" json:"precio"`
	OriginalPrice   decimal.Decimal `db:"precio_original" json:"precio_original"`
	OfferPrice      decimal.Decimal `db:"precio_oferta" json:"precio_oferta"`
	DiscountPercent int             `db:"descuento" json:"descuento"`
	Stock           int             `db:"stock" json:"stock"`
	Rating          float64         `db:"rating" json:"rating"`
	ReviewCount     int             `db:"reviews" json:"reviews"`
	ComponentNames  []string        `db:"-" json:"productos,omitempty"`
	SavingsAmount   decimal.Decimal `db:"ahorro" json:"ahorro"`
	PurchaseMessage string          `db:"-" json:"whatsapp_message,omitempty"`
}

// SellingPrice is the price a cart line is created with
func (i *CatalogItem) SellingPrice() decimal.Decimal {
	if i.Kind == KindSimple {
		return i.Price
	}
	return i.OfferPrice
}

// ShopSettings carries the optional "configuracion" object of the catalog document
type ShopSettings struct {
	CurrencySymbol string `db:"simbolo_moneda" json:"simbolo_moneda,omitempty"`
	WhatsAppNumber string `db:"whatsapp" json:"whatsapp,omitempty"`
}

// CatalogDocument is the external catalog data source payload
type CatalogDocument struct {
	Offers   []CatalogItem `json:"ofertas"`
	Combos   []CatalogItem `json:"combos"`
	Settings ShopSettings  `json:"configuracion"`
}

// CartLine is one row of a persisted cart, denormalized at add time
type CartLine struct {
	ID           string          `json:"id"`
	Type         ItemType        `json:"tipo"`
	Name         string          `json:"nombre"`
	UnitPrice    decimal.Decimal `json:"precio"`
	ImageToken   string          `json:"imagen"`
	Quantity     int             `json:"cantidad"`
	StockCeiling int             `json:"stock_disponible"`
}

// Subtotal returns unit price times quantity
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Notification severities
const (
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
	SeverityInfo    = "info"
)

// Notification is a transient message shown to the visitor
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
