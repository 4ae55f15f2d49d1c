package api

import (
	"bebidashop/internal/catalog"
	"bebidashop/internal/models"
	"bebidashop/internal/pricing"
	"bebidashop/internal/service"

	"github.com/shopspring/decimal"
)

// ItemView is a catalog item with display-ready prices
type ItemView struct {
	ID              string          `json:"id"`
	Kind            models.ItemKind `json:"kind"`
	Name            string          `json:"nombre"`
	Description     string          `json:"descripcion"`
	ImageToken      string          `json:"imagen"`
	Brand           string          `json:"marca,omitempty"`
	Badge           string          `json:"badge,omitempty"`
	Category        string          `json:"categoria,omitempty"`
	IsPremium       bool            `json:"premium"`
	Featured        bool            `json:"destacado"`
	Price           string          `json:"precio"`
	OriginalPrice   string          `json:"precio_original,omitempty"`
	Savings         string          `json:"ahorro,omitempty"`
	DiscountPercent int             `json:"descuento,omitempty"`
	Stock           int             `json:"stock"`
	StockLabel      string          `json:"stock_label,omitempty"`
	LowStock        bool            `json:"stock_bajo"`
	Rating          float64         `json:"rating"`
	Stars           pricing.Stars   `json:"estrellas"`
	ReviewCount     int             `json:"reviews"`
	ComponentNames  []string        `json:"productos,omitempty"`
}

// NewItemView formats an item for display
func NewItemView(item *models.CatalogItem, symbol string) ItemView {
	v := ItemView{
		ID:              item.ID,
		Kind:            item.Kind,
		Name:            item.Name,
		Description:     item.Description,
		ImageToken:      item.ImageToken,
		Brand:           item.Brand,
		Badge:           item.Badge,
		Category:        item.Category,
		IsPremium:       item.IsPremium,
		Featured:        item.Featured,
		Price:           formatPrice(item.SellingPrice(), symbol),
		DiscountPercent: item.DiscountPercent,
		Stock:           item.Stock,
		Rating:          item.Rating,
		Stars:           pricing.StarRating(item.Rating),
		ReviewCount:     item.ReviewCount,
		ComponentNames:  item.ComponentNames,
	}

	switch item.Kind {
	case models.KindOffer:
		v.OriginalPrice = formatPrice(item.OriginalPrice, symbol)
		v.Savings = formatPrice(pricing.ComputeSavings(item.OriginalPrice, item.OfferPrice), symbol)
		v.StockLabel = pricing.StockLabel(item.Stock, pricing.OfferLowStock, "Últimas unidades")
		v.LowStock = pricing.IsLowStock(item.Stock, pricing.OfferLowStock)
	case models.KindCombo:
		v.OriginalPrice = formatPrice(item.OriginalPrice, symbol)
		v.Savings = formatPrice(item.SavingsAmount, symbol)
		v.StockLabel = pricing.StockLabel(item.Stock, pricing.ComboLowStock, "Pocas unidades")
		v.LowStock = pricing.IsLowStock(item.Stock, pricing.ComboLowStock)
	}
	return v
}

// CartLineView is a cart line with display-ready prices
type CartLineView struct {
	models.CartLine
	UnitPriceFormatted string `json:"precio_formateado"`
	Subtotal           string `json:"subtotal"`
}

// CartView is the cart as returned by the API
type CartView struct {
	Items          []CartLineView `json:"items"`
	ItemCount      int            `json:"item_count"`
	Total          string         `json:"total"`
	TotalFormatted string         `json:"total_formatted"`
}

// NewCartView formats a cart result for display
func NewCartView(result *service.CartResult, symbol string) CartView {
	items := make([]CartLineView, len(result.Lines))
	for i, line := range result.Lines {
		items[i] = CartLineView{
			CartLine:           line,
			UnitPriceFormatted: formatPrice(line.UnitPrice, symbol),
			Subtotal:           formatPrice(line.Subtotal(), symbol),
		}
	}
	return CartView{
		Items:          items,
		ItemCount:      result.ItemCount,
		Total:          result.Total.StringFixed(2),
		TotalFormatted: formatPrice(result.Total, symbol),
	}
}

func formatPrice(amount decimal.Decimal, symbol string) string {
	return pricing.FormatPrice(amount, symbol)
}

func normalizedFilter(criterion string) string {
	return catalog.NormalizeCriterion(criterion)
}
