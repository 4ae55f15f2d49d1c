package pricing

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCurrencySymbol is used when the catalog does not override it
	DefaultCurrencySymbol = "$"

	// WhatsAppURLTemplate takes the recipient number and the encoded text
	WhatsAppURLTemplate = "https://wa.me/%s?text=%s"

	TotalStars = 5
)

// FormatPrice renders an amount with the currency symbol and two decimals
func FormatPrice(amount decimal.Decimal, symbol string) string {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return symbol + amount.StringFixed(2)
}

// ComputeSavings returns original - offer. Combos carry their savings as data
// and do not go through here.
func ComputeSavings(original, offer decimal.Decimal) decimal.Decimal {
	return original.Sub(offer)
}

// Stars is the display breakdown of a rating
type Stars struct {
	Full  int `json:"full"`
	Half  int `json:"half"`
	Empty int `json:"empty"`
}

// StarRating splits a rating in [0,5] into full, half and empty units.
// Ratings outside that range do not add up to five units.
func StarRating(rating float64) Stars {
	s := Stars{
		Full:  int(math.Floor(rating)),
		Empty: TotalStars - int(math.Ceil(rating)),
	}
	if math.Mod(rating, 1) != 0 {
		s.Half = 1
	}
	if s.Full < 0 {
		s.Full = 0
	}
	if s.Empty < 0 {
		s.Empty = 0
	}
	return s
}

// String renders the breakdown with star glyphs
func (s Stars) String() string {
	return strings.Repeat("★", s.Full) + strings.Repeat("⯪", s.Half) + strings.Repeat("☆", s.Empty)
}

// EncodeURIComponent escapes text for use as a query value, with spaces as %20
func EncodeURIComponent(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// BuildExternalMessageLink builds the WhatsApp link carrying a prefilled message
func BuildExternalMessageLink(number, text string) string {
	return fmt.Sprintf(WhatsAppURLTemplate, url.PathEscape(number), EncodeURIComponent(text))
}

// Stock thresholds below which the low-stock label is shown
const (
	OfferLowStock = 10
	ComboLowStock = 5
)

// StockLabel returns the availability caption shown under offers and combos
func StockLabel(stock, lowThreshold int, lowText string) string {
	if stock < lowThreshold {
		return "⚠️ " + lowText
	}
	return fmt.Sprintf("✅ %d disponibles", stock)
}

// IsLowStock reports whether the low-stock styling applies
func IsLowStock(stock, lowThreshold int) bool {
	return stock < lowThreshold
}
