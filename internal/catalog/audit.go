package catalog

import (
	"bebidashop/internal/models"
	"bebidashop/internal/pricing"

	"github.com/shopspring/decimal"
)

// Finding describes discount data that disagrees with an item's prices
type Finding struct {
	ItemID   string
	Kind     models.ItemKind
	Field    string
	Declared string
	Derived  string
}

// Audit compares declared discounts and savings with the prices.
// The catalog is served as-is; findings are only reported.
func Audit(c *Catalog) []Finding {
	var findings []Finding

	for _, offer := range c.Offers() {
		if offer.OriginalPrice.IsZero() {
			continue
		}
		derived := pricing.ComputeSavings(offer.OriginalPrice, offer.OfferPrice).
			Div(offer.OriginalPrice).
			Mul(decimal.NewFromInt(100))
		declared := decimal.NewFromInt(int64(offer.DiscountPercent))
		if derived.Sub(declared).Abs().GreaterThan(decimal.NewFromInt(1)) {
			findings = append(findings, Finding{
				ItemID:   offer.ID,
				Kind:     models.KindOffer,
				Field:    "descuento",
				Declared: declared.String(),
				Derived:  derived.StringFixed(0),
			})
		}
	}

	for _, combo := range c.Combos() {
		derived := pricing.ComputeSavings(combo.OriginalPrice, combo.OfferPrice)
		if !derived.Equal(combo.SavingsAmount) {
			findings = append(findings, Finding{
				ItemID:   combo.ID,
				Kind:     models.KindCombo,
				Field:    "ahorro",
				Declared: combo.SavingsAmount.StringFixed(2),
				Derived:  derived.StringFixed(2),
			})
		}
	}

	return findings
}
