package catalog

import (
	"strings"

	"bebidashop/internal/models"
)

// Filter criteria
const (
	FilterAll          = "all"
	FilterAlcoholic    = models.CategoryAlcoholic
	FilterNonAlcoholic = models.CategoryNonAlcoholic
	FilterPremium      = "premium"
)

// NormalizeCriterion maps unknown criteria to FilterAll
func NormalizeCriterion(criterion string) string {
	switch c := strings.ToLower(strings.TrimSpace(criterion)); c {
	case FilterAlcoholic, FilterNonAlcoholic, FilterPremium:
		return c
	default:
		return FilterAll
	}
}

// Filter returns the items matching criterion, in their original order.
// It never modifies items.
func Filter(items []models.CatalogItem, criterion string) []models.CatalogItem {
	var match func(*models.CatalogItem) bool

	switch NormalizeCriterion(criterion) {
	case FilterAlcoholic:
		match = func(i *models.CatalogItem) bool { return i.Category == models.CategoryAlcoholic }
	case FilterNonAlcoholic:
		match = func(i *models.CatalogItem) bool { return i.Category == models.CategoryNonAlcoholic }
	case FilterPremium:
		match = func(i *models.CatalogItem) bool { return i.IsPremium }
	default:
		out := make([]models.CatalogItem, len(items))
		copy(out, items)
		return out
	}

	return selectItems(items, match)
}

// Featured keeps only items flagged destacado
func Featured(items []models.CatalogItem) []models.CatalogItem {
	return selectItems(items, func(i *models.CatalogItem) bool { return i.Featured })
}

func selectItems(items []models.CatalogItem, match func(*models.CatalogItem) bool) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(items))
	for i := range items {
		if match(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}
