package catalog

import (
	"bebidashop/internal/models"
)

// Catalog is an immutable snapshot of the shop's items.
// Callers must not modify the slices it returns.
type Catalog struct {
	products []models.CatalogItem
	offers   []models.CatalogItem
	combos   []models.CatalogItem
	settings models.ShopSettings
}

// New builds a snapshot from the built-in products and a catalog document
func New(products []models.CatalogItem, doc *models.CatalogDocument) *Catalog {
	c := &Catalog{
		products: tagKind(products, models.KindSimple),
	}
	if doc != nil {
		c.offers = tagKind(doc.Offers, models.KindOffer)
		c.combos = tagKind(doc.Combos, models.KindCombo)
		c.settings = doc.Settings
	}
	return c
}

func tagKind(items []models.CatalogItem, kind models.ItemKind) []models.CatalogItem {
	out := make([]models.CatalogItem, len(items))
	for i, item := range items {
		item.Kind = kind
		out[i] = item
	}
	return out
}

// Products returns the simple products
func (c *Catalog) Products() []models.CatalogItem {
	return c.products
}

// Offers returns every offer, featured or not
func (c *Catalog) Offers() []models.CatalogItem {
	return c.offers
}

// Combos returns every combo, featured or not
func (c *Catalog) Combos() []models.CatalogItem {
	return c.combos
}

// Settings returns the "configuracion" overrides of the document
func (c *Catalog) Settings() models.ShopSettings {
	return c.settings
}

// Items returns products, offers and combos in that order
func (c *Catalog) Items() []models.CatalogItem {
	items := make([]models.CatalogItem, 0, len(c.products)+len(c.offers)+len(c.combos))
	items = append(items, c.products...)
	items = append(items, c.offers...)
	items = append(items, c.combos...)
	return items
}

// Find looks an item up in the collection selected by itemType
func (c *Catalog) Find(id string, itemType models.ItemType) (*models.CatalogItem, bool) {
	switch itemType {
	case models.ItemTypeIndividual:
		return findByID(c.offers, id)
	case models.ItemTypeCombo:
		return findByID(c.combos, id)
	}
	return nil, false
}

// FindProduct looks a simple product up by id
func (c *Catalog) FindProduct(id string) (*models.CatalogItem, bool) {
	return findByID(c.products, id)
}

func findByID(items []models.CatalogItem, id string) (*models.CatalogItem, bool) {
	for i := range items {
		if items[i].ID == id {
			item := items[i]
			return &item, true
		}
	}
	return nil, false
}
