package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bebidashop/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	doc, err := NewFileSource(filepath.Join("testdata", "ofertas.json")).Load(context.Background())
	require.NoError(t, err)

	return New(DefaultProducts(), doc)
}

func ids(items []models.CatalogItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestFilterAllKeepsOrder(t *testing.T) {
	c := loadTestCatalog(t)
	items := c.Items()

	filtered := Filter(items, FilterAll)

	assert.Equal(t, ids(items), ids(filtered))
	assert.Len(t, filtered, 8+4+3)
}

func TestFilterUnknownCriterionBehavesLikeAll(t *testing.T) {
	c := loadTestCatalog(t)
	items := c.Items()

	assert.Equal(t, ids(Filter(items, FilterAll)), ids(Filter(items, "sin-azucar")))
	assert.Equal(t, ids(Filter(items, FilterAll)), ids(Filter(items, "")))
}

func TestFilterPremium(t *testing.T) {
	c := loadTestCatalog(t)

	filtered := Filter(c.Items(), FilterPremium)

	assert.Equal(t, []string{"1", "4", "5", "of-001", "of-003", "co-002"}, ids(filtered))
	for _, item := range filtered {
		assert.True(t, item.IsPremium)
	}
}

func TestFilterByCategory(t *testing.T) {
	c := loadTestCatalog(t)

	alcoholic := Filter(c.Items(), "Alcoholic")
	assert.Equal(t, []string{"4", "of-001", "of-003", "co-001"}, ids(alcoholic))

	nonAlcoholic := Filter(c.Items(), FilterNonAlcoholic)
	for _, item := range nonAlcoholic {
		assert.Equal(t, models.CategoryNonAlcoholic, item.Category)
	}
	assert.Len(t, nonAlcoholic, len(c.Items())-len(alcoholic))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	c := loadTestCatalog(t)
	items := c.Items()
	before := ids(items)

	filtered := Filter(items, FilterAll)
	filtered[0].ID = "changed"

	assert.Equal(t, before, ids(items))
}

func TestFeatured(t *testing.T) {
	c := loadTestCatalog(t)

	assert.Equal(t, []string{"of-001", "of-002", "of-004"}, ids(Featured(c.Offers())))
	assert.Equal(t, []string{"co-001", "co-002"}, ids(Featured(c.Combos())))
}

func TestFind(t *testing.T) {
	c := loadTestCatalog(t)

	offer, ok := c.Find("of-001", models.ItemTypeIndividual)
	require.True(t, ok)
	assert.Equal(t, models.KindOffer, offer.Kind)
	assert.True(t, offer.OfferPrice.Equal(decimal.RequireFromString("9.99")))

	combo, ok := c.Find("co-001", models.ItemTypeCombo)
	require.True(t, ok)
	assert.Equal(t, []string{"12 Cervezas Artesanales", "2 Refrescos de Cola 2L", "1 Bolsa de Hielo"}, combo.ComponentNames)
	assert.True(t, combo.SavingsAmount.Equal(decimal.NewFromInt(9)))

	_, ok = c.Find("co-001", models.ItemTypeIndividual)
	assert.False(t, ok)

	_, ok = c.Find("of-001", "bundle")
	assert.False(t, ok)

	product, ok := c.FindProduct("4")
	require.True(t, ok)
	assert.Equal(t, "Cerveza Artesanal", product.Name)
	assert.True(t, product.SellingPrice().Equal(decimal.RequireFromString("6.75")))
}

func TestFindReturnsCopy(t *testing.T) {
	c := loadTestCatalog(t)

	offer, ok := c.Find("of-001", models.ItemTypeIndividual)
	require.True(t, ok)
	offer.Stock = 0

	again, _ := c.Find("of-001", models.ItemTypeIndividual)
	assert.Equal(t, 24, again.Stock)
}

func TestSettings(t *testing.T) {
	c := loadTestCatalog(t)

	assert.Equal(t, "$", c.Settings().CurrencySymbol)
	assert.Equal(t, "1234567890", c.Settings().WhatsAppNumber)
}

func TestParseDocumentMissingCollections(t *testing.T) {
	doc, err := ParseDocument([]byte(`{}`))
	require.NoError(t, err)

	assert.Empty(t, doc.Offers)
	assert.NotNil(t, doc.Offers)
	assert.Empty(t, doc.Combos)
}

func TestParseDocumentMalformed(t *testing.T) {
	_, err := ParseDocument([]byte(`{"ofertas": [`))
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Load(context.Background())
	assert.ErrorIs(t, err, ErrDataSourceUnreachable)
}

func TestHTTPSource(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "ofertas.json"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ofertas.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	doc, err := NewHTTPSource(srv.URL+"/ofertas.json", time.Second).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Offers, 4)
	assert.Len(t, doc.Combos, 3)

	_, err = NewHTTPSource(srv.URL+"/missing.json", time.Second).Load(context.Background())
	assert.ErrorIs(t, err, ErrDataSourceUnreachable)
}

func TestAudit(t *testing.T) {
	assert.Empty(t, Audit(loadTestCatalog(t)))

	doc := &models.CatalogDocument{
		Offers: []models.CatalogItem{{
			ID:              "x",
			OriginalPrice:   decimal.NewFromInt(10),
			OfferPrice:      decimal.NewFromInt(5),
			DiscountPercent: 10,
		}},
		Combos: []models.CatalogItem{{
			ID:            "y",
			OriginalPrice: decimal.NewFromInt(20),
			OfferPrice:    decimal.NewFromInt(15),
			SavingsAmount: decimal.NewFromInt(7),
		}},
	}

	findings := Audit(New(nil, doc))
	require.Len(t, findings, 2)
	assert.Equal(t, "x", findings[0].ItemID)
	assert.Equal(t, "50", findings[0].Derived)
	assert.Equal(t, "y", findings[1].ItemID)
	assert.Equal(t, "5.00", findings[1].Derived)
}
