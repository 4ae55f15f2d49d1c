package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bebidashop/internal/catalog"
	"bebidashop/internal/models"
	"bebidashop/internal/redisclient"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu  sync.Mutex
	doc *models.CatalogDocument
	err error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Load(ctx context.Context) (*models.CatalogDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f *fakeSource) set(doc *models.CatalogDocument, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doc, f.err = doc, err
}

type sentNotification struct {
	sessionID string
	message   string
	severity  string
}

type recordingNotifier struct {
	sent []sentNotification
}

func (r *recordingNotifier) Notify(ctx context.Context, sessionID, message, severity string) {
	r.sent = append(r.sent, sentNotification{sessionID, message, severity})
}

func (r *recordingNotifier) last() sentNotification {
	if len(r.sent) == 0 {
		return sentNotification{}
	}
	return r.sent[len(r.sent)-1]
}

type recordingPublisher struct {
	added   []*models.CartItemAddedEvent
	cleared []*models.CartClearedEvent
	intents []*models.PurchaseIntentEvent
	err     error
}

func (r *recordingPublisher) PublishCartItemAdded(ctx context.Context, e *models.CartItemAddedEvent) error {
	r.added = append(r.added, e)
	return r.err
}

func (r *recordingPublisher) PublishCartCleared(ctx context.Context, e *models.CartClearedEvent) error {
	r.cleared = append(r.cleared, e)
	return r.err
}

func (r *recordingPublisher) PublishPurchaseIntent(ctx context.Context, e *models.PurchaseIntentEvent) error {
	r.intents = append(r.intents, e)
	return r.err
}

func offer(id, name, original, price string, stock int) models.CatalogItem {
	return models.CatalogItem{
		ID:            id,
		Name:          name,
		ImageToken:    "🍺",
		Featured:      true,
		OriginalPrice: decimal.RequireFromString(original),
		OfferPrice:    decimal.RequireFromString(price),
		Stock:         stock,
	}
}

func testDocument() *models.CatalogDocument {
	ipa := offer("of-001", "Cerveza Artesanal IPA", "12.99", "9.99", 24)
	ipa.Category = models.CategoryAlcoholic
	ipa.IsPremium = true

	juice := offer("of-002", "Jugo de Naranja", "5.50", "4.40", 3)
	juice.Category = models.CategoryNonAlcoholic

	water := offer("of-004", "Agua Saborizada", "1.80", "1.50", 0)
	water.Category = models.CategoryNonAlcoholic

	hidden := offer("of-009", "Vino Tinto", "24.00", "19.20", 15)
	hidden.Category = models.CategoryAlcoholic
	hidden.Featured = false

	combo := offer("co-001", "Combo Fiesta", "45.00", "36.00", 4)
	combo.Category = models.CategoryAlcoholic
	combo.SavingsAmount = decimal.NewFromInt(9)
	combo.ComponentNames = []string{"12 Cervezas", "1 Bolsa de Hielo"}

	return &models.CatalogDocument{
		Offers: []models.CatalogItem{ipa, juice, water, hidden},
		Combos: []models.CatalogItem{combo},
	}
}

type testEnv struct {
	mr        *miniredis.Miniredis
	redis     *redisclient.Client
	source    *fakeSource
	catalog   *CatalogService
	carts     *CartService
	notifier  *recordingNotifier
	publisher *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redisclient.Wrap(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = client.Close() })

	source := &fakeSource{doc: testDocument()}
	catalogSvc := NewCatalogService(source, catalog.DefaultProducts(), models.ShopSettings{CurrencySymbol: "$", WhatsAppNumber: "1234567890"})
	require.NoError(t, catalogSvc.Load(context.Background()))

	notifier := &recordingNotifier{}
	publisher := &recordingPublisher{}
	carts := NewCartService(catalogSvc, client, notifier, publisher, CartOptions{KeyPrefix: "carrito", LockTTL: time.Second})

	return &testEnv{
		mr:        mr,
		redis:     client,
		source:    source,
		catalog:   catalogSvc,
		carts:     carts,
		notifier:  notifier,
		publisher: publisher,
	}
}

var errBoom = errors.New("boom")
