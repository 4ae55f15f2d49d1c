package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bebidashop/internal/catalog"
	"bebidashop/internal/models"
	"bebidashop/internal/pricing"
	"bebidashop/internal/util"

	"go.uber.org/zap"
)

// CatalogService owns the current catalog snapshot
type CatalogService struct {
	source   catalog.Source
	products []models.CatalogItem
	defaults models.ShopSettings
	logger   *zap.Logger

	mu      sync.RWMutex
	current *catalog.Catalog
	loadErr error
}

// NewCatalogService creates a catalog service. defaults apply when the
// document carries no "configuracion" override.
func NewCatalogService(source catalog.Source, products []models.CatalogItem, defaults models.ShopSettings) *CatalogService {
	return &CatalogService{
		source:   source,
		products: products,
		defaults: defaults,
		logger:   util.GetLogger(),
		loadErr:  fmt.Errorf("%w: not loaded", ErrCatalogUnavailable),
	}
}

// Load fetches the document and swaps the snapshot. On failure the previous
// snapshot is dropped and every read fails until a later load succeeds.
func (s *CatalogService) Load(ctx context.Context) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.Load")
	defer span.End()

	start := time.Now()
	doc, err := s.source.Load(ctx)
	util.CatalogLoadLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		util.CatalogLoadsTotal.WithLabelValues(s.source.Name(), "error").Inc()
		s.logger.Error("Failed to load catalog",
			zap.String("source", s.source.Name()),
			zap.Error(err))

		s.mu.Lock()
		s.current = nil
		s.loadErr = fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		s.mu.Unlock()
		return fmt.Errorf("load catalog: %w", err)
	}

	c := catalog.New(s.products, doc)

	findings := catalog.Audit(c)
	util.CatalogAuditFindings.Set(float64(len(findings)))
	for _, f := range findings {
		s.logger.Warn("Catalog discount data disagrees with prices",
			zap.String("item_id", f.ItemID),
			zap.String("kind", string(f.Kind)),
			zap.String("field", f.Field),
			zap.String("declared", f.Declared),
			zap.String("derived", f.Derived))
	}

	s.mu.Lock()
	s.current = c
	s.loadErr = nil
	s.mu.Unlock()

	util.CatalogLoadsTotal.WithLabelValues(s.source.Name(), "ok").Inc()
	util.CatalogItems.WithLabelValues(string(models.KindSimple)).Set(float64(len(c.Products())))
	util.CatalogItems.WithLabelValues(string(models.KindOffer)).Set(float64(len(c.Offers())))
	util.CatalogItems.WithLabelValues(string(models.KindCombo)).Set(float64(len(c.Combos())))

	s.logger.Info("Catalog loaded",
		zap.String("source", s.source.Name()),
		zap.Int("offers", len(c.Offers())),
		zap.Int("combos", len(c.Combos())))
	return nil
}

// Refresh reloads the catalog; it is also the recovery path after a failed load
func (s *CatalogService) Refresh(ctx context.Context) error {
	s.logger.Info("Refreshing catalog")
	return s.Load(ctx)
}

// HandleCatalogUpdated refreshes the snapshot when the catalog changed upstream
func (s *CatalogService) HandleCatalogUpdated(ctx context.Context, event *models.CatalogUpdatedEvent) error {
	s.logger.Info("Catalog update received",
		zap.String("event_id", event.EventID),
		zap.String("source", event.Source))

	// A failed refresh is already recorded as the catalog error state;
	// redelivering the message would not change it.
	_ = s.Refresh(ctx)
	return nil
}

// Snapshot returns the current catalog or ErrCatalogUnavailable
func (s *CatalogService) Snapshot() (*catalog.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, s.loadErr
	}
	return s.current, nil
}

// Ready reports whether a catalog is loaded
func (s *CatalogService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// FilteredItems returns every item matching criterion
func (s *CatalogService) FilteredItems(criterion string) ([]models.CatalogItem, error) {
	c, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return catalog.Filter(c.Items(), criterion), nil
}

// FeaturedOffers returns the featured offers and combos matching criterion
func (s *CatalogService) FeaturedOffers(criterion string) (offers, combos []models.CatalogItem, err error) {
	c, err := s.Snapshot()
	if err != nil {
		return nil, nil, err
	}
	offers = catalog.Featured(catalog.Filter(c.Offers(), criterion))
	combos = catalog.Featured(catalog.Filter(c.Combos(), criterion))
	return offers, combos, nil
}

// CurrencySymbol returns the document override or the configured default
func (s *CatalogService) CurrencySymbol() string {
	if c, err := s.Snapshot(); err == nil && c.Settings().CurrencySymbol != "" {
		return c.Settings().CurrencySymbol
	}
	if s.defaults.CurrencySymbol != "" {
		return s.defaults.CurrencySymbol
	}
	return pricing.DefaultCurrencySymbol
}

// WhatsAppNumber returns the document override or the configured default
func (s *CatalogService) WhatsAppNumber() string {
	if c, err := s.Snapshot(); err == nil && c.Settings().WhatsAppNumber != "" {
		return c.Settings().WhatsAppNumber
	}
	return s.defaults.WhatsAppNumber
}
