package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bebidashop/internal/catalog"
	"bebidashop/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStoreFromDB wraps an open connection
func NewStoreFromDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

const offerColumns = `id, nombre, descripcion, imagen,
	COALESCE(marca, '') AS marca,
	COALESCE(badge, '') AS badge,
	COALESCE(categoria, '') AS categoria,
	premium, destacado, precio_original, precio_oferta, descuento, stock, rating, reviews`

// GetOffers retrieves active offers
func (s *Store) GetOffers(ctx context.Context) ([]models.CatalogItem, error) {
	var offers []models.CatalogItem
	err := s.db.SelectContext(ctx, &offers,
		"SELECT "+offerColumns+" FROM ofertas WHERE activo = true ORDER BY posicion, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get offers: %w", err)
	}
	return offers, nil
}

type comboRow struct {
	models.CatalogItem
	Productos pq.StringArray `db:"productos"`
}

// GetCombos retrieves active combos
func (s *Store) GetCombos(ctx context.Context) ([]models.CatalogItem, error) {
	var rows []comboRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT "+offerColumns+", productos, ahorro FROM combos WHERE activo = true ORDER BY posicion, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get combos: %w", err)
	}

	combos := make([]models.CatalogItem, len(rows))
	for i, row := range rows {
		combos[i] = row.CatalogItem
		combos[i].ComponentNames = []string(row.Productos)
	}
	return combos, nil
}

// GetSettings retrieves the shop configuration row, empty when absent
func (s *Store) GetSettings(ctx context.Context) (models.ShopSettings, error) {
	var settings models.ShopSettings
	err := s.db.GetContext(ctx, &settings,
		"SELECT COALESCE(simbolo_moneda, '') AS simbolo_moneda, COALESCE(whatsapp, '') AS whatsapp FROM configuracion LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return models.ShopSettings{}, nil
	}
	if err != nil {
		return models.ShopSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// Name identifies the store as a catalog source
func (s *Store) Name() string {
	return "postgres"
}

// Load assembles a catalog document from the database
func (s *Store) Load(ctx context.Context) (*models.CatalogDocument, error) {
	offers, err := s.GetOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrDataSourceUnreachable, err)
	}

	combos, err := s.GetCombos(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrDataSourceUnreachable, err)
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrDataSourceUnreachable, err)
	}

	if offers == nil {
		offers = []models.CatalogItem{}
	}
	return &models.CatalogDocument{
		Offers:   offers,
		Combos:   combos,
		Settings: settings,
	}, nil
}

var _ catalog.Source = (*Store)(nil)
