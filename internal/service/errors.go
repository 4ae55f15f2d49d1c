package service

import (
	"errors"

	"bebidashop/internal/catalog"
)

var (
	// ErrDataSourceUnreachable means the catalog document could not be loaded
	ErrDataSourceUnreachable = catalog.ErrDataSourceUnreachable

	// ErrCatalogUnavailable is returned by every catalog read while the last load failed
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	ErrItemNotFound        = errors.New("item not found")
	ErrOutOfStock          = errors.New("item out of stock")
	ErrStockCeilingReached = errors.New("stock ceiling reached")
	ErrCartBusy            = errors.New("cart is being modified")
	ErrEmptyCart           = errors.New("cart is empty")
)
