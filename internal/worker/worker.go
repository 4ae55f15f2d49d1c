package worker

import (
	"context"

	"bebidashop/internal/broker"
	"bebidashop/internal/service"
	"bebidashop/internal/util"

	"go.uber.org/zap"
)

// CatalogWorker refreshes the catalog when a CatalogUpdated event arrives
type CatalogWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewCatalogWorker creates a new catalog worker
func NewCatalogWorker(consumer *broker.Consumer, catalogService *service.CatalogService) *CatalogWorker {
	eventHandler := broker.NewEventHandler()
	eventHandler.OnCatalogUpdated(catalogService.HandleCatalogUpdated)

	return &CatalogWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		logger:       util.GetLogger(),
	}
}

// Start consumes until ctx is cancelled
func (w *CatalogWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting catalog worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *CatalogWorker) Stop() error {
	w.logger.Info("Stopping catalog worker")
	return w.consumer.Close()
}
