package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bebidashop/internal/models"
	"bebidashop/internal/service"
	"bebidashop/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "session_id"
	sessionKey    = "session_id"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog       *service.CatalogService
	carts         *service.CartService
	handoff       *service.HandoffService
	notifications *service.NotificationCenter
	logger        *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	carts *service.CartService,
	handoff *service.HandoffService,
	notifications *service.NotificationCenter,
) *Handler {
	return &Handler{
		catalog:       catalog,
		carts:         carts,
		handoff:       handoff,
		notifications: notifications,
		logger:        util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(requestLogger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(sessionMiddleware())
	{
		v1.GET("/catalog", h.listCatalog)
		v1.POST("/catalog/refresh", h.refreshCatalog)
		v1.GET("/offers", h.listOffers)

		v1.GET("/cart", h.getCart)
		v1.POST("/cart/items", h.addToCart)
		v1.DELETE("/cart", h.clearCart)
		v1.GET("/cart/total", h.getCartTotal)

		v1.GET("/notifications", h.listNotifications)

		v1.GET("/purchase/link", h.productLink)
		v1.GET("/purchase/cart-link", h.cartLink)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck reports ready once a catalog is loaded
func (h *Handler) readinessCheck(c *gin.Context) {
	if !h.catalog.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "catalog_unavailable",
			"time":   time.Now().Unix(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listCatalog handles GET /catalog?filter=
func (h *Handler) listCatalog(c *gin.Context) {
	criterion := c.Query("filter")

	items, err := h.catalog.FilteredItems(criterion)
	if err != nil {
		h.respondError(c, err)
		return
	}

	symbol := h.catalog.CurrencySymbol()
	views := make([]ItemView, len(items))
	for i := range items {
		views[i] = NewItemView(&items[i], symbol)
	}

	c.JSON(http.StatusOK, gin.H{
		"filter": normalizedFilter(criterion),
		"count":  len(views),
		"items":  views,
	})
}

// listOffers handles GET /offers?filter=, featured items only
func (h *Handler) listOffers(c *gin.Context) {
	criterion := c.Query("filter")

	offers, combos, err := h.catalog.FeaturedOffers(criterion)
	if err != nil {
		h.respondError(c, err)
		return
	}

	symbol := h.catalog.CurrencySymbol()
	offerViews := make([]ItemView, len(offers))
	for i := range offers {
		offerViews[i] = NewItemView(&offers[i], symbol)
	}
	comboViews := make([]ItemView, len(combos))
	for i := range combos {
		comboViews[i] = NewItemView(&combos[i], symbol)
	}

	c.JSON(http.StatusOK, gin.H{
		"filter":  normalizedFilter(criterion),
		"ofertas": offerViews,
		"combos":  comboViews,
	})
}

// refreshCatalog reloads the catalog document
func (h *Handler) refreshCatalog(c *gin.Context) {
	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}

// AddToCartRequest is the body of POST /cart/items
type AddToCartRequest struct {
	ID   string `json:"id" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// addToCart handles add-to-cart clicks
func (h *Handler) addToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := h.carts.AddToCart(c.Request.Context(), sessionID(c), req.ID, models.ItemType(req.Type))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCartView(result, h.catalog.CurrencySymbol()))
}

// getCart returns the session cart
func (h *Handler) getCart(c *gin.Context) {
	result, err := h.carts.GetCart(c.Request.Context(), sessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCartView(result, h.catalog.CurrencySymbol()))
}

// clearCart empties the session cart
func (h *Handler) clearCart(c *gin.Context) {
	if err := h.carts.ClearCart(c.Request.Context(), sessionID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCartView(&service.CartResult{Lines: []models.CartLine{}}, h.catalog.CurrencySymbol()))
}

// getCartTotal returns the cart total and item count
func (h *Handler) getCartTotal(c *gin.Context) {
	result, err := h.carts.GetCart(c.Request.Context(), sessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":           result.Total.StringFixed(2),
		"total_formatted": formatPrice(result.Total, h.catalog.CurrencySymbol()),
		"item_count":      result.ItemCount,
	})
}

// listNotifications returns notifications not yet dismissed
func (h *Handler) listNotifications(c *gin.Context) {
	active, err := h.notifications.Active(c.Request.Context(), sessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": active})
}

// productLink returns the WhatsApp link for one item
func (h *Handler) productLink(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing item id"})
		return
	}

	link, err := h.handoff.ProductLink(c.Request.Context(), id, c.Query("type"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}

// cartLink returns the WhatsApp link for the whole cart
func (h *Handler) cartLink(c *gin.Context) {
	link, err := h.handoff.CartLink(c.Request.Context(), sessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}

// respondError maps service errors to status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCatalogUnavailable), errors.Is(err, service.ErrDataSourceUnreachable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":    "Error al cargar ofertas",
			"message":  "Error al cargar las ofertas. Por favor, intenta nuevamente.",
			"recovery": "reload",
		})
	case errors.Is(err, service.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item_not_found"})
	case errors.Is(err, service.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{"error": "out_of_stock", "message": "❌ Producto sin stock"})
	case errors.Is(err, service.ErrStockCeilingReached):
		c.JSON(http.StatusConflict, gin.H{"error": "stock_ceiling_reached", "message": "⚠️ Stock máximo alcanzado"})
	case errors.Is(err, service.ErrCartBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "cart_busy"})
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart_empty"})
	default:
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal error",
			"details": err.Error(),
		})
	}
}

// sessionMiddleware resolves the visitor session, minting one when absent
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				id = cookie
			}
		}
		if id == "" {
			id = uuid.New().String()
			c.SetCookie(sessionCookie, id, int((365 * 24 * time.Hour).Seconds()), "/", "", false, true)
		}

		c.Set(sessionKey, id)
		c.Header(sessionHeader, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// requestLogger writes one access log line per request
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger := util.GetLogger()
		if id := sessionID(c); id != "" {
			logger = util.SessionLogger(id)
		}
		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
