package redisclient

import (
	"context"
	"testing"
	"time"

	"bebidashop/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := Wrap(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestCartRoundTrip(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	lines := []models.CartLine{
		{ID: "of-001", Type: models.ItemTypeIndividual, Name: "Cerveza Artesanal IPA", UnitPrice: decimal.RequireFromString("9.99"), ImageToken: "🍺", Quantity: 2, StockCeiling: 24},
		{ID: "co-001", Type: models.ItemTypeCombo, Name: "Combo Fiesta", UnitPrice: decimal.RequireFromString("36.00"), ImageToken: "🎉", Quantity: 1, StockCeiling: 4},
		{ID: "of-002", Type: models.ItemTypeIndividual, Name: "Jugo de Naranja Natural 1L", UnitPrice: decimal.RequireFromString("4.40"), ImageToken: "🍊", Quantity: 3, StockCeiling: 8},
	}

	require.NoError(t, client.SaveCart(ctx, "carrito:s1", lines))

	loaded, err := client.LoadCart(ctx, "carrito:s1")
	require.NoError(t, err)
	require.Len(t, loaded, len(lines))

	for i := range lines {
		assert.Equal(t, lines[i].ID, loaded[i].ID)
		assert.Equal(t, lines[i].Type, loaded[i].Type)
		assert.Equal(t, lines[i].Name, loaded[i].Name)
		assert.True(t, lines[i].UnitPrice.Equal(loaded[i].UnitPrice))
		assert.Equal(t, lines[i].ImageToken, loaded[i].ImageToken)
		assert.Equal(t, lines[i].Quantity, loaded[i].Quantity)
		assert.Equal(t, lines[i].StockCeiling, loaded[i].StockCeiling)
	}
}

func TestLoadCartMissingKey(t *testing.T) {
	_, client := setupTestRedis(t)

	lines, err := client.LoadCart(context.Background(), "carrito:nobody")
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestLoadCartCorrupt(t *testing.T) {
	mr, client := setupTestRedis(t)
	require.NoError(t, mr.Set("carrito:bad", "{not json"))

	_, err := client.LoadCart(context.Background(), "carrito:bad")
	assert.Error(t, err)
}

func TestSaveCartEmptyWritesArray(t *testing.T) {
	mr, client := setupTestRedis(t)

	require.NoError(t, client.SaveCart(context.Background(), "carrito:s1", nil))

	val, err := mr.Get("carrito:s1")
	require.NoError(t, err)
	assert.Equal(t, "[]", val)
}

func TestCartCount(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	count, err := client.GetCartCount(ctx, "carrito:s1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, client.SetCartCount(ctx, "carrito:s1", 5))

	count, err = client.GetCartCount(ctx, "carrito:s1")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestNotifications(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()
	now := time.Now()

	active := models.Notification{ID: "a", Message: "✅ agregado", Severity: models.SeveritySuccess, CreatedAt: now, ExpiresAt: now.Add(3 * time.Second)}
	stale := models.Notification{ID: "b", Message: "viejo", Severity: models.SeverityInfo, CreatedAt: now.Add(-time.Minute), ExpiresAt: now.Add(-time.Second)}

	require.NoError(t, client.PushNotification(ctx, "carrito:s1", stale, 3*time.Second))
	require.NoError(t, client.PushNotification(ctx, "carrito:s1", active, 3*time.Second))

	list, err := client.ListNotifications(ctx, "carrito:s1", now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)

	mr.FastForward(4 * time.Second)

	list, err = client.ListNotifications(ctx, "carrito:s1", now)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotificationsAreTrimmed(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < MaxNotifications+5; i++ {
		n := models.Notification{ID: "n", Message: "m", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}
		require.NoError(t, client.PushNotification(ctx, "carrito:s1", n, time.Minute))
	}

	entries, err := mr.List("carrito:s1:notificaciones")
	require.NoError(t, err)
	assert.Len(t, entries, MaxNotifications)
}

func TestLock(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	ok, err := client.AcquireLock(ctx, "carrito:s1", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.AcquireLock(ctx, "carrito:s1", time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, client.ReleaseLock(ctx, "carrito:s1"))

	ok, err = client.AcquireLock(ctx, "carrito:s1", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}
