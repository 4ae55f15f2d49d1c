package redisclient

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bebidashop/internal/models"

	"github.com/go-redis/redis/v8"
)

//go:embed scripts/push_notification.lua
var pushNotificationScript string

// MaxNotifications is how many notifications a session keeps at most
const MaxNotifications = 20

type Client struct {
	rdb        *redis.Client
	pushScript *redis.Script
}

// NewClient creates a new Redis client with Lua scripts loaded
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return Wrap(rdb), nil
}

// Wrap builds a Client around an existing connection
func Wrap(rdb *redis.Client) *Client {
	return &Client{
		rdb:        rdb,
		pushScript: redis.NewScript(pushNotificationScript),
	}
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping checks the connection
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// LoadCart reads the cart stored under key. A missing key is an empty cart.
func (c *Client) LoadCart(ctx context.Context, key string) ([]models.CartLine, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.CartLine{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", key, err)
	}

	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", key, err)
	}
	if lines == nil {
		lines = []models.CartLine{}
	}
	return lines, nil
}

// SaveCart replaces the whole cart stored under key
func (c *Client) SaveCart(ctx context.Context, key string, lines []models.CartLine) error {
	if lines == nil {
		lines = []models.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("save cart %s: %w", key, err)
	}
	return nil
}

// SetCartCount stores the item count shown by the cart badge
func (c *Client) SetCartCount(ctx context.Context, key string, count int) error {
	return c.rdb.Set(ctx, countKey(key), count, 0).Err()
}

// GetCartCount returns the stored item count, 0 when unset
func (c *Client) GetCartCount(ctx context.Context, key string) (int, error) {
	val, err := c.rdb.Get(ctx, countKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

func countKey(key string) string {
	return key + ":contador"
}

// PushNotification appends a notification to the session list.
// The whole list expires ttl after the last push.
func (c *Client) PushNotification(ctx context.Context, key string, n models.Notification, ttl time.Duration) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	_, err = c.pushScript.Run(ctx, c.rdb, []string{notificationsKey(key)},
		string(payload), ttl.Milliseconds(), MaxNotifications).Result()
	if err != nil {
		return fmt.Errorf("push notification script failed: %w", err)
	}
	return nil
}

// ListNotifications returns the notifications that have not expired at now
func (c *Client) ListNotifications(ctx context.Context, key string, now time.Time) ([]models.Notification, error) {
	raw, err := c.rdb.LRange(ctx, notificationsKey(key), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	active := make([]models.Notification, 0, len(raw))
	for _, entry := range raw {
		var n models.Notification
		if err := json.Unmarshal([]byte(entry), &n); err != nil {
			continue
		}
		if n.ExpiresAt.After(now) {
			active = append(active, n)
		}
	}
	return active, nil
}

func notificationsKey(key string) string {
	return key + ":notificaciones"
}

// AcquireLock acquires a distributed lock
func (c *Client) AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, fmt.Sprintf("lock:%s", lockKey), "1", ttl).Result()
}

// ReleaseLock releases a distributed lock
func (c *Client) ReleaseLock(ctx context.Context, lockKey string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("lock:%s", lockKey)).Err()
}
