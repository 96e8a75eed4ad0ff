package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// ErrNotFound is returned when a session or cached value does not exist.
var ErrNotFound = errors.New("not found")

// SessionData is what a login leaves behind in Redis; the auth middleware
// rebuilds the acting user from it on every request.
type SessionData struct {
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Session management
func (c *Client) SetSession(sessionID string, data *SessionData, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, "session:"+sessionID, jsonData, ttl).Err()
}

func (c *Client) GetSession(sessionID string) (*SessionData, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(sessionID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "session:"+sessionID).Err()
}

// RefreshSession extends the TTL of a live session without rewriting it.
func (c *Client) RefreshSession(sessionID string, ttl time.Duration) error {
	ctx := context.Background()
	return c.rdb.Expire(ctx, "session:"+sessionID, ttl).Err()
}

// Chat reply caching: listing upcoming classes hits the database, so replies
// are kept for a short TTL keyed by the detected class type.
func (c *Client) SetChatReply(key, reply string, ttl time.Duration) error {
	ctx := context.Background()
	return c.rdb.Set(ctx, "chat:"+key, reply, ttl).Err()
}

func (c *Client) GetChatReply(key string) (string, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "chat:"+key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get cached reply: %w", err)
	}
	return val, nil
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
