package redis

import (
	"context"
	"fmt"

	"kyc-screening/internal/config"

	redisv9 "github.com/redis/go-redis/v9"
)

// Client оборачивает go-redis клиент для кеша и счетчиков скрининга
type Client struct {
	rdb *redisv9.Client
}

// NewClient создает новое подключение к Redis по конфигурации
func NewClient(cfg *config.Config) (*Client, error) {
	return NewClientWithOptions(&redisv9.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})
}

// NewClientFromURL создает подключение по строке вида redis://host:port/db
func NewClientFromURL(url string) (*Client, error) {
	opts, err := redisv9.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	return NewClientWithOptions(opts)
}

// NewClientWithOptions создает подключение и проверяет его через PING
func NewClientWithOptions(opts *redisv9.Options) (*Client, error) {
	rdb := redisv9.NewClient(opts)

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close закрывает соединение с Redis
func (c *Client) Close() error {
	return c.rdb.Close()
}
