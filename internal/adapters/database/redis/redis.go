package redis

import (
	"context"
	"fmt"

	"github.com/campuslink/club-governance/internal/adapters/database/redis/members"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	Members *members.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string
}

func New(opts Options) (*Client, error) {
	memberStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := memberStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping members storage: %w", err)
	}

	return &Client{
		Members: members.NewStorage(memberStorage),
	}, nil
}
