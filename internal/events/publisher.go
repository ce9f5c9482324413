// Package events fans out loan changes to interested subscribers.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type LoanEventType string

const (
	BookBorrowed LoanEventType = "borrowed"
	BookReturned LoanEventType = "returned"
)

// LoanEvent is published after a borrow or return has committed.
type LoanEvent struct {
	Type       LoanEventType `json:"type"`
	BookID     int64         `json:"bookId"`
	UserID     int64         `json:"userId,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// Publisher delivers loan events. Delivery is best effort: a failed publish
// never undoes the loan change.
type Publisher interface {
	Publish(ctx context.Context, event LoanEvent) error
	Close() error
}

// NopPublisher drops every event. Used when REDIS_URL is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, LoanEvent) error { return nil }
func (NopPublisher) Close() error                             { return nil }

// Fanout hands every event to each publisher in turn. Publish and Close
// keep going past a failing member and report the joined errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event LoanEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) Close() error {
	var errs []error
	for _, p := range f {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RedisPublisher publishes events as JSON on a redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects to redisURL (redis://host:port/db) and verifies
// the connection.
func NewRedisPublisher(ctx context.Context, redisURL, channel string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisPublisherFromClient(client, channel), nil
}

func NewRedisPublisherFromClient(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event LoanEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode loan event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish loan event: %w", err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
