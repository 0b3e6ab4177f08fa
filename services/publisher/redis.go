package publisher

import (
	"context"
	"encoding/base64"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher implements Publisher using a Redis stream
type RedisPublisher struct {
	client    *redis.Client
	ctx       context.Context
	stream    string
	maxLength int
}

// NewRedisPublisher creates a new Redis publisher writing to one stream
func NewRedisPublisher(ctx context.Context, addr string, db int, stream string, maxLength int) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisPublisher{
		client:    client,
		ctx:       ctx,
		stream:    stream,
		maxLength: maxLength,
	}
}

// Publish publishes an alert event to the Redis stream.
// The message is base64 encoded before publishing.
func (p *RedisPublisher) Publish(message []byte) error {
	encodedMessage := base64.StdEncoding.EncodeToString(message)

	return p.client.XAdd(p.ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"b64_alert": encodedMessage,
		},
	}).Err()
}

// TrimStream trims the stream to the configured maximum length
func (p *RedisPublisher) TrimStream() error {
	return p.client.XTrimMaxLen(p.ctx, p.stream, int64(p.maxLength)).Err()
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
