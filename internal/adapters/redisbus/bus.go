// Package redisbus contains the redis pub/sub implementation of the Bus
// port. It is the multi-process analog of the browser BroadcastChannel the
// workflow originally relied on: fire-and-forget, at-most-once, no ordering
// across publishers.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/example/casetrack/internal/logging"
	"github.com/example/casetrack/internal/ports/secondary"
)

// Bus implements secondary.Bus over a redis pub/sub channel.
type Bus struct {
	log     *logging.Logger
	rdb     *goredis.Client
	channel string
}

// New connects to redis at addr and verifies the connection. channel defaults
// to "psh-tracker-sync" when empty.
func New(log *logging.Logger, addr, channel string) (*Bus, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if channel == "" {
		channel = "psh-tracker-sync"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Bus{
		log:     log.With("service", "redisbus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

// Publish sends msg to the channel, fire-and-forget.
func (b *Bus) Publish(ctx context.Context, msg secondary.Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

// Subscribe registers handler for channel messages. The handler runs on a
// dedicated goroutine until unsubscribe or ctx cancellation. Unparseable
// payloads are logged and skipped.
func (b *Bus) Subscribe(ctx context.Context, handler func(secondary.Message)) (func(), error) {
	if handler == nil {
		return nil, fmt.Errorf("handler required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var msg secondary.Message
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					b.log.Warn("bad sync payload", "error", err)
					continue
				}
				handler(msg)
			}
		}
	}()

	return func() { _ = sub.Close() }, nil
}

// Close closes the redis connection.
func (b *Bus) Close() error {
	return b.rdb.Close()
}

// Ensure Bus implements the interface
var _ secondary.Bus = (*Bus)(nil)
