package queue

import (
	"context"
	"fmt"

	"storefront/app/internal/domain/event"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Publisher announces storefront events to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, e event.Event) (string, error) // Returns message ID
}

// streamMaxLen bounds every event stream; older entries are trimmed
const streamMaxLen = 10000

type RedisPublisher struct {
	redisClient  *redis.Client
	streamPrefix string
}

func NewRedisPublisher(redisClient *redis.Client, streamPrefix string) *RedisPublisher {
	return &RedisPublisher{
		redisClient:  redisClient,
		streamPrefix: streamPrefix,
	}
}

func (p *RedisPublisher) StreamName(eventType string) string {
	return p.streamPrefix + eventType
}

func (p *RedisPublisher) Publish(ctx context.Context, e event.Event) (string, error) {
	eventType := e.EventType()
	streamName := p.StreamName(eventType)

	eventValue, err := e.EventValue()
	if err != nil {
		return "", fmt.Errorf("failed to serialize event: %w", err)
	}

	// Fields: event_type, event_data
	messageID, err := p.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"event_type": eventType,
			"event_data": string(eventValue),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to add event to Redis stream %s: %w", streamName, err)
	}

	log.Debugf("Published %s to stream %s with message ID: %s", eventType, streamName, messageID)
	return messageID, nil
}

// NopPublisher drops every event. Used when Redis events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, e event.Event) (string, error) {
	log.Debugf("Event %s not published: events disabled", e.EventType())
	return "", nil
}
