package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

type ActivityPublisher interface {
	Publish(ctx context.Context, event model.ActivityEvent) error
}

// ActivityQueue pushes activity events onto a redis list consumed by
// worker.ActivityWorker.
type ActivityQueue struct {
	rdb       *redis.Client
	queueName string
}

func NewActivityQueue(rdb *redis.Client, queueName string) *ActivityQueue {
	return &ActivityQueue{rdb: rdb, queueName: queueName}
}

func (q *ActivityQueue) Publish(ctx context.Context, event model.ActivityEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal activity event: %w", err)
	}
	if err := q.rdb.LPush(ctx, q.queueName, payload).Err(); err != nil {
		return fmt.Errorf("failed to push activity event to redis queue: %w", err)
	}
	return nil
}

// publishActivity queues an event for userID. Failures are logged only:
// the mutation that triggered the event has already been committed.
func publishActivity(ctx context.Context, pub ActivityPublisher, log *logger.Logger, eventType, userID string) {
	if pub == nil {
		return
	}
	event := model.ActivityEvent{Type: eventType, UserID: userID, OccurredAt: time.Now().UTC()}
	if err := pub.Publish(ctx, event); err != nil {
		log.Warn("Failed to publish activity event", "type", eventType, "user_id", userID, "error", err)
	}
}
