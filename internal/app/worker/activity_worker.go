package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"skill_tracker/internal/app/service"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/platform/logger"
	"skill_tracker/internal/platform/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseLock deletes the lock only while it still holds our value.
var releaseLock = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
else
    return 0
end
`)

type ActivityProcessor interface {
	Process(ctx context.Context, userID string) (*service.ActivityOutcome, error)
}

type Options struct {
	QueueName  string
	LockPrefix string
	LockTTL    time.Duration
	// PopTimeout bounds each BRPOP so the loop notices cancellation.
	PopTimeout time.Duration
	// RequeueDelay is waited before a locked user's event goes back on the
	// queue, so a short queue does not spin against redis.
	RequeueDelay time.Duration
}

// ActivityWorker consumes activity events and runs the achievement
// processor for each, one event per user at a time across all workers.
type ActivityWorker struct {
	rdb       *redis.Client
	processor ActivityProcessor
	opts      Options
	log       *logger.Logger
}

func NewActivityWorker(rdb *redis.Client, processor ActivityProcessor, opts Options, log *logger.Logger) *ActivityWorker {
	if opts.PopTimeout <= 0 {
		opts.PopTimeout = 5 * time.Second
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 30 * time.Second
	}
	if opts.RequeueDelay <= 0 {
		opts.RequeueDelay = 250 * time.Millisecond
	}
	return &ActivityWorker{rdb: rdb, processor: processor, opts: opts, log: log}
}

// Start blocks until ctx is cancelled.
func (w *ActivityWorker) Start(ctx context.Context) {
	w.log.Info("Activity worker started", "queue", w.opts.QueueName)
	for {
		select {
		case <-ctx.Done():
			w.log.Info("Activity worker stopping")
			return
		default:
		}

		res, err := w.rdb.BRPop(ctx, w.opts.PopTimeout, w.opts.QueueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			w.log.Error("Failed to BRPop from activity queue", "queue", w.opts.QueueName, "error", err)
			sleep(ctx, 5*time.Second)
			continue
		}
		// res is [queueName, value]
		if len(res) < 2 || res[1] == "" {
			w.log.Warn("BRPop returned an empty activity event")
			continue
		}
		w.HandleMessage(ctx, res[1])
	}
}

// HandleMessage decodes and processes one queued event.
func (w *ActivityWorker) HandleMessage(ctx context.Context, raw string) {
	var event model.ActivityEvent
	if err := json.Unmarshal([]byte(raw), &event); err != nil || event.UserID == "" {
		w.log.Warn("Dropping malformed activity event", "payload", raw, "error", err)
		metrics.ActivityEvents.WithLabelValues("malformed").Inc()
		return
	}
	w.processWithLock(ctx, event, raw)
}

func (w *ActivityWorker) processWithLock(ctx context.Context, event model.ActivityEvent, raw string) {
	lockKey := w.opts.LockPrefix + event.UserID
	lockValue := uuid.NewString()

	ok, err := w.rdb.SetNX(ctx, lockKey, lockValue, w.opts.LockTTL).Result()
	if err != nil {
		w.log.Error("Failed to acquire activity lock", "user_id", event.UserID, "error", err)
		sleep(ctx, w.opts.RequeueDelay)
		w.requeue(ctx, raw)
		return
	}
	if !ok {
		w.log.Debug("Activity lock busy, re-queueing", "user_id", event.UserID)
		metrics.ActivityEvents.WithLabelValues("requeued").Inc()
		sleep(ctx, w.opts.RequeueDelay)
		w.requeue(ctx, raw)
		return
	}

	defer func() {
		deleted, err := releaseLock.Run(context.WithoutCancel(ctx), w.rdb, []string{lockKey}, lockValue).Int64()
		if err != nil {
			w.log.Error("Failed to release activity lock", "key", lockKey, "error", err)
		} else if deleted == 0 {
			w.log.Warn("Activity lock expired before release", "key", lockKey)
		}
	}()

	out, err := w.processor.Process(ctx, event.UserID)
	if err != nil {
		w.log.Error("Failed to process activity event", "type", event.Type, "user_id", event.UserID, "error", err)
		metrics.ActivityEvents.WithLabelValues("failed").Inc()
		return
	}
	metrics.ActivityEvents.WithLabelValues("processed").Inc()
	if out != nil && len(out.Awarded) > 0 {
		w.log.Info("Activity processed", "type", event.Type, "user_id", event.UserID, "badges_awarded", len(out.Awarded))
	}
}

// requeue puts the event at the back of the queue.
func (w *ActivityWorker) requeue(ctx context.Context, raw string) {
	if err := w.rdb.LPush(context.WithoutCancel(ctx), w.opts.QueueName, raw).Err(); err != nil {
		w.log.Error("Failed to re-queue activity event", "error", err)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
