package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"skill_tracker/internal/app/service"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcessor struct {
	mu    sync.Mutex
	users []string
	done  chan string
}

func (p *fakeProcessor) Process(_ context.Context, userID string) (*service.ActivityOutcome, error) {
	p.mu.Lock()
	p.users = append(p.users, userID)
	p.mu.Unlock()
	if p.done != nil {
		p.done <- userID
	}
	return &service.ActivityOutcome{}, nil
}

func (p *fakeProcessor) calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.users...)
}

func newTestWorker(t *testing.T, proc ActivityProcessor) (*ActivityWorker, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	w := NewActivityWorker(rdb, proc, Options{
		QueueName:    "activity",
		LockPrefix:   "activity_lock:",
		LockTTL:      time.Minute,
		PopTimeout:   100 * time.Millisecond,
		RequeueDelay: 20 * time.Millisecond,
	}, logger.Nop())
	return w, mr, rdb
}

func TestHandleMessage_ProcessesAndReleasesLock(t *testing.T) {
	proc := &fakeProcessor{}
	w, mr, _ := newTestWorker(t, proc)

	w.HandleMessage(context.Background(), `{"type":"skill_created","user_id":"u1"}`)

	assert.Equal(t, []string{"u1"}, proc.calls())
	assert.False(t, mr.Exists("activity_lock:u1"))
}

func TestHandleMessage_RequeuesWhenUserLocked(t *testing.T) {
	proc := &fakeProcessor{}
	w, mr, rdb := newTestWorker(t, proc)
	require.NoError(t, mr.Set("activity_lock:u1", "someone-else"))

	raw := `{"type":"skill_created","user_id":"u1"}`
	w.HandleMessage(context.Background(), raw)

	assert.Empty(t, proc.calls())
	queued, err := rdb.LRange(context.Background(), "activity", 0, -1).Result()
	require.NoError(t, err)
	assert.Equal(t, []string{raw}, queued)

	got, err := mr.Get("activity_lock:u1")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestHandleMessage_WaitsBeforeRequeueingLockedUser(t *testing.T) {
	proc := &fakeProcessor{}
	w, mr, rdb := newTestWorker(t, proc)
	w.opts.RequeueDelay = 80 * time.Millisecond
	require.NoError(t, mr.Set("activity_lock:u1", "someone-else"))

	start := time.Now()
	w.HandleMessage(context.Background(), `{"type":"skill_created","user_id":"u1"}`)

	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	n, err := rdb.LLen(context.Background(), "activity").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestHandleMessage_RequeuesEvenWhenCancelledDuringBackoff(t *testing.T) {
	proc := &fakeProcessor{}
	w, mr, rdb := newTestWorker(t, proc)
	w.opts.RequeueDelay = time.Minute
	require.NoError(t, mr.Set("activity_lock:u1", "someone-else"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	w.HandleMessage(ctx, `{"type":"skill_created","user_id":"u1"}`)

	n, err := rdb.LLen(context.Background(), "activity").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestNewActivityWorker_Defaults(t *testing.T) {
	w := NewActivityWorker(nil, &fakeProcessor{}, Options{QueueName: "q"}, logger.Nop())
	assert.Equal(t, 250*time.Millisecond, w.opts.RequeueDelay)
	assert.Equal(t, 30*time.Second, w.opts.LockTTL)
	assert.Equal(t, 5*time.Second, w.opts.PopTimeout)
}

func TestHandleMessage_DropsMalformed(t *testing.T) {
	proc := &fakeProcessor{}
	w, _, rdb := newTestWorker(t, proc)

	w.HandleMessage(context.Background(), `not json`)
	w.HandleMessage(context.Background(), `{"type":"skill_created"}`)

	assert.Empty(t, proc.calls())
	n, err := rdb.LLen(context.Background(), "activity").Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStart_ConsumesPublishedEvents(t *testing.T) {
	proc := &fakeProcessor{done: make(chan string, 1)}
	w, _, rdb := newTestWorker(t, proc)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(stopped)
	}()

	queue := service.NewActivityQueue(rdb, "activity")
	require.NoError(t, queue.Publish(context.Background(), model.ActivityEvent{Type: model.ActivitySkillCreated, UserID: "u42", OccurredAt: time.Now()}))

	select {
	case user := <-proc.done:
		assert.Equal(t, "u42", user)
	case <-time.After(5 * time.Second):
		t.Fatal("event was not processed")
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}
