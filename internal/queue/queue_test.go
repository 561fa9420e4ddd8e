package queue_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/omikuji-web/internal/logger"
	"github.com/unclebandit/omikuji-web/internal/model"
	"github.com/unclebandit/omikuji-web/internal/queue"
)

func TestPublishWithoutSubscribers(t *testing.T) {
	q := queue.NewInMemoryQueue(logger.Discard())
	assert.Error(t, q.Publish(queue.DrawTopic, 1))
}

func TestPublishRetriesUntilSuccess(t *testing.T) {
	q := queue.NewInMemoryQueue(logger.Discard())
	q.Backoff = time.Millisecond

	var calls int32
	done := make(chan struct{})
	require.NoError(t, q.Subscribe("t", func(payload any) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	}))

	require.NoError(t, q.Publish("t", "x"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("handler never succeeded")
	}
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestPublishGivesUpAfterMaxRetries(t *testing.T) {
	q := queue.NewInMemoryQueue(logger.Discard())
	q.Backoff = time.Millisecond
	q.MaxRetries = 2

	var calls int32
	require.NoError(t, q.Subscribe("t", func(payload any) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("always")
	}))
	require.NoError(t, q.Publish("t", "x"))

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 3 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestDecodeDrawEvent(t *testing.T) {
	e := model.NewDrawEvent(model.FallbackFortune, true, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	got, err := queue.DecodeDrawEvent(e)
	require.NoError(t, err)
	assert.Equal(t, e, got)

	body := []byte(`{"id":"` + e.ID.String() + `","number":"11","fortune_rank":"中吉","message":"m","fallback":true,"drawn_at":"2026-01-01T00:00:00Z"}`)
	got, err = queue.DecodeDrawEvent(body)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.True(t, got.Fallback)
	assert.Equal(t, "中吉", got.FortuneRank)

	_, err = queue.DecodeDrawEvent([]byte("{"))
	assert.Error(t, err)
	_, err = queue.DecodeDrawEvent(42)
	assert.Error(t, err)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestDrawLogSubscriberKeepsFallbacksAtDebug(t *testing.T) {
	var out lockedBuffer
	l := logger.NewWithWriter(&out, logger.Config{Service: "fortune", Level: "info"})
	q := queue.NewInMemoryQueue(l)
	require.NoError(t, queue.StartDrawLogSubscriber(q, l))

	at := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	require.NoError(t, q.Publish(queue.DrawTopic, model.NewDrawEvent(model.FallbackFortune, true, at)))
	require.NoError(t, q.Publish(queue.DrawTopic, model.NewDrawEvent(model.FortuneResult{Number: "1", FortuneRank: "大吉", Message: "m"}, false, at)))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "number=1 ")
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.NotContains(t, out.String(), "fallback fortune drawn")
	assert.NotContains(t, out.String(), "number=11")
}
