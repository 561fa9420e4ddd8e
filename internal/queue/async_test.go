package queue_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/omikuji-web/internal/logger"
	"github.com/unclebandit/omikuji-web/internal/queue"
)

type blockingPublisher struct {
	release chan struct{}

	mu  sync.Mutex
	got []any
}

func (p *blockingPublisher) Publish(topic string, payload any) error {
	if p.release != nil {
		<-p.release
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, payload)
	return nil
}

func TestAsyncPublisherDropsWhenFull(t *testing.T) {
	next := &blockingPublisher{release: make(chan struct{})}
	p := queue.NewAsyncPublisher(next, 1, logger.Discard())

	start := time.Now()
	var dropped int
	for i := 0; i < 10; i++ {
		if err := p.Publish(queue.DrawTopic, i); errors.Is(err, queue.ErrBufferFull) {
			dropped++
		}
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.GreaterOrEqual(t, dropped, 8)

	close(next.release)
	require.NoError(t, p.Close(context.Background()))
}

func TestAsyncPublisherCloseFlushes(t *testing.T) {
	next := &blockingPublisher{}
	p := queue.NewAsyncPublisher(next, 8, logger.Discard())

	for i := 0; i < 5; i++ {
		require.NoError(t, p.Publish(queue.DrawTopic, i))
	}
	require.NoError(t, p.Close(context.Background()))
	assert.Equal(t, []any{0, 1, 2, 3, 4}, next.got)

	assert.ErrorIs(t, p.Publish(queue.DrawTopic, 5), queue.ErrPublisherClosed)
}

func TestAsyncPublisherCloseHonoursContext(t *testing.T) {
	next := &blockingPublisher{release: make(chan struct{})}
	defer close(next.release)
	p := queue.NewAsyncPublisher(next, 1, logger.Discard())
	require.NoError(t, p.Publish(queue.DrawTopic, "stuck"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Close(ctx), context.DeadlineExceeded)
}
