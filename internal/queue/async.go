package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultBufferSize is how many events AsyncPublisher holds before dropping.
const DefaultBufferSize = 256

var (
	ErrBufferFull      = errors.New("publish buffer full")
	ErrPublisherClosed = errors.New("publisher closed")
)

type asyncJob struct {
	topic   string
	payload any
}

// AsyncPublisher decouples callers from a slow broker. Publish never blocks:
// events go into a bounded buffer drained by a single goroutine, and are
// dropped when the buffer is full.
type AsyncPublisher struct {
	next Publisher
	jobs chan asyncJob
	done chan struct{}
	log  logrus.FieldLogger

	mu     sync.RWMutex
	closed bool
}

func NewAsyncPublisher(next Publisher, size int, logger logrus.FieldLogger) *AsyncPublisher {
	if size <= 0 {
		size = DefaultBufferSize
	}
	p := &AsyncPublisher{
		next: next,
		jobs: make(chan asyncJob, size),
		done: make(chan struct{}),
		log:  logger,
	}
	go p.loop()
	return p
}

func (p *AsyncPublisher) Publish(topic string, payload any) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.jobs <- asyncJob{topic: topic, payload: payload}:
		return nil
	default:
		return ErrBufferFull
	}
}

func (p *AsyncPublisher) loop() {
	defer close(p.done)
	for job := range p.jobs {
		if err := p.next.Publish(job.topic, job.payload); err != nil {
			p.log.WithError(err).WithField("topic", job.topic).Warn("background publish failed")
		}
	}
}

// Close stops accepting events and waits until the buffer is flushed or ctx ends.
func (p *AsyncPublisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
