package queue

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/omikuji-web/internal/model"
)

// DrawTopic carries one model.DrawEvent per rendered result page.
const DrawTopic = "fortune_draws"

// Publisher is all the fortune service needs.
type Publisher interface {
	Publish(topic string, payload any) error
}

// Queue interface
type Queue interface {
	Publisher
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue fans payloads out to local handlers with retry
type InMemoryQueue struct {
	// Backoff is multiplied by the attempt number between retries.
	Backoff    time.Duration
	MaxRetries int

	mu       sync.Mutex
	handlers map[string][]func(payload any) error
	log      logrus.FieldLogger
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue(logger logrus.FieldLogger) *InMemoryQueue {
	return &InMemoryQueue{
		Backoff:    500 * time.Millisecond,
		MaxRetries: 3,
		handlers:   make(map[string][]func(payload any) error),
		log:        logger,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish hands the payload to every subscriber of topic
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		go q.processJob(handler, JobPayload{Payload: payload, MaxRetries: q.MaxRetries})
	}
	return nil
}

func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for {
		err := handler(job.Payload)
		if err == nil {
			return
		}

		job.RetryCount++
		if job.RetryCount > job.MaxRetries {
			q.log.Errorf("job permanently failed after %d attempts: %v", job.RetryCount, err)
			return
		}
		q.log.Warnf("job failed (attempt %d/%d): %v", job.RetryCount, job.MaxRetries, err)
		time.Sleep(time.Duration(job.RetryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartDrawLogSubscriber logs every draw, fallback draws at debug level.
// Used when no broker is configured.
func StartDrawLogSubscriber(q Queue, logger logrus.FieldLogger) error {
	return q.Subscribe(DrawTopic, func(payload any) error {
		e, err := DecodeDrawEvent(payload)
		if err != nil {
			logger.Warnf("dropping draw event: %v", err)
			return nil
		}
		entry := logger.WithFields(logrus.Fields{
			"draw_id":      e.ID.String(),
			"number":       e.Number,
			"fortune_rank": e.FortuneRank,
		})
		// Fallback draws stay out of the default log output.
		if e.Fallback {
			entry.Debug("fallback fortune drawn")
			return nil
		}
		entry.Info("fortune drawn")
		return nil
	})
}

// DecodeDrawEvent accepts either an in-process event or a JSON body from the broker.
func DecodeDrawEvent(payload any) (model.DrawEvent, error) {
	switch p := payload.(type) {
	case model.DrawEvent:
		return p, nil
	case *model.DrawEvent:
		if p == nil {
			return model.DrawEvent{}, fmt.Errorf("nil draw event")
		}
		return *p, nil
	case []byte:
		var e model.DrawEvent
		if err := json.Unmarshal(p, &e); err != nil {
			return model.DrawEvent{}, fmt.Errorf("decode draw event: %w", err)
		}
		return e, nil
	default:
		return model.DrawEvent{}, fmt.Errorf("unexpected payload type %T", payload)
	}
}
