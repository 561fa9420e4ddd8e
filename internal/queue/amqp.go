package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// AMQPQueue implements Queue on RabbitMQ. Each topic is a durable queue on
// the default exchange and payloads travel as JSON.
type AMQPQueue struct {
	url  string
	conn *amqp.Connection
	ch   *amqp.Channel
	log  logrus.FieldLogger

	mu       sync.Mutex
	declared map[string]bool

	// done receives the first fatal consumer or connection failure.
	done chan error
}

func NewAMQPQueue(url string, logger logrus.FieldLogger) (*AMQPQueue, error) {
	q := &AMQPQueue{
		url:      url,
		log:      logger,
		declared: make(map[string]bool),
		done:     make(chan error, 1),
	}
	if err := q.dial(); err != nil {
		return nil, err
	}
	return q, nil
}

// dial must be called with q.mu held (or before q is shared).
func (q *AMQPQueue) dial() error {
	conn, err := amqp.Dial(q.url)
	if err != nil {
		return fmt.Errorf("connect to queue: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open queue channel: %w", err)
	}
	q.conn = conn
	q.ch = ch
	q.declared = make(map[string]bool)

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		// A nil receive means Close was called by us.
		if err := <-closed; err != nil {
			q.fail(fmt.Errorf("broker connection closed: %w", err))
		}
	}()
	return nil
}

func (q *AMQPQueue) fail(err error) {
	select {
	case q.done <- err:
	default:
	}
}

// Done reports a lost connection or a consumer that stopped delivering.
// Consumers should exit when it fires.
func (q *AMQPQueue) Done() <-chan error {
	return q.done
}

// declare must be called with q.mu held.
func (q *AMQPQueue) declare(topic string) error {
	if q.declared[topic] {
		return nil
	}
	_, err := q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}
	q.declared[topic] = true
	return nil
}

// publish must be called with q.mu held.
func (q *AMQPQueue) publish(topic string, body []byte) error {
	if err := q.declare(topic); err != nil {
		return err
	}
	return q.ch.Publish(
		"",
		topic,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Publish redials once when the channel or connection has gone away.
func (q *AMQPQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	// amqp.Channel is not safe for concurrent publishing.
	q.mu.Lock()
	defer q.mu.Unlock()

	err = q.publish(topic, body)
	if !errors.Is(err, amqp.ErrClosed) {
		return err
	}

	q.log.WithError(err).Warn("broker channel closed, redialing")
	q.conn.Close()
	if err := q.dial(); err != nil {
		return err
	}
	return q.publish(topic, body)
}

// Subscribe consumes topic with manual acks. A failing handler gets one
// redelivery; after that the message is dropped. When deliveries stop the
// failure is reported on Done.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	err := q.declare(topic)
	var msgs <-chan amqp.Delivery
	if err == nil {
		msgs, err = q.ch.Consume(
			topic,
			"",
			false, // autoAck = false for reliability
			false,
			false,
			false,
			nil,
		)
	}
	q.mu.Unlock()
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	go func() {
		for d := range msgs {
			if err := handler(d.Body); err != nil {
				q.log.Warnf("handler failed for %s (redelivered=%v): %v", topic, d.Redelivered, err)
				d.Nack(false, !d.Redelivered)
				continue
			}
			d.Ack(false)
		}
		q.log.Warnf("consumer for %s stopped", topic)
		q.fail(fmt.Errorf("consumer for %s stopped", topic))
	}()
	return nil
}

func (q *AMQPQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		q.conn.Close()
		return err
	}
	if err := q.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return nil
}
