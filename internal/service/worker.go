package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/omikuji-web/internal/queue"
	"github.com/unclebandit/omikuji-web/internal/repository"
)

// DrawWorker stores draw events taken off the queue
type DrawWorker struct {
	Repo    repository.DrawRepositoryInterface
	Timeout time.Duration

	log logrus.FieldLogger
}

// Constructor
func NewDrawWorker(repo repository.DrawRepositoryInterface, logger logrus.FieldLogger) *DrawWorker {
	return &DrawWorker{
		Repo:    repo,
		Timeout: 5 * time.Second,
		log:     logger,
	}
}

// Handle is a queue handler. Undecodable payloads are dropped (nil error);
// store failures are returned so the queue can retry.
func (w *DrawWorker) Handle(payload any) error {
	event, err := queue.DecodeDrawEvent(payload)
	if err != nil {
		w.log.Warnf("invalid draw event, dropping: %v", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.Timeout)
	defer cancel()

	if err := w.Repo.Insert(ctx, event); err != nil {
		return err
	}
	w.log.Debugf("stored draw %s (%s)", event.ID, event.FortuneRank)
	return nil
}
