// internal/service/fortune_service.go
package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/omikuji-web/internal/model"
	"github.com/unclebandit/omikuji-web/internal/queue"
	"github.com/unclebandit/omikuji-web/internal/repository"
)

type FortuneService struct {
	Repo repository.FortuneRepositoryInterface
	Now  func() time.Time

	// events is nil when draws are not published.
	events *queue.AsyncPublisher
	log    logrus.FieldLogger
}

// NewFortuneService publishes draws to events through a bounded background
// buffer, so a stalled broker never delays a page. events may be nil.
func NewFortuneService(repo repository.FortuneRepositoryInterface, events queue.Publisher, logger logrus.FieldLogger) *FortuneService {
	s := &FortuneService{
		Repo: repo,
		Now:  time.Now,
		log:  logger,
	}
	if events != nil {
		s.events = queue.NewAsyncPublisher(events, queue.DefaultBufferSize, logger)
	}
	return s
}

// GetDailyFortune never fails. Any retrieval problem, including an empty
// table, yields model.FallbackFortune.
func (s *FortuneService) GetDailyFortune(ctx context.Context) model.FortuneResult {
	row, err := s.Repo.RandomResult(ctx)
	result, fallback := maskedFallback(row, err, model.FallbackFortune)
	if fallback {
		s.log.WithError(err).Debug("serving fallback fortune")
	}

	s.publish(result, fallback)
	return result
}

func (s *FortuneService) publish(r model.FortuneResult, fallback bool) {
	if s.events == nil {
		return
	}
	event := model.NewDrawEvent(r, fallback, s.Now())
	if err := s.events.Publish(queue.DrawTopic, event); err != nil {
		s.log.Warnf("dropping draw %s: %v", event.ID, err)
	}
}

// Close flushes pending draw events.
func (s *FortuneService) Close(ctx context.Context) error {
	if s.events == nil {
		return nil
	}
	return s.events.Close(ctx)
}
