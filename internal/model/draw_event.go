// internal/model/draw_event.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// DrawEvent records one rendered result page.
type DrawEvent struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Number      string    `db:"number" json:"number"`
	FortuneRank string    `db:"fortune_rank" json:"fortune_rank"`
	Message     string    `db:"message" json:"message"`
	Fallback    bool      `db:"fallback" json:"fallback"`
	DrawnAt     time.Time `db:"drawn_at" json:"drawn_at"`
}

// NewDrawEvent stamps a result with a fresh id and the given time.
func NewDrawEvent(r FortuneResult, fallback bool, at time.Time) DrawEvent {
	return DrawEvent{
		ID:          uuid.New(),
		Number:      r.Number,
		FortuneRank: r.FortuneRank,
		Message:     r.Message,
		Fallback:    fallback,
		DrawnAt:     at.UTC(),
	}
}
