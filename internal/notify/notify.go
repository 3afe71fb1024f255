package notify

import (
	"context"
	"log"

	"github.com/zvrva/farewatch/internal/kafka"
)

// Logger is the terminal consumer of price events in the worker. It only
// writes to the process log; wiring a real channel goes here.
type Logger struct{}

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Notify(ctx context.Context, event kafka.PriceEvent) error {
	switch event.Type {
	case kafka.EventSeedCompleted:
		log.Printf("seed completed: %d records inserted", event.Count)
	case kafka.EventPriceRefreshed:
		log.Printf("price refreshed: %s now $%.0f (observed %s)", event.Route, event.Price, event.ObservedAt.Format("2006-01-02 15:04"))
	default:
		log.Printf("price event %s: %+v", event.Type, event)
	}
	return nil
}
