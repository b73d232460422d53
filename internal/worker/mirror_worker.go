// Package worker runs the mirror worker: it drains expense mutation
// events from AMQP and appends them to the spreadsheet ledger.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"expenso/internal/events"
)

// Ledger is the destination rows are appended to.
type Ledger interface {
	AppendEvent(ctx context.Context, ev *events.ExpenseEvent) error
}

// EventSource delivers mutation events until the context is done.
type EventSource interface {
	ConsumeExpenseEvents(ctx context.Context, handler func(*events.ExpenseEvent) error) error
}

type MirrorWorker struct {
	source EventSource
	ledger Ledger
}

func NewMirrorWorker(source EventSource, ledger Ledger) *MirrorWorker {
	return &MirrorWorker{source: source, ledger: ledger}
}

// Run consumes events until ctx is cancelled. A failed append returns an
// error to the source so the delivery is requeued.
func (w *MirrorWorker) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "Mirror worker starting")
	return w.source.ConsumeExpenseEvents(ctx, func(ev *events.ExpenseEvent) error {
		if err := w.ledger.AppendEvent(ctx, ev); err != nil {
			return fmt.Errorf("append event %s/%s: %w", ev.Action, ev.Expense.ID, err)
		}
		slog.InfoContext(ctx, "Mirrored expense event",
			"action", ev.Action, "id", ev.Expense.ID)
		return nil
	})
}
