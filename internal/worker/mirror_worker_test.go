package worker

import (
	"context"
	"errors"
	"testing"

	"expenso/internal/core"
	"expenso/internal/events"
)

// stubSource replays a fixed batch of events through the handler.
type stubSource struct {
	batch       []*events.ExpenseEvent
	handlerErrs []error
}

func (s *stubSource) ConsumeExpenseEvents(_ context.Context, handler func(*events.ExpenseEvent) error) error {
	for _, ev := range s.batch {
		s.handlerErrs = append(s.handlerErrs, handler(ev))
	}
	return nil
}

type stubLedger struct {
	appended []string
	err      error
}

func (l *stubLedger) AppendEvent(_ context.Context, ev *events.ExpenseEvent) error {
	if l.err != nil {
		return l.err
	}
	l.appended = append(l.appended, ev.Action+"/"+ev.Expense.ID)
	return nil
}

func testEvent(action, id string) *events.ExpenseEvent {
	return events.NewExpenseEvent(action, core.Expense{ID: id, Amount: core.Money{Cents: 100}})
}

func TestRunAppendsEachEvent(t *testing.T) {
	source := &stubSource{batch: []*events.ExpenseEvent{
		testEvent("created", "a"),
		testEvent("deleted", "b"),
	}}
	ledger := &stubLedger{}

	w := NewMirrorWorker(source, ledger)
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(ledger.appended) != 2 || ledger.appended[0] != "created/a" || ledger.appended[1] != "deleted/b" {
		t.Fatalf("appended=%v", ledger.appended)
	}
	for _, err := range source.handlerErrs {
		if err != nil {
			t.Fatalf("handler error: %v", err)
		}
	}
}

func TestRunReportsAppendFailure(t *testing.T) {
	appendErr := errors.New("sheet unavailable")
	source := &stubSource{batch: []*events.ExpenseEvent{testEvent("created", "a")}}
	ledger := &stubLedger{err: appendErr}

	w := NewMirrorWorker(source, ledger)
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	// The handler error goes back to the source so it can requeue.
	if len(source.handlerErrs) != 1 || !errors.Is(source.handlerErrs[0], appendErr) {
		t.Fatalf("handler errors=%v", source.handlerErrs)
	}
}
