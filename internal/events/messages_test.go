package events

import (
	"testing"

	"expenso/internal/core"
)

func TestExpenseEventJSONRoundTrip(t *testing.T) {
	e := core.Expense{
		ID:          "x1",
		Amount:      core.Money{Cents: 2550},
		Description: "Lunch",
		Category:    core.CategoryFoodDining,
		Date:        core.NewDate(2024, 6, 8),
	}
	ev := NewExpenseEvent("created", e)
	if ev.OccurredAt.IsZero() {
		t.Fatal("missing timestamp")
	}

	raw, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	got, err := ExpenseEventFromJSON(raw)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if got.Action != "created" || got.Expense.ID != "x1" || got.Expense.Amount.Cents != 2550 {
		t.Fatalf("round trip gave %+v", got)
	}

	if _, err := ExpenseEventFromJSON([]byte("{broken")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
