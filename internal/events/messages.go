package events

import (
	"encoding/json"
	"time"

	"expenso/internal/core"
)

// ExpenseEvent describes one applied mutation. It carries the full record
// so consumers never need to reach back into the store.
type ExpenseEvent struct {
	Action     string       `json:"action"` // created, updated or deleted
	Expense    core.Expense `json:"expense"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewExpenseEvent builds an event timestamped now.
func NewExpenseEvent(action string, e core.Expense) *ExpenseEvent {
	return &ExpenseEvent{
		Action:     action,
		Expense:    e,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (m *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventFromJSON parses an event from JSON bytes.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var msg ExpenseEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
