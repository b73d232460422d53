// Package expense owns the expense collection: mutations, derived
// aggregates and CSV export, with every mutation persisted synchronously.
package expense

import (
	"context"
	"encoding/json"
	"fmt"

	"expenso/internal/core"
	"expenso/internal/storage"
)

// Repository loads and saves the full expense collection. Load reports
// ok=false when nothing has been persisted yet, which triggers seeding.
type Repository interface {
	Load(ctx context.Context) (items []core.Expense, ok bool, err error)
	Save(ctx context.Context, items []core.Expense) error
}

// PersistenceError wraps a failed durable read or write. When Save fails
// after a mutation the in-memory collection keeps the mutation; callers
// decide whether to retry or surface the failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// KVRepository stores the collection as a JSON array under the "expenses"
// key of a KV store.
type KVRepository struct {
	kv storage.KV
}

func NewKVRepository(kv storage.KV) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) Load(ctx context.Context) ([]core.Expense, bool, error) {
	raw, ok, err := r.kv.Get(ctx, storage.KeyExpenses)
	if err != nil {
		return nil, false, &PersistenceError{Op: "load", Err: err}
	}
	if !ok {
		return nil, false, nil
	}
	var items []core.Expense
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false, &PersistenceError{Op: "load", Err: err}
	}
	return items, true, nil
}

func (r *KVRepository) Save(ctx context.Context, items []core.Expense) error {
	if items == nil {
		items = []core.Expense{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	if err := r.kv.Set(ctx, storage.KeyExpenses, string(raw)); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}
