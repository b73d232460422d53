package expense

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"expenso/internal/core"
)

// Event actions published on mutations.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EventPublisher receives a notification after each applied mutation.
// Publishing is best-effort: failures are logged, never returned to the
// caller, and never undo the mutation.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, action string, e core.Expense) error
}

// Input carries the caller-supplied fields of a new expense. ID and
// CreatedAt are synthesized by the store.
type Input struct {
	Amount      core.Money
	Description string
	Category    string
	Date        core.Date
}

// Patch is a partial update. Nil fields are left unchanged; ID and
// CreatedAt can never be patched.
type Patch struct {
	Amount      *core.Money
	Description *string
	Category    *string
	Date        *core.Date
}

// Store is the single source of truth for the expense collection. It owns
// the in-memory list exclusively; every mutation is persisted through the
// repository before the call returns. The store performs no input
// validation — that is the caller's job (see core.Expense.Validate).
type Store struct {
	mu     sync.Mutex
	repo   Repository
	events EventPublisher
	loaded bool
	items  []core.Expense
}

// NewStore creates a store over repo. events may be nil, in which case
// mutation events are skipped.
func NewStore(repo Repository, events EventPublisher) *Store {
	return &Store{repo: repo, events: events}
}

// Load initializes the collection from the repository. When nothing has
// been persisted yet it seeds the built-in sample set and persists it
// immediately, so a fresh store is never empty by accident.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		items = core.SeedExpenses()
		if err := s.repo.Save(ctx, items); err != nil {
			return err
		}
		slog.InfoContext(ctx, "Seeded expense collection", "count", len(items))
	}
	s.items = items
	s.loaded = true
	return nil
}

// Loaded reports whether Load has completed.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// List returns a snapshot copy of the collection in storage order.
func (s *Store) List() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the expense with the given id.
func (s *Store) Get(id string) (core.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.ID == id {
			return e, true
		}
	}
	return core.Expense{}, false
}

// Add appends a new expense with a synthesized unique ID and creation
// timestamp, persists the collection, and returns the created record.
// On a persistence failure the record is still present in memory.
func (s *Store) Add(ctx context.Context, in Input) (core.Expense, error) {
	s.mu.Lock()
	e := core.Expense{
		ID:          uuid.NewString(),
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		Date:        in.Date,
		CreatedAt:   time.Now().UTC(),
	}
	s.items = append(s.items, e)
	err := s.repo.Save(ctx, s.items)
	s.mu.Unlock()

	if err != nil {
		return e, err
	}
	s.publish(ctx, ActionCreated, e)
	return e, nil
}

// Update merges patch over the expense with the given id, preserving ID
// and CreatedAt, then persists. An unknown id is a silent no-op.
func (s *Store) Update(ctx context.Context, id string, patch Patch) error {
	s.mu.Lock()
	idx := -1
	for i, e := range s.items {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	e := &s.items[idx]
	if patch.Amount != nil {
		e.Amount = *patch.Amount
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	updated := *e
	err := s.repo.Save(ctx, s.items)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.publish(ctx, ActionUpdated, updated)
	return nil
}

// Delete removes the expense with the given id and persists the remaining
// collection. An unknown id is a silent no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := -1
	for i, e := range s.items {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	err := s.repo.Save(ctx, s.items)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.publish(ctx, ActionDeleted, removed)
	return nil
}

// TotalAll sums every expense's amount.
func (s *Store) TotalAll() core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total core.Money
	for _, e := range s.items {
		total = total.Add(e.Amount)
	}
	return total
}

// ByCategory sums amounts per category label, in enumeration order,
// omitting categories whose total is zero.
func (s *Store) ByCategory() []core.CategoryAmount {
	s.mu.Lock()
	defer s.mu.Unlock()

	sums := make(map[string]core.Money)
	for _, e := range s.items {
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}

	out := make([]core.CategoryAmount, 0, len(sums))
	for _, cat := range core.Categories() {
		if sum, ok := sums[cat]; ok && sum.Cents != 0 {
			out = append(out, core.CategoryAmount{Category: cat, Amount: sum})
		}
	}
	return out
}

// ByMonth sums amounts per month+year key ("Jun 2024") in first-encounter
// order over the unsorted collection. Callers computing trends must not
// rely on this order; use ByMonthChronological instead.
func (s *Store) ByMonth() []core.MonthAmount {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups, _ := s.groupByMonthLocked()
	return groups
}

// ByMonthChronological is ByMonth sorted by actual calendar month, which
// makes "last two entries" mean "two most recent months".
func (s *Store) ByMonthChronological() []core.MonthAmount {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups, starts := s.groupByMonthLocked()
	sort.SliceStable(groups, func(i, j int) bool {
		return starts[groups[i].Month].Before(starts[groups[j].Month])
	})
	return groups
}

func (s *Store) groupByMonthLocked() ([]core.MonthAmount, map[string]time.Time) {
	idx := make(map[string]int)
	starts := make(map[string]time.Time)
	var groups []core.MonthAmount
	for _, e := range s.items {
		key := e.Date.MonthKey()
		if i, ok := idx[key]; ok {
			groups[i].Amount = groups[i].Amount.Add(e.Amount)
			continue
		}
		idx[key] = len(groups)
		starts[key] = e.Date.MonthStart()
		groups = append(groups, core.MonthAmount{Month: key, Amount: e.Amount})
	}
	return groups, starts
}

func (s *Store) publish(ctx context.Context, action string, e core.Expense) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseEvent(ctx, action, e); err != nil {
		slog.WarnContext(ctx, "Failed to publish expense event",
			"action", action, "id", e.ID, "error", err)
	}
}
