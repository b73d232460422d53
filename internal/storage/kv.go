// Package storage provides the durable string-keyed, string-valued store
// the expense collection and the auth session persist into.
package storage

import "context"

// Well-known keys. Values are JSON-encoded except the session token,
// which is stored as an opaque string.
const (
	KeyExpenses = "expenses"
	KeyToken    = "expense_token"
	KeyUser     = "expense_user"
)

// KV is a minimal durable key-value store. Get reports ok=false when the
// key is absent, which is distinct from an empty value.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
