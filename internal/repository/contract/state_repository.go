package contract

import "context"

// StateRepository is the durable key-value store behind wizard visibility and
// collapse records. Every implementation satisfies wizard.Store.
type StateRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
