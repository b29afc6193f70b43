package wizard

import (
	"context"
	"errors"
)

var (
	ErrUnknownSection = errors.New("unknown wizard section")
	ErrSectionHidden  = errors.New("wizard section is not visible")
	ErrStepLocked     = errors.New("wizard step is locked until earlier sections are filled")
)

// Durable record names. They are namespaced per session by RecordKey.
const (
	VisibilityRecord = "paraphrase-form-visibility"
	CollapsedRecord  = "paraphrase-form-collapsed"
)

// Store is the durable key-value store behind the visibility and collapse
// records. Writes are last-writer-wins.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

// RecordKey scopes a durable record to one session.
func RecordKey(namespace, record string) string {
	if namespace == "" {
		return record
	}
	return "paraphrase:" + namespace + ":" + record
}
