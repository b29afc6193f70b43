package implementation

import (
	"context"
	"errors"
	"strings"
	"time"

	"paraphrase-be/internal/model"
	"paraphrase-be/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const keyPrefix = "paraphrase:"

type StateRepositoryImpl struct {
	db *gorm.DB
}

func NewStateRepository(db *gorm.DB) contract.StateRepository {
	return &StateRepositoryImpl{db: db}
}

// splitKey turns "paraphrase:<session>:<record>" into its columns. Keys
// without a session prefix are stored under an empty session id.
func splitKey(key string) (string, string) {
	rest, ok := strings.CutPrefix(key, keyPrefix)
	if !ok {
		return "", key
	}
	session, record, ok := strings.Cut(rest, ":")
	if !ok {
		return "", key
	}
	return session, record
}

func (r *StateRepositoryImpl) Get(ctx context.Context, key string) ([]byte, bool, error) {
	session, record := splitKey(key)

	var m model.WizardState
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND key = ?", session, record).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(m.Value), true, nil
}

func (r *StateRepositoryImpl) Set(ctx context.Context, key string, value []byte) error {
	session, record := splitKey(key)

	m := model.WizardState{
		SessionID: session,
		Key:       record,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
}

func (r *StateRepositoryImpl) Delete(ctx context.Context, keys ...string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range keys {
			session, record := splitKey(key)
			if err := tx.Where("session_id = ? AND key = ?", session, record).
				Delete(&model.WizardState{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
