package model

import (
	"time"

	"gorm.io/datatypes"
)

// WizardState is one durable wizard record (visibility or collapse) for a session.
type WizardState struct {
	SessionID string         `gorm:"type:varchar(64);primaryKey"`
	Key       string         `gorm:"type:varchar(64);primaryKey"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP;not null"`
}

func (WizardState) TableName() string {
	return "wizard_states"
}
