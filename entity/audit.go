package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogPass append the outcome of a pass
func LogPass(db *gorm.DB, success bool, at time.Time) (*Audit, error) {
	audit := Audit{
		ID:         uuid.NewString(),
		UpdateTime: at.Unix(),
		Success:    success,
	}
	if err := db.Create(&audit).Error; err != nil {
		return nil, err
	}
	return &audit, nil
}

// LastAudit return the latest pass, nil when there was none
func LastAudit(db *gorm.DB) (*Audit, error) {
	var audit Audit
	err := db.Order("update_time DESC").Take(&audit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &audit, nil
}
