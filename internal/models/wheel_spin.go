package models

import (
	"time"

	"github.com/google/uuid"
)

// WheelSpin is the audit record written on every successful wheel spin
type WheelSpin struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"userId"`
	RewardType string    `gorm:"size:50;not null" json:"rewardType"`
	Amount     int       `gorm:"not null;default:0" json:"amount"`
	Descriptor string    `gorm:"size:100;not null" json:"descriptor"` // "{type}:{amount}"
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name for WheelSpin model
func (WheelSpin) TableName() string {
	return "wheel_spins"
}
