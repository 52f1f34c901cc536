package models

import (
	"time"
)

// GameStats holds per-user gameplay counters
type GameStats struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	UserID              uint       `gorm:"uniqueIndex;not null" json:"userId"`
	TotalTaps           int64      `gorm:"not null;default:0" json:"totalTaps"`
	TotalEarned         int64      `gorm:"not null;default:0" json:"totalEarned"`
	LastWheelSpin       *time.Time `json:"lastWheelSpin"`
	WheelSpinsRemaining int        `gorm:"not null;default:1" json:"wheelSpinsRemaining"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for GameStats model
func (GameStats) TableName() string {
	return "game_stats"
}
