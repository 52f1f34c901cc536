package models

import (
	"time"
)

// User represents a player in the game
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Points      int64     `gorm:"not null;default:0" json:"points"`
	Energy      int       `gorm:"not null;default:100" json:"energy"`
	MaxEnergy   int       `gorm:"not null;default:100" json:"maxEnergy"`
	HourlyRate  int       `gorm:"not null;default:0" json:"hourlyRate"`
	IsAdmin     bool      `gorm:"default:false" json:"isAdmin"`
	NsfwEnabled bool      `gorm:"default:false" json:"nsfwEnabled"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
