package models

import (
	"time"
)

// Upgrade is a purchased upgrade owned by a user. The core only reads
// upgrades to aggregate bonuses; purchasing and leveling happen through
// the admin/shop CRUD outside this service.
type Upgrade struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Level       int       `gorm:"not null;default:1" json:"level"`
	MaxLevel    int       `gorm:"not null;default:10" json:"maxLevel"`
	TapBonus    int       `gorm:"not null;default:0" json:"tapBonus"`
	HourlyBonus int       `gorm:"not null;default:0" json:"hourlyBonus"`
	Cost        int64     `gorm:"not null;default:0" json:"cost"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Upgrade model
func (Upgrade) TableName() string {
	return "upgrades"
}
