package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// WheelReward is one slice of the daily reward wheel. The list order is the
// declared wheel order and matters for cumulative-probability selection.
type WheelReward struct {
	Type        string  `json:"type"`
	Min         int     `json:"min"`
	Max         int     `json:"max"`
	Probability float64 `json:"probability"`
	Icon        string  `json:"icon,omitempty"`
}

// WheelRewardList stores the ordered reward table as a JSON column
type WheelRewardList []WheelReward

func (l WheelRewardList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *WheelRewardList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, l)
}

// GameSettings is the single process-wide configuration row (id = 1).
// It is loaded at startup, cached in memory, and mutated only by admin calls.
type GameSettings struct {
	ID                   uint            `gorm:"primaryKey" json:"-"`
	BaseTapPoints        int             `gorm:"not null;default:125" json:"baseTapPoints"`
	RegenAmount          int             `gorm:"not null;default:1" json:"regenAmount"`
	RegenIntervalSeconds int             `gorm:"not null;default:3" json:"intervalSeconds"`
	WheelRewards         WheelRewardList `gorm:"type:jsonb" json:"wheelRewards"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// TableName specifies the table name for GameSettings model
func (GameSettings) TableName() string {
	return "game_settings"
}

// DefaultWheelRewards returns the reward table seeded on first start
func DefaultWheelRewards() WheelRewardList {
	return WheelRewardList{
		{Type: "coins", Min: 100, Max: 500, Probability: 0.40, Icon: "🪙"},
		{Type: "coins", Min: 500, Max: 1500, Probability: 0.25, Icon: "💰"},
		{Type: "energy", Min: 25, Max: 100, Probability: 0.20, Icon: "⚡"},
		{Type: "coins", Min: 2000, Max: 5000, Probability: 0.10, Icon: "💎"},
		{Type: "character", Min: 0, Max: 0, Probability: 0.05, Icon: "🎁"},
	}
}
