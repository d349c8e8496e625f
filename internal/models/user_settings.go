package models

import "time"

// UserSettings - персональные параметры анализа пользователя.
type UserSettings struct {
	UserID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	WindowDays int       `gorm:"not null;default:30" json:"window_days"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

const (
	MinWindowDays = 1
	MaxWindowDays = 365
)

// IsValid проверяет границы окна анализа
func (s *UserSettings) IsValid() bool {
	return s.UserID != 0 && s.WindowDays >= MinWindowDays && s.WindowDays <= MaxWindowDays
}
