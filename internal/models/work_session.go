package models

import (
	"fmt"
	"time"

	"work-pattern-bot/internal/analytics"
)

// WorkSession - одна отметка прихода/ухода. Пара ClockInTime/ClockOutTime
// и есть интервал присутствия, который уходит в анализ.
type WorkSession struct {
	ID     uint      `gorm:"primarykey" json:"id"`
	UserID uint      `gorm:"not null;index:idx_session_user_clock_in" json:"user_id"`
	Date   time.Time `gorm:"type:date;not null;index" json:"date"`

	// Время прихода/ухода
	ClockInTime  time.Time  `gorm:"not null;index:idx_session_user_clock_in" json:"clock_in_time"`
	ClockOutTime *time.Time `json:"clock_out_time"`

	// Рассчитывается при закрытии
	WorkedMinutes int `gorm:"not null;default:0" json:"worked_minutes"`

	Status    string    `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WorkSession) TableName() string {
	return "work_sessions"
}

// Статусы рабочих сессий
const (
	StatusActive    = "active"    // На работе
	StatusCompleted = "completed" // Отрезок закрыт
)

// UpdateCalculatedFields пересчитывает отработанные минуты и статус
func (ws *WorkSession) UpdateCalculatedFields() {
	ws.WorkedMinutes = 0
	if ws.ClockOutTime != nil && !ws.ClockOutTime.IsZero() {
		ws.WorkedMinutes = int(ws.ClockOutTime.Sub(ws.ClockInTime).Minutes())
		ws.Status = StatusCompleted
	}
}

// IsActive проверяет, что пользователь еще на работе
func (ws *WorkSession) IsActive() bool {
	return ws.Status == StatusActive && ws.ClockOutTime == nil
}

// Interval переводит сессию в интервал для анализа.
func (ws *WorkSession) Interval() analytics.AttendanceInterval {
	iv := analytics.AttendanceInterval{Start: ws.ClockInTime}
	if ws.ClockOutTime != nil && !ws.ClockOutTime.IsZero() {
		end := *ws.ClockOutTime
		iv.End = &end
	}
	return iv
}

// Duration возвращает продолжительность работы как строку
func (ws *WorkSession) Duration() string {
	if ws.ClockOutTime == nil || ws.ClockOutTime.IsZero() {
		return "еще на работе"
	}

	duration := ws.ClockOutTime.Sub(ws.ClockInTime)
	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60

	if minutes == 0 {
		return fmt.Sprintf("%dч", hours)
	}
	return fmt.Sprintf("%dч %dм", hours, minutes)
}

// IsValid проверяет валидность данных
func (ws *WorkSession) IsValid() bool {
	if ws.UserID == 0 || ws.Date.IsZero() || ws.ClockInTime.IsZero() {
		return false
	}
	if ws.ClockOutTime != nil && !ws.ClockOutTime.After(ws.ClockInTime) {
		return false
	}
	return ws.Status == StatusActive || ws.Status == StatusCompleted
}
