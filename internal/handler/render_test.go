package handler

import (
	"fmt"
	"testing"
	"time"

	"work-pattern-bot/internal/analytics"
	"work-pattern-bot/internal/models"
	"work-pattern-bot/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func TestConsistencyBar(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{score: 0, expected: "░░░░░░░░░░"},
		{score: 0.44, expected: "████░░░░░░"},
		{score: 0.45, expected: "█████░░░░░"},
		{score: 1, expected: "██████████"},
		{score: 1.3, expected: "██████████"},
		{score: -0.2, expected: "░░░░░░░░░░"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, consistencyBar(tt.score), "score=%v", tt.score)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "8ч", formatDuration(8*time.Hour))
	assert.Equal(t, "3ч 45м", formatDuration(3*time.Hour+45*time.Minute))
	assert.Equal(t, "0ч 5м", formatDuration(5*time.Minute))
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "нет", formatDays(nil))
	assert.Equal(t, "Пн, Ср, Вс", formatDays([]int{0, 2, 6}))
}

func TestFormatPattern(t *testing.T) {
	pattern := analytics.AttendancePattern{
		AverageStartTime: day.Add(9 * time.Hour),
		AverageEndTime:   day.Add(17*time.Hour + 30*time.Minute),
		AverageDuration:  3*time.Hour + 45*time.Minute,
		ConsistencyScore: 0.92,
		BreakPatterns:    []analytics.BreakPattern{{Start: 12 * 3600, End: 12*3600 + 1800}},
		ActiveDays:       []int{0, 1, 2, 3, 4},
		SampleSize:       20,
	}

	text := formatPattern(pattern, service.BuildInsights(pattern), 30)

	assert.Contains(t, text, "за 30 дн.")
	assert.Contains(t, text, "Средний приход: 09:00")
	assert.Contains(t, text, "Средний уход: 17:30")
	assert.Contains(t, text, "Средняя продолжительность: 3ч 45м")
	assert.Contains(t, text, "█████████░ 92%")
	assert.Contains(t, text, "Пн, Вт, Ср, Чт, Пт")
	assert.Contains(t, text, "• 12:00-12:30 (30 мин)")
	assert.Contains(t, text, "Отрезков в выборке: 20")
	assert.Contains(t, text, "(хорошо)")
	assert.NotContains(t, text, "Рекомендации")
}

func TestFormatPatternWithRecommendations(t *testing.T) {
	pattern := analytics.AttendancePattern{
		AverageStartTime: day.Add(11 * time.Hour),
		AverageEndTime:   day.Add(19 * time.Hour),
		AverageDuration:  8 * time.Hour,
		ConsistencyScore: 0.3,
		ActiveDays:       []int{5},
		SampleSize:       1,
	}

	text := formatPattern(pattern, service.BuildInsights(pattern), 7)
	assert.Contains(t, text, "Регулярные перерывы: не обнаружены")
	assert.Contains(t, text, "💡 Рекомендации:")
	assert.Contains(t, text, "(низко)")
	assert.Contains(t, text, "Сб")
}

func TestFormatTeam(t *testing.T) {
	assert.Equal(t, "👥 Пользователей пока нет", formatTeam(nil))

	entries := []service.TeamEntry{
		{
			User: &models.User{FirstName: "Иван", LastName: "Петров"},
			OK:   true,
			Pattern: analytics.AttendancePattern{
				AverageStartTime: day.Add(9 * time.Hour),
				AverageEndTime:   day.Add(18 * time.Hour),
				ConsistencyScore: 1,
			},
		},
		{User: &models.User{Username: "newbie"}, WindowDays: 30},
	}

	text := formatTeam(entries)
	assert.Contains(t, text, "1. Иван Петров: ██████████ 100%, 09:00-18:00")
	assert.Contains(t, text, "• @newbie: недостаточно данных (окно 30 дн.)")
}

func TestFormatOpenSessions(t *testing.T) {
	assert.Equal(t, "🟢 Сейчас никто не работает", formatOpenSessions(nil, nil, day, time.UTC))

	moscow := time.FixedZone("MSK", 3*3600)
	sessions := []*models.WorkSession{
		{UserID: 1, ClockInTime: day.Add(6 * time.Hour), Status: models.StatusActive},
		{UserID: 2, ClockInTime: day.Add(7*time.Hour + 30*time.Minute), Status: models.StatusActive},
	}
	users := map[uint]*models.User{1: {ID: 1, FirstName: "Анна"}}

	text := formatOpenSessions(sessions, users, day.Add(8*time.Hour), moscow)
	assert.Contains(t, text, "Сейчас на работе: 2")
	assert.Contains(t, text, "• Анна: с 09:00 (2ч)")
	assert.Contains(t, text, "• пользователь #2: с 10:30 (0ч 30м)")
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, "📭 История пуста", formatHistory(nil, time.UTC))

	out := day.Add(17 * time.Hour)
	sessions := []*models.WorkSession{
		{ClockInTime: day.AddDate(0, 0, 1).Add(9 * time.Hour), Status: models.StatusActive},
		{ClockInTime: day.Add(9 * time.Hour), ClockOutTime: &out, Status: models.StatusCompleted},
	}

	text := formatHistory(sessions, time.UTC)
	assert.Contains(t, text, "Последние отрезки (2)")
	assert.Contains(t, text, "• 06.01 09:00 - ... (в процессе)")
	assert.Contains(t, text, "• 05.01 09:00 - 17:00 (8ч)")
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{err: service.ErrUserNotFound, expected: "/start"},
		{err: fmt.Errorf("wrap: %w", service.ErrActiveSession), expected: "/out"},
		{err: service.ErrNoActiveSession, expected: "/in"},
		{err: service.ErrClockOutBeforeIn, expected: "позже"},
		{err: service.ErrInvalidWindow, expected: "от 1 до 365 дней"},
		{err: service.ErrEmptyName, expected: "username"},
		{err: fmt.Errorf("disk full"), expected: "❌ Ошибка: disk full"},
	}

	for _, tt := range tests {
		assert.Contains(t, errorText(tt.err), tt.expected)
	}
}

func TestParseHistoryLimit(t *testing.T) {
	n, err := parseHistoryLimit("")
	require.NoError(t, err)
	assert.Equal(t, defaultHistoryLimit, n)

	n, err = parseHistoryLimit(" 5 ")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = parseHistoryLimit("1000")
	require.NoError(t, err)
	assert.Equal(t, maxHistoryLimit, n)

	for _, bad := range []string{"0", "-3", "abc"} {
		_, err := parseHistoryLimit(bad)
		assert.Error(t, err, bad)
	}
}
