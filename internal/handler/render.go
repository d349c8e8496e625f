package handler

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"work-pattern-bot/internal/analytics"
	"work-pattern-bot/internal/models"
	"work-pattern-bot/internal/service"
)

const barCells = 10

var weekdayNames = [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

var gradeNames = map[service.Grade]string{
	service.GradeGood:    "хорошо",
	service.GradeAverage: "средне",
	service.GradePoor:    "низко",
}

// consistencyBar рисует шкалу из 10 ячеек
func consistencyBar(score float64) string {
	filled := int(math.Round(score * barCells))
	filled = max(0, min(barCells, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if minutes == 0 {
		return fmt.Sprintf("%dч", hours)
	}
	return fmt.Sprintf("%dч %dм", hours, minutes)
}

func formatDays(days []int) string {
	if len(days) == 0 {
		return "нет"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < len(weekdayNames) {
			names = append(names, weekdayNames[d])
		}
	}
	return strings.Join(names, ", ")
}

// formatPattern - ответ на /analyze
func formatPattern(p analytics.AttendancePattern, insights service.Insights, windowDays int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 Шаблон посещаемости за %d дн.\n\n", windowDays)
	fmt.Fprintf(&b, "🕘 Средний приход: %s\n", p.AverageStartTime.Format("15:04"))
	fmt.Fprintf(&b, "🕔 Средний уход: %s\n", p.AverageEndTime.Format("15:04"))
	fmt.Fprintf(&b, "⏱ Средняя продолжительность: %s\n", formatDuration(p.AverageDuration))
	fmt.Fprintf(&b, "🎯 Регулярность: %s %.0f%%\n", consistencyBar(p.ConsistencyScore), p.ConsistencyScore*100)
	fmt.Fprintf(&b, "📅 Активные дни: %s\n", formatDays(p.ActiveDays))

	if len(p.BreakPatterns) == 0 {
		b.WriteString("☕ Регулярные перерывы: не обнаружены\n")
	} else {
		b.WriteString("☕ Регулярные перерывы:\n")
		for _, bp := range p.BreakPatterns {
			fmt.Fprintf(&b, "• %s-%s (%d мин)\n", bp.Start, bp.End, int(bp.Duration().Minutes()))
		}
	}

	fmt.Fprintf(&b, "\n📈 Индекс продуктивности: %.0f (%s)\n", insights.ProductivityScore, gradeNames[insights.Grade])
	fmt.Fprintf(&b, "🧾 Отрезков в выборке: %d", p.SampleSize)

	if len(insights.Recommendations) > 0 {
		b.WriteString("\n\n💡 Рекомендации:\n")
		b.WriteString(strings.Join(insights.Recommendations, "\n"))
	}

	return b.String()
}

func formatInsufficient(windowDays int) string {
	return fmt.Sprintf(`📊 Недостаточно данных за последние %d дн.

Нужен хотя бы один завершенный рабочий отрезок.
Отмечайте приход /in и уход /out, либо увеличьте окно командой /window`, windowDays)
}

func formatTeam(entries []service.TeamEntry) string {
	if len(entries) == 0 {
		return "👥 Пользователей пока нет"
	}

	var b strings.Builder
	b.WriteString("👥 Регулярность команды:\n")
	n := 0
	for _, e := range entries {
		if !e.OK {
			fmt.Fprintf(&b, "\n• %s: недостаточно данных (окно %d дн.)", e.User.DisplayName(), e.WindowDays)
			continue
		}
		n++
		fmt.Fprintf(&b, "\n%d. %s: %s %.0f%%, %s-%s",
			n,
			e.User.DisplayName(),
			consistencyBar(e.Pattern.ConsistencyScore),
			e.Pattern.ConsistencyScore*100,
			e.Pattern.AverageStartTime.Format("15:04"),
			e.Pattern.AverageEndTime.Format("15:04"),
		)
	}
	return b.String()
}

// formatOpenSessions - кто сейчас на работе
func formatOpenSessions(sessions []*models.WorkSession, users map[uint]*models.User, now time.Time, loc *time.Location) string {
	if len(sessions) == 0 {
		return "🟢 Сейчас никто не работает"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🟢 Сейчас на работе: %d\n", len(sessions))
	for _, s := range sessions {
		name := fmt.Sprintf("пользователь #%d", s.UserID)
		if u, ok := users[s.UserID]; ok {
			name = u.DisplayName()
		}
		fmt.Fprintf(&b, "\n• %s: с %s (%s)",
			name,
			s.ClockInTime.In(loc).Format("15:04"),
			formatDuration(now.Sub(s.ClockInTime).Truncate(time.Minute)),
		)
	}
	return b.String()
}

func formatHistory(sessions []*models.WorkSession, loc *time.Location) string {
	if len(sessions) == 0 {
		return "📭 История пуста"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📜 Последние отрезки (%d):\n", len(sessions))
	for _, s := range sessions {
		in := s.ClockInTime.In(loc)
		if s.IsActive() {
			fmt.Fprintf(&b, "\n• %s %s - ... (в процессе)", in.Format("02.01"), in.Format("15:04"))
			continue
		}
		fmt.Fprintf(&b, "\n• %s %s - %s (%s)",
			in.Format("02.01"),
			in.Format("15:04"),
			s.ClockOutTime.In(loc).Format("15:04"),
			s.Duration(),
		)
	}
	return b.String()
}

// errorText переводит ошибку сервиса в ответ пользователю
func errorText(err error) string {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return "❌ Профиль не найден.\nИспользуйте /start чтобы зарегистрироваться."
	case errors.Is(err, service.ErrActiveSession):
		return "❌ Рабочий день уже начат. Завершите его командой /out"
	case errors.Is(err, service.ErrNoActiveSession):
		return "❌ Нет активной рабочей сессии. Начните ее командой /in"
	case errors.Is(err, service.ErrClockOutBeforeIn):
		return "❌ Время ухода должно быть позже времени прихода"
	case errors.Is(err, service.ErrInvalidWindow):
		return fmt.Sprintf("❌ Окно анализа должно быть от %d до %d дней", models.MinWindowDays, models.MaxWindowDays)
	case errors.Is(err, service.ErrEmptyName):
		return "❌ Не удалось определить имя. Укажите имя или username в профиле Telegram"
	default:
		return "❌ Ошибка: " + err.Error()
	}
}
