package main

import (
	"fmt"
	"io"
	"strings"

	"work-pattern-bot/internal/analytics"
	"work-pattern-bot/internal/service"

	"github.com/fatih/color"
)

var weekdayNames = [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgHiBlack)
	goodColor   = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	badColor    = color.New(color.FgRed)
)

func gradeColor(g service.Grade) *color.Color {
	switch g {
	case service.GradeGood:
		return goodColor
	case service.GradeAverage:
		return warnColor
	default:
		return badColor
	}
}

func scoreColor(score float64) *color.Color {
	switch {
	case score >= 0.8:
		return goodColor
	case score >= 0.5:
		return warnColor
	default:
		return badColor
	}
}

func printInsufficient(w io.Writer, window int) {
	warnColor.Fprintf(w, "Недостаточно данных: нет закрытых интервалов за последние %d дн.\n", window)
}

func printPattern(w io.Writer, p analytics.AttendancePattern, window int) {
	insights := service.BuildInsights(p)

	headerColor.Fprintf(w, "Шаблон посещаемости за %d дн. (%d интервалов)\n", window, p.SampleSize)

	row := func(label, value string) {
		labelColor.Fprintf(w, "  %-22s", label)
		fmt.Fprintln(w, value)
	}
	row("Средний приход", p.AverageStartTime.Format("15:04"))
	row("Средний уход", p.AverageEndTime.Format("15:04"))
	row("Продолжительность", p.AverageDuration.String())
	row("Регулярность", scoreColor(p.ConsistencyScore).Sprintf("%.2f", p.ConsistencyScore))

	days := make([]string, 0, len(p.ActiveDays))
	for _, d := range p.ActiveDays {
		days = append(days, weekdayNames[d])
	}
	row("Активные дни", strings.Join(days, " "))

	if len(p.BreakPatterns) == 0 {
		row("Перерывы", "-")
	}
	for i, bp := range p.BreakPatterns {
		label := ""
		if i == 0 {
			label = "Перерывы"
		}
		row(label, fmt.Sprintf("%s-%s (%d мин)", bp.Start, bp.End, int(bp.Duration().Minutes())))
	}

	row("Продуктивность", gradeColor(insights.Grade).Sprintf("%.0f (%s)", insights.ProductivityScore, insights.Grade))

	for _, rec := range insights.Recommendations {
		fmt.Fprintf(w, "  %s\n", rec)
	}
}

// printSlots печатает диагностику по получасовым слотам; значимые слоты выделены
func printSlots(w io.Writer, clusters []analytics.SlotCluster, total int) {
	headerColor.Fprintln(w, "Слоты перерывов")
	if len(clusters) == 0 {
		fmt.Fprintln(w, "  нет перерывов")
		return
	}

	significant := make(map[analytics.SlotKey]bool)
	for _, c := range analytics.SignificantSlots(clusters, total) {
		significant[c.Key] = true
	}

	for _, c := range clusters {
		line := fmt.Sprintf("  %s  x%d  %s-%s", c.Key, c.Count, c.Pattern.Start, c.Pattern.End)
		if significant[c.Key] {
			goodColor.Fprintln(w, line+"  *")
			continue
		}
		fmt.Fprintln(w, line)
	}
}
