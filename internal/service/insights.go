package service

import (
	"time"

	"work-pattern-bot/internal/analytics"
)

type Grade string

const (
	GradeGood    Grade = "good"
	GradeAverage Grade = "average"
	GradePoor    Grade = "poor"
)

const (
	lowConsistency      = 0.7
	latestGoodStart     = 9
	maxRegularBreaks    = 3
	fullWorkWeek        = 5
	longWorkingDay      = 10 * time.Hour
	goodProductivity    = 80.0
	averageProductivity = 60.0
)

// Insights - выводы и рекомендации по шаблону посещаемости.
type Insights struct {
	Recommendations   []string
	ProductivityScore float64
	Grade             Grade
}

// BuildInsights применяет правила рекомендаций и считает индекс продуктивности:
// 60% регулярность, 20% наличие регулярных перерывов, 20% полнота рабочей недели.
func BuildInsights(p analytics.AttendancePattern) Insights {
	var recs []string

	if p.ConsistencyScore < lowConsistency {
		recs = append(recs, "💡 Можно улучшить регулярность времени прихода и ухода")
		if p.AverageStartTime.Hour() > latestGoodStart {
			recs = append(recs, "⏰ Лучше приходить раньше (до 09:00)")
		}
	}

	switch {
	case len(p.BreakPatterns) == 0:
		recs = append(recs,
			"💡 Регулярные перерывы не обнаружены",
			"☕ Регулярные перерывы помогают сохранять продуктивность",
		)
	case len(p.BreakPatterns) > maxRegularBreaks:
		recs = append(recs, "⚠️ Перерывов больше обычного")
	}

	if len(p.ActiveDays) < fullWorkWeek {
		recs = append(recs, "📅 Рабочих дней меньше обычного (меньше 5)")
	}

	if p.AverageDuration > longWorkingDay {
		recs = append(recs, "⚖️ Длинные рабочие дни - стоит подумать о балансе работы и отдыха")
	}

	breaks := 0.0
	if len(p.BreakPatterns) > 0 {
		breaks = 1
	}
	days := min(float64(len(p.ActiveDays))/fullWorkWeek, 1)
	score := (p.ConsistencyScore*0.6 + breaks*0.2 + days*0.2) * 100

	grade := GradePoor
	switch {
	case score >= goodProductivity:
		grade = GradeGood
	case score >= averageProductivity:
		grade = GradeAverage
	}

	return Insights{
		Recommendations:   recs,
		ProductivityScore: score,
		Grade:             grade,
	}
}
