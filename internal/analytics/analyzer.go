package analytics

import (
	"time"
)

// DefaultWindowDays - окно анализа по умолчанию.
const DefaultWindowDays = 30

// Analyzer вычисляет AttendancePattern. Хранит только часовой пояс, в котором
// определяются время суток и день недели, поэтому безопасен для конкурентного использования.
type Analyzer struct {
	location *time.Location
}

// Option настраивает Analyzer
type Option func(*Analyzer)

// WithLocation задает часовой пояс анализа (по умолчанию UTC)
func WithLocation(loc *time.Location) Option {
	return func(a *Analyzer) {
		if loc != nil {
			a.location = loc
		}
	}
}

// NewAnalyzer создает анализатор
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{location: time.UTC}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Location возвращает часовой пояс анализатора
func (a *Analyzer) Location() *time.Location {
	return a.location
}

// Analyze анализирует историю в UTC.
func Analyze(history []AttendanceInterval, windowDays int, now time.Time) (AttendancePattern, bool) {
	return NewAnalyzer().Analyze(history, windowDays, now)
}

// Analyze оставляет интервалы, начавшиеся не раньше now - windowDays, и строит по ним
// AttendancePattern. Возвращает false, если в окне нет ни одного закрытого интервала.
// history должна быть упорядочена по Start; она не изменяется и не сохраняется.
func (a *Analyzer) Analyze(history []AttendanceInterval, windowDays int, now time.Time) (AttendancePattern, bool) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	recent := Window(history, windowDays, now)
	if len(recent) == 0 {
		return AttendancePattern{}, false
	}

	var (
		starts, ends []TimeOfDay
		total        time.Duration
		reference    time.Time
		active       [7]bool
	)
	for _, iv := range recent {
		if !iv.Closed() {
			continue
		}
		start := iv.Start.In(a.location)
		end := iv.End.In(a.location)
		if len(starts) == 0 {
			reference = start
		}

		starts = append(starts, TimeOfDayOf(start))
		ends = append(ends, TimeOfDayOf(end))
		total += end.Sub(start)
		active[Weekday(start)] = true
	}

	if len(starts) == 0 {
		return AttendancePattern{}, false
	}

	days := make([]int, 0, 7)
	for wd, ok := range active {
		if ok {
			days = append(days, wd)
		}
	}

	return AttendancePattern{
		AverageStartTime: CircularMean(starts).On(reference),
		AverageEndTime:   CircularMean(ends).On(reference),
		AverageDuration:  total / time.Duration(len(starts)),
		ConsistencyScore: ConsistencyScore(starts, ends),
		BreakPatterns:    a.DetectBreakPatterns(recent),
		ActiveDays:       days,
		SampleSize:       len(starts),
	}, true
}

// Window возвращает интервалы с Start >= now - windowDays суток в исходном порядке.
func Window(history []AttendanceInterval, windowDays int, now time.Time) []AttendanceInterval {
	cutoff := Cutoff(windowDays, now)
	recent := make([]AttendanceInterval, 0, len(history))
	for _, iv := range history {
		if !iv.Start.Before(cutoff) {
			recent = append(recent, iv)
		}
	}
	return recent
}

// Cutoff - нижняя граница окна анализа
func Cutoff(windowDays int, now time.Time) time.Time {
	return now.Add(-time.Duration(windowDays) * 24 * time.Hour)
}
