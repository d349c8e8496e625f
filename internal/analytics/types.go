// Package analytics выводит статистику рабочего ритма по истории отметок прихода/ухода:
// типичное время начала и конца, среднюю длительность, оценку регулярности,
// повторяющиеся перерывы и дни активности.
//
// Пакет не хранит состояния и не выполняет ввода-вывода: каждый вызов Analyze
// зависит только от переданной истории, окна и момента now.
package analytics

import (
	"fmt"
	"time"
)

const (
	secondsPerDay  = 86400
	secondsPerHalf = 43200
)

// AttendanceInterval - один отрезок присутствия. End == nil означает, что человек
// все еще на смене.
type AttendanceInterval struct {
	Start time.Time
	End   *time.Time
}

// Closed сообщает, что интервал завершен и корректен (End > Start).
func (iv AttendanceInterval) Closed() bool {
	return iv.End != nil && iv.End.After(iv.Start)
}

// Duration возвращает длительность закрытого интервала, иначе 0
func (iv AttendanceInterval) Duration() time.Duration {
	if !iv.Closed() {
		return 0
	}
	return iv.End.Sub(iv.Start)
}

// TimeOfDay - секунды от полуночи в диапазоне [0, 86400).
type TimeOfDay float64

// TimeOfDayOf отбрасывает дату (и доли секунды) у момента времени.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// Seconds возвращает значение в секундах
func (d TimeOfDay) Seconds() float64 {
	return float64(d)
}

// Duration возвращает смещение от полуночи
func (d TimeOfDay) Duration() time.Duration {
	return time.Duration(float64(d) * float64(time.Second))
}

// On переносит время суток на календарную дату date (в ее часовом поясе).
func (d TimeOfDay) On(date time.Time) time.Time {
	y, m, day := date.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, date.Location()).Add(d.Duration())
}

// String форматирует время как "15:04"
func (d TimeOfDay) String() string {
	total := int(float64(d)+0.5) % secondsPerDay
	return fmt.Sprintf("%02d:%02d", total/3600, total%3600/60)
}

// Weekday возвращает номер дня недели: понедельник = 0, ..., воскресенье = 6.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// BreakCandidate - промежуток между двумя соседними интервалами.
type BreakCandidate struct {
	Start time.Time
	End   time.Time
}

// Duration возвращает длину промежутка
func (c BreakCandidate) Duration() time.Duration {
	return c.End.Sub(c.Start)
}

// Valid: конец позже начала и промежуток не длиннее MaxBreakDuration.
func (c BreakCandidate) Valid() bool {
	d := c.Duration()
	return d > 0 && d <= MaxBreakDuration
}

// BreakPattern - типичный перерыв, представленный средними началом и концом.
type BreakPattern struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Duration возвращает длительность перерыва с учетом перехода через полночь
func (b BreakPattern) Duration() time.Duration {
	d := b.End.Duration() - b.Start.Duration()
	if d < 0 {
		d += 24 * time.Hour
	}
	return d
}

// SlotKey - получасовой слот: час и номер половины часа (0 или 1).
type SlotKey struct {
	Hour int
	Half int
}

// SlotKeyOf возвращает слот, в который попадает момент t
func SlotKeyOf(t time.Time) SlotKey {
	return SlotKey{Hour: t.Hour(), Half: t.Minute() / 30}
}

// String форматирует слот как "12:30"
func (k SlotKey) String() string {
	return fmt.Sprintf("%02d:%02d", k.Hour, k.Half*30)
}

// SlotCluster - перерывы, начавшиеся в одном получасовом слоте.
type SlotCluster struct {
	Key     SlotKey
	Count   int
	Pattern BreakPattern
}

// AttendancePattern - итог анализа. Создается один раз на вызов и не изменяется.
type AttendancePattern struct {
	AverageStartTime time.Time
	AverageEndTime   time.Time
	AverageDuration  time.Duration
	ConsistencyScore float64
	BreakPatterns    []BreakPattern
	ActiveDays       []int
	// SampleSize - число закрытых интервалов, попавших в окно.
	SampleSize int
}
