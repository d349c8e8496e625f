package analytics

import (
	"cmp"
	"slices"
	"time"
)

const (
	// MinBreakDuration и MaxBreakDuration ограничивают длину правдоподобного перерыва.
	MinBreakDuration = 10 * time.Minute
	MaxBreakDuration = 2 * time.Hour
)

// minOccurrences - сколько раз перерыв должен повториться в одном кластере,
// чтобы считаться закономерностью.
func minOccurrences(totalIntervals int) int {
	return max(2, min(3, totalIntervals/15))
}

// breakCandidates возвращает промежутки между соседними интервалами длиной
// от MinBreakDuration до MaxBreakDuration. Некорректные пары пропускаются.
func breakCandidates(intervals []AttendanceInterval) []BreakCandidate {
	var out []BreakCandidate
	for i := 0; i+1 < len(intervals); i++ {
		cur, next := intervals[i], intervals[i+1]
		// перевернутый интервал с любой стороны делает пару недействительной
		if !cur.Closed() || next.Start.IsZero() || (next.End != nil && !next.Closed()) {
			continue
		}

		c := BreakCandidate{Start: *cur.End, End: next.Start}
		if !c.Valid() {
			continue
		}
		if d := c.Duration(); d < MinBreakDuration || d > MaxBreakDuration {
			continue
		}
		out = append(out, c)
	}
	return out
}

// DetectBreakPatterns ищет регулярные перерывы в часовом поясе UTC.
func DetectBreakPatterns(intervals []AttendanceInterval) []BreakPattern {
	return NewAnalyzer().DetectBreakPatterns(intervals)
}

// DetectBreakPatterns группирует перерывы по дню недели и для каждой достаточно
// частой группы возвращает средние начало и конец. Результат отсортирован по началу.
func (a *Analyzer) DetectBreakPatterns(intervals []AttendanceInterval) []BreakPattern {
	candidates := breakCandidates(intervals)
	if len(candidates) == 0 {
		return []BreakPattern{}
	}

	var byWeekday [7][]BreakCandidate
	for _, c := range candidates {
		wd := Weekday(c.Start.In(a.location))
		byWeekday[wd] = append(byWeekday[wd], c)
	}

	threshold := minOccurrences(len(intervals))
	patterns := []BreakPattern{}
	for _, bucket := range byWeekday {
		if len(bucket) < threshold {
			continue
		}
		patterns = append(patterns, a.representative(bucket))
	}

	slices.SortFunc(patterns, func(x, y BreakPattern) int {
		if c := cmp.Compare(x.Start, y.Start); c != 0 {
			return c
		}
		return cmp.Compare(x.End, y.End)
	})
	// одинаковый перерыв в разные дни недели дает одинаковых представителей
	return slices.Compact(patterns)
}

// DetectBreakSlots - диагностическая кластеризация по получасовым слотам начала
// перерыва. Возвращает все слоты, отсортированные по времени; в AttendancePattern
// не попадает.
func (a *Analyzer) DetectBreakSlots(intervals []AttendanceInterval) []SlotCluster {
	bySlot := make(map[SlotKey][]BreakCandidate)
	for _, c := range breakCandidates(intervals) {
		key := SlotKeyOf(c.Start.In(a.location))
		bySlot[key] = append(bySlot[key], c)
	}

	clusters := make([]SlotCluster, 0, len(bySlot))
	for key, bucket := range bySlot {
		clusters = append(clusters, SlotCluster{
			Key:     key,
			Count:   len(bucket),
			Pattern: a.representative(bucket),
		})
	}

	slices.SortFunc(clusters, func(x, y SlotCluster) int {
		if c := cmp.Compare(x.Key.Hour, y.Key.Hour); c != 0 {
			return c
		}
		return cmp.Compare(x.Key.Half, y.Key.Half)
	})
	return clusters
}

// SignificantSlots возвращает слоты, прошедшие тот же порог повторяемости,
// что и кластеры по дням недели.
func SignificantSlots(clusters []SlotCluster, totalIntervals int) []SlotCluster {
	threshold := minOccurrences(totalIntervals)
	var out []SlotCluster
	for _, c := range clusters {
		if c.Count >= threshold {
			out = append(out, c)
		}
	}
	return out
}

func (a *Analyzer) representative(bucket []BreakCandidate) BreakPattern {
	starts := make([]TimeOfDay, len(bucket))
	ends := make([]TimeOfDay, len(bucket))
	for i, c := range bucket {
		starts[i] = TimeOfDayOf(c.Start.In(a.location))
		ends[i] = TimeOfDayOf(c.End.In(a.location))
	}
	return BreakPattern{Start: CircularMean(starts), End: CircularMean(ends)}
}
