package analytics

import (
	"math"
	"slices"
)

const (
	// maxSpreadVariance нормирует дисперсию в BoundedVariance: (12ч)² в секундах².
	maxSpreadVariance = float64(12*3600) * float64(12*3600)
	iqrFence          = 1.5
	// ниже этой длины результирующего вектора угловое среднее не определено
	minResultantLength = 1e-9
)

// CircularMean возвращает арифметическое среднее секунд от полуночи.
// Это не угловое среднее: значения по разные стороны полуночи усредняются к полудню,
// поэтому вызывающая сторона не должна смешивать такие значения.
func CircularMean(values []TimeOfDay) TimeOfDay {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return TimeOfDay(sum / float64(len(values)))
}

// BoundedVariance возвращает разброс времени суток в диапазоне [0, 1]:
// дисперсия после переноса через полночь и IQR-фильтрации, деленная на (12ч)².
// Опорная точка переноса - угловое среднее, а не арифметическое: при разбросе
// около 12ч результат отличается от переноса относительно CircularMean
// (например, {09:00, 09:00, 21:30} дает 0.204 вместо 0.241).
func BoundedVariance(values []TimeOfDay) float64 {
	if len(values) == 0 {
		return 0
	}
	return clamp01(filteredVariance(values) / maxSpreadVariance)
}

// filteredVariance возвращает дисперсию в секундах² после переноса значений
// к опорной точке и отсечения выбросов по 1.5·IQR.
func filteredVariance(values []TimeOfDay) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	anchor := wrapAnchor(values)
	wrapped := make([]float64, n)
	for i, v := range values {
		s := float64(v)
		switch {
		case s-anchor > secondsPerHalf:
			s -= secondsPerDay
		case anchor-s > secondsPerHalf:
			s += secondsPerDay
		}
		wrapped[i] = s
	}

	sorted := slices.Clone(wrapped)
	slices.Sort(sorted)
	q1 := sorted[n/4]
	q3 := sorted[3*n/4]
	iqr := q3 - q1
	lower := q1 - iqrFence*iqr
	upper := q3 + iqrFence*iqr

	kept := make([]float64, 0, n)
	for _, s := range wrapped {
		if s >= lower && s <= upper {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		kept = wrapped
	}

	return variance(kept)
}

// wrapAnchor - точка, к которой переносятся значения дальше 12ч от нее.
// Берется угловое среднее; если значения взаимно гасятся на окружности,
// используется обычное среднее.
func wrapAnchor(values []TimeOfDay) float64 {
	var sinSum, cosSum, sum float64
	for _, v := range values {
		theta := 2 * math.Pi * float64(v) / secondsPerDay
		sinSum += math.Sin(theta)
		cosSum += math.Cos(theta)
		sum += float64(v)
	}

	n := float64(len(values))
	if math.Hypot(sinSum, cosSum)/n < minResultantLength {
		return sum / n
	}

	angle := math.Atan2(sinSum, cosSum)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle * secondsPerDay / (2 * math.Pi)
}

func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		sq += (x - mean) * (x - mean)
	}
	return sq / float64(len(xs))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
