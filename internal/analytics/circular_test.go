package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tod(hh, mm int) TimeOfDay {
	return TimeOfDay(hh*3600 + mm*60)
}

func TestTimeOfDayOf(t *testing.T) {
	ts := time.Date(2026, 1, 5, 23, 58, 30, 999, time.UTC)
	assert.Equal(t, TimeOfDay(86310), TimeOfDayOf(ts))
	assert.Equal(t, "23:58", TimeOfDayOf(ts).String())
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC), tod(12, 30).On(time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)))
}

func TestWeekday(t *testing.T) {
	monday := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, Weekday(monday))
	assert.Equal(t, 4, Weekday(monday.AddDate(0, 0, 4)))
	assert.Equal(t, 6, Weekday(monday.AddDate(0, 0, 6)))
}

func TestCircularMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []TimeOfDay
		expected TimeOfDay
	}{
		{name: "empty", values: nil, expected: 0},
		{name: "single", values: []TimeOfDay{tod(9, 0)}, expected: tod(9, 0)},
		{name: "two", values: []TimeOfDay{tod(9, 0), tod(10, 0)}, expected: tod(9, 30)},
		// арифметическое среднее: значения через полночь уходят к полудню
		{name: "across midnight", values: []TimeOfDay{tod(23, 0), tod(1, 0)}, expected: tod(12, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, float64(tt.expected), float64(CircularMean(tt.values)), 1e-9)
		})
	}
}

func TestBoundedVariance(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, BoundedVariance(nil))
	})

	t.Run("identical values", func(t *testing.T) {
		assert.InDelta(t, 0.0, BoundedVariance([]TimeOfDay{tod(9, 0), tod(9, 0), tod(9, 0)}), 1e-12)
	})

	t.Run("wraps across midnight", func(t *testing.T) {
		v := BoundedVariance([]TimeOfDay{tod(23, 58), tod(0, 2)})
		assert.InDelta(t, 0.0, v, 1e-6)
	})

	t.Run("wraps asymmetric cluster", func(t *testing.T) {
		v := BoundedVariance([]TimeOfDay{tod(23, 50), tod(23, 55), tod(0, 5), tod(0, 10)})
		assert.InDelta(t, 0.0, v, 1e-3)
	})

	t.Run("excludes far outlier", func(t *testing.T) {
		clustered := []TimeOfDay{
			tod(8, 55), tod(8, 56), tod(8, 58), tod(8, 59), tod(9, 0),
			tod(9, 1), tod(9, 2), tod(9, 4), tod(9, 5),
		}
		withOutlier := append(append([]TimeOfDay{}, clustered...), tod(15, 0))

		want := BoundedVariance(clustered)
		got := BoundedVariance(withOutlier)
		assert.InDelta(t, want, got, 1e-12)

		// без фильтра выброс увеличил бы разброс на порядки
		naive := variance(toSeconds(withOutlier)) / maxSpreadVariance
		assert.Greater(t, naive, got*100)
	})

	t.Run("wraps around angular mean near twelve hours", func(t *testing.T) {
		// угловое среднее около 08:30, поэтому 21:30 переносится в -02:30;
		// относительно арифметического среднего 13:10 переноса бы не было
		values := []TimeOfDay{tod(9, 0), tod(9, 0), tod(21, 30)}
		assert.InDelta(t, 29.0+7.0/18.0, BoundedVariance(values)*144, 1e-6)

		unwrapped := variance(toSeconds(values)) / maxSpreadVariance
		assert.InDelta(t, 34.0+13.0/18.0, unwrapped*144, 1e-6)
	})

	t.Run("bounded for wide spread", func(t *testing.T) {
		v := BoundedVariance([]TimeOfDay{tod(0, 0), tod(6, 0), tod(12, 0), tod(18, 0)})
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	})
}

func TestBoundedVarianceDoesNotMutateInput(t *testing.T) {
	values := []TimeOfDay{tod(17, 0), tod(8, 0), tod(23, 59), tod(0, 1)}
	before := append([]TimeOfDay{}, values...)
	_ = BoundedVariance(values)
	assert.Equal(t, before, values)
}

func FuzzBoundedVariance(f *testing.F) {
	f.Add(uint32(0), uint32(43200), uint32(86399))
	f.Add(uint32(86280), uint32(120), uint32(120))
	f.Add(uint32(32400), uint32(32400), uint32(54000))

	f.Fuzz(func(t *testing.T, a, b, c uint32) {
		values := []TimeOfDay{
			TimeOfDay(a % secondsPerDay),
			TimeOfDay(b % secondsPerDay),
			TimeOfDay(c % secondsPerDay),
		}
		v := BoundedVariance(values)
		if v < 0 || v > 1 {
			t.Fatalf("BoundedVariance(%v) = %v, want within [0, 1]", values, v)
		}
	})
}

func toSeconds(values []TimeOfDay) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
