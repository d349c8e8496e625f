package main

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"work-pattern-bot/internal/analytics"

	"github.com/sirupsen/logrus"
)

const localLayout = "2006-01-02 15:04"

// parseTimestamp принимает RFC3339 или "2006-01-02 15:04" в поясе loc
func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(localLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unsupported time %q", s)
	}
	return t, nil
}

// readHistory читает строки start,end. Пустой end - незакрытый интервал.
// Первая строка, не разобранная как время, считается заголовком.
// Результат упорядочен по Start.
func readHistory(r io.Reader, loc *time.Location) ([]analytics.AttendanceInterval, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var history []analytics.AttendanceInterval
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) == 0 || len(record) > 2 {
			return nil, fmt.Errorf("row %d: expected start,end, got %d fields", row, len(record))
		}

		start, err := parseTimestamp(strings.TrimSpace(record[0]), loc)
		if err != nil {
			if row == 1 {
				logrus.WithField("header", strings.Join(record, ",")).Debug("Skipping CSV header")
				continue
			}
			return nil, fmt.Errorf("row %d: start: %w", row, err)
		}

		iv := analytics.AttendanceInterval{Start: start}
		if len(record) == 2 {
			if raw := strings.TrimSpace(record[1]); raw != "" {
				end, err := parseTimestamp(raw, loc)
				if err != nil {
					return nil, fmt.Errorf("row %d: end: %w", row, err)
				}
				iv.End = &end
			}
		}
		history = append(history, iv)
	}

	slices.SortStableFunc(history, func(a, b analytics.AttendanceInterval) int {
		return cmp.Compare(a.Start.UnixNano(), b.Start.UnixNano())
	})
	return history, nil
}
