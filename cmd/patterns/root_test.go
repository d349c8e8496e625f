package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func writeCSV(t *testing.T, rows []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(path, []byte("start,end\n"+strings.Join(rows, "\n")+"\n"), 0o600))
	return path
}

func row(day time.Time, fromH, fromM, toH, toM int) string {
	from := day.Add(time.Duration(fromH)*time.Hour + time.Duration(fromM)*time.Minute)
	to := day.Add(time.Duration(toH)*time.Hour + time.Duration(toM)*time.Minute)
	return fmt.Sprintf("%s,%s", from.Format(time.RFC3339), to.Format(time.RFC3339))
}

func runPatterns(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeRegularWeek(t *testing.T) {
	var rows []string
	for i := 0; i < 5; i++ {
		rows = append(rows, row(monday.AddDate(0, 0, i), 9, 0, 17, 0))
	}
	path := writeCSV(t, rows)

	out, err := runPatterns(t, "analyze", path, "--now", "2026-01-10T00:00:00Z", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "Шаблон посещаемости за 30 дн. (5 интервалов)")
	assert.Contains(t, out, "09:00")
	assert.Contains(t, out, "17:00")
	assert.Contains(t, out, "8h0m0s")
	assert.Contains(t, out, "1.00")
	assert.Contains(t, out, "Пн Вт Ср Чт Пт")
	assert.NotContains(t, out, "Слоты перерывов")
}

func TestAnalyzeLunchBreakSlots(t *testing.T) {
	var rows []string
	for i := 0; i < 12; i++ {
		day := monday.AddDate(0, 0, i)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		rows = append(rows, row(day, 9, 0, 12, 0), row(day, 12, 30, 17, 0))
	}
	path := writeCSV(t, rows)

	out, err := runPatterns(t, "analyze", path, "--now", "2026-01-17T00:00:00Z", "--slots", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "12:00-12:30 (30 мин)")
	assert.Contains(t, out, "Слоты перерывов")
	assert.Contains(t, out, "12:00  x10  12:00-12:30  *")
}

func TestAnalyzeTimezone(t *testing.T) {
	path := writeCSV(t, []string{row(monday, 6, 0, 14, 0)})

	out, err := runPatterns(t, "analyze", path, "--now", "2026-01-06T00:00:00Z", "--tz", "Europe/Moscow", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "09:00")
	assert.Contains(t, out, "17:00")
}

func TestAnalyzeInsufficientData(t *testing.T) {
	path := writeCSV(t, []string{row(monday, 9, 0, 17, 0)})

	out, err := runPatterns(t, "analyze", path, "--now", "2026-06-01T00:00:00Z", "--window", "7", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Недостаточно данных")
	assert.Contains(t, out, "7 дн.")
}

func TestAnalyzeErrors(t *testing.T) {
	path := writeCSV(t, []string{row(monday, 9, 0, 17, 0)})

	_, err := runPatterns(t, "analyze", path, "--tz", "Mars/Olympus")
	assert.Error(t, err)

	_, err = runPatterns(t, "analyze", path, "--now", "tomorrow")
	assert.Error(t, err)

	_, err = runPatterns(t, "analyze", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = runPatterns(t, "analyze")
	assert.Error(t, err)
}
