package main

import (
	"fmt"
	"os"
	"time"

	"work-pattern-bot/internal/analytics"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	window  int
	now     string
	tz      string
	slots   bool
	noColor bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "patterns",
		Short:         "Анализ шаблонов посещаемости",
		Long:          `patterns строит шаблон посещаемости (среднее время прихода и ухода, регулярность, перерывы) по истории из CSV.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.AddCommand(newAnalyzeCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze FILE.csv",
		Short: "Построить шаблон посещаемости по CSV",
		Long: `Читает интервалы посещаемости из CSV и печатает шаблон.

Формат строки: start,end (RFC3339 или "2006-01-02 15:04" в поясе --tz).
Пустой end означает незакрытый интервал. Строка заголовка необязательна.

Примеры:
  patterns analyze history.csv
  patterns analyze history.csv --window 60 --tz Europe/Moscow
  patterns analyze history.csv --now 2026-02-01T00:00:00Z --slots`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.window, "window", "w", analytics.DefaultWindowDays, "окно анализа в днях")
	cmd.Flags().StringVar(&opts.now, "now", "", "момент анализа в RFC3339 (по умолчанию текущее время)")
	cmd.Flags().StringVar(&opts.tz, "tz", "UTC", "часовой пояс для времени суток и дней недели")
	cmd.Flags().BoolVar(&opts.slots, "slots", false, "показать кластеры перерывов по получасовым слотам")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "отключить цветной вывод")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "подробный лог")

	return cmd
}

func runAnalyze(cmd *cobra.Command, path string, opts *analyzeOptions) error {
	if opts.noColor {
		color.NoColor = true
	}
	if opts.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if opts.window <= 0 {
		opts.window = analytics.DefaultWindowDays
	}

	loc, err := time.LoadLocation(opts.tz)
	if err != nil {
		return fmt.Errorf("invalid --tz %q: %w", opts.tz, err)
	}

	now := time.Now()
	if opts.now != "" {
		now, err = time.Parse(time.RFC3339, opts.now)
		if err != nil {
			return fmt.Errorf("invalid --now %q: %w", opts.now, err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	history, err := readHistory(f, loc)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"file":      path,
		"intervals": len(history),
		"window":    opts.window,
		"now":       now.Format(time.RFC3339),
	}).Debug("History loaded")

	analyzer := analytics.NewAnalyzer(analytics.WithLocation(loc))
	out := cmd.OutOrStdout()

	pattern, ok := analyzer.Analyze(history, opts.window, now)
	if !ok {
		printInsufficient(out, opts.window)
	} else {
		printPattern(out, pattern, opts.window)
	}

	if opts.slots {
		recent := analytics.Window(history, opts.window, now)
		printSlots(out, analyzer.DetectBreakSlots(recent), len(recent))
	}

	return nil
}
