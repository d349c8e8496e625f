package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"work-pattern-bot/internal/analytics"
	"work-pattern-bot/internal/models"
	"work-pattern-bot/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// TeamEntry - результат анализа одного участника. OK == false: данных недостаточно.
type TeamEntry struct {
	User       *models.User
	Pattern    analytics.AttendancePattern
	OK         bool
	WindowDays int
}

type PatternService struct {
	sessions *WorkSessionService
	settings *SettingsService
	users    repository.UserRepository
	analyzer *analytics.Analyzer
	workers  int
	logger   *logrus.Logger
}

func NewPatternService(
	sessions *WorkSessionService,
	settings *SettingsService,
	users repository.UserRepository,
	analyzer *analytics.Analyzer,
	workers int,
) *PatternService {
	logger := logrus.New()
	logger.SetLevel(logrus.GetLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &PatternService{
		sessions: sessions,
		settings: settings,
		users:    users,
		analyzer: analyzer,
		workers:  max(1, workers),
		logger:   logger,
	}
}

// Location возвращает часовой пояс, в котором строятся шаблоны
func (s *PatternService) Location() *time.Location {
	return s.analyzer.Location()
}

// AnalyzeUser строит шаблон посещаемости пользователя за его окно анализа
// и возвращает окно, по которому он построен.
// ok == false означает, что данных недостаточно; это не ошибка.
func (s *PatternService) AnalyzeUser(userID uint, now time.Time) (pattern analytics.AttendancePattern, ok bool, windowDays int, err error) {
	return s.analyze(userID, now)
}

func (s *PatternService) analyze(userID uint, now time.Time) (analytics.AttendancePattern, bool, int, error) {
	window, err := s.settings.WindowDays(userID)
	if err != nil {
		return analytics.AttendancePattern{}, false, 0, fmt.Errorf("get analysis window: %w", err)
	}

	history, err := s.sessions.Intervals(userID, analytics.Cutoff(window, now))
	if err != nil {
		return analytics.AttendancePattern{}, false, 0, err
	}

	pattern, ok := s.analyzer.Analyze(history, window, now)

	s.logger.WithFields(logrus.Fields{
		"user_id":     userID,
		"window_days": window,
		"intervals":   len(history),
		"sufficient":  ok,
		"consistency": pattern.ConsistencyScore,
	}).Debug("Attendance pattern analyzed")

	return pattern, ok, window, nil
}

// AnalyzeTeam анализирует всех пользователей параллельно (не больше workers
// одновременно). Результат: сначала участники с данными по убыванию регулярности.
func (s *PatternService) AnalyzeTeam(ctx context.Context, now time.Time) ([]TeamEntry, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}

	entries := make([]TeamEntry, len(users))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, user := range users {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			pattern, ok, window, err := s.analyze(user.ID, now)
			if err != nil {
				return fmt.Errorf("user %d: %w", user.ID, err)
			}

			entries[i] = TeamEntry{User: user, Pattern: pattern, OK: ok, WindowDays: window}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.WithError(err).Error("Team analysis failed")
		return nil, err
	}

	slices.SortStableFunc(entries, func(a, b TeamEntry) int {
		if a.OK != b.OK {
			if a.OK {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.Pattern.ConsistencyScore, a.Pattern.ConsistencyScore)
	})

	s.logger.WithField("members", len(entries)).Info("Team analysis completed")
	return entries, nil
}
