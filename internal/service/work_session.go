package service

import (
	"fmt"
	"time"

	"work-pattern-bot/internal/analytics"
	"work-pattern-bot/internal/models"
	"work-pattern-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

type WorkSessionService struct {
	sessionRepo repository.WorkSessionRepository
	logger      *logrus.Logger
}

func NewWorkSessionService(sessionRepo repository.WorkSessionRepository) *WorkSessionService {
	logger := logrus.New()
	logger.SetLevel(logrus.GetLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &WorkSessionService{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// ClockIn открывает новый отрезок работы. Время хранится в UTC.
func (s *WorkSessionService) ClockIn(userID uint, at time.Time) (*models.WorkSession, error) {
	at = at.UTC()
	s.logger.WithFields(logrus.Fields{
		"user_id":       userID,
		"clock_in_time": at.Format("15:04"),
	}).Info("User clocking in")

	active, err := s.sessionRepo.GetActiveByUserID(userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		s.logger.WithField("user_id", userID).Warn("User already has active session")
		return nil, ErrActiveSession
	}

	session := &models.WorkSession{
		UserID:      userID,
		Date:        time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC),
		ClockInTime: at,
		Status:      models.StatusActive,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	return session, nil
}

// ClockOut закрывает открытый отрезок
func (s *WorkSessionService) ClockOut(userID uint, at time.Time) (*models.WorkSession, error) {
	at = at.UTC()
	s.logger.WithFields(logrus.Fields{
		"user_id":        userID,
		"clock_out_time": at.Format("15:04"),
	}).Info("User clocking out")

	active, err := s.sessionRepo.GetActiveByUserID(userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, ErrNoActiveSession
	}
	if !at.After(active.ClockInTime) {
		return nil, ErrClockOutBeforeIn
	}

	session, err := s.sessionRepo.CompleteSession(userID, at)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}

	return session, nil
}

// Punch переключает состояние: приход, если нет открытого отрезка, иначе уход.
// clockedIn сообщает, какое действие было выполнено.
func (s *WorkSessionService) Punch(userID uint, at time.Time) (session *models.WorkSession, clockedIn bool, err error) {
	active, err := s.sessionRepo.GetActiveByUserID(userID)
	if err != nil {
		return nil, false, err
	}

	if active == nil {
		session, err = s.ClockIn(userID, at)
		return session, true, err
	}

	session, err = s.ClockOut(userID, at)
	return session, false, err
}

// ActiveSession возвращает открытый отрезок или nil
func (s *WorkSessionService) ActiveSession(userID uint) (*models.WorkSession, error) {
	return s.sessionRepo.GetActiveByUserID(userID)
}

// History возвращает последние отрезки, новые первыми
func (s *WorkSessionService) History(userID uint, limit int) ([]*models.WorkSession, error) {
	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"limit":   limit,
	}).Debug("Getting work session history")

	return s.sessionRepo.GetByUserID(userID, limit)
}

// Intervals возвращает историю с момента since в порядке прихода
func (s *WorkSessionService) Intervals(userID uint, since time.Time) ([]analytics.AttendanceInterval, error) {
	sessions, err := s.sessionRepo.GetByUserSince(userID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	intervals := make([]analytics.AttendanceInterval, 0, len(sessions))
	for _, session := range sessions {
		intervals = append(intervals, session.Interval())
	}
	return intervals, nil
}

// OpenSessions возвращает все незакрытые отрезки (кто сейчас на работе)
func (s *WorkSessionService) OpenSessions() ([]*models.WorkSession, error) {
	return s.sessionRepo.GetAllActive()
}
