package repository

import (
	"errors"
	"fmt"
	"time"

	"work-pattern-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type WorkSessionRepository interface {
	Create(session *models.WorkSession) error
	GetByID(id uint) (*models.WorkSession, error)
	GetActiveByUserID(userID uint) (*models.WorkSession, error)
	GetByUserID(userID uint, limit int) ([]*models.WorkSession, error)
	GetByUserSince(userID uint, since time.Time) ([]*models.WorkSession, error)
	GetAllActive() ([]*models.WorkSession, error)
	CompleteSession(userID uint, clockOutTime time.Time) (*models.WorkSession, error)
	DeleteByID(id uint) error
}

type GormWorkSessionRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormWorkSessionRepository(db *gorm.DB) (*GormWorkSessionRepository, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.GetLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	// Автомиграция
	if err := db.AutoMigrate(&models.WorkSession{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate work_sessions table")
		return nil, err
	}

	logger.Info("Work session repository initialized")

	return &GormWorkSessionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormWorkSessionRepository) Create(session *models.WorkSession) error {
	r.logger.WithFields(logrus.Fields{
		"user_id":  session.UserID,
		"clock_in": session.ClockInTime.Format("2006-01-02 15:04"),
	}).Info("Creating work session")

	session.UpdateCalculatedFields()
	if !session.IsValid() {
		r.logger.WithField("user_id", session.UserID).Warn("Invalid work session data")
		return errors.New("некорректные данные рабочей сессии")
	}

	if err := r.db.Create(session).Error; err != nil {
		r.logger.WithError(err).Error("Failed to create work session")
		return fmt.Errorf("create work session: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"id":      session.ID,
		"user_id": session.UserID,
		"status":  session.Status,
	}).Info("Work session created successfully")

	return nil
}

func (r *GormWorkSessionRepository) GetByID(id uint) (*models.WorkSession, error) {
	var session models.WorkSession
	result := r.db.First(&session, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Work session not found")
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get work session by ID")
		return nil, fmt.Errorf("get work session %d: %w", id, result.Error)
	}

	return &session, nil
}

func (r *GormWorkSessionRepository) GetActiveByUserID(userID uint) (*models.WorkSession, error) {
	var session models.WorkSession
	result := r.db.Where("user_id = ? AND status = ?", userID, models.StatusActive).
		Order("clock_in_time DESC").
		First(&session)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("user_id", userID).Debug("No active work session found")
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get active work session")
		return nil, fmt.Errorf("get active session for user %d: %w", userID, result.Error)
	}

	return &session, nil
}

// GetByUserID возвращает последние сессии пользователя, новые первыми
func (r *GormWorkSessionRepository) GetByUserID(userID uint, limit int) ([]*models.WorkSession, error) {
	var sessions []*models.WorkSession

	query := r.db.Where("user_id = ?", userID).Order("clock_in_time DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&sessions).Error; err != nil {
		r.logger.WithError(err).Error("Failed to get work sessions by user ID")
		return nil, fmt.Errorf("get sessions for user %d: %w", userID, err)
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"count":   len(sessions),
		"limit":   limit,
	}).Debug("Retrieved work sessions by user ID")

	return sessions, nil
}

// GetByUserSince возвращает сессии, начатые не раньше since, в порядке прихода.
// Порядок важен: соседние сессии образуют кандидатов в перерывы.
func (r *GormWorkSessionRepository) GetByUserSince(userID uint, since time.Time) ([]*models.WorkSession, error) {
	var sessions []*models.WorkSession

	err := r.db.Where("user_id = ? AND clock_in_time >= ?", userID, since).
		Order("clock_in_time ASC").
		Order("id ASC").
		Find(&sessions).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to get work sessions since cutoff")
		return nil, fmt.Errorf("get sessions for user %d since %s: %w", userID, since.Format(time.RFC3339), err)
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"since":   since.Format("2006-01-02 15:04"),
		"count":   len(sessions),
	}).Debug("Retrieved work sessions since cutoff")

	return sessions, nil
}

func (r *GormWorkSessionRepository) GetAllActive() ([]*models.WorkSession, error) {
	var sessions []*models.WorkSession
	err := r.db.Where("status = ?", models.StatusActive).
		Order("clock_in_time ASC").
		Find(&sessions).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to get active work sessions")
		return nil, fmt.Errorf("get active sessions: %w", err)
	}
	return sessions, nil
}

func (r *GormWorkSessionRepository) CompleteSession(userID uint, clockOutTime time.Time) (*models.WorkSession, error) {
	r.logger.WithFields(logrus.Fields{
		"user_id":        userID,
		"clock_out_time": clockOutTime.Format("15:04"),
	}).Info("Completing work session")

	session, err := r.GetActiveByUserID(userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		r.logger.WithField("user_id", userID).Warn("No active work session found to complete")
		return nil, nil
	}

	session.ClockOutTime = &clockOutTime
	session.UpdateCalculatedFields()
	if !session.IsValid() {
		r.logger.WithField("id", session.ID).Warn("Clock out time is not after clock in")
		return nil, errors.New("время ухода должно быть позже времени прихода")
	}

	if err := r.db.Save(session).Error; err != nil {
		r.logger.WithError(err).Error("Failed to complete work session")
		return nil, fmt.Errorf("complete session %d: %w", session.ID, err)
	}

	r.logger.WithFields(logrus.Fields{
		"id":             session.ID,
		"user_id":        userID,
		"worked_minutes": session.WorkedMinutes,
	}).Info("Work session completed successfully")

	return session, nil
}

func (r *GormWorkSessionRepository) DeleteByID(id uint) error {
	r.logger.WithField("id", id).Info("Deleting work session by ID")

	result := r.db.Delete(&models.WorkSession{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete work session")
		return fmt.Errorf("delete session %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Work session not found for deletion")
		return errors.New("рабочая сессия не найдена")
	}

	return nil
}
