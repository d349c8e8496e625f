package repository

import (
	"errors"
	"fmt"
	"time"

	"work-pattern-bot/internal/models"

	"github.com/maypok86/otter/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	Get(userID uint) (*models.UserSettings, error)
	Save(settings *models.UserSettings) error
}

type GormSettingsRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormSettingsRepository(db *gorm.DB) (*GormSettingsRepository, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.GetLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.UserSettings{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate user_settings table")
		return nil, err
	}

	return &GormSettingsRepository{db: db, logger: logger}, nil
}

func (r *GormSettingsRepository) Get(userID uint) (*models.UserSettings, error) {
	var settings models.UserSettings
	result := r.db.Where("user_id = ?", userID).First(&settings)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user settings")
		return nil, fmt.Errorf("get settings for user %d: %w", userID, result.Error)
	}

	return &settings, nil
}

// Save создает или обновляет настройки пользователя
func (r *GormSettingsRepository) Save(settings *models.UserSettings) error {
	if !settings.IsValid() {
		return errors.New("некорректные настройки")
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"window_days", "updated_at"}),
	}).Create(settings).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to save user settings")
		return fmt.Errorf("save settings for user %d: %w", settings.UserID, err)
	}

	r.logger.WithFields(logrus.Fields{
		"user_id":     settings.UserID,
		"window_days": settings.WindowDays,
	}).Info("User settings saved")

	return nil
}

// CachedSettingsRepository держит настройки в памяти поверх другого репозитория.
// Время жизни записей задается при создании; запись обновляется при Save.
type CachedSettingsRepository struct {
	next  SettingsRepository
	cache *otter.Cache[uint, models.UserSettings]
}

func NewCachedSettingsRepository(next SettingsRepository, ttl time.Duration, maxEntries int) *CachedSettingsRepository {
	return &CachedSettingsRepository{
		next: next,
		cache: otter.Must(&otter.Options[uint, models.UserSettings]{
			MaximumSize:      maxEntries,
			ExpiryCalculator: otter.ExpiryWriting[uint, models.UserSettings](ttl),
		}),
	}
}

func (r *CachedSettingsRepository) Get(userID uint) (*models.UserSettings, error) {
	if cached, ok := r.cache.GetIfPresent(userID); ok {
		settings := cached
		return &settings, nil
	}

	settings, err := r.next.Get(userID)
	if err != nil || settings == nil {
		return settings, err
	}

	r.cache.Set(userID, *settings)
	return settings, nil
}

func (r *CachedSettingsRepository) Save(settings *models.UserSettings) error {
	if err := r.next.Save(settings); err != nil {
		r.cache.Invalidate(settings.UserID)
		return err
	}
	r.cache.Set(settings.UserID, *settings)
	return nil
}
