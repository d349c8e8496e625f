package repository

import (
	"errors"
	"fmt"

	"work-pattern-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByChatID(chatID int64) (*models.User, error)
	List() ([]*models.User, error)
}

type GormUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormUserRepository(db *gorm.DB) (*GormUserRepository, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.GetLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	// Автомиграция - создает таблицы если их нет
	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate users table")
		return nil, err
	}

	logger.Info("User repository initialized")

	return &GormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormUserRepository) Create(user *models.User) error {
	existing, err := r.GetByChatID(user.ChatID)
	if err != nil {
		return err
	}
	if existing != nil {
		r.logger.WithField("chat_id", user.ChatID).Warn("User already exists")
		return errors.New("пользователь уже существует")
	}

	if err := r.db.Create(user).Error; err != nil {
		r.logger.WithError(err).Error("Failed to create user")
		return fmt.Errorf("create user: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"id":      user.ID,
		"chat_id": user.ChatID,
	}).Info("User created successfully")

	return nil
}

func (r *GormUserRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		r.logger.WithError(err).Error("Failed to update user")
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user by ID")
		return nil, fmt.Errorf("get user %d: %w", id, result.Error)
	}

	return &user, nil
}

func (r *GormUserRepository) GetByChatID(chatID int64) (*models.User, error) {
	var user models.User
	result := r.db.Where("chat_id = ?", chatID).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("chat_id", chatID).Debug("User not found")
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user by chat ID")
		return nil, fmt.Errorf("get user by chat %d: %w", chatID, result.Error)
	}

	return &user, nil
}

func (r *GormUserRepository) List() ([]*models.User, error) {
	var users []*models.User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		r.logger.WithError(err).Error("Failed to list users")
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
