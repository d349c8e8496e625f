package service

import (
	"fmt"
	"strings"

	"work-pattern-bot/internal/models"
	"work-pattern-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

type UserService struct {
	repo   repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository) *UserService {
	logger := logrus.New()
	logger.SetLevel(logrus.GetLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &UserService{repo: repo, logger: logger}
}

// Register создает пользователя при первом обращении; повторный вызов возвращает
// существующего пользователя и created = false.
func (s *UserService) Register(chatID int64, username, firstName, lastName string) (*models.User, bool, error) {
	existing, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, false, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		firstName = strings.TrimSpace(username)
	}
	if firstName == "" {
		return nil, false, ErrEmptyName
	}

	user := &models.User{
		ChatID:    chatID,
		Username:  username,
		FirstName: firstName,
		LastName:  strings.TrimSpace(lastName),
		Role:      models.RoleMember,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, false, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"chat_id": chatID,
	}).Info("User registered")

	return user, true, nil
}

// GetByChatID возвращает пользователя или ErrUserNotFound
func (s *UserService) GetByChatID(chatID int64) (*models.User, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// InitializeAdmin назначает администратором пользователя из конфигурации
func (s *UserService) InitializeAdmin(chatID int64) error {
	if chatID == 0 {
		return nil
	}

	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return err
	}

	if user == nil {
		return s.repo.Create(&models.User{
			ChatID:    chatID,
			FirstName: "Администратор",
			Role:      models.RoleAdmin,
		})
	}

	if user.IsAdmin() {
		return nil
	}
	user.Role = models.RoleAdmin
	return s.repo.Update(user)
}

func (s *UserService) List() ([]*models.User, error) {
	return s.repo.List()
}
