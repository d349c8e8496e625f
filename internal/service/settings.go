package service

import (
	"work-pattern-bot/internal/models"
	"work-pattern-bot/internal/repository"
)

type SettingsService struct {
	repo          repository.SettingsRepository
	defaultWindow int
}

func NewSettingsService(repo repository.SettingsRepository, defaultWindow int) *SettingsService {
	return &SettingsService{repo: repo, defaultWindow: defaultWindow}
}

// WindowDays возвращает окно анализа пользователя или окно по умолчанию
func (s *SettingsService) WindowDays(userID uint) (int, error) {
	settings, err := s.repo.Get(userID)
	if err != nil {
		return 0, err
	}
	if settings == nil {
		return s.defaultWindow, nil
	}
	return settings.WindowDays, nil
}

// SetWindowDays сохраняет персональное окно анализа
func (s *SettingsService) SetWindowDays(userID uint, days int) error {
	if days < models.MinWindowDays || days > models.MaxWindowDays {
		return ErrInvalidWindow
	}
	return s.repo.Save(&models.UserSettings{UserID: userID, WindowDays: days})
}
