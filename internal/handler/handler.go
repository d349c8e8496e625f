package handler

import (
	"time"

	"work-pattern-bot/internal/config"
	"work-pattern-bot/internal/models"
	"work-pattern-bot/internal/service"
	"work-pattern-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	callbackPunch   = "command_punch"
	callbackAnalyze = "command_analyze"
)

type Handler struct {
	client             *telegram.Client
	userService        *service.UserService
	workSessionService *service.WorkSessionService
	settingsService    *service.SettingsService
	patternService     *service.PatternService
	config             *config.BotConfig
	logger             *logrus.Logger
	now                func() time.Time
}

func NewHandler(
	client *telegram.Client,
	userService *service.UserService,
	workSessionService *service.WorkSessionService,
	settingsService *service.SettingsService,
	patternService *service.PatternService,
	cfg *config.BotConfig,
) *Handler {
	logger := logrus.New()
	logger.SetLevel(logrus.GetLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Handler{
		client:             client,
		userService:        userService,
		workSessionService: workSessionService,
		settingsService:    settingsService,
		patternService:     patternService,
		config:             cfg,
		logger:             logger,
		now:                time.Now,
	}
}

// HandleUpdates читает канал обновлений до его закрытия
func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		// Обработка callback query (для inline кнопок)
		if update.CallbackQuery != nil {
			h.handleCallbackQuery(update.CallbackQuery)
			continue
		}

		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

// handleCallbackQuery обрабатывает inline кнопки
func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	// Удаляем клавиатуру
	editMsg := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	h.send(editMsg)

	switch callback.Data {
	case callbackPunch:
		h.punch(chatID)
	case callbackAnalyze:
		h.analyze(chatID)
	default:
		h.logger.WithField("data", callback.Data).Warn("Unknown callback data")
	}

	// Отвечаем на callback (убираем "часики" у кнопки)
	h.send(tgbotapi.NewCallback(callback.ID, ""))
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	if message.From != nil {
		h.logger.Infof("[%s] %s", message.From.UserName, message.Text)
	}

	if message.IsCommand() {
		h.handleCommand(message)
		return
	}

	h.reply(message.Chat.ID, "🤖 Я понимаю только команды. Используйте /help для списка команд.")
}

// currentUser возвращает зарегистрированного пользователя или отвечает в чат ошибкой
func (h *Handler) currentUser(chatID int64) (*models.User, bool) {
	user, err := h.userService.GetByChatID(chatID)
	if err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Warn("User lookup failed")
		h.reply(chatID, errorText(err))
		return nil, false
	}
	return user, true
}

// requireAdmin отвечает отказом, если пользователь не администратор
func (h *Handler) requireAdmin(chatID int64) bool {
	user, ok := h.currentUser(chatID)
	if !ok {
		return false
	}
	if !user.IsAdmin() {
		h.logger.WithField("chat_id", chatID).Warn("Unauthorized access to admin command")
		h.reply(chatID, "❌ Доступ запрещен. Эта команда только для администраторов.")
		return false
	}
	return true
}

func (h *Handler) reply(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.client.Bot.Send(c); err != nil {
		h.logger.WithError(err).Error("Failed to send telegram message")
	}
}
