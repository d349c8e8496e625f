package handler

import (
	"fmt"
	"strconv"
	"strings"

	"work-pattern-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

// clockIn отмечает приход
func (h *Handler) clockIn(chatID int64) {
	user, ok := h.currentUser(chatID)
	if !ok {
		return
	}

	session, err := h.workSessionService.ClockIn(user.ID, h.now())
	if err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to clock in")
		h.reply(chatID, errorText(err))
		return
	}

	h.sendPunchResult(chatID, session, true)
}

// clockOut отмечает уход
func (h *Handler) clockOut(chatID int64) {
	user, ok := h.currentUser(chatID)
	if !ok {
		return
	}

	session, err := h.workSessionService.ClockOut(user.ID, h.now())
	if err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to clock out")
		h.reply(chatID, errorText(err))
		return
	}

	h.sendPunchResult(chatID, session, false)
}

// punch переключает приход/уход; вызывается командой и inline кнопкой
func (h *Handler) punch(chatID int64) {
	user, ok := h.currentUser(chatID)
	if !ok {
		return
	}

	session, clockedIn, err := h.workSessionService.Punch(user.ID, h.now())
	if err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Warn("Failed to punch")
		h.reply(chatID, errorText(err))
		return
	}

	h.logger.WithFields(logrus.Fields{
		"user_id":    user.ID,
		"clocked_in": clockedIn,
	}).Info("Punch registered")

	h.sendPunchResult(chatID, session, clockedIn)
}

func (h *Handler) sendPunchResult(chatID int64, session *models.WorkSession, clockedIn bool) {
	loc := h.patternService.Location()

	var text, button string
	if clockedIn {
		text = fmt.Sprintf(`✅ Приход отмечен!

⏰ Время: %s
📅 Дата: %s

💡 Не забудьте отметить уход командой /out`,
			session.ClockInTime.In(loc).Format("15:04"),
			session.ClockInTime.In(loc).Format("02.01.2006"),
		)
		button = "⏰ Отметить уход"
	} else {
		text = fmt.Sprintf(`✅ Уход отмечен!

⏰ Приход: %s
🏁 Уход: %s
⏳ Отработано: %s`,
			session.ClockInTime.In(loc).Format("15:04"),
			session.ClockOutTime.In(loc).Format("15:04"),
			session.Duration(),
		)
		button = "⏰ Отметить приход"
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(button, callbackPunch),
			tgbotapi.NewInlineKeyboardButtonData("📊 Анализ", callbackAnalyze),
		),
	)
	h.send(msg)
}

// parseHistoryLimit разбирает аргумент /history [N]
func parseHistoryLimit(args string) (int, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return defaultHistoryLimit, nil
	}
	n, err := strconv.Atoi(args)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("некорректное количество: %q", args)
	}
	return min(n, maxHistoryLimit), nil
}

func (h *Handler) history(chatID int64, args string) {
	limit, err := parseHistoryLimit(args)
	if err != nil {
		h.reply(chatID, "❌ Используйте: /history [N], где N - положительное число")
		return
	}

	user, ok := h.currentUser(chatID)
	if !ok {
		return
	}

	sessions, err := h.workSessionService.History(user.ID, limit)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to get history")
		h.reply(chatID, errorText(err))
		return
	}

	h.reply(chatID, formatHistory(sessions, h.patternService.Location()))
}
