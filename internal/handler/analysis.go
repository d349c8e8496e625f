package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"work-pattern-bot/internal/models"
	"work-pattern-bot/internal/service"

	"github.com/sirupsen/logrus"
)

const teamAnalysisTimeout = 30 * time.Second

// analyze строит и отправляет шаблон посещаемости пользователя
func (h *Handler) analyze(chatID int64) {
	user, ok := h.currentUser(chatID)
	if !ok {
		return
	}

	pattern, sufficient, window, err := h.patternService.AnalyzeUser(user.ID, h.now())
	if err != nil {
		h.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to analyze attendance")
		h.reply(chatID, errorText(err))
		return
	}
	if !sufficient {
		h.reply(chatID, formatInsufficient(window))
		return
	}

	h.reply(chatID, formatPattern(pattern, service.BuildInsights(pattern), window))
}

// window показывает окно анализа или, с аргументом, меняет его
func (h *Handler) window(chatID int64, args string) {
	user, ok := h.currentUser(chatID)
	if !ok {
		return
	}

	args = strings.TrimSpace(args)
	if args == "" {
		days, err := h.settingsService.WindowDays(user.ID)
		if err != nil {
			h.reply(chatID, errorText(err))
			return
		}
		h.reply(chatID, "🔎 Окно анализа: "+strconv.Itoa(days)+" дн.\nИзменить: /window N")
		return
	}

	days, err := strconv.Atoi(args)
	if err != nil {
		h.reply(chatID, "❌ Используйте: /window N, где N - количество дней")
		return
	}

	if err := h.settingsService.SetWindowDays(user.ID, days); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"user_id": user.ID,
			"days":    days,
		}).Warn("Failed to set analysis window")
		h.reply(chatID, errorText(err))
		return
	}

	h.reply(chatID, "✅ Окно анализа: "+strconv.Itoa(days)+" дн.")
}

// openSessions показывает, кто сейчас на работе (только для админов)
func (h *Handler) openSessions(chatID int64) {
	if !h.requireAdmin(chatID) {
		return
	}

	sessions, err := h.workSessionService.OpenSessions()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get open sessions")
		h.reply(chatID, errorText(err))
		return
	}

	users, err := h.userService.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list users")
		h.reply(chatID, errorText(err))
		return
	}
	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	h.reply(chatID, formatOpenSessions(sessions, byID, h.now(), h.patternService.Location()))
}

// team - сводка регулярности по всем пользователям (только для админов)
func (h *Handler) team(chatID int64) {
	if !h.requireAdmin(chatID) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), teamAnalysisTimeout)
	defer cancel()

	entries, err := h.patternService.AnalyzeTeam(ctx, h.now())
	if err != nil {
		h.logger.WithError(err).Error("Failed to analyze team")
		h.reply(chatID, errorText(err))
		return
	}

	h.reply(chatID, formatTeam(entries))
}
