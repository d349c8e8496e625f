package handler

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	args := message.CommandArguments()

	switch message.Command() {
	case "start":
		h.start(message)
	case "help":
		h.sendHelpMessage(chatID)

	// Учет рабочего времени
	case "in", "startwork":
		h.clockIn(chatID)
	case "out", "endwork", "finish":
		h.clockOut(chatID)
	case "punch":
		h.punch(chatID)
	case "history":
		h.history(chatID, args)

	// Анализ посещаемости
	case "analyze", "pattern":
		h.analyze(chatID)
	case "window":
		h.window(chatID, args)

	// Администрирование
	case "open":
		h.openSessions(chatID)
	case "team":
		h.team(chatID)

	default:
		h.reply(chatID, "❌ Неизвестная команда. Используйте /help для списка команд.")
	}
}

// start регистрирует пользователя по данным Telegram
func (h *Handler) start(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	var username, firstName, lastName string
	if message.From != nil {
		username = message.From.UserName
		firstName = message.From.FirstName
		lastName = message.From.LastName
	}

	user, created, err := h.userService.Register(chatID, username, firstName, lastName)
	if err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to register user")
		h.reply(chatID, errorText(err))
		return
	}

	greeting := fmt.Sprintf("👋 С возвращением, %s!", user.DisplayName())
	if created {
		greeting = fmt.Sprintf("👋 Добро пожаловать, %s!\nПрофиль создан.", user.DisplayName())
	}

	msg := tgbotapi.NewMessage(chatID, greeting+"\n\n"+helpText)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ Отметиться", callbackPunch),
		),
	)
	h.send(msg)
}

const helpText = `📋 Доступные команды:

⏰ Учет рабочего времени:
/in - Отметить приход
/out - Отметить уход
/punch - Приход или уход, в зависимости от текущего состояния
/history [N] - Последние N отрезков (по умолчанию 10)

📊 Анализ посещаемости:
/analyze - Шаблон посещаемости: среднее время прихода и ухода, регулярность, перерывы
/window [N] - Показать или изменить окно анализа в днях

👑 Администрирование:
/open - Кто сейчас на работе
/team - Регулярность всей команды

💡 Перерыв - это уход и повторный приход в течение дня.
Отмечайте их, и бот найдет ваши регулярные перерывы.`

func (h *Handler) sendHelpMessage(chatID int64) {
	text := helpText
	if h.config != nil && h.config.BaseAdminChatID != 0 {
		text += fmt.Sprintf("\n\n🔧 ID главного администратора: %d", h.config.BaseAdminChatID)
	}
	h.reply(chatID, text)
}
