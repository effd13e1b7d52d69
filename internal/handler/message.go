package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/UbiwanKenobi/Stepper-bot/internal/parser"
	"github.com/UbiwanKenobi/Stepper-bot/internal/utils"
)

func (r *Registry) handleMessage(msg *tgbotapi.Message) {
	if msg.IsCommand() {
		r.handleCommand(msg)
		return
	}

	// Step tags live in the message body or in a photo caption.
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if text == "" {
		return
	}

	tag, err := parser.Parse(text, r.now())
	switch {
	case errors.Is(err, parser.ErrNoTag):
		// Not a step report; stay silent.
		return
	case errors.Is(err, parser.ErrInvalidDate):
		r.reply(msg.Chat.ID, "⚠️ Неверный формат даты. Используй ДД.MM (например: 01.10)")
		return
	case err != nil:
		r.log.Error("tag parse failed", zap.Error(err))
		return
	}

	user := msg.From
	if user == nil {
		return
	}
	userID := strconv.FormatInt(user.ID, 10)
	username := displayName(user)

	if err := r.svc.Ingest(userID, username, tag.Date, tag.Steps); err != nil {
		r.log.Error("ingest failed",
			zap.String("user_id", userID),
			zap.Error(err))
		r.reply(msg.Chat.ID, "❌ Не удалось сохранить данные. Попробуй ещё раз.")
		return
	}

	r.reply(msg.Chat.ID, fmt.Sprintf("✅ Записал %d шагов за %s для %s",
		tag.Steps, utils.FormatShortDate(tag.Date), username))
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
