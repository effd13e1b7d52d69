package handler

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/UbiwanKenobi/Stepper-bot/internal/service"
)

type Registry struct {
	bot BotAPI
	svc *service.Steps
	log *zap.Logger

	now       func() time.Time // injectable for date-resolution tests
	exportDir string           // where /export drops its CSV
}

// BotAPI is the slice of tgbotapi the handlers actually use.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// Register binds message handling and spawns the update loop.
func Register(api BotAPI, svc *service.Steps, logger *zap.Logger) {
	r := &Registry{bot: api, svc: svc, log: logger, now: time.Now, exportDir: "."}
	go r.listen() // background
}

func (r *Registry) listen() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := r.bot.GetUpdatesChan(u)

	for upd := range updates {
		if upd.Message != nil {
			r.handleMessage(upd.Message)
		}
	}
}

func (r *Registry) reply(chatID int64, text string) {
	if _, err := r.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.log.Warn("send reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
