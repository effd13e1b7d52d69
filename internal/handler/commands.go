package handler

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/UbiwanKenobi/Stepper-bot/internal/query"
	"github.com/UbiwanKenobi/Stepper-bot/internal/utils"
)

const exportFileName = "steps_export.csv"

func (r *Registry) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		r.handleStart(msg)
	case "stats":
		r.handleStats(msg)
	case "history":
		r.handleHistory(msg)
	case "missed":
		r.handleMissed(msg)
	case "export":
		r.handleExport(msg)
	default:
		r.reply(msg.Chat.ID, "❓ Неизвестная команда. Введите /start, чтобы посмотреть список.")
	}
}

func (r *Registry) handleStart(msg *tgbotapi.Message) {
	r.reply(msg.Chat.ID,
		"Привет! Отправь сообщение с шагами вида:\n"+
			"#шаги 1234 01.10\n\n"+
			"Можно отправлять вместе с фото.\n"+
			"Доступные команды:\n"+
			"/stats — общая статистика\n"+
			"/history — твоя история\n"+
			"/missed — пропущенные дни\n"+
			"/export — выгрузка в CSV")
}

func (r *Registry) handleStats(msg *tgbotapi.Message) {
	store, err := r.svc.Snapshot()
	if err != nil {
		r.replyStorageError(msg.Chat.ID, "stats", err)
		return
	}

	ranks, err := query.Leaderboard(store)
	if err != nil {
		r.reply(msg.Chat.ID, "Пока нет данных.")
		return
	}

	var b strings.Builder
	b.WriteString("📊 Общая статистика:")
	for i, rank := range ranks {
		b.WriteString(fmt.Sprintf("\n%d. %s: %d", i+1, rank.Username, rank.Total))
	}
	r.reply(msg.Chat.ID, b.String())
}

func (r *Registry) handleHistory(msg *tgbotapi.Message) {
	store, err := r.svc.Snapshot()
	if err != nil {
		r.replyStorageError(msg.Chat.ID, "history", err)
		return
	}

	records, err := query.History(store, senderID(msg))
	if err != nil {
		r.reply(msg.Chat.ID, "У тебя пока нет записей.")
		return
	}

	var b strings.Builder
	b.WriteString("📅 Вся твоя история шагов:")
	for _, rec := range records {
		d, _ := utils.ParseISODate(rec.Date)
		b.WriteString(fmt.Sprintf("\n%s: %d", utils.FormatShortDate(d), rec.Steps))
	}
	r.reply(msg.Chat.ID, b.String())
}

func (r *Registry) handleMissed(msg *tgbotapi.Message) {
	store, err := r.svc.Snapshot()
	if err != nil {
		r.replyStorageError(msg.Chat.ID, "missed", err)
		return
	}

	missed, err := query.Missed(store, senderID(msg))
	if err != nil {
		r.reply(msg.Chat.ID, "У тебя пока нет записей.")
		return
	}
	if len(missed) == 0 {
		r.reply(msg.Chat.ID, "🎉 Нет пропущенных дней! Молодец!")
		return
	}

	var b strings.Builder
	b.WriteString("❌ Пропущенные дни:")
	for _, d := range missed {
		b.WriteString("\n" + utils.FormatShortDate(d))
	}
	r.reply(msg.Chat.ID, b.String())
}

func (r *Registry) handleExport(msg *tgbotapi.Message) {
	store, err := r.svc.Snapshot()
	if err != nil {
		r.replyStorageError(msg.Chat.ID, "export", err)
		return
	}

	path := filepath.Join(r.exportDir, exportFileName)
	if err := writeCSV(path, query.Export(store)); err != nil {
		r.log.Error("export failed", zap.Error(err))
		r.reply(msg.Chat.ID, "❌ Не удалось сделать выгрузку. Попробуй ещё раз.")
		return
	}
	r.reply(msg.Chat.ID, "✅ Экспорт завершён: "+exportFileName)
}

func (r *Registry) replyStorageError(chatID int64, op string, err error) {
	r.log.Error("store snapshot failed", zap.String("op", op), zap.Error(err))
	r.reply(chatID, "❌ Не удалось прочитать данные. Попробуй ещё раз.")
}

func senderID(msg *tgbotapi.Message) string {
	if msg.From == nil {
		return ""
	}
	return strconv.FormatInt(msg.From.ID, 10)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
