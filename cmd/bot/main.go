package main

import (
	"log"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/UbiwanKenobi/Stepper-bot/internal/bot"
	"github.com/UbiwanKenobi/Stepper-bot/internal/config"
	"github.com/UbiwanKenobi/Stepper-bot/internal/github"
	"github.com/UbiwanKenobi/Stepper-bot/internal/handler"
	"github.com/UbiwanKenobi/Stepper-bot/internal/health"
	"github.com/UbiwanKenobi/Stepper-bot/internal/service"
	"github.com/UbiwanKenobi/Stepper-bot/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	strg := storage.NewFileStorage(cfg.DataFile)
	if cfg.GithubToken != "" {
		syncer := github.NewSyncer(cfg.GithubToken, cfg.GithubRepo, filepath.Base(cfg.DataFile))
		strg.SetSaveHook(func(doc []byte) {
			if err := syncer.Push(doc); err != nil {
				logger.Warn("github sync failed", zap.Error(err))
				return
			}
			logger.Info("data pushed to github")
		})
	} else {
		logger.Info("GITHUB_TOKEN не установлен, пропускаю пуш в GitHub")
	}

	svc := service.NewSteps(strg)

	go func() {
		if err := health.New().Listen(cfg.HealthAddr); err != nil {
			logger.Error("health server stopped", zap.Error(err))
		}
	}()

	tgBot, err := bot.New(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("telegram bot init: %v", err)
	}

	handler.Register(tgBot.API, svc, logger)

	log.Println("Bot up and running 🚀")
	tgBot.Run()
}
