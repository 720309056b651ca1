package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habit-tracker/internal/bot"
	"habit-tracker/internal/config"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var store repository.DataStore
	sqlStore, err := repository.Open(cfg.DatabaseURL)
	if err != nil {
		// Degraded mode: the bot keeps running without persistence.
		log.Printf("[warn] store unavailable, falling back to null store: %v", err)
		store = repository.NewNullStore()
	} else {
		defer sqlStore.Close()
		store = sqlStore
	}

	provider := service.NewTrackerProvider(store)
	completionSvc := service.NewCompletionService(store)
	categorySvc := service.NewCategoryService(store)
	summarySvc := service.NewSummaryService(store, completionSvc)

	if err := provider.SetCurrentDate(ctx, time.Now()); err != nil {
		log.Printf("[warn] initial refresh: %v", err)
	}

	telegramBot, err := bot.New(cfg.TelegramToken, provider, completionSvc, categorySvc, summarySvc, &cfg)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	scheduler := service.NewSchedulerService(time.Local)
	if cfg.ReportChatID != 0 {
		if _, err := scheduler.ScheduleDaily(cfg.ReportTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := telegramBot.SendDailyReport(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("report: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule reports: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	log.Println("Habit tracker bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
