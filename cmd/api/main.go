package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"calendar-assistant/config"
	assistDelivery "calendar-assistant/internal/event/delivery/httpapi"
	tgDelivery "calendar-assistant/internal/event/delivery/telegram"
	gcalRepo "calendar-assistant/internal/event/repository/gcal"
	"calendar-assistant/internal/event/usecase"
	"calendar-assistant/internal/extract"
	"calendar-assistant/internal/httpserver"
	"calendar-assistant/pkg/datemath"
	"calendar-assistant/pkg/gcalendar"
	"calendar-assistant/pkg/gemini"
	"calendar-assistant/pkg/log"
	"calendar-assistant/pkg/telegram"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Calendar Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Calendar: %s (%s)", cfg.GoogleCalendar.CalendarID, cfg.GoogleCalendar.Timezone)

	// 3. Shared clients
	dateParser, dtErr := datemath.NewParser(cfg.GoogleCalendar.Timezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.GoogleCalendar.Timezone, dtErr)
		dateParser, _ = datemath.NewParser("UTC")
	}

	calendarClient := gcalendar.NewClient(cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
	if err := calendarClient.EnsureAuthenticated(ctx); err != nil {
		logger.Warnf(ctx, "Google Calendar not ready: %v", err)
		logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
	}

	geminiClient := gemini.NewClient(cfg.Gemini.APIKey)
	geminiClient.SetModel(cfg.Gemini.Model)

	// 4. Event domain
	backend := gcalRepo.New(logger, calendarClient, cfg.GoogleCalendar.CalendarID)
	eventUC := usecase.New(logger, backend, dateParser, usecase.Config{
		Timezone:         cfg.GoogleCalendar.Timezone,
		SearchWindowDays: cfg.Assist.SearchWindowDays,
		ListMaxResults:   cfg.Assist.ListMaxResults,
	})
	extractor := extract.New(logger, geminiClient)

	assistHandler := assistDelivery.New(logger, extractor, eventUC, cfg.Assist.RateLimitPerMin)

	// 5. Telegram delivery (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		telegramBot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, extractor, eventUC, telegramBot)

		// Register webhook: auto-detect ngrok or fallback to manual config
		webhookURL := cfg.Telegram.WebhookURL
		if webhookURL == "" {
			ngrokURL, ngrokErr := detectNgrokURL(ctx, "http://ngrok:4040")
			if ngrokErr != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
			} else {
				webhookURL = ngrokURL + "/webhook/telegram"
				logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
			}
		}

		if webhookURL != "" {
			if whErr := telegramBot.SetWebhook(webhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "Telegram delivery skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		AssistHandler:   assistHandler,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
