package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"calendar-assistant/config"
	gcalRepo "calendar-assistant/internal/event/repository/gcal"
	"calendar-assistant/internal/event/usecase"
	"calendar-assistant/internal/extract"
	"calendar-assistant/pkg/datemath"
	"calendar-assistant/pkg/gcalendar"
	"calendar-assistant/pkg/gemini"
	"calendar-assistant/pkg/log"
)

// Interactive calendar assistant loop: reads one request per line, extracts
// the intent and prints the engine reply. Type "exit" or "quit" to leave.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        "warn", // keep the prompt clean
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dateParser, dtErr := datemath.NewParser(cfg.GoogleCalendar.Timezone)
	if dtErr != nil {
		fmt.Printf("Invalid timezone %q, falling back to UTC\n", cfg.GoogleCalendar.Timezone)
		dateParser, _ = datemath.NewParser("UTC")
	}

	calendarClient := gcalendar.NewClient(cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
	if err := calendarClient.EnsureAuthenticated(ctx); err != nil {
		fmt.Println("Google Calendar not ready: ", err)
		fmt.Println("Run `go run scripts/gcal-auth/main.go` to generate token.json")
		return
	}

	geminiClient := gemini.NewClient(cfg.Gemini.APIKey)
	geminiClient.SetModel(cfg.Gemini.Model)

	backend := gcalRepo.New(logger, calendarClient, cfg.GoogleCalendar.CalendarID)
	eventUC := usecase.New(logger, backend, dateParser, usecase.Config{
		Timezone:         cfg.GoogleCalendar.Timezone,
		SearchWindowDays: cfg.Assist.SearchWindowDays,
		ListMaxResults:   cfg.Assist.ListMaxResults,
	})
	extractor := extract.New(logger, geminiClient)

	fmt.Println("Calendar assistant started. Type 'exit' to leave.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if l := strings.ToLower(line); l == "exit" || l == "quit" {
			fmt.Println("Bye.")
			break
		}

		intent, err := extractor.Extract(ctx, line, time.Now())
		if err != nil {
			fmt.Println("Assistant: Sorry, I couldn't understand that request. Please try rephrasing.")
			continue
		}

		fmt.Println("Assistant: " + eventUC.Handle(ctx, intent))
	}
}
