package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"trivia-bot/internal/config"
	"trivia-bot/internal/game"
	"trivia-bot/internal/handlers"
	"trivia-bot/internal/trivia"
	"trivia-bot/pkg/logger"
	"trivia-bot/telegram"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting Trivia Bot...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Pick the question source: a local spreadsheet bank when configured,
	// the Open Trivia Database otherwise.
	var source game.QuestionSource
	if cfg.QuestionsFile != "" {
		bank, err := trivia.NewExcelBank(cfg.QuestionsFile)
		if err != nil {
			logger.Fatal("Failed to load question bank", err)
		}
		logger.Info("Using spreadsheet question bank", "file", cfg.QuestionsFile)
		source = bank
	} else {
		source = trivia.NewClient(cfg.OpenTDBBaseURL, cfg.GetFetchTimeout())
		logger.Info("Using Open Trivia Database", "url", cfg.OpenTDBBaseURL)
	}

	registry := game.NewSessionRegistry(cfg.GetSessionTTL())

	handlerMgr := handlers.NewHandlerManager(cfg, registry, source)

	bot, err := telegram.InitBot(cfg, handlerMgr)
	if err != nil {
		logger.Fatal("Failed to initialize bot", err)
	}

	logger.Info("Bot started successfully", "env", cfg.AppEnv)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	bot.Stop()
	registry.Stop()
	logger.Info("Bot stopped")
}
