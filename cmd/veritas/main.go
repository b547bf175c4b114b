// cmd/veritas/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("Veritas bot v" + VERSION + " starting up...")

	// .env is optional; a hosted environment injects variables directly
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := InitLogger(cfg.LogPath, cfg.LogLevel); err != nil {
		log.Printf("Warning: file logging unavailable: %v", err)
	}

	watchCfg, err := LoadWatchConfig(cfg.WatchConfigPath)
	if err != nil {
		Logger().Error("Failed to load watch config: %v", err)
	}
	if watchCfg == nil {
		// No file; watching starts empty and is driven by /watch commands
		watchCfg = &WatchConfig{Interval: "@every 10m", BufferLimit: 5}
	}

	discord, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		Logger().Error("Failed to create Discord session: %v", err)
		os.Exit(1)
	}
	discord.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	// Claim sources, highest priority first
	var facts StructuredSource
	if cfg.GoogleFactCheckAPIKey != "" {
		facts = NewFactCheckClient(cfg.GoogleFactCheckAPIKey, cfg.FactCheckQPS)
	}
	var ai FreeformSource
	if cfg.OpenAIAPIKey != "" {
		ai = NewAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	pipeline := NewPipeline(facts, ai, NewWikiClient())

	formatter := NewFormatter()
	sessions := NewSessionManager(NewDiscordRenderer(discord, formatter), cfg.SessionTTL, cfg.RestrictNavigation)
	limiter := NewCooldownLimiter(cfg.Cooldown)
	watcher := NewWatcher(watchCfg, pipeline, NewDiscordAlertSink(discord, formatter))

	bot := NewBot(cfg, discord, pipeline, sessions, limiter, watcher, formatter)
	bot.AddHandlers()

	if err := discord.Open(); err != nil {
		Logger().Error("Failed to open Discord connection: %v", err)
		os.Exit(1)
	}
	defer discord.Close()

	if err := RegisterCommands(discord, cfg.AppID, cfg.GuildID); err != nil {
		Logger().Error("Failed to register commands: %v", err)
		os.Exit(1)
	}

	if err := watcher.Start(); err != nil {
		Logger().Error("Failed to start watcher: %v", err)
		os.Exit(1)
	}
	defer watcher.Stop()

	health := NewHealthServer(cfg.HealthPort, sessions, watcher)
	health.Start()

	Logger().Info("Veritas is running. Press CTRL+C to exit.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	Logger().Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := health.Stop(ctx); err != nil {
		Logger().Warning("Health server shutdown: %v", err)
	}
}
