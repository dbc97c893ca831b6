// Package main is the entry point for the PancyGuard Go application.
// It initializes all systems and starts the Discord moderation bot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/commands"
	"github.com/PancyStudios/PancyGuardGo/internal/events"
	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/audit"
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/mqtt"
	"github.com/PancyStudios/PancyGuardGo/pkg/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando PancyGuard Go...", "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			err := discordClient.Stop()
			if err != nil {
				return
			}
		}
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		// Continue without database - it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			err := db.Disconnect()
			if err != nil {
				return
			}
		}
	}()

	// Initialize global DataManagers
	if db != nil {
		database.InitGlobalDataManagers(db)
	}

	// Initialize MQTT
	mqttClientID := "pancyguard"
	if !cfg.IsProd() {
		mqttClientID = "pancyguard_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Initialize the audit trail and bridge it to MQTT
	auditLogger := audit.Init()
	defer auditLogger.Close()
	auditLogger.SetPublisher(func(record audit.Record) {
		if !mqttClient.IsConnected() {
			return
		}
		if err := mqttClient.Publish("pancyguard/moderation/actions", record); err != nil {
			logger.Debug(fmt.Sprintf("No se pudo publicar el evento de moderación: %v", err), "Main")
		}
	})

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Wire the moderation service over the Discord adapter
	platform := discord.NewPlatformAdapter(discordClient)
	auditLogger.SetMirror(platform.MirrorToModLog)

	var scorer moderation.Scorer
	if cfg.AIEnabled() {
		logger.Info("Puntuación remota habilitada (OpenAI Moderations).", "Main")
		scorer = moderation.NewRemoteScorer(cfg.OpenAIAPIKey, moderation.NewHeuristicScorer())
	} else {
		logger.Warn("Sin clave de OpenAI: usando solo la heurística local.", "Main")
		scorer = moderation.NewHeuristicOnly(moderation.NewHeuristicScorer())
	}

	svc := moderation.Init(moderation.ServiceDeps{
		Config: moderation.PipelineConfig{
			MaxWarnings:   cfg.MaxWarnings,
			MuteDuration:  time.Duration(cfg.MuteDuration) * time.Second,
			BotDeleteTime: time.Duration(cfg.BotDeleteTime) * time.Second,
		},
		Scorer:   scorer,
		Store:    database.NewWarningStore(db),
		Platform: platform,
		Audit:    auditLogger,
		Spam:     moderation.NewSpamDetector(time.Duration(cfg.SpamWindow)*time.Second, cfg.SpamLimit),
	})

	// Restore warning counts so restarts don't forget offenders
	svc.Ledger.LoadFromStore(context.Background())

	// Initialize web server (dashboard + API)
	webServer := web.Init(cfg.LogsWebServerHook)
	web.SetupAPIRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	// Register commands and events
	commands.RegisterAll(discordClient)
	events.RegisterAll(discordClient)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		err := discordClient.Stop()
		if err != nil {

		}
	}(discordClient)

	logger.Success("PancyGuard Go iniciado correctamente!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando PancyGuard Go...", "Main")
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
