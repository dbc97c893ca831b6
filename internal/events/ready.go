// Package events provides event handlers for the bot
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/audit"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// uptimeInterval is how often the liveness line is written
const uptimeInterval = 5 * time.Minute

var uptimeOnce sync.Once

// RegisterReadyEvent registers the ready event handler
func RegisterReadyEvent(client *discord.ExtendedClient) {
	client.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		onReady(client, s, r)
	})
	client.Session.AddHandler(onDebug)
}

// onReady is called when the bot successfully connects to Discord
func onReady(client *discord.ExtendedClient, s *discordgo.Session, r *discordgo.Ready) {
	logger.Success(fmt.Sprintf("✅ Bot conectado: %s#%s", r.User.Username, r.User.Discriminator), "Ready")
	logger.Info(fmt.Sprintf("📊 Vigilando %d servidores", len(r.Guilds)), "Ready")

	// Establecer estado del bot
	err := s.UpdateGameStatus(0, "🛡️ Moderando el chat")
	if err != nil {
		logger.Error(fmt.Sprintf("Error estableciendo estado: %v", err), "Ready")
		return
	}

	logger.Debug("Estado del bot establecido correctamente", "Ready")

	// Liveness heartbeat, useful to spot silent gateway drops in the logs
	uptimeOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(uptimeInterval)
			defer ticker.Stop()
			for range ticker.C {
				uptime := time.Since(client.StartTime).Round(time.Second)
				logger.Info(fmt.Sprintf("💓 Bot en línea. Uptime: %s | Servidores: %d",
					uptime, client.GuildCount()), "Uptime")
				audit.Get().Record("", fmt.Sprintf("UPTIME_PING - %s - %d servidores", uptime, client.GuildCount()))
			}
		}()
	})
}

func onDebug(s *discordgo.Session, log string) {
	logger.Debug(log, "DiscordGO")
}
