// Package events provides event handlers for guild (server) events
package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterGuildEvents registers all guild-related event handlers
func RegisterGuildEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(func(s *discordgo.Session, g *discordgo.GuildCreate) {
		onGuildCreate(client, s, g)
	})
	client.Session.AddHandler(onGuildDelete)
}

// onGuildCreate is called when the bot joins a server
func onGuildCreate(client *discord.ExtendedClient, s *discordgo.Session, g *discordgo.GuildCreate) {

	Join := g.JoinedAt
	if Join.Compare(time.Now().Add(-10*time.Second)) < 0 {
		return
	}

	logger.Info(fmt.Sprintf("➕ Bot agregado a servidor: %s (ID: %s)", g.Name, g.ID), "Guild")
	logger.Debug(fmt.Sprintf("   Miembros: %d | Canales: %d", g.MemberCount, len(g.Channels)), "Guild")

	// Prepare the restriction role up front so the first mute is instant
	adapter := discord.NewPlatformAdapter(client)
	if _, err := adapter.EnsureRoleExists(g.ID, "Muted"); err != nil {
		logger.Error(fmt.Sprintf("No se pudo preparar el rol Muted en %s: %v", g.ID, err), "Guild")
	}

	if g.SystemChannelID != "" {
		welcomeEmbed := &discordgo.MessageEmbed{
			Title:       "¡Gracias por agregarme! 🛡️",
			Description: "Hola, soy **PancyGuard**. A partir de ahora vigilo este servidor.",
			Color:       0x00ff00,
			Fields: []*discordgo.MessageEmbedField{
				{
					Name:   "🔧 Moderación",
					Value:  "Usa `/mod` para gestionar advertencias y silencios",
					Inline: true,
				},
				{
					Name:   "📋 Registro",
					Value:  "Crea un canal `mod-logs` para recibir el historial",
					Inline: true,
				},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text: "PancyGuard",
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}

		_, err := s.ChannelMessageSendEmbed(g.SystemChannelID, welcomeEmbed)
		if err != nil {
			logger.Error(fmt.Sprintf("Error enviando mensaje de bienvenida: %v", err), "Guild")
		}
	}
}

// onGuildDelete is called when the bot is removed from a server
func onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	logger.Info(fmt.Sprintf("➖ Bot removido del servidor ID: %s", g.ID), "Guild")
}
