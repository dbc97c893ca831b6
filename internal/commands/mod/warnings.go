// Package mod - /mod warns command
package mod

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

// createWarningsCommand creates the /mod warns subcommand
func createWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"warns",
		"Muestra las advertencias de un usuario",
		"mod",
		warningsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "[STAFF] Usuario a buscar (opcional)",
			Required:    false,
		},
	)
}

func warningsHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		targetUser := ctx.GetUserOption("usuario")
		isSelf := false

		perms, err := ctx.Session.UserChannelPermissions(ctx.User().ID, ctx.Interaction.ChannelID)
		if err != nil {
			perms = 0
		}
		isModerator := (perms & discordgo.PermissionManageMessages) != 0

		if targetUser == nil {
			targetUser = ctx.User()
			isSelf = true
		}

		// Only staff can look up someone else
		if !isSelf && !isModerator {
			ctx.ReplyEphemeral("❌ No tienes permisos para ver las advertencias de otro usuario.")
			return
		}

		svc := moderation.Get()
		count := svc.Ledger.Get(ctx.Interaction.GuildID, targetUser.ID)
		muted := svc.Mutes.IsMuted(ctx.Interaction.GuildID, targetUser.ID)

		color := 0x00FF00 // Green
		if count > 0 {
			color = 0xFFA500 // Orange
		}

		mutedText := "No"
		if muted {
			mutedText = "Sí 🔇"
		}

		embed := &discordgo.MessageEmbed{
			Title: fmt.Sprintf("🔖 - Advertencias de %s", targetUser.Username),
			Color: color,
			Description: fmt.Sprintf(
				"> 💫 - **Cantidad de advertencias:** %d/%d\n"+
					"> 🔇 - **Silenciado:** %s\n"+
					"> 🕒 - **Fecha de consulta:** <t:%d>",
				count, config.Get().MaxWarnings, mutedText, time.Now().Unix()),
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 - Developed by PancyStudios",
			},
		}

		ctx.ReplyEphemeralEmbed(embed)
	}()
	return nil
}
