// Package mod - /mod warn command
package mod

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/audit"
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createWarnCommand creates the /mod warn subcommand
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Advierte a un usuario",
		"mod",
		warnHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a advertir",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la advertencia",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers)
}

// warnHandler handles the /mod warn command. A manual warning goes
// through the same ledger as automatic ones, so it also counts toward
// the mute escalation.
func warnHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	if user.Bot {
		return ctx.ReplyEphemeral("❌ No puedes advertir a un bot.")
	}

	reason := ctx.GetStringOption("razon")
	if reason == "" {
		return ctx.ReplyEphemeral("❌ Debes especificar una razón.")
	}

	svc := moderation.Get()
	cfg := config.Get()
	guildID := ctx.Interaction.GuildID

	count, escalated := svc.Ledger.AddWarning(context.Background(), guildID, user.ID, cfg.MaxWarnings)
	audit.Get().Record(guildID, fmt.Sprintf("%s - WARNING - %s (por %s) - %d/%d",
		user.ID, reason, ctx.User().ID, count, cfg.MaxWarnings))

	if escalated {
		duration := time.Duration(cfg.MuteDuration) * time.Second
		svc.Mutes.Apply(guildID, user.ID, duration, "Reached max warnings")
		return ctx.Reply(fmt.Sprintf("🔇 **%s** alcanzó el máximo de advertencias y ha sido silenciado.\n**Razón:** %s",
			user.Username, reason))
	}

	return ctx.Reply(fmt.Sprintf("⚠️ **%s** ha sido advertido (%d/%d).\n**Razón:** %s\n**Moderador:** %s",
		user.Username, count, cfg.MaxWarnings, reason, ctx.User().Username))
}
