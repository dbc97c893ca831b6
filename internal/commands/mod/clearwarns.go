// Package mod - /mod clearwarns command
package mod

import (
	"context"
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/audit"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createClearWarnsCommand creates the /mod clearwarns subcommand
func createClearWarnsCommand() *discord.Command {
	return discord.NewCommand(
		"clearwarns",
		"Reinicia las advertencias de un usuario",
		"mod",
		clearWarnsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario cuyas advertencias se reinician",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers)
}

// clearWarnsHandler handles the /mod clearwarns command
func clearWarnsHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	guildID := ctx.Interaction.GuildID
	svc := moderation.Get()

	previous := svc.Ledger.Get(guildID, user.ID)
	svc.Ledger.Reset(context.Background(), guildID, user.ID)

	audit.Get().Record(guildID, fmt.Sprintf("%s - CLEARWARNS - %d advertencias reiniciadas por %s",
		user.ID, previous, ctx.User().ID))

	return ctx.Reply(fmt.Sprintf("✅ Advertencias de **%s** reiniciadas (tenía %d).",
		user.Username, previous))
}
