// Package mod - /mod unmute command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createUnmuteCommand creates the /mod unmute subcommand
func createUnmuteCommand() *discord.Command {
	return discord.NewCommand(
		"unmute",
		"Levanta el silencio de un usuario",
		"mod",
		unmuteHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a des-silenciar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionManageRoles)
}

// unmuteHandler handles the /mod unmute command
func unmuteHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	svc := moderation.Get()
	if !svc.Mutes.IsMuted(ctx.Interaction.GuildID, user.ID) {
		return ctx.ReplyEphemeral(fmt.Sprintf("ℹ️ **%s** no está silenciado.", user.Username))
	}

	svc.Mutes.Revoke(ctx.Interaction.GuildID, user.ID,
		fmt.Sprintf("admin unmute (por %s)", ctx.User().ID))

	return ctx.Reply(fmt.Sprintf("🔊 **%s** ya puede hablar de nuevo.", user.Username))
}
