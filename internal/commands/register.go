// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (utils, mod, etc.)
package commands

import (
	"github.com/PancyStudios/PancyGuardGo/internal/commands/mod"
	"github.com/PancyStudios/PancyGuardGo/internal/commands/utils"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands (/utils ping, /utils status, /utils stats, /utils uptime)
	utils.RegisterUtilsCommands(client)

	// Moderation commands (/mod warn, /mod warns, /mod clearwarns, /mod mute, /mod unmute, /mod ban, /mod kick)
	mod.RegisterModCommands(client)
}
