package utils

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
)

// createUptimeCommand creates the /utils uptime subcommand
func createUptimeCommand() *discord.Command {
	return discord.NewCommand(
		"uptime",
		"Muestra cuánto tiempo lleva el bot en línea",
		"utils",
		uptimeHandler,
	)
}

// uptimeHandler handles the /utils uptime command
func uptimeHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		uptime := time.Since(ctx.Client.StartTime)
		ctx.Reply(fmt.Sprintf("⏱ El bot lleva en línea: **%s**", formatDuration(uptime)))
	}()
	return nil
}
