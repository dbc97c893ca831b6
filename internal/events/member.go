// Package events provides event handlers for member events
package events

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/audit"
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildMemberAdd)
	client.Session.AddHandler(onGuildMemberRemove)
}

// onGuildMemberAdd is called when a new member joins the server
func onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	logger.Info(fmt.Sprintf("👋 Nuevo miembro: %s en servidor %s",
		m.User.Username, m.GuildID), "Member")

	autoRole := config.Get().AutoRole
	if autoRole == "" {
		return
	}

	roleID := findRoleByName(s, m.GuildID, autoRole)
	if roleID == "" {
		logger.Warn(fmt.Sprintf("Rol automático '%s' no existe en %s", autoRole, m.GuildID), "Member")
		return
	}

	if err := s.GuildMemberRoleAdd(m.GuildID, m.User.ID, roleID); err != nil {
		logger.Error(fmt.Sprintf("Error asignando rol automático a %s: %v", m.User.ID, err), "Member")
		return
	}

	audit.Get().Record(m.GuildID, fmt.Sprintf("%s - AUTOROLE - asignado '%s'", m.User.ID, autoRole))
}

// onGuildMemberRemove is called when a member leaves the server
func onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	logger.Info(fmt.Sprintf("👋 Adiós: %s salió del servidor %s",
		m.User.Username, m.GuildID), "Member")
}

// findRoleByName resolves a role ID from its display name
func findRoleByName(s *discordgo.Session, guildID, name string) string {
	roles, err := s.GuildRoles(guildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error listando roles de %s: %v", guildID, err), "Member")
		return ""
	}
	for _, role := range roles {
		if role.Name == name {
			return role.ID
		}
	}
	return ""
}
