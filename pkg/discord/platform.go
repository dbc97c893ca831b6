// Package discord provides the moderation platform adapter over discordgo.
package discord

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// PlatformAdapter implements moderation.Platform over the live session
type PlatformAdapter struct {
	client *ExtendedClient
}

// NewPlatformAdapter creates the adapter for the given client
func NewPlatformAdapter(client *ExtendedClient) *PlatformAdapter {
	return &PlatformAdapter{client: client}
}

// DeleteMessage removes a message from its channel
func (p *PlatformAdapter) DeleteMessage(ref moderation.MessageRef) error {
	return p.client.Session.ChannelMessageDelete(ref.ChannelID, ref.MessageID)
}

// SendChannelMessage posts a notice. A positive deleteAfter schedules
// its removal so warning notices don't pile up in busy channels.
func (p *PlatformAdapter) SendChannelMessage(channelID, text string, deleteAfter time.Duration) error {
	msg, err := p.client.Session.ChannelMessageSend(channelID, text)
	if err != nil {
		return err
	}

	if deleteAfter > 0 {
		go func() {
			time.Sleep(deleteAfter)
			if err := p.client.Session.ChannelMessageDelete(channelID, msg.ID); err != nil {
				logger.Debug(fmt.Sprintf("No se pudo borrar el aviso %s: %v", msg.ID, err), "Platform")
			}
		}()
	}
	return nil
}

// MirrorToModLog posts an audit line to the guild's mod-log channel,
// if it has one with the configured name.
func (p *PlatformAdapter) MirrorToModLog(guildID, text string) {
	channelID := p.findChannelByName(guildID, p.client.GetConfig().ModLogChannel)
	if channelID == "" {
		return
	}
	if _, err := p.client.Session.ChannelMessageSend(channelID, "📋 "+text); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo enviar al canal de mod-logs: %v", err), "Platform")
	}
}

func (p *PlatformAdapter) findChannelByName(guildID, name string) string {
	if name == "" {
		return ""
	}

	if guild, err := p.client.Session.State.Guild(guildID); err == nil {
		for _, channel := range guild.Channels {
			if channel.Name == name && channel.Type == discordgo.ChannelTypeGuildText {
				return channel.ID
			}
		}
		return ""
	}

	channels, err := p.client.Session.GuildChannels(guildID)
	if err != nil {
		return ""
	}
	for _, channel := range channels {
		if channel.Name == name && channel.Type == discordgo.ChannelTypeGuildText {
			return channel.ID
		}
	}
	return ""
}

// GrantRole adds a role to a guild member
func (p *PlatformAdapter) GrantRole(guildID, userID, roleID string) error {
	return p.client.Session.GuildMemberRoleAdd(guildID, userID, roleID)
}

// RevokeRole removes a role from a guild member
func (p *PlatformAdapter) RevokeRole(guildID, userID, roleID string) error {
	return p.client.Session.GuildMemberRoleRemove(guildID, userID, roleID)
}

// EnsureRoleExists finds the named role or creates it. A newly created
// role gets SendMessages and Speak denied on every channel so the mute
// actually bites.
func (p *PlatformAdapter) EnsureRoleExists(guildID, name string) (string, error) {
	roles, err := p.client.Session.GuildRoles(guildID)
	if err != nil {
		return "", fmt.Errorf("error al listar roles de %s: %w", guildID, err)
	}
	for _, role := range roles {
		if role.Name == name {
			return role.ID, nil
		}
	}

	logger.Info(fmt.Sprintf("Creando rol '%s' en el servidor %s...", name, guildID), "Platform")
	role, err := p.client.Session.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("error al crear el rol '%s': %w", name, err)
	}

	channels, err := p.client.Session.GuildChannels(guildID)
	if err != nil {
		logger.Warn(fmt.Sprintf("Rol creado pero no se pudieron listar canales: %v", err), "Platform")
		return role.ID, nil
	}

	deny := int64(discordgo.PermissionSendMessages | discordgo.PermissionVoiceSpeak)
	for _, channel := range channels {
		err := p.client.Session.ChannelPermissionSet(
			channel.ID,
			role.ID,
			discordgo.PermissionOverwriteTypeRole,
			0,
			deny,
		)
		if err != nil {
			logger.Debug(fmt.Sprintf("No se pudo restringir el canal %s: %v", channel.ID, err), "Platform")
		}
	}

	logger.Success(fmt.Sprintf("Rol '%s' creado y restringido en %d canales.", name, len(channels)), "Platform")
	return role.ID, nil
}
