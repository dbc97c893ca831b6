// Package events provides event handlers for message events
package events

import (
	"context"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

// RegisterMessageEvents registers all message-related event handlers
func RegisterMessageEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onMessageCreate(client))
}

// onMessageCreate feeds every guild message into the moderation
// pipeline. The handler itself stays cheap: scoring runs on its own
// goroutine so a slow provider never backs up the gateway.
func onMessageCreate(client *discord.ExtendedClient) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}
		// DMs are not moderated
		if m.GuildID == "" {
			return
		}

		svc := moderation.Get()
		if svc == nil {
			return
		}

		ev := moderation.MessageEvent{
			AuthorID:  m.Author.ID,
			GuildID:   m.GuildID,
			ChannelID: m.ChannelID,
			MessageID: m.ID,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		}

		go func() {
			defer errors.RecoverMiddleware()()
			svc.Pipeline.HandleMessage(context.Background(), ev)
		}()
	}
}
