package moderation

import "time"

// MessageRef identifies a platform message for deletion.
type MessageRef struct {
	ChannelID string
	MessageID string
}

// MessageEvent is one incoming chat message, consumed once by the
// pipeline.
type MessageEvent struct {
	AuthorID    string
	AuthorIsBot bool
	GuildID     string
	ChannelID   string
	MessageID   string
	Content     string
	Timestamp   time.Time
}

// Ref returns the message reference for deletion.
func (e MessageEvent) Ref() MessageRef {
	return MessageRef{ChannelID: e.ChannelID, MessageID: e.MessageID}
}

// Platform is the chat-platform collaborator consumed by the core. The
// core never touches the transport directly; pkg/discord implements
// this over discordgo and tests implement it with fakes.
type Platform interface {
	DeleteMessage(ref MessageRef) error
	// SendChannelMessage posts text to a channel; when deleteAfter is
	// positive the notice is removed again after that delay.
	SendChannelMessage(channelID, text string, deleteAfter time.Duration) error
	GrantRole(guildID, userID, roleID string) error
	RevokeRole(guildID, userID, roleID string) error
	// EnsureRoleExists finds or creates the named restriction role and
	// returns its ID.
	EnsureRoleExists(guildID, name string) (string, error)
}
