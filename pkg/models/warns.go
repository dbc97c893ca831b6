package models

// WarningsDocument es el documento en la colección "warnings": el
// contador de advertencias de un usuario en un servidor.
type WarningsDocument struct {
	GuildID string `bson:"guildId" json:"guildId"`
	UserID  string `bson:"userId" json:"userId"`
	Count   int    `bson:"count" json:"count"`
}
