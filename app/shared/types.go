package shared

// DiscordID is a Discord snowflake carried as a string end to end.
type DiscordID string
