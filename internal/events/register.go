// Package events provides a registry for organizing bot events.
// Events are organized by category (guild, member, message, moderation, etc.)
package events

import (
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
	"github.com/WardenStudios/WardenBotGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
// Add your event registration calls here
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registering bot events...", "Events")

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Guild events (server join/leave)
	RegisterGuildEvents(client)

	// Member events (join/leave/update)
	RegisterMemberEvents(client)

	// Message events (create/update/delete)
	RegisterMessageEvents(client)

	// Moderation events (ban add/remove)
	RegisterModerationEvents(client)

	// Shard events (disconnect/resume)
	RegisterShardEvents(client)

	// Add more categories here as needed:
	// RegisterInteractionEvents(client)

	logger.Success("✅ All events registered successfully", "Events")
}
