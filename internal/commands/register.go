// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (utils, mod, dev).
package commands

import (
	"github.com/WardenStudios/WardenBotGo/internal/commands/dev"
	"github.com/WardenStudios/WardenBotGo/internal/commands/mod"
	"github.com/WardenStudios/WardenBotGo/internal/commands/utils"
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
// Add your command registration calls here
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands (/utils ping, /utils status, /utils help, /utils stats)
	utils.RegisterUtilsCommands(client)

	// Moderation commands (/mod warn, /mod warns, /mod removewarn,
	// /mod resetwarns, /mod preview, /mod escalate, /mod mute, /mod kick, /mod ban)
	mod.RegisterModCommands(client)

	// Development commands, registered only in the dev guild (/dev eval)
	dev.Register(client)

	// Add more categories here as needed:
	// RegisterFunCommands(client)
}
