// Package mod provides moderation commands organized as subcommands under /mod
// Each command is in its own file for better organization
package mod

import (
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
)

// RegisterModCommands registers all moderation commands as /mod subcommands
func RegisterModCommands(client *discord.ExtendedClient) {
	// Create individual subcommands (each can be in its own file)
	banCmd := createBanCommand()
	kickCmd := createKickCommand()
	muteCmd := createMuteCommand()
	warnCmd := createWarnCommand()
	warningsCmd := createWarningsCommand()
	removeWarnCmd := createRemoveWarnCommand()
	resetWarnsCmd := createResetWarnsCommand()
	previewCmd := createPreviewCommand()
	escalateCmd := createEscalateCommand()

	// Build the /mod command group with all subcommands
	modGroup := client.CommandHandler.BuildCommandGroup(
		"mod",
		"Moderation commands",
		banCmd,
		kickCmd,
		muteCmd,
		warnCmd,
		warningsCmd,
		removeWarnCmd,
		resetWarnsCmd,
		previewCmd,
		escalateCmd,
	)

	// Register the command group
	client.CommandHandler.AddGlobalCommand(modGroup)
}
