package dev

import (
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
)

// Register registers all dev commands as /dev subcommands (only in dev guild)
func Register(client *discord.ExtendedClient) {
	evalCmd := CreateEvalCommand()

	// Build the /dev command group
	devGroup := client.CommandHandler.BuildCommandGroup(
		"dev",
		"Development commands",
		evalCmd,
	)

	// Register the command group as dev-only command
	client.CommandHandler.AddDevCommand(devGroup)
}
