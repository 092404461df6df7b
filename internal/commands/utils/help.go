package utils

import (
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
	"github.com/WardenStudios/WardenBotGo/pkg/errors"
)

// createHelpCommand creates the /utils help subcommand
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Show help information",
		"utils",
		helpHandler,
	)
}

// helpHandler handles the /utils help command
func helpHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		ctx.Reply(
			"📖 **WardenBot Go Help**\n\n" +
				"**Available commands:**\n" +
				"• `/utils ping` - Check the latency\n" +
				"• `/utils status` - Bot status\n" +
				"• `/utils stats` - Bot statistics\n" +
				"• `/mod warn <user> <reason>` - Warn a user\n" +
				"• `/mod warns <user>` - List a user's active warnings\n" +
				"• `/mod removewarn <user> <warning_id>` - Remove a warning\n" +
				"• `/mod resetwarns <user>` - Reset a user's warnings\n" +
				"• `/mod preview <user> [count]` - Preview the escalation outcome\n" +
				"• `/mod escalate <user> <rule_id>` - Manually execute an escalation rule\n" +
				"• `/mod mute <user> <duration> [reason]` - Time out a user\n" +
				"• `/mod kick <user> [reason]` - Kick a user\n" +
				"• `/mod ban <user> [reason] [days]` - Ban a user",
		)
	}()
	return nil
}
