// Package mod - /mod resetwarns command
package mod

import (
	"fmt"

	"github.com/WardenStudios/WardenBotGo/internal/escalation"
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createResetWarnsCommand creates the /mod resetwarns subcommand
func createResetWarnsCommand() *discord.Command {
	return discord.NewCommand(
		"resetwarns",
		"Remove all active warnings from a user",
		"mod",
		resetWarnsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User whose warnings will be reset",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the reset",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// resetWarnsHandler handles the /mod resetwarns command
func resetWarnsHandler(ctx *discord.CommandContext) error {
	orchestrator := escalation.Get()
	if orchestrator == nil {
		return ctx.ReplyEphemeral("❌ The escalation engine is not available.")
	}

	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	reason := ctx.GetStringOption("reason")
	if reason == "" {
		reason = "Warnings reset by moderator"
	}

	removed, err := orchestrator.ResetUserWarnings(
		ctx.Interaction.GuildID, user.ID,
		escalation.HumanModerator{UserID: ctx.User().ID}, reason,
	)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Reset stopped after %d removals: %v", removed, err))
	}
	if removed == 0 {
		return ctx.ReplyEphemeral(fmt.Sprintf("✅ **%s** had no active warnings.", user.Username))
	}

	return ctx.Reply(fmt.Sprintf("✅ Removed **%d** warnings from **%s**.\n**Reason:** %s",
		removed, user.Username, reason))
}
