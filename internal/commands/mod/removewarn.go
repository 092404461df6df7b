// Package mod - /mod removewarn command
package mod

import (
	"fmt"

	"github.com/WardenStudios/WardenBotGo/pkg/database"
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createRemoveWarnCommand creates the /mod removewarn subcommand
func createRemoveWarnCommand() *discord.Command {
	return discord.NewCommand(
		"removewarn",
		"Remove a single warning from a user",
		"mod",
		removeWarnHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User to remove a warning from",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "warning_id",
			Description: "ID of the warning to remove (see /mod warns)",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the removal",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// removeWarnHandler handles the /mod removewarn command
func removeWarnHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	warningID := ctx.GetStringOption("warning_id")
	if warningID == "" {
		return ctx.ReplyEphemeral("❌ You must specify a warning ID.")
	}

	reason := ctx.GetStringOption("reason")
	if reason == "" {
		reason = defaultReason
	}

	removed, err := database.NewWarnService().RemoveWarning(
		ctx.Interaction.GuildID, user.ID, warningID, ctx.User().ID, reason,
	)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Failed to remove warning: %v", err))
	}
	if !removed {
		return ctx.ReplyEphemeral("❌ That warning does not exist or is already removed.")
	}

	return ctx.Reply(fmt.Sprintf("✅ Warning `%s` removed from **%s**.\n**Reason:** %s",
		warningID, user.Username, reason))
}
