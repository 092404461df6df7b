// Package mod - /mod warns command
package mod

import (
	"fmt"
	"strings"

	"github.com/WardenStudios/WardenBotGo/pkg/database"
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createWarningsCommand creates the /mod warns subcommand
func createWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"warns",
		"Show a user's active warnings",
		"mod",
		warningsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User to inspect",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// warningsHandler handles the /mod warns command
func warningsHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	warnings, err := database.NewWarnService().GetActive(ctx.Interaction.GuildID, user.ID)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Failed to load warnings: %v", err))
	}

	if len(warnings) == 0 {
		return ctx.ReplyEphemeral(fmt.Sprintf("✅ **%s** has no active warnings.", user.Username))
	}

	var lines []string
	for i, w := range warnings {
		lines = append(lines, fmt.Sprintf("**%d.** %s\n> ID: `%s` | Moderator: <@%s> | <t:%d:R>",
			i+1, w.Reason, w.ID, w.ModeratorID, w.CreatedAt))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("⚠️ Warnings for %s", user.Username),
		Description: strings.Join(lines, "\n"),
		Color:       0xE67E22,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d active warnings", len(warnings)),
		},
	}

	return ctx.ReplyEmbed(embed)
}
