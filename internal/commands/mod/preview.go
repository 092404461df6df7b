// Package mod - /mod preview command
package mod

import (
	"fmt"

	"github.com/WardenStudios/WardenBotGo/internal/escalation"
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createPreviewCommand creates the /mod preview subcommand
func createPreviewCommand() *discord.Command {
	return discord.NewCommand(
		"preview",
		"Show what the next warning would trigger for a user",
		"mod",
		previewHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User to preview",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "count",
			Description: "Assume this warning count instead of the stored one",
			Required:    false,
			MinValue:    func() *float64 { v := 0.0; return &v }(),
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// previewHandler handles the /mod preview command. The preview is
// side-effect free: nothing is written and no punishment runs.
func previewHandler(ctx *discord.CommandContext) error {
	orchestrator := escalation.Get()
	if orchestrator == nil {
		return ctx.ReplyEphemeral("❌ The escalation engine is not available.")
	}

	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	var countPtr *int
	if opt := ctx.GetOption("count"); opt != nil {
		count := int(opt.IntValue())
		countPtr = &count
	}

	preview, err := orchestrator.Preview(ctx.Interaction.GuildID, user.ID, countPtr)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Preview failed: %v", err))
	}

	if preview.Rule == nil {
		return ctx.ReplyEphemeral(fmt.Sprintf(
			"🔍 **%s** has **%d** active warnings. Warning #%d would not trigger any escalation rule.",
			user.Username, preview.WarningCount, preview.NextWarningCount))
	}

	description := fmt.Sprintf(
		"**User:** %s\n**Active warnings:** %d\n**Next warning (#%d) would trigger:** %s",
		user.Username, preview.WarningCount, preview.NextWarningCount, preview.Rule.PunishmentType)
	if preview.Rule.PunishmentDurationMinutes > 0 {
		description += fmt.Sprintf(" (%d minutes)", preview.Rule.PunishmentDurationMinutes)
	}
	description += fmt.Sprintf("\n**Rule:** `%s`\n**Reason:** %s", preview.Rule.ID, preview.Rule.PunishmentReason)

	return ctx.ReplyEphemeralEmbed(&discordgo.MessageEmbed{
		Title:       "🔍 Escalation preview",
		Description: description,
		Color:       0x3498DB,
	})
}
