// Package mod - /mod warn command
package mod

import (
	"fmt"

	"github.com/WardenStudios/WardenBotGo/internal/escalation"
	"github.com/WardenStudios/WardenBotGo/pkg/database"
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createWarnCommand creates the /mod warn subcommand
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Warn a user",
		"mod",
		warnHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User to warn",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the warning",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// warnHandler handles the /mod warn command. Recording the warning and
// checking escalation are separate steps: a failed escalation check
// never rolls back the warning.
func warnHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	reason := ctx.GetStringOption("reason")
	if reason == "" {
		return ctx.ReplyEphemeral("❌ You must specify a reason.")
	}

	_, count, err := database.NewWarnService().AddWarning(
		ctx.Interaction.GuildID, user.ID, ctx.User().ID, reason,
	)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Failed to record warning: %v", err))
	}

	response := fmt.Sprintf("⚠️ **%s** has been warned (%d active warnings).\n**Reason:** %s\n**Moderator:** %s",
		user.Username, count, reason, ctx.User().Username)

	if orchestrator := escalation.Get(); orchestrator != nil {
		member, err := fetchMember(ctx, user.ID)
		if err == nil {
			result := orchestrator.CheckAndExecute(fetchGuild(ctx), member, "warning issued by "+ctx.User().ID)
			if result.Triggered && result.PunishmentResult != nil {
				if result.PunishmentResult.Success {
					response += fmt.Sprintf("\n⚖️ Escalation triggered: **%s**", result.PunishmentResult.Action)
					if result.PunishmentResult.CaseNumber > 0 {
						response += fmt.Sprintf(" (Case #%d)", result.PunishmentResult.CaseNumber)
					}
				} else {
					response += fmt.Sprintf("\n⚖️ Escalation attempted but failed: %s", result.PunishmentResult.Error)
				}
			}
		}
	}

	return ctx.Reply(response)
}
