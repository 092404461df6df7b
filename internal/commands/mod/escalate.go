// Package mod - /mod escalate command
package mod

import (
	"fmt"

	"github.com/WardenStudios/WardenBotGo/internal/escalation"
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createEscalateCommand creates the /mod escalate subcommand
func createEscalateCommand() *discord.Command {
	return discord.NewCommand(
		"escalate",
		"Manually execute an escalation rule against a user",
		"mod",
		escalateHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User to punish",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "rule_id",
			Description: "ID of the escalation rule to execute",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the manual escalation",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// escalateHandler handles the /mod escalate command. Manual triggers
// bypass the threshold evaluator and the deduplication guard; the
// audit trail records the invoking moderator, not the automated
// system.
func escalateHandler(ctx *discord.CommandContext) error {
	orchestrator := escalation.Get()
	if orchestrator == nil {
		return ctx.ReplyEphemeral("❌ The escalation engine is not available.")
	}

	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	ruleID := ctx.GetStringOption("rule_id")
	if ruleID == "" {
		return ctx.ReplyEphemeral("❌ You must specify a rule ID.")
	}

	reason := ctx.GetStringOption("reason")
	if reason == "" {
		reason = "manual escalation"
	}

	member, err := fetchMember(ctx, user.ID)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Could not resolve member: %v", err))
	}

	result, err := orchestrator.ManualTrigger(
		fetchGuild(ctx), member, ruleID, reason,
		escalation.HumanModerator{UserID: ctx.User().ID},
	)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Escalation failed: %v", err))
	}

	if !result.Success {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Punishment failed: %s", result.Error))
	}

	response := fmt.Sprintf("⚖️ Rule `%s` executed against **%s**: %s", ruleID, user.Username, result.Action)
	if result.CaseNumber > 0 {
		response += fmt.Sprintf(" (Case #%d)", result.CaseNumber)
	}
	return ctx.Reply(response)
}
