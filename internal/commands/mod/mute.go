// Package mod - /mod mute command
package mod

import (
	"fmt"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/database"
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
	"github.com/WardenStudios/WardenBotGo/pkg/logger"
	"github.com/WardenStudios/WardenBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createMuteCommand creates the /mod mute subcommand
func createMuteCommand() *discord.Command {
	return discord.NewCommand(
		"mute",
		"Temporarily time out a user",
		"mod",
		muteHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User to time out",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "duration",
			Description: "Duration in minutes",
			Required:    true,
			MinValue:    func() *float64 { v := 1.0; return &v }(),
			MaxValue:    40320, // 28 days max
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the timeout",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers)
}

// muteHandler handles the /mod mute command
func muteHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	duration := ctx.GetIntOption("duration")
	if duration < 1 {
		return ctx.ReplyEphemeral("❌ The duration must be at least 1 minute.")
	}

	reason := ctx.GetStringOption("reason")
	if reason == "" {
		reason = defaultReason
	}

	// Calculate timeout until
	timeoutUntil := time.Now().Add(time.Duration(duration) * time.Minute)

	// Apply timeout (mute)
	err := ctx.Session.GuildMemberTimeout(
		ctx.Interaction.GuildID,
		user.ID,
		&timeoutUntil,
	)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Failed to time out: %v", err))
	}

	caseNumber := recordCase(ctx, models.PunishmentTypeTimeout, user.ID, reason,
		fmt.Sprintf("%d minute timeout issued manually", duration))

	response := fmt.Sprintf("🔇 **%s** has been timed out for %d minutes.\n**Reason:** %s",
		user.Username, duration, reason)
	if caseNumber > 0 {
		response += fmt.Sprintf("\n**Case:** #%d", caseNumber)
	}
	return ctx.Reply(response)
}

// recordCase writes the moderation case for a manual action. The
// punishment already happened; a failed case write is logged, not
// surfaced to the moderator as a command failure.
func recordCase(ctx *discord.CommandContext, actionType, userID, reason, additionalInfo string) int {
	created, err := database.NewAuditService().CreateCase(models.ModerationCase{
		GuildID:        ctx.Interaction.GuildID,
		ActionType:     actionType,
		UserID:         userID,
		ModeratorID:    ctx.User().ID,
		Reason:         reason,
		AdditionalInfo: additionalInfo,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Case creation failed for manual %s: %v", actionType, err), "ModCommands")
		return 0
	}
	return created.CaseNumber
}
