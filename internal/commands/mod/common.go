// Package mod provides moderation commands organized as subcommands under /mod
package mod

import (
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

const defaultReason = "No reason specified"

// fetchGuild resolves the interaction's guild, falling back to a
// minimal guild when it is not in state yet
func fetchGuild(ctx *discord.CommandContext) *discordgo.Guild {
	if guild := ctx.Guild(); guild != nil {
		return guild
	}
	return &discordgo.Guild{ID: ctx.Interaction.GuildID}
}

// fetchMember resolves a guild member, from state when cached and from
// the API otherwise
func fetchMember(ctx *discord.CommandContext, userID string) (*discordgo.Member, error) {
	if member, err := ctx.Session.State.Member(ctx.Interaction.GuildID, userID); err == nil {
		return member, nil
	}
	return ctx.Session.GuildMember(ctx.Interaction.GuildID, userID)
}
