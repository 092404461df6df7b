package dev

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/config"
	"github.com/WardenStudios/WardenBotGo/pkg/database"
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
	"github.com/WardenStudios/WardenBotGo/pkg/errors"
	"github.com/WardenStudios/WardenBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// CreateEvalCommand creates the /dev eval command
func CreateEvalCommand() *discord.Command {
	return discord.NewCommand(
		"eval",
		"Evaluate Go code and inspect internal state (dangerous)",
		"dev",
		evalHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "code",
			Description: "Go code or expression to evaluate",
			Required:    true,
		},
	)
}

func evalHandler(ctx *discord.CommandContext) error {
	go func() {
		errors.RecoverMiddleware()()
		start := time.Now()
		// Eval runs arbitrary code in-process. Dev commands are only
		// registered in the dev guild, and we still require admin.
		if !isDev(ctx) {
			ctx.ReplyEphemeral("❌ **Access denied:** this command is restricted to developers.")
			return
		}

		// Compiling the script can take a few milliseconds
		ctx.Defer()

		code := ctx.GetStringOption("code")
		// Strip markdown code fences if present (```go ... ```)
		code = strings.TrimPrefix(code, "```go")
		code = strings.TrimPrefix(code, "```")
		code = strings.TrimSuffix(code, "```")
		code = strings.TrimSpace(code)

		// Initialize the Yaegi interpreter
		i := interp.New(interp.Options{})

		// Load the Go standard library (fmt, strings, os, etc.)
		if err := i.Use(stdlib.Symbols); err != nil {
			ctx.EditReply(fmt.Sprintf("❌ Error loading stdlib: %v", err))
			return
		}

		// Inject bot state as exported symbols so the script can use
		// 'DB', 'Ctx', 'Bot' directly
		botExports := map[string]reflect.Value{
			"Ctx":     reflect.ValueOf(ctx),
			"Bot":     reflect.ValueOf(ctx.Client),
			"Session": reflect.ValueOf(ctx.Session),
			"DB":      reflect.ValueOf(database.Get()),
			"Config":  reflect.ValueOf(config.Get()),
		}

		if err := i.Use(interp.Exports{
			"github.com/WardenStudios/WardenBotGo/internal/commands/dev/dev": botExports,
		}); err != nil {
			ctx.EditReply(fmt.Sprintf("❌ Error registering symbols: %v", err))
			return
		}

		_, err := i.Eval(`import . "github.com/WardenStudios/WardenBotGo/internal/commands/dev"`)
		if err != nil {
			ctx.EditReply(fmt.Sprintf("❌ Error importing symbols: %v", err))
			return
		}

		// Execute the user's code
		res, err := i.Eval(code)

		var output string
		if err != nil {
			output = fmt.Sprintf("❌ **Execution error:**\n```go\n%v\n```", err)
		} else {
			var resStr string
			if res.IsValid() {
				// %#v shows the full internal structure (fields, pointers)
				resStr = fmt.Sprintf("%#v", res.Interface())
			} else {
				resStr = "nil"
			}
			if len(resStr) > 1900 {
				resStr = resStr[:1900] + "... (truncated)"
			}

			output = fmt.Sprintf("✅ **Result:**\n```go\n%s\n```", resStr)
		}

		elapsed := time.Since(start)
		logger.Debug(fmt.Sprintf("Eval completed in %s.", elapsed), "DevEval")

		ctx.EditReply(output)
	}()
	return nil
}

// isDev requires the invocation to come from an administrator in the
// configured dev guild.
func isDev(ctx *discord.CommandContext) bool {
	cfg := config.Get()
	if cfg.DevGuildID == "" || ctx.Interaction.GuildID != cfg.DevGuildID {
		return false
	}
	if ctx.Member() == nil {
		return false
	}
	return ctx.Member().Permissions&discordgo.PermissionAdministrator != 0
}
