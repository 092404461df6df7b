// Package web provides API routes for the web server.
package web

import (
	"net/http"
	"strconv"

	"github.com/WardenStudios/WardenBotGo/internal/escalation"
	"github.com/WardenStudios/WardenBotGo/pkg/database"
	"github.com/WardenStudios/WardenBotGo/pkg/discord"
	"github.com/WardenStudios/WardenBotGo/pkg/models"
	"github.com/gin-gonic/gin"
)

const defaultPageSize = 50

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
	}

	protected := s.Group("/api", s.authMiddleware())
	{
		protected.GET("/live", GetLiveFeed().Handler)

		guilds := protected.Group("/guilds/:guildId")
		{
			guilds.GET("/rules", listRulesHandler)
			guilds.POST("/rules", createRuleHandler)
			guilds.PUT("/rules/:ruleId", updateRuleHandler)
			guilds.DELETE("/rules/:ruleId", deleteRuleHandler)

			guilds.GET("/users/:userId/warnings", listWarningsHandler)
			guilds.GET("/users/:userId/preview", previewHandler)
			guilds.POST("/users/:userId/reset", resetWarningsHandler)
			guilds.GET("/users/:userId/history", userHistoryHandler)

			guilds.GET("/log", guildLogHandler)
			guilds.GET("/cases", listCasesHandler)
			guilds.GET("/cases/:caseNumber", getCaseHandler)

			guilds.GET("/settings", getSettingsHandler)
			guilds.PUT("/settings", updateSettingsHandler)
		}
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
		"liveClients": GetLiveFeed().ClientCount(),
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "WardenBot Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "The bot is not available right now.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// ruleRequest is the payload for creating or updating a rule
type ruleRequest struct {
	WarningThreshold          int    `json:"warningThreshold" binding:"required"`
	PunishmentType            string `json:"punishmentType" binding:"required"`
	PunishmentDurationMinutes int    `json:"punishmentDurationMinutes"`
	PunishmentReason          string `json:"punishmentReason"`
	RoleID                    string `json:"roleId"`
	CreatedBy                 string `json:"createdBy"`
}

// listRulesHandler returns the escalation rules for a guild
func listRulesHandler(c *gin.Context) {
	rules, err := database.NewRuleService().GetRules(c.Param("guildId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// createRuleHandler creates a new escalation rule
func createRuleHandler(c *gin.Context) {
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := database.NewRuleService().CreateRule(models.EscalationRule{
		GuildID:                   c.Param("guildId"),
		WarningThreshold:          req.WarningThreshold,
		PunishmentType:            req.PunishmentType,
		PunishmentDurationMinutes: req.PunishmentDurationMinutes,
		PunishmentReason:          req.PunishmentReason,
		RoleID:                    req.RoleID,
		CreatedBy:                 req.CreatedBy,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// updateRuleHandler replaces an existing escalation rule
func updateRuleHandler(c *gin.Context) {
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := database.NewRuleService().UpdateRule(c.Param("guildId"), c.Param("ruleId"), models.EscalationRule{
		WarningThreshold:          req.WarningThreshold,
		PunishmentType:            req.PunishmentType,
		PunishmentDurationMinutes: req.PunishmentDurationMinutes,
		PunishmentReason:          req.PunishmentReason,
		RoleID:                    req.RoleID,
	})
	if err != nil {
		if err == database.ErrRuleNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rule)
}

// deleteRuleHandler removes an escalation rule
func deleteRuleHandler(c *gin.Context) {
	err := database.NewRuleService().DeleteRule(c.Param("guildId"), c.Param("ruleId"))
	if err != nil {
		if err == database.ErrRuleNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// listWarningsHandler returns a user's warnings, active and removed
func listWarningsHandler(c *gin.Context) {
	warnings, err := database.NewWarnService().GetAll(c.Param("guildId"), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"warnings": warnings})
}

// previewHandler reports which rule would fire on the user's next
// warning. It performs no writes.
func previewHandler(c *gin.Context) {
	orchestrator := escalation.Get()
	if orchestrator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "escalation engine not initialized"})
		return
	}

	var countPtr *int
	if raw := c.Query("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a non-negative integer"})
			return
		}
		countPtr = &count
	}

	preview, err := orchestrator.Preview(c.Param("guildId"), c.Param("userId"), countPtr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, preview)
}

// resetRequest is the payload for resetting a user's warnings
type resetRequest struct {
	ModeratorID string `json:"moderatorId" binding:"required"`
	Reason      string `json:"reason"`
}

// resetWarningsHandler deactivates every active warning for a user
func resetWarningsHandler(c *gin.Context) {
	orchestrator := escalation.Get()
	if orchestrator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "escalation engine not initialized"})
		return
	}

	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reason := req.Reason
	if reason == "" {
		reason = "Warnings reset from dashboard"
	}

	removed, err := orchestrator.ResetUserWarnings(
		c.Param("guildId"), c.Param("userId"),
		escalation.HumanModerator{UserID: req.ModeratorID}, reason,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "removed": removed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// limitQuery parses the optional ?limit= parameter
func limitQuery(c *gin.Context) int {
	limit := defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}
	return limit
}

// userHistoryHandler returns a user's escalation history, newest first
func userHistoryHandler(c *gin.Context) {
	entries, err := database.NewAuditService().GetHistory(c.Param("guildId"), c.Param("userId"), limitQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// guildLogHandler returns a guild's escalation log, newest first
func guildLogHandler(c *gin.Context) {
	entries, err := database.NewAuditService().GetGuildLog(c.Param("guildId"), limitQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"log": entries})
}

// listCasesHandler returns a guild's moderation cases, newest first
func listCasesHandler(c *gin.Context) {
	cases, err := database.NewAuditService().GetCases(c.Param("guildId"), limitQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cases": cases})
}

// getCaseHandler returns one moderation case by its per-guild number
func getCaseHandler(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("caseNumber"))
	if err != nil || number < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "caseNumber must be a positive integer"})
		return
	}

	moderationCase, err := database.NewAuditService().GetCase(c.Param("guildId"), number)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if moderationCase == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
		return
	}
	c.JSON(http.StatusOK, moderationCase)
}

// getSettingsHandler returns the guild's settings
func getSettingsHandler(c *gin.Context) {
	settings, err := database.NewSettingsService().GetSettings(c.Param("guildId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// settingsRequest is the payload for updating guild settings
type settingsRequest struct {
	ModLogChannelID string `json:"modLogChannelId"`
	UpdatedBy       string `json:"updatedBy" binding:"required"`
}

// updateSettingsHandler updates the guild's settings
func updateSettingsHandler(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := database.NewSettingsService().SetModLogChannel(c.Param("guildId"), req.ModLogChannelID, req.UpdatedBy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}
