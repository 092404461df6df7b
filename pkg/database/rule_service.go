// Package database provides the RuleCache for in-memory escalation rule lookups.
package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/logger"
	"github.com/WardenStudios/WardenBotGo/pkg/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrRuleManagerNotInitialized = errors.New("rule data manager not initialized")
	ErrRuleNotFound              = errors.New("escalation rule not found")
)

// RuleCache provides an in-memory cache of escalation rules keyed by
// guild. Rule evaluation runs on every warning, so lookups must not
// touch the database.
type RuleCache struct {
	rules       map[string][]models.EscalationRule
	mu          sync.RWMutex
	stopRefresh chan struct{}
	refreshing  bool
}

var (
	ruleCache     *RuleCache
	ruleCacheOnce sync.Once
)

// GetRuleCache returns the global rule cache instance
func GetRuleCache() *RuleCache {
	ruleCacheOnce.Do(func() {
		ruleCache = &RuleCache{
			rules:       make(map[string][]models.EscalationRule),
			stopRefresh: make(chan struct{}),
		}
	})
	return ruleCache
}

// InitRuleCache initializes the rule cache by loading all rules from the database
func InitRuleCache() error {
	cache := GetRuleCache()
	return cache.Refresh()
}

// StartRuleCacheRefresh starts the automatic cache refresh every 5 minutes
func StartRuleCacheRefresh() {
	cache := GetRuleCache()
	cache.StartAutoRefresh(5 * time.Minute)
}

// StopRuleCacheRefresh stops the automatic cache refresh
func StopRuleCacheRefresh() {
	cache := GetRuleCache()
	cache.StopAutoRefresh()
}

// sortRules orders rules by threshold, then creation time. The first
// match wins during evaluation, so the order must be deterministic.
func sortRules(rules []models.EscalationRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].WarningThreshold != rules[j].WarningThreshold {
			return rules[i].WarningThreshold < rules[j].WarningThreshold
		}
		return rules[i].CreatedAt.Before(rules[j].CreatedAt)
	})
}

// Refresh reloads all escalation rules from the database
func (c *RuleCache) Refresh() error {
	if GlobalRuleDM == nil {
		logger.Warn("RuleCache: DataManager not initialized", "RuleCache")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := GlobalRuleDM.collection
	if collection == nil {
		logger.Warn("RuleCache: Collection not available", "RuleCache")
		return nil
	}

	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		logger.Error("RuleCache: Error fetching escalation rules: "+err.Error(), "RuleCache")
		return err
	}
	defer func() { _ = cursor.Close(ctx) }()

	newRules := make(map[string][]models.EscalationRule)
	total := 0
	for cursor.Next(ctx) {
		var rule models.EscalationRule
		if err := cursor.Decode(&rule); err != nil {
			logger.Warn("RuleCache: Error decoding rule: "+err.Error(), "RuleCache")
			continue
		}
		newRules[rule.GuildID] = append(newRules[rule.GuildID], rule)
		total++
	}

	if err := cursor.Err(); err != nil {
		logger.Error("RuleCache: Cursor error: "+err.Error(), "RuleCache")
		return err
	}

	for guildID := range newRules {
		sortRules(newRules[guildID])
	}

	c.mu.Lock()
	c.rules = newRules
	c.mu.Unlock()

	logger.Info(fmt.Sprintf("RuleCache: Cache refreshed with %d rules across %d guilds", total, len(newRules)), "RuleCache")
	return nil
}

// StartAutoRefresh starts automatic cache refresh at the specified interval
// If already refreshing, it will stop the current refresher and start a new one
func (c *RuleCache) StartAutoRefresh(interval time.Duration) {
	c.mu.Lock()
	if c.refreshing {
		close(c.stopRefresh)
		c.refreshing = false
	}
	c.refreshing = true
	c.stopRefresh = make(chan struct{})
	stopChan := c.stopRefresh
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		logger.Info("RuleCache: Auto-refresh started (interval: "+interval.String()+")", "RuleCache")

		for {
			select {
			case <-ticker.C:
				if err := c.Refresh(); err != nil {
					logger.Error("RuleCache: Auto-refresh failed: "+err.Error(), "RuleCache")
				}
			case <-stopChan:
				logger.Info("RuleCache: Auto-refresh stopped", "RuleCache")
				return
			}
		}
	}()
}

// StopAutoRefresh stops the automatic cache refresh
func (c *RuleCache) StopAutoRefresh() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.refreshing {
		close(c.stopRefresh)
		c.refreshing = false
	}
}

// GetRules returns the cached rules for a guild, ordered by threshold
// then creation time
func (c *RuleCache) GetRules(guildID string) []models.EscalationRule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rules := make([]models.EscalationRule, len(c.rules[guildID]))
	copy(rules, c.rules[guildID])
	return rules
}

// GetRule returns a single cached rule, nil when it does not exist
func (c *RuleCache) GetRule(guildID, ruleID string) *models.EscalationRule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, rule := range c.rules[guildID] {
		if rule.ID == ruleID {
			r := rule
			return &r
		}
	}
	return nil
}

// upsert adds or replaces a rule in the cache (called after DB write)
func (c *RuleCache) upsert(rule models.EscalationRule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	guildRules := c.rules[rule.GuildID]
	replaced := false
	for i := range guildRules {
		if guildRules[i].ID == rule.ID {
			guildRules[i] = rule
			replaced = true
			break
		}
	}
	if !replaced {
		guildRules = append(guildRules, rule)
	}
	sortRules(guildRules)
	c.rules[rule.GuildID] = guildRules
}

// remove deletes a rule from the cache (called after DB remove)
func (c *RuleCache) remove(guildID, ruleID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	guildRules := c.rules[guildID]
	for i := range guildRules {
		if guildRules[i].ID == ruleID {
			c.rules[guildID] = append(guildRules[:i], guildRules[i+1:]...)
			return
		}
	}
}

// Size returns the number of cached rules across all guilds
func (c *RuleCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, rules := range c.rules {
		total += len(rules)
	}
	return total
}

// RuleService manages escalation rule configuration. Reads are served
// from the RuleCache; writes go to the database and update the cache
// immediately.
type RuleService struct {
	cache *RuleCache
}

// NewRuleService creates a RuleService backed by the global rule cache
func NewRuleService() *RuleService {
	return &RuleService{cache: GetRuleCache()}
}

// GetRules returns the rules for a guild, ordered by threshold then
// creation time
func (s *RuleService) GetRules(guildID string) ([]models.EscalationRule, error) {
	return s.cache.GetRules(guildID), nil
}

// GetRule returns a single rule, nil when it does not exist
func (s *RuleService) GetRule(guildID, ruleID string) (*models.EscalationRule, error) {
	return s.cache.GetRule(guildID, ruleID), nil
}

// validateRule checks a rule before it is written
func validateRule(rule *models.EscalationRule) error {
	if rule.WarningThreshold < 1 {
		return fmt.Errorf("warning threshold must be at least 1, got %d", rule.WarningThreshold)
	}
	switch rule.PunishmentType {
	case models.PunishmentTypeNone, models.PunishmentTypeTimeout, models.PunishmentTypeKick, models.PunishmentTypeBan:
	case models.PunishmentTypeRoleAdd, models.PunishmentTypeRoleRemove:
		if rule.RoleID == "" {
			return fmt.Errorf("punishment type %q requires a role id", rule.PunishmentType)
		}
	default:
		return fmt.Errorf("unknown punishment type: %q", rule.PunishmentType)
	}
	return nil
}

// CreateRule persists a new escalation rule for a guild
func (s *RuleService) CreateRule(rule models.EscalationRule) (*models.EscalationRule, error) {
	if GlobalRuleDM == nil {
		return nil, ErrRuleManagerNotInitialized
	}
	if err := validateRule(&rule); err != nil {
		return nil, err
	}

	rule.ID = uuid.New().String()
	rule.CreatedAt = time.Now()

	result, err := GlobalRuleDM.Set(bson.M{"_id": rule.ID}, rule)
	if err != nil {
		return nil, err
	}

	s.cache.upsert(*result)
	return result, nil
}

// UpdateRule replaces an existing rule, keeping its identity and
// creation metadata
func (s *RuleService) UpdateRule(guildID, ruleID string, rule models.EscalationRule) (*models.EscalationRule, error) {
	if GlobalRuleDM == nil {
		return nil, ErrRuleManagerNotInitialized
	}

	existing := s.cache.GetRule(guildID, ruleID)
	if existing == nil {
		return nil, ErrRuleNotFound
	}

	rule.ID = existing.ID
	rule.GuildID = existing.GuildID
	rule.CreatedBy = existing.CreatedBy
	rule.CreatedAt = existing.CreatedAt
	if err := validateRule(&rule); err != nil {
		return nil, err
	}

	result, err := GlobalRuleDM.Set(bson.M{"_id": rule.ID}, rule)
	if err != nil {
		return nil, err
	}

	s.cache.upsert(*result)
	return result, nil
}

// DeleteRule removes a rule from the database and the cache
func (s *RuleService) DeleteRule(guildID, ruleID string) error {
	if GlobalRuleDM == nil {
		return ErrRuleManagerNotInitialized
	}

	if s.cache.GetRule(guildID, ruleID) == nil {
		return ErrRuleNotFound
	}

	if err := GlobalRuleDM.Delete(bson.M{"_id": ruleID}); err != nil {
		return err
	}

	s.cache.remove(guildID, ruleID)
	return nil
}
