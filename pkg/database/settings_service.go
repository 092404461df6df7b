package database

import (
	"errors"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrSettingsManagerNotInitialized = errors.New("settings data manager not initialized")
)

// SettingsService manages per-guild configuration such as the
// moderation log channel.
type SettingsService struct {
	dm func() *DataManager[models.GuildSettings]
}

// NewSettingsService creates a SettingsService backed by the global
// settings DataManager
func NewSettingsService() *SettingsService {
	return &SettingsService{dm: func() *DataManager[models.GuildSettings] { return GlobalSettingsDM }}
}

// GetSettings returns the settings for a guild. Guilds without stored
// settings get a zero-value document.
func (s *SettingsService) GetSettings(guildID string) (*models.GuildSettings, error) {
	dm := s.dm()
	if dm == nil {
		return nil, ErrSettingsManagerNotInitialized
	}

	settings, err := dm.Get(bson.M{"guildId": guildID})
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &models.GuildSettings{GuildID: guildID}, nil
	}
	return settings, nil
}

// SetModLogChannel updates the moderation log channel for a guild. An
// empty channel ID disables staff channel notifications.
func (s *SettingsService) SetModLogChannel(guildID, channelID, updatedBy string) (*models.GuildSettings, error) {
	dm := s.dm()
	if dm == nil {
		return nil, ErrSettingsManagerNotInitialized
	}

	settings, err := s.GetSettings(guildID)
	if err != nil {
		return nil, err
	}

	settings.ModLogChannelID = channelID
	settings.UpdatedBy = updatedBy
	settings.UpdatedAt = time.Now()

	return dm.Set(bson.M{"guildId": guildID}, settings)
}
