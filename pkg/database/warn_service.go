package database

import (
	"errors"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrWarnManagerNotInitialized = errors.New("warn data manager not initialized")
)

// WarnService provides access to the per-user warning documents.
// Warnings are never deleted; removal deactivates them and records
// who removed them and why.
type WarnService struct {
	dm func() *DataManager[models.WarningsDocument]
}

// NewWarnService creates a WarnService backed by the global warn DataManager
func NewWarnService() *WarnService {
	return &WarnService{dm: func() *DataManager[models.WarningsDocument] { return GlobalWarnDM }}
}

func warnQuery(guildID, userID string) bson.M {
	return bson.M{"guildId": guildID, "userId": userID}
}

// getDocument fetches the warning document for a user, nil when none exists
func (s *WarnService) getDocument(guildID, userID string) (*models.WarningsDocument, error) {
	dm := s.dm()
	if dm == nil {
		return nil, ErrWarnManagerNotInitialized
	}
	return dm.Get(warnQuery(guildID, userID))
}

// AddWarning appends a new active warning and returns it together with
// the new active warning count
func (s *WarnService) AddWarning(guildID, userID, moderatorID, reason string) (*models.Warning, int, error) {
	dm := s.dm()
	if dm == nil {
		return nil, 0, ErrWarnManagerNotInitialized
	}

	doc, err := s.getDocument(guildID, userID)
	if err != nil {
		return nil, 0, err
	}
	if doc == nil {
		doc = &models.WarningsDocument{GuildID: guildID, UserID: userID}
	}

	warning := models.Warning{
		ID:          uuid.New().String(),
		Reason:      reason,
		ModeratorID: moderatorID,
		CreatedAt:   time.Now().Unix(),
		Active:      true,
	}
	doc.Warnings = append(doc.Warnings, warning)

	if _, err := dm.Set(warnQuery(guildID, userID), doc); err != nil {
		return nil, 0, err
	}

	return &warning, len(doc.ActiveWarnings()), nil
}

// CountActive returns the number of active warnings for a user
func (s *WarnService) CountActive(guildID, userID string) (int, error) {
	doc, err := s.getDocument(guildID, userID)
	if err != nil {
		return 0, err
	}
	return len(doc.ActiveWarnings()), nil
}

// GetActive returns the active warnings for a user
func (s *WarnService) GetActive(guildID, userID string) ([]models.Warning, error) {
	doc, err := s.getDocument(guildID, userID)
	if err != nil {
		return nil, err
	}
	return doc.ActiveWarnings(), nil
}

// GetAll returns every warning ever issued to a user, active or not
func (s *WarnService) GetAll(guildID, userID string) ([]models.Warning, error) {
	doc, err := s.getDocument(guildID, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return doc.Warnings, nil
}

// RemoveWarning deactivates a single warning. It returns false when the
// warning does not exist or is already inactive.
func (s *WarnService) RemoveWarning(guildID, userID, warningID, moderatorID, reason string) (bool, error) {
	dm := s.dm()
	if dm == nil {
		return false, ErrWarnManagerNotInitialized
	}

	doc, err := s.getDocument(guildID, userID)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}

	found := false
	for i := range doc.Warnings {
		if doc.Warnings[i].ID == warningID && doc.Warnings[i].Active {
			doc.Warnings[i].Active = false
			doc.Warnings[i].RemovedBy = moderatorID
			doc.Warnings[i].RemovalReason = reason
			doc.Warnings[i].RemovedAt = time.Now().Unix()
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}

	if _, err := dm.Set(warnQuery(guildID, userID), doc); err != nil {
		return false, err
	}
	return true, nil
}
