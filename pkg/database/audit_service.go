package database

import (
	"context"
	"errors"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrAuditNotConnected = errors.New("audit service: database not connected")
)

// Collection names used by the audit trail
const (
	casesCollection         = "cases"
	caseCountersCollection  = "case_counters"
	escalationLogCollection = "escalation_log"
)

// AuditService persists the immutable moderation audit trail: numbered
// cases and the append-only escalation log. Both collections are
// written directly, never through the shared cache, so audit reads
// always reflect the database.
type AuditService struct {
	db *Database
}

// NewAuditService creates an AuditService backed by the global database
func NewAuditService() *AuditService {
	return &AuditService{db: Get()}
}

// nextCaseNumber atomically increments and returns the per-guild case
// sequence. The counter document is created on first use.
func (s *AuditService) nextCaseNumber(guildID string) (int, error) {
	if s.db == nil || !s.db.Connected() {
		return 0, ErrAuditNotConnected
	}
	col := s.db.GetCollection(caseCountersCollection)
	if col == nil {
		return 0, ErrAuditNotConnected
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.CaseCounter
	err := col.FindOneAndUpdate(ctx,
		bson.M{"_id": guildID},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}

	return counter.Seq, nil
}

// CreateCase assigns the next per-guild case number and persists the
// case. The returned case carries the assigned number.
func (s *AuditService) CreateCase(c models.ModerationCase) (*models.ModerationCase, error) {
	if s.db == nil || !s.db.Connected() {
		return nil, ErrAuditNotConnected
	}

	number, err := s.nextCaseNumber(c.GuildID)
	if err != nil {
		return nil, err
	}
	c.CaseNumber = number
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	col := s.db.GetCollection(casesCollection)
	if col == nil {
		return nil, ErrAuditNotConnected
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := col.InsertOne(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LogEscalation appends one escalation log entry. Entries are never
// updated or deleted.
func (s *AuditService) LogEscalation(e models.EscalationLogEntry) error {
	if s.db == nil || !s.db.Connected() {
		return ErrAuditNotConnected
	}
	col := s.db.GetCollection(escalationLogCollection)
	if col == nil {
		return ErrAuditNotConnected
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := col.InsertOne(ctx, e)
	return err
}

// GetHistory returns the most recent escalation log entries for a
// user, newest first
func (s *AuditService) GetHistory(guildID, userID string, limit int) ([]models.EscalationLogEntry, error) {
	if s.db == nil || !s.db.Connected() {
		return nil, ErrAuditNotConnected
	}
	col := s.db.GetCollection(escalationLogCollection)
	if col == nil {
		return nil, ErrAuditNotConnected
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{"guildId": guildID, "userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var entries []models.EscalationLogEntry
	for cursor.Next(ctx) {
		var entry models.EscalationLogEntry
		if err := cursor.Decode(&entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, cursor.Err()
}

// GetGuildLog returns the most recent escalation log entries for a
// whole guild, newest first
func (s *AuditService) GetGuildLog(guildID string, limit int) ([]models.EscalationLogEntry, error) {
	if s.db == nil || !s.db.Connected() {
		return nil, ErrAuditNotConnected
	}
	col := s.db.GetCollection(escalationLogCollection)
	if col == nil {
		return nil, ErrAuditNotConnected
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{"guildId": guildID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var entries []models.EscalationLogEntry
	for cursor.Next(ctx) {
		var entry models.EscalationLogEntry
		if err := cursor.Decode(&entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, cursor.Err()
}

// GetCases returns the most recent cases for a guild, newest first
func (s *AuditService) GetCases(guildID string, limit int) ([]models.ModerationCase, error) {
	if s.db == nil || !s.db.Connected() {
		return nil, ErrAuditNotConnected
	}
	col := s.db.GetCollection(casesCollection)
	if col == nil {
		return nil, ErrAuditNotConnected
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.M{"caseNumber": -1}).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{"guildId": guildID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var cases []models.ModerationCase
	for cursor.Next(ctx) {
		var c models.ModerationCase
		if err := cursor.Decode(&c); err != nil {
			continue
		}
		cases = append(cases, c)
	}
	return cases, cursor.Err()
}

// GetCase returns a single case by its per-guild number, nil when it
// does not exist
func (s *AuditService) GetCase(guildID string, caseNumber int) (*models.ModerationCase, error) {
	if s.db == nil || !s.db.Connected() {
		return nil, ErrAuditNotConnected
	}
	col := s.db.GetCollection(casesCollection)
	if col == nil {
		return nil, ErrAuditNotConnected
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var c models.ModerationCase
	err := col.FindOne(ctx, bson.M{"guildId": guildID, "caseNumber": caseNumber}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
