package escalation

import (
	"errors"
	"fmt"
	"time"

	"github.com/WardenStudios/WardenBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// In-memory fakes for the collaborator interfaces.

type fakeWarningStore struct {
	warnings    map[string][]models.Warning // guildID|userID
	countErr    error
	getErr      error
	removeErr   error
	removeCalls int
}

func warnKey(guildID, userID string) string { return guildID + "|" + userID }

func newFakeWarningStore() *fakeWarningStore {
	return &fakeWarningStore{warnings: make(map[string][]models.Warning)}
}

func (f *fakeWarningStore) addActive(guildID, userID string, n int) {
	key := warnKey(guildID, userID)
	for i := 0; i < n; i++ {
		f.warnings[key] = append(f.warnings[key], models.Warning{
			ID:     fmt.Sprintf("w-%s-%d", userID, len(f.warnings[key])+1),
			Active: true,
		})
	}
}

func (f *fakeWarningStore) CountActive(guildID, userID string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	count := 0
	for _, w := range f.warnings[warnKey(guildID, userID)] {
		if w.Active {
			count++
		}
	}
	return count, nil
}

func (f *fakeWarningStore) GetActive(guildID, userID string) ([]models.Warning, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	var active []models.Warning
	for _, w := range f.warnings[warnKey(guildID, userID)] {
		if w.Active {
			active = append(active, w)
		}
	}
	return active, nil
}

func (f *fakeWarningStore) RemoveWarning(guildID, userID, warningID, moderatorID, reason string) (bool, error) {
	f.removeCalls++
	if f.removeErr != nil {
		return false, f.removeErr
	}
	key := warnKey(guildID, userID)
	for i := range f.warnings[key] {
		if f.warnings[key][i].ID == warningID && f.warnings[key][i].Active {
			f.warnings[key][i].Active = false
			f.warnings[key][i].RemovedBy = moderatorID
			f.warnings[key][i].RemovalReason = reason
			return true, nil
		}
	}
	return false, nil
}

type fakeRuleRepo struct {
	rules map[string][]models.EscalationRule
	err   error
}

func newFakeRuleRepo(rules ...models.EscalationRule) *fakeRuleRepo {
	repo := &fakeRuleRepo{rules: make(map[string][]models.EscalationRule)}
	for _, r := range rules {
		repo.rules[r.GuildID] = append(repo.rules[r.GuildID], r)
	}
	return repo
}

func (f *fakeRuleRepo) GetRules(guildID string) ([]models.EscalationRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rules[guildID], nil
}

func (f *fakeRuleRepo) GetRule(guildID, ruleID string) (*models.EscalationRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.rules[guildID] {
		if r.ID == ruleID {
			rule := r
			return &rule, nil
		}
	}
	return nil, nil
}

type fakeAudit struct {
	cases      []models.ModerationCase
	entries    []models.EscalationLogEntry
	seq        map[string]int
	caseErr    error
	logErr     error
	historyErr error
}

func newFakeAudit() *fakeAudit {
	return &fakeAudit{seq: make(map[string]int)}
}

func (f *fakeAudit) CreateCase(c models.ModerationCase) (*models.ModerationCase, error) {
	if f.caseErr != nil {
		return nil, f.caseErr
	}
	f.seq[c.GuildID]++
	c.CaseNumber = f.seq[c.GuildID]
	f.cases = append(f.cases, c)
	return &c, nil
}

func (f *fakeAudit) LogEscalation(e models.EscalationLogEntry) error {
	if f.logErr != nil {
		return f.logErr
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAudit) GetHistory(guildID, userID string, limit int) ([]models.EscalationLogEntry, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	var history []models.EscalationLogEntry
	for i := len(f.entries) - 1; i >= 0 && len(history) < limit; i-- {
		if f.entries[i].GuildID == guildID && f.entries[i].UserID == userID {
			history = append(history, f.entries[i])
		}
	}
	return history, nil
}

type banCall struct {
	userID string
	days   int
	reason string
}

type timeoutCall struct {
	userID string
	until  time.Time
	reason string
}

type fakeCapability struct {
	timeouts    []timeoutCall
	kicks       []string
	bans        []banCall
	roleAdds    []string
	roleRemoves []string
	roles       map[string]*discordgo.Role
	failWith    error
}

func newFakeCapability() *fakeCapability {
	return &fakeCapability{roles: make(map[string]*discordgo.Role)}
}

func (f *fakeCapability) mutationCalls() int {
	return len(f.timeouts) + len(f.kicks) + len(f.bans) + len(f.roleAdds) + len(f.roleRemoves)
}

func (f *fakeCapability) Timeout(guildID, userID string, until time.Time, reason string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.timeouts = append(f.timeouts, timeoutCall{userID: userID, until: until, reason: reason})
	return nil
}

func (f *fakeCapability) Kick(guildID, userID, reason string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.kicks = append(f.kicks, userID)
	return nil
}

func (f *fakeCapability) Ban(guildID, userID, reason string, deleteMessageDays int) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.bans = append(f.bans, banCall{userID: userID, days: deleteMessageDays, reason: reason})
	return nil
}

func (f *fakeCapability) AddRole(guildID, userID, roleID string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.roleAdds = append(f.roleAdds, roleID)
	return nil
}

func (f *fakeCapability) RemoveRole(guildID, userID, roleID string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.roleRemoves = append(f.roleRemoves, roleID)
	return nil
}

func (f *fakeCapability) FetchRole(guildID, roleID string) (*discordgo.Role, error) {
	role, ok := f.roles[roleID]
	if !ok {
		return nil, errors.New("unknown role: " + roleID)
	}
	return role, nil
}

type fakeNotifier struct {
	dms     []Notification
	posts   []Notification
	dmErr   error
	postErr error
}

func (f *fakeNotifier) DirectMessage(userID string, n Notification) error {
	if f.dmErr != nil {
		return f.dmErr
	}
	f.dms = append(f.dms, n)
	return nil
}

func (f *fakeNotifier) PostToModerationChannel(guildID string, n Notification) error {
	if f.postErr != nil {
		return f.postErr
	}
	f.posts = append(f.posts, n)
	return nil
}

type fakeSink struct {
	events []models.EscalationEvent
}

func (f *fakeSink) PublishEscalation(event models.EscalationEvent) {
	f.events = append(f.events, event)
}

func testGuild() *discordgo.Guild {
	return &discordgo.Guild{ID: "G1", Name: "Test Guild"}
}

func testMember(userID string, roleIDs ...string) *discordgo.Member {
	return &discordgo.Member{
		User:  &discordgo.User{ID: userID, Username: "user-" + userID},
		Roles: roleIDs,
	}
}
