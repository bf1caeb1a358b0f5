package ban

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tg-turfbot/internal/logger"
	"tg-turfbot/internal/models"
	"tg-turfbot/internal/platform"
)

// RefreshCallback is the callback data carried by the countdown refresh
// button attached to every ban notification.
const RefreshCallback = "banref"

// defaultMaxWake caps scheduler sleeps so countdown notices never go
// stale for more than this window.
const defaultMaxWake = 15 * time.Minute

// Store is the persistence surface the ledger needs.
type Store interface {
	Create(record *models.BanRecord) error
	Save(record *models.BanRecord) error
	Delete(key models.BanKey) error
	GetAll() ([]*models.BanRecord, error)
}

// Manager owns the temporary-ban ledger: one record per (community,
// subject) key, a watcher session per active record, and the DM
// countdown lifecycle. All state is instance-owned; the manager is
// constructed once at process start.
type Manager struct {
	client platform.Client
	store  Store
	langOf func(communityID int64) string

	mu   sync.Mutex
	bans map[models.BanKey]*models.BanRecord

	// Per-key advisory locks serializing manual unbans against scheduler
	// wake cycles. Every mutation of a record and every wake-cycle check
	// runs under the key's lock.
	locksMu sync.Mutex
	locks   map[models.BanKey]*sync.Mutex

	// Managed session registry: one cancelable watcher per active key.
	sessionsMu sync.Mutex
	sessions   map[models.BanKey]context.CancelFunc

	now     func() time.Time
	maxWake time.Duration
}

// NewManager creates the ledger and loads all persisted records.
// langOf resolves the language the community's notifications render in.
// Sessions for active records are not started here; call ResumeSessions
// once the process is ready to perform platform actions.
func NewManager(client platform.Client, store Store, langOf func(communityID int64) string) (*Manager, error) {
	m := &Manager{
		client:   client,
		store:    store,
		langOf:   langOf,
		bans:     make(map[models.BanKey]*models.BanRecord),
		locks:    make(map[models.BanKey]*sync.Mutex),
		sessions: make(map[models.BanKey]context.CancelFunc),
		now:      time.Now,
		maxWake:  defaultMaxWake,
	}

	records, err := store.GetAll()
	if err != nil {
		return nil, fmt.Errorf("loading ban records: %w", err)
	}
	for _, record := range records {
		if record.Status == "" {
			record.Status = models.BanStatusActive
		}
		m.bans[record.Key()] = record
	}
	logger.Infof("Ban ledger loaded with %d records", len(m.bans))
	return m, nil
}

func (m *Manager) keyLock(key models.BanKey) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[key] = lock
	}
	return lock
}

func (m *Manager) get(key models.BanKey) (*models.BanRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.bans[key]
	return record, ok
}

func (m *Manager) put(record *models.BanRecord) {
	m.mu.Lock()
	m.bans[record.Key()] = record
	m.mu.Unlock()
}

// remove drops the record from memory and the store. Store failures are
// logged and do not resurrect the in-memory removal.
func (m *Manager) remove(key models.BanKey) *models.BanRecord {
	m.mu.Lock()
	record := m.bans[key]
	delete(m.bans, key)
	m.mu.Unlock()

	if err := m.store.Delete(key); err != nil {
		logger.Warningf("Error deleting ban record %s: %v", key, err)
	}
	return record
}

func (m *Manager) persist(record *models.BanRecord) {
	if err := m.store.Save(record); err != nil {
		logger.Warningf("Error saving ban record %s: %v", record.Key(), err)
	}
}

// IssueBan bans the subject for the given duration. The countdown DM is
// delivered first; if it cannot be, no ban happens. If the platform ban
// then fails, the already-sent DM is rolled back.
func (m *Manager) IssueBan(ctx context.Context, communityID, subjectID, actorID int64, d time.Duration, reason string) error {
	key := models.BanKey{CommunityID: communityID, SubjectID: subjectID}
	lock := m.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if _, exists := m.get(key); exists {
		return ErrAlreadyBanned
	}

	unbanTimestamp := m.now().Add(d).Unix()

	// Snapshot roles before the subject is removed from the community.
	roleIDs, err := m.client.MemberRoles(ctx, communityID, subjectID)
	if err != nil {
		logger.Warningf("Error snapshotting roles for %s: %v", key, err)
	}

	text := m.renderActive(ctx, communityID, reason, unbanTimestamp)
	ref, err := m.client.SendDirectMessage(ctx, subjectID, text, m.refreshKeyboard(communityID))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	if err := m.client.BanMember(ctx, communityID, subjectID); err != nil {
		// Roll back the notification; the ban never took effect.
		if delErr := m.client.DeleteMessage(ctx, ref); delErr != nil {
			logger.Warningf("Error rolling back ban DM for %s: %v", key, delErr)
		}
		if errors.Is(err, platform.ErrForbidden) {
			return ErrActionForbidden
		}
		return fmt.Errorf("banning %s: %w", key, err)
	}

	record := &models.BanRecord{
		CommunityID:    communityID,
		SubjectID:      subjectID,
		UnbanTimestamp: unbanTimestamp,
		Reason:         reason,
		IssuedBy:       actorID,
		DMChatID:       ref.ChatID,
		DMMessageID:    ref.MessageID,
		RolesToRestore: models.EncodeIDList(roleIDs),
		Status:         models.BanStatusActive,
	}
	m.put(record)
	if err := m.store.Create(record); err != nil {
		logger.Warningf("Error persisting ban record %s: %v", key, err)
	}

	m.startSession(key)
	logger.Infof("Ban issued for %s by %d, duration %s", key, actorID, d)
	return nil
}

// ManualUnban lifts a ban immediately. The ledger record is removed
// before the first platform call so a concurrently waking session
// observes its absence and terminates; the record is never resurrected,
// even when the platform reports the subject was not banned.
// Returns the rejoin invite link when one could be created.
func (m *Manager) ManualUnban(ctx context.Context, communityID, subjectID, actorID int64, reason string) (string, error) {
	key := models.BanKey{CommunityID: communityID, SubjectID: subjectID}
	lock := m.keyLock(key)
	lock.Lock()
	record := m.remove(key)
	m.cancelSession(key)
	lock.Unlock()

	if err := m.client.UnbanMember(ctx, communityID, subjectID); err != nil {
		switch {
		case errors.Is(err, platform.ErrNotFound):
			return "", ErrNotBanned
		case errors.Is(err, platform.ErrForbidden):
			return "", ErrActionForbidden
		default:
			return "", fmt.Errorf("unbanning %s: %w", key, err)
		}
	}

	invite, err := m.client.CreateInvite(ctx, communityID)
	if err != nil {
		logger.Warningf("Error creating invite after manual unban of %s: %v", key, err)
	}

	m.notifyManualUnban(ctx, record, communityID, subjectID, actorID, reason, invite)
	logger.Infof("Manual unban of %s by %d", key, actorID)
	return invite, nil
}

// notifyManualUnban edits the original countdown DM to the unbanned
// state, falling back to a fresh DM when the edit target is gone.
// Best-effort on every step.
func (m *Manager) notifyManualUnban(ctx context.Context, record *models.BanRecord, communityID, subjectID, actorID int64, reason, invite string) {
	text := m.renderManualUnban(ctx, communityID, actorID, reason, invite)

	if record != nil && record.HasNotification() {
		ref := platform.MessageRef{ChatID: record.DMChatID, MessageID: record.DMMessageID}
		if err := m.client.EditMessage(ctx, ref, text, nil); err == nil {
			return
		}
	}
	if _, err := m.client.SendDirectMessage(ctx, subjectID, text, nil); err != nil {
		logger.Warningf("Error sending manual unban DM to %d: %v", subjectID, err)
	}
}

// RefreshCountdown re-renders the countdown DM of the subject's active
// ban. The lookup is by subject only; a subject banned in several
// communities refreshes the first active record found.
func (m *Manager) RefreshCountdown(ctx context.Context, subjectID int64) error {
	m.mu.Lock()
	var record *models.BanRecord
	for key, candidate := range m.bans {
		if key.SubjectID == subjectID {
			record = candidate
			break
		}
	}
	m.mu.Unlock()

	if record == nil || !record.HasNotification() {
		return ErrNoActiveBan
	}

	lock := m.keyLock(record.Key())
	lock.Lock()
	defer lock.Unlock()
	if err := m.updateNotification(ctx, record); err != nil {
		return ErrNoActiveBan
	}
	return nil
}

// updateNotification re-renders the countdown DM in place. A vanished or
// unreachable DM clears the notification ref so later cycles stop
// touching it. Caller holds the key lock.
func (m *Manager) updateNotification(ctx context.Context, record *models.BanRecord) error {
	if !record.HasNotification() {
		return ErrNoActiveBan
	}
	text := m.renderActive(ctx, record.CommunityID, record.Reason, record.UnbanTimestamp)
	ref := platform.MessageRef{ChatID: record.DMChatID, MessageID: record.DMMessageID}
	err := m.client.EditMessage(ctx, ref, text, m.refreshKeyboard(record.CommunityID))
	if errors.Is(err, platform.ErrNotFound) || errors.Is(err, platform.ErrForbidden) {
		record.DMChatID = 0
		record.DMMessageID = 0
		m.persist(record)
		return err
	}
	if err != nil {
		logger.Warningf("Error updating ban DM for %s: %v", record.Key(), err)
	}
	return err
}

// HandleRejoin restores snapshotted roles when a subject whose expired
// ban still owes roles rejoins the community, then clears the record.
func (m *Manager) HandleRejoin(ctx context.Context, communityID, subjectID int64) {
	key := models.BanKey{CommunityID: communityID, SubjectID: subjectID}
	lock := m.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	record, ok := m.get(key)
	if !ok || record.Status != models.BanStatusPendingRoles {
		return
	}
	m.restoreRoles(ctx, communityID, subjectID, record.RestoreRoleIDs())
	m.remove(key)
	logger.Infof("Restored roles for rejoining subject %s", key)
}

// ResumeSessions starts a watcher for every persisted active record.
// Expiry is recomputed from absolute timestamps, so missed wake-ups
// while the process was down are caught up on the first check.
func (m *Manager) ResumeSessions() {
	m.mu.Lock()
	keys := make([]models.BanKey, 0, len(m.bans))
	for key, record := range m.bans {
		if record.Status == models.BanStatusActive {
			keys = append(keys, key)
		}
	}
	m.mu.Unlock()

	for _, key := range keys {
		m.startSession(key)
	}
	logger.Infof("Resumed %d ban sessions", len(keys))
}

func (m *Manager) restoreRoles(ctx context.Context, communityID, subjectID int64, roleIDs []int64) {
	for _, roleID := range roleIDs {
		if err := m.client.GrantRole(ctx, communityID, subjectID, roleID); err != nil {
			logger.Warningf("Error restoring role %d for subject %d in %d: %v", roleID, subjectID, communityID, err)
		}
	}
}
