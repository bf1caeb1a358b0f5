package ban

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tg-turfbot/internal/crash"
	"tg-turfbot/internal/logger"
	"tg-turfbot/internal/models"
	"tg-turfbot/internal/platform"
)

// startSession registers and launches the watcher goroutine for the
// key. An existing session for the same key is cancelled first so a
// re-issued ban never runs two watchers.
func (m *Manager) startSession(key models.BanKey) {
	ctx, cancel := context.WithCancel(context.Background())

	m.sessionsMu.Lock()
	if prev, ok := m.sessions[key]; ok {
		prev()
	}
	m.sessions[key] = cancel
	m.sessionsMu.Unlock()

	crash.SafeGoroutine(fmt.Sprintf("ban-session-%s", key), func() {
		m.runSession(ctx, key)
	})
}

// cancelSession stops the key's watcher if one is running.
func (m *Manager) cancelSession(key models.BanKey) {
	m.sessionsMu.Lock()
	if cancel, ok := m.sessions[key]; ok {
		cancel()
		delete(m.sessions, key)
	}
	m.sessionsMu.Unlock()
}

// endSession drops the registry entry once a watcher returns on its
// own. Only removes the entry if it still belongs to this run.
func (m *Manager) endSession(key models.BanKey) {
	m.sessionsMu.Lock()
	delete(m.sessions, key)
	m.sessionsMu.Unlock()
}

// runSession is the watcher loop for one ban. Each cycle takes the key
// lock, re-checks the record still exists and is active, and either
// expires it or re-renders the countdown and sleeps again. Sleeps are
// capped so the DM countdown is refreshed at least every maxWake.
func (m *Manager) runSession(ctx context.Context, key models.BanKey) {
	defer m.endSession(key)

	for {
		lock := m.keyLock(key)
		lock.Lock()

		record, ok := m.get(key)
		if !ok || record.Status != models.BanStatusActive {
			lock.Unlock()
			return
		}

		remaining := record.Remaining(m.now())
		if remaining <= 0 {
			m.expire(ctx, record)
			lock.Unlock()
			return
		}

		m.updateNotification(ctx, record)
		lock.Unlock()

		// One extra second past the deadline avoids a zero-remaining
		// wake that still renders an active countdown.
		sleep := remaining + time.Second
		if sleep > m.maxWake {
			sleep = m.maxWake
		}
		if sleep < time.Second {
			sleep = time.Second
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// expire lifts an elapsed ban. Caller holds the key lock. The record is
// still present and active on entry; expire decides whether it is
// deleted, kept pending role restoration, or left active for a retry.
func (m *Manager) expire(ctx context.Context, record *models.BanRecord) {
	key := record.Key()

	err := m.client.UnbanMember(ctx, record.CommunityID, record.SubjectID)
	switch {
	case err == nil:
		invite, inviteErr := m.client.CreateInvite(ctx, record.CommunityID)
		if inviteErr != nil {
			logger.Warningf("Error creating invite for expired ban %s: %v", key, inviteErr)
		}
		m.notifyExpiry(ctx, record, invite)
		m.finishExpiry(ctx, record)

	case errors.Is(err, platform.ErrNotFound):
		// Already unbanned out of band. No invite, no notice; just
		// settle the role debt.
		m.finishExpiry(ctx, record)

	case errors.Is(err, platform.ErrForbidden):
		// Lost the permission to unban. Leave the record behind so an
		// operator can see it, but stop the watcher.
		logger.Errorf("No permission to lift expired ban %s", key)
		if len(record.RestoreRoleIDs()) > 0 {
			record.Status = models.BanStatusPendingRoles
			m.persist(record)
		}

	default:
		logger.Errorf("Error lifting expired ban %s: %v", key, err)
		if len(record.RestoreRoleIDs()) > 0 {
			record.Status = models.BanStatusPendingRoles
			m.persist(record)
		}
	}
}

// finishExpiry settles the role debt after a successful (or moot)
// unban: restore immediately when the subject is present, otherwise
// keep the record pending until they rejoin. Caller holds the key lock.
func (m *Manager) finishExpiry(ctx context.Context, record *models.BanRecord) {
	key := record.Key()
	roleIDs := record.RestoreRoleIDs()

	if len(roleIDs) == 0 {
		m.remove(key)
		logger.Infof("Ban %s expired", key)
		return
	}

	present, err := m.client.IsMember(ctx, record.CommunityID, record.SubjectID)
	if err != nil {
		logger.Warningf("Error checking membership for expired ban %s: %v", key, err)
	}
	if present {
		m.restoreRoles(ctx, record.CommunityID, record.SubjectID, roleIDs)
		m.remove(key)
		logger.Infof("Ban %s expired, roles restored", key)
		return
	}

	record.Status = models.BanStatusPendingRoles
	m.persist(record)
	logger.Infof("Ban %s expired, role restoration deferred until rejoin", key)
}

// notifyExpiry edits the countdown DM to its final expired state,
// attaching the rejoin invite when one was created. Best-effort.
func (m *Manager) notifyExpiry(ctx context.Context, record *models.BanRecord, invite string) {
	text := m.renderExpired(ctx, record, invite)

	if record.HasNotification() {
		ref := platform.MessageRef{ChatID: record.DMChatID, MessageID: record.DMMessageID}
		if err := m.client.EditMessage(ctx, ref, text, nil); err == nil {
			return
		}
	}
	if _, err := m.client.SendDirectMessage(ctx, record.SubjectID, text, nil); err != nil {
		logger.Warningf("Error sending expiry DM for %s: %v", record.Key(), err)
	}
}
