package ban

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tg-turfbot/internal/models"
	"tg-turfbot/internal/platform"
)

type fakeClient struct {
	mu sync.Mutex

	nextMessageID int
	sentDMs       []string
	edits         []platform.MessageRef
	deletes       []platform.MessageRef

	banErr    error
	unbanErr  error
	dmErr     error
	inviteErr error

	bans    []models.BanKey
	unbans  []models.BanKey
	grants  []int64
	member  bool
	roles   []int64
	invites int
}

func newFakeClient() *fakeClient {
	return &fakeClient{member: true}
}

func (c *fakeClient) SendDirectMessage(ctx context.Context, userID int64, text string, kb platform.Keyboard) (platform.MessageRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dmErr != nil {
		return platform.MessageRef{}, c.dmErr
	}
	c.nextMessageID++
	c.sentDMs = append(c.sentDMs, text)
	return platform.MessageRef{ChatID: userID, MessageID: c.nextMessageID}, nil
}

func (c *fakeClient) SendGroupMessage(ctx context.Context, communityID int64, text string, kb platform.Keyboard) (platform.MessageRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextMessageID++
	return platform.MessageRef{ChatID: communityID, MessageID: c.nextMessageID}, nil
}

func (c *fakeClient) EditMessage(ctx context.Context, ref platform.MessageRef, text string, kb platform.Keyboard) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edits = append(c.edits, ref)
	return nil
}

func (c *fakeClient) DeleteMessage(ctx context.Context, ref platform.MessageRef) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, ref)
	return nil
}

func (c *fakeClient) BanMember(ctx context.Context, communityID, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.banErr != nil {
		return c.banErr
	}
	c.bans = append(c.bans, models.BanKey{CommunityID: communityID, SubjectID: userID})
	return nil
}

func (c *fakeClient) UnbanMember(ctx context.Context, communityID, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unbanErr != nil {
		return c.unbanErr
	}
	c.unbans = append(c.unbans, models.BanKey{CommunityID: communityID, SubjectID: userID})
	return nil
}

func (c *fakeClient) KickMember(ctx context.Context, communityID, userID int64) error {
	return nil
}

func (c *fakeClient) IsMember(ctx context.Context, communityID, userID int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.member, nil
}

func (c *fakeClient) IsAdmin(ctx context.Context, communityID, userID int64) (bool, error) {
	return false, nil
}

func (c *fakeClient) CreateInvite(ctx context.Context, communityID int64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inviteErr != nil {
		return "", c.inviteErr
	}
	c.invites++
	return "https://chat.example/+invite", nil
}

func (c *fakeClient) EnsureRole(ctx context.Context, communityID int64, name string, rank int) (int64, error) {
	return 1, nil
}

func (c *fakeClient) DeleteRole(ctx context.Context, communityID int64, name string) error {
	return nil
}

func (c *fakeClient) GrantRole(ctx context.Context, communityID, userID, roleID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grants = append(c.grants, roleID)
	return nil
}

func (c *fakeClient) RevokeRole(ctx context.Context, communityID, userID, roleID int64) error {
	return nil
}

func (c *fakeClient) MemberRoles(ctx context.Context, communityID, userID int64) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roles, nil
}

func (c *fakeClient) RoleMembers(ctx context.Context, communityID int64, name string) ([]int64, error) {
	return nil, platform.ErrNotFound
}

func (c *fakeClient) CommunityName(ctx context.Context, communityID int64) (string, error) {
	return "Test Community", nil
}

func (c *fakeClient) UserName(ctx context.Context, userID int64) (string, error) {
	return fmt.Sprintf("User %d", userID), nil
}

func (c *fakeClient) unbanCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.unbans)
}

func (c *fakeClient) grantedRoles() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int64(nil), c.grants...)
}

type fakeStore struct {
	mu      sync.Mutex
	records map[models.BanKey]*models.BanRecord
}

func newFakeStore(records ...*models.BanRecord) *fakeStore {
	s := &fakeStore{records: make(map[models.BanKey]*models.BanRecord)}
	for _, record := range records {
		s.records[record.Key()] = record
	}
	return s
}

func (s *fakeStore) Create(record *models.BanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Key()] = record
	return nil
}

func (s *fakeStore) Save(record *models.BanRecord) error {
	return s.Create(record)
}

func (s *fakeStore) Delete(key models.BanKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

func (s *fakeStore) GetAll() ([]*models.BanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]*models.BanRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	return records, nil
}

func (s *fakeStore) has(key models.BanKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[key]
	return ok
}

func newTestManager(t *testing.T, client *fakeClient, store *fakeStore) *Manager {
	t.Helper()
	m, err := NewManager(client, store, func(int64) string { return models.LangEnglish })
	require.NoError(t, err)
	return m
}

func TestIssueBanRejectsDuplicate(t *testing.T) {
	client := newFakeClient()
	store := newFakeStore()
	m := newTestManager(t, client, store)
	ctx := context.Background()

	require.NoError(t, m.IssueBan(ctx, 10, 20, 30, time.Hour, "spam"))
	err := m.IssueBan(ctx, 10, 20, 30, time.Hour, "spam again")
	assert.ErrorIs(t, err, ErrAlreadyBanned)
}

func TestIssueBanRequiresNotification(t *testing.T) {
	client := newFakeClient()
	client.dmErr = platform.ErrForbidden
	store := newFakeStore()
	m := newTestManager(t, client, store)

	err := m.IssueBan(context.Background(), 10, 20, 30, time.Hour, "")
	assert.ErrorIs(t, err, ErrNotificationFailed)
	assert.Empty(t, client.bans)
	assert.False(t, store.has(models.BanKey{CommunityID: 10, SubjectID: 20}))
}

func TestIssueBanRollsBackNotificationOnBanFailure(t *testing.T) {
	client := newFakeClient()
	client.banErr = platform.ErrForbidden
	store := newFakeStore()
	m := newTestManager(t, client, store)

	err := m.IssueBan(context.Background(), 10, 20, 30, time.Hour, "")
	assert.ErrorIs(t, err, ErrActionForbidden)
	assert.Len(t, client.deletes, 1)
	assert.False(t, store.has(models.BanKey{CommunityID: 10, SubjectID: 20}))
}

func TestIssueBanSnapshotsRoles(t *testing.T) {
	client := newFakeClient()
	client.roles = []int64{7, 3}
	store := newFakeStore()
	m := newTestManager(t, client, store)

	require.NoError(t, m.IssueBan(context.Background(), 10, 20, 30, time.Hour, ""))

	record, ok := m.get(models.BanKey{CommunityID: 10, SubjectID: 20})
	require.True(t, ok)
	assert.Equal(t, []int64{7, 3}, record.RestoreRoleIDs())
}

func TestManualUnbanNotBanned(t *testing.T) {
	client := newFakeClient()
	client.unbanErr = platform.ErrNotFound
	store := newFakeStore()
	m := newTestManager(t, client, store)

	_, err := m.ManualUnban(context.Background(), 10, 20, 30, "")
	assert.ErrorIs(t, err, ErrNotBanned)
}

func TestManualUnbanRemovesRecordFirst(t *testing.T) {
	client := newFakeClient()
	store := newFakeStore()
	m := newTestManager(t, client, store)
	ctx := context.Background()
	key := models.BanKey{CommunityID: 10, SubjectID: 20}

	require.NoError(t, m.IssueBan(ctx, 10, 20, 30, time.Hour, ""))
	require.True(t, store.has(key))

	// Even when the platform reports the subject was not banned, the
	// record must not come back.
	client.unbanErr = platform.ErrNotFound
	_, err := m.ManualUnban(ctx, 10, 20, 30, "")
	assert.ErrorIs(t, err, ErrNotBanned)
	assert.False(t, store.has(key))
	_, ok := m.get(key)
	assert.False(t, ok)
}

func TestManualUnbanSuccess(t *testing.T) {
	client := newFakeClient()
	store := newFakeStore()
	m := newTestManager(t, client, store)
	ctx := context.Background()

	require.NoError(t, m.IssueBan(ctx, 10, 20, 30, time.Hour, ""))
	invite, err := m.ManualUnban(ctx, 10, 20, 40, "appeal accepted")
	require.NoError(t, err)
	assert.NotEmpty(t, invite)
	assert.Equal(t, 1, client.unbanCount())
}

func TestExpireRestoresRolesWhenPresent(t *testing.T) {
	client := newFakeClient()
	client.member = true
	record := &models.BanRecord{
		CommunityID:    10,
		SubjectID:      20,
		UnbanTimestamp: time.Now().Add(-time.Minute).Unix(),
		RolesToRestore: models.EncodeIDList([]int64{7, 3}),
		Status:         models.BanStatusActive,
	}
	store := newFakeStore(record)
	m := newTestManager(t, client, store)

	held, ok := m.get(record.Key())
	require.True(t, ok)
	m.expire(context.Background(), held)

	assert.Equal(t, 1, client.unbanCount())
	assert.Equal(t, []int64{7, 3}, client.grantedRoles())
	assert.False(t, store.has(record.Key()))
}

func TestExpireDefersRolesWhenAbsent(t *testing.T) {
	client := newFakeClient()
	client.member = false
	record := &models.BanRecord{
		CommunityID:    10,
		SubjectID:      20,
		UnbanTimestamp: time.Now().Add(-time.Minute).Unix(),
		RolesToRestore: models.EncodeIDList([]int64{7}),
		Status:         models.BanStatusActive,
	}
	store := newFakeStore(record)
	m := newTestManager(t, client, store)

	held, _ := m.get(record.Key())
	m.expire(context.Background(), held)

	assert.Empty(t, client.grantedRoles())
	require.True(t, store.has(record.Key()))
	assert.Equal(t, models.BanStatusPendingRoles, held.Status)
}

func TestExpireSkipsInviteWhenAlreadyUnbanned(t *testing.T) {
	client := newFakeClient()
	client.unbanErr = platform.ErrNotFound
	record := &models.BanRecord{
		CommunityID:    10,
		SubjectID:      20,
		UnbanTimestamp: time.Now().Add(-time.Minute).Unix(),
		Status:         models.BanStatusActive,
	}
	store := newFakeStore(record)
	m := newTestManager(t, client, store)

	held, _ := m.get(record.Key())
	m.expire(context.Background(), held)

	assert.Zero(t, client.invites)
	assert.False(t, store.has(record.Key()))
}

func TestHandleRejoinRestoresPendingRoles(t *testing.T) {
	client := newFakeClient()
	record := &models.BanRecord{
		CommunityID:    10,
		SubjectID:      20,
		RolesToRestore: models.EncodeIDList([]int64{5}),
		Status:         models.BanStatusPendingRoles,
	}
	store := newFakeStore(record)
	m := newTestManager(t, client, store)

	m.HandleRejoin(context.Background(), 10, 20)

	assert.Equal(t, []int64{5}, client.grantedRoles())
	assert.False(t, store.has(record.Key()))
}

func TestHandleRejoinIgnoresActiveBans(t *testing.T) {
	client := newFakeClient()
	record := &models.BanRecord{
		CommunityID:    10,
		SubjectID:      20,
		UnbanTimestamp: time.Now().Add(time.Hour).Unix(),
		RolesToRestore: models.EncodeIDList([]int64{5}),
		Status:         models.BanStatusActive,
	}
	store := newFakeStore(record)
	m := newTestManager(t, client, store)

	m.HandleRejoin(context.Background(), 10, 20)

	assert.Empty(t, client.grantedRoles())
	assert.True(t, store.has(record.Key()))
}

func TestResumeSessionsExpiresOverdueBan(t *testing.T) {
	client := newFakeClient()
	record := &models.BanRecord{
		CommunityID:    10,
		SubjectID:      20,
		UnbanTimestamp: time.Now().Add(-time.Hour).Unix(),
		Status:         models.BanStatusActive,
	}
	store := newFakeStore(record)
	m := newTestManager(t, client, store)

	m.ResumeSessions()

	require.Eventually(t, func() bool {
		return client.unbanCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return !store.has(record.Key())
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRefreshCountdown(t *testing.T) {
	client := newFakeClient()
	store := newFakeStore()
	m := newTestManager(t, client, store)
	ctx := context.Background()

	assert.ErrorIs(t, m.RefreshCountdown(ctx, 20), ErrNoActiveBan)

	require.NoError(t, m.IssueBan(ctx, 10, 20, 30, time.Hour, ""))
	require.NoError(t, m.RefreshCountdown(ctx, 20))
	assert.NotEmpty(t, client.edits)
}
