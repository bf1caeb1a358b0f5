package waitlist

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tg-turfbot/internal/models"
	"tg-turfbot/internal/platform"
)

type fakeClient struct {
	mu sync.Mutex

	nextMessageID int
	nextRoleID    int64
	roles         map[string]int64
	deletedRoles  []string
	grants        map[int64][]int64
	groupTexts    []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		roles:  make(map[string]int64),
		grants: make(map[int64][]int64),
	}
}

func (c *fakeClient) SendDirectMessage(ctx context.Context, userID int64, text string, kb platform.Keyboard) (platform.MessageRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextMessageID++
	return platform.MessageRef{ChatID: userID, MessageID: c.nextMessageID}, nil
}

func (c *fakeClient) SendGroupMessage(ctx context.Context, communityID int64, text string, kb platform.Keyboard) (platform.MessageRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextMessageID++
	c.groupTexts = append(c.groupTexts, text)
	return platform.MessageRef{ChatID: communityID, MessageID: c.nextMessageID}, nil
}

func (c *fakeClient) EditMessage(ctx context.Context, ref platform.MessageRef, text string, kb platform.Keyboard) error {
	return nil
}

func (c *fakeClient) DeleteMessage(ctx context.Context, ref platform.MessageRef) error { return nil }

func (c *fakeClient) BanMember(ctx context.Context, communityID, userID int64) error   { return nil }
func (c *fakeClient) UnbanMember(ctx context.Context, communityID, userID int64) error { return nil }
func (c *fakeClient) KickMember(ctx context.Context, communityID, userID int64) error  { return nil }

func (c *fakeClient) IsMember(ctx context.Context, communityID, userID int64) (bool, error) {
	return true, nil
}

func (c *fakeClient) IsAdmin(ctx context.Context, communityID, userID int64) (bool, error) {
	return false, nil
}

func (c *fakeClient) CreateInvite(ctx context.Context, communityID int64) (string, error) {
	return "", nil
}

func (c *fakeClient) EnsureRole(ctx context.Context, communityID int64, name string, rank int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.roles[name]; ok {
		return id, nil
	}
	c.nextRoleID++
	c.roles[name] = c.nextRoleID
	return c.nextRoleID, nil
}

func (c *fakeClient) DeleteRole(ctx context.Context, communityID int64, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.roles[name]; !ok {
		return platform.ErrNotFound
	}
	delete(c.roles, name)
	c.deletedRoles = append(c.deletedRoles, name)
	return nil
}

func (c *fakeClient) GrantRole(ctx context.Context, communityID, userID, roleID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grants[userID] = append(c.grants[userID], roleID)
	return nil
}

func (c *fakeClient) RevokeRole(ctx context.Context, communityID, userID, roleID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.grants[userID][:0]
	for _, id := range c.grants[userID] {
		if id != roleID {
			kept = append(kept, id)
		}
	}
	c.grants[userID] = kept
	return nil
}

func (c *fakeClient) MemberRoles(ctx context.Context, communityID, userID int64) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int64(nil), c.grants[userID]...), nil
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

type fakeStore struct {
	mu    sync.Mutex
	lists map[int64]*models.Waitlist
}

func newFakeStore() *fakeStore {
	return &fakeStore{lists: make(map[int64]*models.Waitlist)}
}

func (s *fakeStore) Get(communityID int64) (*models.Waitlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists[communityID], nil
}

func (s *fakeStore) Save(list *models.Waitlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[list.CommunityID] = list
	return nil
}

func (s *fakeStore) GetAll() ([]*models.Waitlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists := make([]*models.Waitlist, 0, len(s.lists))
	for _, list := range s.lists {
		lists = append(lists, list)
	}
	return lists, nil
}

func newTestEngine(maxMain int) (*Engine, *fakeClient, *fakeStore) {
	client := newFakeClient()
	store := newFakeStore()
	engine := NewEngine(client, store, func(int64) string { return models.LangEnglish }, maxMain, "Main", "Reserve")
	return engine, client, store
}

func TestJoinFillsMainThenReserve(t *testing.T) {
	engine, _, store := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, engine.Start(ctx, 1, 1, true))

	result, err := engine.Join(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, JoinedMain, result)

	result, err = engine.Join(ctx, 1, 101)
	require.NoError(t, err)
	assert.Equal(t, JoinedMain, result)

	result, err = engine.Join(ctx, 1, 102)
	require.NoError(t, err)
	assert.Equal(t, JoinedReserve, result)

	list, _ := store.Get(1)
	assert.Equal(t, []int64{100, 101}, list.MainIDs())
	assert.Equal(t, []int64{102}, list.ReserveIDs())
}

func TestJoinRejectsDuplicates(t *testing.T) {
	engine, _, _ := newTestEngine(1)
	ctx := context.Background()
	require.NoError(t, engine.Start(ctx, 1, 1, true))

	_, err := engine.Join(ctx, 1, 100)
	require.NoError(t, err)
	_, err = engine.Join(ctx, 1, 100)
	assert.ErrorIs(t, err, ErrAlreadyInMain)

	_, err = engine.Join(ctx, 1, 101)
	require.NoError(t, err)
	_, err = engine.Join(ctx, 1, 101)
	assert.ErrorIs(t, err, ErrAlreadyInReserve)
}

func TestLeavePromotesReserveHead(t *testing.T) {
	engine, client, store := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, engine.Start(ctx, 1, 1, true))

	for _, userID := range []int64{100, 101, 102, 103} {
		_, err := engine.Join(ctx, 1, userID)
		require.NoError(t, err)
	}

	promoted, err := engine.Leave(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(102), promoted)

	list, _ := store.Get(1)
	assert.Equal(t, []int64{101, 102}, list.MainIDs())
	assert.Equal(t, []int64{103}, list.ReserveIDs())

	// Promotion notice went to the channel.
	client.mu.Lock()
	texts := append([]string(nil), client.groupTexts...)
	client.mu.Unlock()
	assert.Contains(t, texts[len(texts)-1], "User 102")
}

func TestLeaveFromReserveDoesNotTouchMain(t *testing.T) {
	engine, _, store := newTestEngine(1)
	ctx := context.Background()
	require.NoError(t, engine.Start(ctx, 1, 1, true))

	_, err := engine.Join(ctx, 1, 100)
	require.NoError(t, err)
	_, err = engine.Join(ctx, 1, 101)
	require.NoError(t, err)

	promoted, err := engine.Leave(ctx, 1, 101)
	require.NoError(t, err)
	assert.Zero(t, promoted)

	list, _ := store.Get(1)
	assert.Equal(t, []int64{100}, list.MainIDs())
	assert.Empty(t, list.ReserveIDs())
}

func TestLeaveNotOnList(t *testing.T) {
	engine, _, _ := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, engine.Start(ctx, 1, 1, true))

	_, err := engine.Leave(ctx, 1, 999)
	assert.ErrorIs(t, err, ErrNotOnList)
}

func TestMoveToReserveLeavesSlotOpen(t *testing.T) {
	engine, _, store := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, engine.Start(ctx, 1, 1, true))

	for _, userID := range []int64{100, 101, 102} {
		_, err := engine.Join(ctx, 1, userID)
		require.NoError(t, err)
	}

	require.NoError(t, engine.MoveToReserve(ctx, 1, 100))

	list, _ := store.Get(1)
	assert.Equal(t, []int64{101}, list.MainIDs())
	assert.Equal(t, []int64{102, 100}, list.ReserveIDs())

	assert.ErrorIs(t, engine.MoveToReserve(ctx, 1, 100), ErrAlreadyInReserve)
}

func TestMoveToReserveJoinsReserveDirectly(t *testing.T) {
	engine, _, store := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, engine.Start(ctx, 1, 1, true))

	require.NoError(t, engine.MoveToReserve(ctx, 1, 200))

	list, _ := store.Get(1)
	assert.Empty(t, list.MainIDs())
	assert.Equal(t, []int64{200}, list.ReserveIDs())

	assert.ErrorIs(t, engine.MoveToReserve(ctx, 1, 200), ErrAlreadyInReserve)
}

func TestJoinClimbsIntoFreedSlot(t *testing.T) {
	engine, _, store := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, engine.Start(ctx, 1, 1, true))

	for _, userID := range []int64{100, 101, 102} {
		_, err := engine.Join(ctx, 1, userID)
		require.NoError(t, err)
	}
	require.NoError(t, engine.MoveToReserve(ctx, 1, 101))

	// 102 sat in reserve; the freed slot lets a fresh join move them up.
	result, err := engine.Join(ctx, 1, 102)
	require.NoError(t, err)
	assert.Equal(t, JoinedMain, result)

	list, _ := store.Get(1)
	assert.Equal(t, []int64{100, 102}, list.MainIDs())
	assert.Equal(t, []int64{101}, list.ReserveIDs())
}

func TestLockClearsSlotsAndRoles(t *testing.T) {
	engine, client, store := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, engine.Start(ctx, 1, 1, true))

	_, err := engine.Join(ctx, 1, 100)
	require.NoError(t, err)

	require.NoError(t, engine.Lock(ctx, 1))

	list, _ := store.Get(1)
	assert.True(t, list.Locked)
	assert.Empty(t, list.MainIDs())
	assert.Empty(t, list.ReserveIDs())

	client.mu.Lock()
	deleted := append([]string(nil), client.deletedRoles...)
	client.mu.Unlock()
	assert.ElementsMatch(t, []string{"Main", "Reserve"}, deleted)

	assert.ErrorIs(t, engine.Lock(ctx, 1), ErrAlreadyLocked)
	_, err = engine.Join(ctx, 1, 101)
	assert.ErrorIs(t, err, ErrListLocked)
}

func TestLockWithoutList(t *testing.T) {
	engine, _, _ := newTestEngine(2)
	assert.ErrorIs(t, engine.Lock(context.Background(), 1), ErrNoList)
}

func TestStartSupersedesExistingList(t *testing.T) {
	engine, _, store := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, engine.Start(ctx, 1, 1, true))

	_, err := engine.Join(ctx, 1, 100)
	require.NoError(t, err)

	require.NoError(t, engine.Start(ctx, 1, 1, true))

	list, _ := store.Get(1)
	assert.Empty(t, list.MainIDs())
	assert.Empty(t, list.ReserveIDs())
	assert.False(t, list.Locked)
}

func TestStartCanKeepLineup(t *testing.T) {
	engine, _, store := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, engine.Start(ctx, 1, 1, true))

	for _, userID := range []int64{100, 101, 102} {
		_, err := engine.Join(ctx, 1, userID)
		require.NoError(t, err)
	}

	require.NoError(t, engine.Start(ctx, 1, 1, false))

	list, _ := store.Get(1)
	assert.Equal(t, []int64{100, 101}, list.MainIDs())
	assert.Equal(t, []int64{102}, list.ReserveIDs())
	assert.False(t, list.Locked)
}

func TestDisplayUsesCommunityLanguage(t *testing.T) {
	client := newFakeClient()
	store := newFakeStore()
	engine := NewEngine(client, store, func(communityID int64) string {
		if communityID == 2 {
			return models.LangGerman
		}
		return models.LangEnglish
	}, 2, "Main", "Reserve")
	ctx := context.Background()

	require.NoError(t, engine.Start(ctx, 2, 2, true))

	client.mu.Lock()
	texts := append([]string(nil), client.groupTexts...)
	client.mu.Unlock()
	require.NotEmpty(t, texts)
	assert.Contains(t, texts[0], models.GetTranslation(models.LangGerman, "list_header"))
}

func TestMainCapacityNeverExceeded(t *testing.T) {
	engine, _, store := newTestEngine(3)
	ctx := context.Background()
	require.NoError(t, engine.Start(ctx, 1, 1, true))

	for userID := int64(100); userID < 110; userID++ {
		_, err := engine.Join(ctx, 1, userID)
		require.NoError(t, err)
	}

	list, _ := store.Get(1)
	assert.Len(t, list.MainIDs(), 3)
	assert.Len(t, list.ReserveIDs(), 7)
}
