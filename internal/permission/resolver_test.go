package permission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tg-turfbot/internal/models"
	"tg-turfbot/internal/platform"
)

type fakeClient struct {
	admins map[int64]bool
	// role ids per user, highest rank first
	roles map[int64][]int64
}

func newFakeClient() *fakeClient {
	return &fakeClient{admins: make(map[int64]bool), roles: make(map[int64][]int64)}
}

func (c *fakeClient) SendDirectMessage(ctx context.Context, userID int64, text string, kb platform.Keyboard) (platform.MessageRef, error) {
	return platform.MessageRef{}, nil
}

func (c *fakeClient) SendGroupMessage(ctx context.Context, communityID int64, text string, kb platform.Keyboard) (platform.MessageRef, error) {
	return platform.MessageRef{}, nil
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
	return c.admins[userID], nil
}

func (c *fakeClient) CreateInvite(ctx context.Context, communityID int64) (string, error) {
	return "", nil
}

func (c *fakeClient) EnsureRole(ctx context.Context, communityID int64, name string, rank int) (int64, error) {
	return 0, nil
}

func (c *fakeClient) DeleteRole(ctx context.Context, communityID int64, name string) error {
	return nil
}

func (c *fakeClient) GrantRole(ctx context.Context, communityID, userID, roleID int64) error {
	return nil
}

func (c *fakeClient) RevokeRole(ctx context.Context, communityID, userID, roleID int64) error {
	return nil
}

func (c *fakeClient) MemberRoles(ctx context.Context, communityID, userID int64) ([]int64, error) {
	return c.roles[userID], nil
}

func (c *fakeClient) RoleMembers(ctx context.Context, communityID int64, name string) ([]int64, error) {
	return nil, platform.ErrNotFound
}

func (c *fakeClient) CommunityName(ctx context.Context, communityID int64) (string, error) {
	return "", nil
}

func (c *fakeClient) UserName(ctx context.Context, userID int64) (string, error) { return "", nil }

type fakeStore struct {
	rules []*models.PermissionRule
}

func (s *fakeStore) Upsert(rule *models.PermissionRule) error {
	s.rules = append(s.rules, rule)
	return nil
}

func (s *fakeStore) Delete(communityID int64, kind models.TargetKind, targetID int64, command string) error {
	return nil
}

func (s *fakeStore) GetAll() ([]*models.PermissionRule, error) {
	return s.rules, nil
}

func newTestResolver(t *testing.T, client *fakeClient, ownerID int64) *Resolver {
	t.Helper()
	r, err := NewResolver(client, &fakeStore{}, ownerID)
	require.NoError(t, err)
	return r
}

func TestOwnerAlwaysAllowed(t *testing.T) {
	client := newFakeClient()
	r := newTestResolver(t, client, 7)

	assert.True(t, r.Allowed(context.Background(), 1, 7, "ban"))
	assert.False(t, r.Allowed(context.Background(), 1, 8, "ban"))
}

func TestAdminsAllowedWithoutRules(t *testing.T) {
	client := newFakeClient()
	client.admins[5] = true
	r := newTestResolver(t, client, 0)

	assert.True(t, r.Allowed(context.Background(), 1, 5, "ban"))
	assert.False(t, r.Allowed(context.Background(), 1, 6, "ban"))
}

func TestUserRuleBeatsRoleRule(t *testing.T) {
	client := newFakeClient()
	client.roles[5] = []int64{100}
	r := newTestResolver(t, client, 0)

	require.NoError(t, r.Set(1, models.TargetRole, 100, "ban", models.EffectAllow))
	require.NoError(t, r.Set(1, models.TargetUser, 5, "ban", models.EffectDeny))

	assert.False(t, r.Allowed(context.Background(), 1, 5, "ban"))
}

func TestHighestRankedRoleRuleWins(t *testing.T) {
	client := newFakeClient()
	// Role 200 outranks role 100.
	client.roles[5] = []int64{200, 100}
	r := newTestResolver(t, client, 0)

	require.NoError(t, r.Set(1, models.TargetRole, 100, "ban", models.EffectAllow))
	require.NoError(t, r.Set(1, models.TargetRole, 200, "ban", models.EffectDeny))

	assert.False(t, r.Allowed(context.Background(), 1, 5, "ban"))

	// A user holding only the lower role still gets the allow.
	client.roles[6] = []int64{100}
	assert.True(t, r.Allowed(context.Background(), 1, 6, "ban"))
}

func TestRoleWithoutRuleFallsThrough(t *testing.T) {
	client := newFakeClient()
	client.roles[5] = []int64{300, 100}
	r := newTestResolver(t, client, 0)

	// Role 300 carries no rule for "ban"; the scan reaches role 100.
	require.NoError(t, r.Set(1, models.TargetRole, 100, "ban", models.EffectAllow))

	assert.True(t, r.Allowed(context.Background(), 1, 5, "ban"))
}

func TestRulesAreScopedPerCommand(t *testing.T) {
	client := newFakeClient()
	client.roles[5] = []int64{100}
	r := newTestResolver(t, client, 0)

	require.NoError(t, r.Set(1, models.TargetRole, 100, "ban", models.EffectAllow))

	assert.True(t, r.Allowed(context.Background(), 1, 5, "ban"))
	assert.False(t, r.Allowed(context.Background(), 1, 5, "kick"))
}

func TestResetRemovesRule(t *testing.T) {
	client := newFakeClient()
	r := newTestResolver(t, client, 0)

	require.NoError(t, r.Set(1, models.TargetUser, 5, "ban", models.EffectAllow))
	assert.True(t, r.Allowed(context.Background(), 1, 5, "ban"))

	require.NoError(t, r.Reset(1, models.TargetUser, 5, "ban"))
	assert.False(t, r.Allowed(context.Background(), 1, 5, "ban"))
}
