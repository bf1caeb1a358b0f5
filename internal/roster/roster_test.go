package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tg-turfbot/internal/platform"
)

type fakeClient struct {
	members map[string][]int64
	failDM  map[int64]bool
	dms     []int64
}

func (c *fakeClient) RoleMembers(ctx context.Context, communityID int64, name string) ([]int64, error) {
	members, ok := c.members[name]
	if !ok {
		return nil, platform.ErrNotFound
	}
	return members, nil
}

func (c *fakeClient) SendDirectMessage(ctx context.Context, userID int64, text string, kb platform.Keyboard) (platform.MessageRef, error) {
	if c.failDM[userID] {
		return platform.MessageRef{}, platform.ErrForbidden
	}
	c.dms = append(c.dms, userID)
	return platform.MessageRef{ChatID: userID, MessageID: 1}, nil
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
	return false, nil
}

func (c *fakeClient) CreateInvite(ctx context.Context, communityID int64) (string, error) {
	return "", nil
}

func (c *fakeClient) EnsureRole(ctx context.Context, communityID int64, name string, rank int) (int64, error) {
	return 1, nil
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
	return nil, nil
}

func (c *fakeClient) CommunityName(ctx context.Context, communityID int64) (string, error) {
	return "", nil
}

func (c *fakeClient) UserName(ctx context.Context, userID int64) (string, error) { return "", nil }

func TestMessageRoleDeliversToEveryHolder(t *testing.T) {
	client := &fakeClient{members: map[string][]int64{"Main": {100, 101, 102}}}

	sent, err := MessageRole(context.Background(), client, 1, "Main", "meeting at 8")
	require.NoError(t, err)
	assert.Equal(t, 3, sent)
	assert.Equal(t, []int64{100, 101, 102}, client.dms)
}

func TestMessageRoleSkipsUnreachableHolders(t *testing.T) {
	client := &fakeClient{
		members: map[string][]int64{"Main": {100, 101, 102}},
		failDM:  map[int64]bool{101: true},
	}

	sent, err := MessageRole(context.Background(), client, 1, "Main", "meeting at 8")
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []int64{100, 102}, client.dms)
}

func TestMessageRoleUnknownRole(t *testing.T) {
	client := &fakeClient{members: map[string][]int64{}}

	_, err := MessageRole(context.Background(), client, 1, "Ghost", "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, platform.ErrNotFound))
}
