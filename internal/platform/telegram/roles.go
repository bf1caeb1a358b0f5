package telegram

import (
	"context"

	"tg-turfbot/internal/models"
	"tg-turfbot/internal/platform"
)

// EnsureRole returns the id of the named role artifact, creating the
// definition if it does not exist yet.
func (a *Adapter) EnsureRole(ctx context.Context, communityID int64, name string, rank int) (int64, error) {
	role, err := a.roles.GetByName(communityID, name)
	if err != nil {
		return 0, err
	}
	if role != nil {
		return role.ID, nil
	}
	role = &models.Role{CommunityID: communityID, Name: name, Rank: rank}
	if err := a.roles.Create(role); err != nil {
		return 0, err
	}
	return role.ID, nil
}

// DeleteRole removes a role definition and every membership of it
func (a *Adapter) DeleteRole(ctx context.Context, communityID int64, name string) error {
	role, err := a.roles.GetByName(communityID, name)
	if err != nil {
		return err
	}
	if role == nil {
		return platform.ErrNotFound
	}
	return a.roles.DeleteRole(role.ID)
}

// GrantRole adds a user to a role artifact
func (a *Adapter) GrantRole(ctx context.Context, communityID, userID, roleID int64) error {
	exists, err := a.roles.RoleExists(roleID)
	if err != nil {
		return err
	}
	if !exists {
		return platform.ErrNotFound
	}
	return a.roles.AddMember(roleID, communityID, userID)
}

// RevokeRole removes a user from a role artifact
func (a *Adapter) RevokeRole(ctx context.Context, communityID, userID, roleID int64) error {
	return a.roles.RemoveMember(roleID, userID)
}

// MemberRoles returns the role ids a user holds, highest rank first
func (a *Adapter) MemberRoles(ctx context.Context, communityID, userID int64) ([]int64, error) {
	return a.roles.MemberRoleIDs(communityID, userID)
}

// RoleMembers returns the user ids holding the named role
func (a *Adapter) RoleMembers(ctx context.Context, communityID int64, name string) ([]int64, error) {
	role, err := a.roles.GetByName(communityID, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, platform.ErrNotFound
	}
	return a.roles.MemberIDs(role.ID)
}
