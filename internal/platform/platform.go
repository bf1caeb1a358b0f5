package platform

import (
	"context"
	"errors"
)

// Sentinel outcomes of platform actions. Engines treat both as
// first-class, non-fatal conditions and branch on them.
var (
	// ErrForbidden means the bot lacks the privilege for the action.
	ErrForbidden = errors.New("platform: forbidden")
	// ErrNotFound means the action target is gone.
	ErrNotFound = errors.New("platform: not found")
)

// MessageRef is an opaque handle to a previously sent message.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// IsZero reports whether the ref points at no message.
func (m MessageRef) IsZero() bool {
	return m.MessageID == 0
}

// Button is one inline-keyboard button. Exactly one of Callback and URL
// should be set.
type Button struct {
	Text     string
	Callback string
	URL      string
}

// Keyboard is rows of buttons attached to a message.
type Keyboard [][]Button

// Client is the chat-platform action surface the engines run against.
// Implementations map their native failure modes onto ErrForbidden and
// ErrNotFound.
type Client interface {
	// Messaging
	SendDirectMessage(ctx context.Context, userID int64, text string, kb Keyboard) (MessageRef, error)
	SendGroupMessage(ctx context.Context, communityID int64, text string, kb Keyboard) (MessageRef, error)
	EditMessage(ctx context.Context, ref MessageRef, text string, kb Keyboard) error
	DeleteMessage(ctx context.Context, ref MessageRef) error

	// Membership moderation
	BanMember(ctx context.Context, communityID, userID int64) error
	UnbanMember(ctx context.Context, communityID, userID int64) error
	KickMember(ctx context.Context, communityID, userID int64) error
	IsMember(ctx context.Context, communityID, userID int64) (bool, error)
	IsAdmin(ctx context.Context, communityID, userID int64) (bool, error)
	CreateInvite(ctx context.Context, communityID int64) (string, error)

	// Role artifacts
	EnsureRole(ctx context.Context, communityID int64, name string, rank int) (int64, error)
	DeleteRole(ctx context.Context, communityID int64, name string) error
	GrantRole(ctx context.Context, communityID, userID, roleID int64) error
	RevokeRole(ctx context.Context, communityID, userID, roleID int64) error
	MemberRoles(ctx context.Context, communityID, userID int64) ([]int64, error)
	RoleMembers(ctx context.Context, communityID int64, name string) ([]int64, error)

	// Lookups
	CommunityName(ctx context.Context, communityID int64) (string, error)
	UserName(ctx context.Context, userID int64) (string, error)
}
