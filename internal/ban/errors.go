package ban

import "errors"

// Typed outcomes reported back to the command surface. None of these is
// fatal; handlers render them to the acting user.
var (
	// ErrAlreadyBanned rejects a second ban for an existing (community, subject) key.
	ErrAlreadyBanned = errors.New("subject is already banned")
	// ErrNotificationFailed means the countdown DM could not be delivered; no ban was performed.
	ErrNotificationFailed = errors.New("ban notification could not be delivered")
	// ErrActionForbidden means the bot lacks the privilege for the ban or unban action.
	ErrActionForbidden = errors.New("platform action forbidden")
	// ErrNotBanned means the platform reports the subject was not banned.
	ErrNotBanned = errors.New("subject is not banned")
	// ErrNoActiveBan means no active ban (or no live notification) exists for the subject.
	ErrNoActiveBan = errors.New("no active ban")
)
