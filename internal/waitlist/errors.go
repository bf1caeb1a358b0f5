package waitlist

import "errors"

var (
	// ErrNoList means the community has no participation list yet.
	ErrNoList = errors.New("no active list")

	// ErrListLocked rejects mutations on a locked list.
	ErrListLocked = errors.New("list is locked")

	// ErrAlreadyLocked rejects locking a list twice.
	ErrAlreadyLocked = errors.New("list is already locked")

	// ErrAlreadyInMain means the user already holds a main slot.
	ErrAlreadyInMain = errors.New("already on the main list")

	// ErrAlreadyInReserve means the user is already queued in reserve.
	ErrAlreadyInReserve = errors.New("already on the reserve list")

	// ErrNotOnList means the user holds no slot at all.
	ErrNotOnList = errors.New("not on the list")
)
