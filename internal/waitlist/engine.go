package waitlist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tg-turfbot/internal/logger"
	"tg-turfbot/internal/models"
	"tg-turfbot/internal/platform"
)

// Callback data for the list display buttons.
const (
	JoinCallback    = "list:join"
	LeaveCallback   = "list:leave"
	ReserveCallback = "list:reserve"
)

// JoinResult reports which side of the list a join landed on.
type JoinResult int

const (
	JoinedMain JoinResult = iota
	JoinedReserve
)

// Store is the persistence surface for participation lists.
type Store interface {
	Get(communityID int64) (*models.Waitlist, error)
	Save(list *models.Waitlist) error
	GetAll() ([]*models.Waitlist, error)
}

// Engine manages per-community participation lists: a capped main list,
// a strictly FIFO reserve queue, and the role artifacts mirroring
// membership. One list per community; a restart supersedes the old one.
type Engine struct {
	client platform.Client
	store  Store
	langOf func(communityID int64) string

	maxMain         int
	mainRoleName    string
	reserveRoleName string

	// Per-community locks; every list mutation runs under its
	// community's lock.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewEngine creates the list engine. langOf resolves the language the
// community's displays render in; maxMain is the main list capacity.
func NewEngine(client platform.Client, store Store, langOf func(communityID int64) string, maxMain int, mainRoleName, reserveRoleName string) *Engine {
	return &Engine{
		client:          client,
		store:           store,
		langOf:          langOf,
		maxMain:         maxMain,
		mainRoleName:    mainRoleName,
		reserveRoleName: reserveRoleName,
		locks:           make(map[int64]*sync.Mutex),
	}
}

func (e *Engine) communityLock(communityID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[communityID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[communityID] = lock
	}
	return lock
}

// ensureRoles resolves or creates the main and reserve role artifacts.
func (e *Engine) ensureRoles(ctx context.Context, communityID int64) (mainRole, reserveRole int64, err error) {
	mainRole, err = e.client.EnsureRole(ctx, communityID, e.mainRoleName, 1)
	if err != nil {
		return 0, 0, fmt.Errorf("ensuring role %q: %w", e.mainRoleName, err)
	}
	reserveRole, err = e.client.EnsureRole(ctx, communityID, e.reserveRoleName, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("ensuring role %q: %w", e.reserveRoleName, err)
	}
	return mainRole, reserveRole, nil
}

// Start opens a new participation list in the given channel. An
// existing list is superseded: its display is struck through and,
// unless clearParticipants is false, its role grants are revoked and
// its slots cleared. A restart with clearParticipants false carries
// the current line-up over to the fresh display.
func (e *Engine) Start(ctx context.Context, communityID, channelID int64, clearParticipants bool) error {
	lock := e.communityLock(communityID)
	lock.Lock()
	defer lock.Unlock()

	list, err := e.store.Get(communityID)
	if err != nil {
		return err
	}

	mainRole, reserveRole, err := e.ensureRoles(ctx, communityID)
	if err != nil {
		return err
	}

	if list != nil {
		e.retireDisplay(ctx, list)
		if clearParticipants {
			e.revokeAll(ctx, communityID, mainRole, list.MainIDs())
			e.revokeAll(ctx, communityID, reserveRole, list.ReserveIDs())
			list.SetMainIDs(nil)
			list.SetReserveIDs(nil)
		}
	} else {
		list = &models.Waitlist{CommunityID: communityID}
	}
	list.ChannelID = channelID
	list.MessageID = 0
	list.Locked = false

	if err := e.store.Save(list); err != nil {
		return err
	}
	e.redraw(ctx, list)
	logger.Infof("Participation list started in community %d", communityID)
	return nil
}

// Join places the user on the list: a free main slot if one exists,
// the tail of the reserve queue otherwise. A reserve member joining
// while a main slot is free climbs into that slot.
func (e *Engine) Join(ctx context.Context, communityID, userID int64) (JoinResult, error) {
	lock := e.communityLock(communityID)
	lock.Lock()
	defer lock.Unlock()

	list, err := e.mutableList(communityID)
	if err != nil {
		return 0, err
	}

	main := list.MainIDs()
	reserve := list.ReserveIDs()
	if contains(main, userID) {
		return 0, ErrAlreadyInMain
	}
	if contains(reserve, userID) && len(main) >= e.maxMain {
		return 0, ErrAlreadyInReserve
	}

	mainRole, reserveRole, err := e.ensureRoles(ctx, communityID)
	if err != nil {
		return 0, err
	}

	result := JoinedMain
	if len(main) < e.maxMain {
		if contains(reserve, userID) {
			list.SetReserveIDs(removeID(reserve, userID))
			e.revoke(ctx, communityID, reserveRole, userID)
		}
		list.SetMainIDs(append(main, userID))
		e.grant(ctx, communityID, mainRole, userID)
	} else {
		result = JoinedReserve
		list.SetReserveIDs(append(reserve, userID))
		e.grant(ctx, communityID, reserveRole, userID)
	}

	if err := e.store.Save(list); err != nil {
		return 0, err
	}
	e.redraw(ctx, list)
	return result, nil
}

// Leave removes the user from whichever side of the list they occupy.
// A vacated main slot is backfilled by the head of the reserve queue;
// the promoted user's id is returned (0 when nobody moved up) and a
// promotion notice is posted to the list channel.
func (e *Engine) Leave(ctx context.Context, communityID, userID int64) (promoted int64, err error) {
	lock := e.communityLock(communityID)
	lock.Lock()
	defer lock.Unlock()

	list, err := e.mutableList(communityID)
	if err != nil {
		return 0, err
	}

	main := list.MainIDs()
	reserve := list.ReserveIDs()
	mainRole, reserveRole, err := e.ensureRoles(ctx, communityID)
	if err != nil {
		return 0, err
	}

	switch {
	case contains(main, userID):
		main = removeID(main, userID)
		e.revoke(ctx, communityID, mainRole, userID)
		if len(reserve) > 0 {
			promoted = reserve[0]
			reserve = reserve[1:]
			main = append(main, promoted)
			e.revoke(ctx, communityID, reserveRole, promoted)
			e.grant(ctx, communityID, mainRole, promoted)
		}
	case contains(reserve, userID):
		reserve = removeID(reserve, userID)
		e.revoke(ctx, communityID, reserveRole, userID)
	default:
		return 0, ErrNotOnList
	}

	list.SetMainIDs(main)
	list.SetReserveIDs(reserve)
	if err := e.store.Save(list); err != nil {
		return 0, err
	}
	e.redraw(ctx, list)

	if promoted != 0 {
		e.announcePromotion(ctx, list, promoted)
	}
	return promoted, nil
}

// MoveToReserve appends the user to the tail of the reserve queue. A
// held main slot is given up and stays open; nobody is promoted into a
// slot its holder gave up voluntarily. Users not on the list at all
// join the reserve queue directly.
func (e *Engine) MoveToReserve(ctx context.Context, communityID, userID int64) error {
	lock := e.communityLock(communityID)
	lock.Lock()
	defer lock.Unlock()

	list, err := e.mutableList(communityID)
	if err != nil {
		return err
	}

	main := list.MainIDs()
	reserve := list.ReserveIDs()
	if contains(reserve, userID) {
		return ErrAlreadyInReserve
	}

	mainRole, reserveRole, err := e.ensureRoles(ctx, communityID)
	if err != nil {
		return err
	}

	if contains(main, userID) {
		list.SetMainIDs(removeID(main, userID))
		e.revoke(ctx, communityID, mainRole, userID)
	}
	list.SetReserveIDs(append(reserve, userID))
	e.grant(ctx, communityID, reserveRole, userID)

	if err := e.store.Save(list); err != nil {
		return err
	}
	e.redraw(ctx, list)
	return nil
}

// Lock freezes the list: slots are cleared, both role artifacts are
// deleted, and the display keeps showing the final line-up read-only.
func (e *Engine) Lock(ctx context.Context, communityID int64) error {
	lock := e.communityLock(communityID)
	lock.Lock()
	defer lock.Unlock()

	list, err := e.store.Get(communityID)
	if err != nil {
		return err
	}
	if list == nil {
		return ErrNoList
	}
	if list.Locked {
		return ErrAlreadyLocked
	}

	// Render the final line-up before the slots are cleared.
	finalText := e.renderText(ctx, list, true)

	e.deleteRole(ctx, communityID, e.mainRoleName)
	e.deleteRole(ctx, communityID, e.reserveRoleName)

	list.Locked = true
	list.SetMainIDs(nil)
	list.SetReserveIDs(nil)
	if err := e.store.Save(list); err != nil {
		return err
	}

	if list.HasDisplay() {
		ref := platform.MessageRef{ChatID: list.ChannelID, MessageID: list.MessageID}
		if err := e.client.EditMessage(ctx, ref, finalText, nil); err != nil {
			logger.Warningf("Error finalizing list display in %d: %v", communityID, err)
		}
	}
	logger.Infof("Participation list locked in community %d", communityID)
	return nil
}

// Refresh re-renders the list display.
func (e *Engine) Refresh(ctx context.Context, communityID int64) error {
	lock := e.communityLock(communityID)
	lock.Lock()
	defer lock.Unlock()

	list, err := e.store.Get(communityID)
	if err != nil {
		return err
	}
	if list == nil {
		return ErrNoList
	}
	e.redraw(ctx, list)
	return nil
}

// RefreshAll re-renders every unlocked list display. Called once at
// startup so displays are current after downtime.
func (e *Engine) RefreshAll(ctx context.Context) {
	lists, err := e.store.GetAll()
	if err != nil {
		logger.Warningf("Error loading lists for refresh: %v", err)
		return
	}
	for _, list := range lists {
		if list.Locked || !list.HasDisplay() {
			continue
		}
		if err := e.Refresh(ctx, list.CommunityID); err != nil {
			logger.Warningf("Error refreshing list in %d: %v", list.CommunityID, err)
		}
	}
}

// mutableList loads the list and rejects missing or locked ones.
func (e *Engine) mutableList(communityID int64) (*models.Waitlist, error) {
	list, err := e.store.Get(communityID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrNoList
	}
	if list.Locked {
		return nil, ErrListLocked
	}
	return list, nil
}

func (e *Engine) grant(ctx context.Context, communityID, roleID, userID int64) {
	if err := e.client.GrantRole(ctx, communityID, userID, roleID); err != nil {
		logger.Warningf("Error granting role %d to %d in %d: %v", roleID, userID, communityID, err)
	}
}

func (e *Engine) revoke(ctx context.Context, communityID, roleID, userID int64) {
	if err := e.client.RevokeRole(ctx, communityID, userID, roleID); err != nil {
		logger.Warningf("Error revoking role %d from %d in %d: %v", roleID, userID, communityID, err)
	}
}

func (e *Engine) revokeAll(ctx context.Context, communityID, roleID int64, userIDs []int64) {
	for _, userID := range userIDs {
		e.revoke(ctx, communityID, roleID, userID)
	}
}

func (e *Engine) deleteRole(ctx context.Context, communityID int64, name string) {
	err := e.client.DeleteRole(ctx, communityID, name)
	if err != nil && !errors.Is(err, platform.ErrNotFound) {
		logger.Warningf("Error deleting role %q in %d: %v", name, communityID, err)
	}
}

func contains(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func removeID(ids []int64, id int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
