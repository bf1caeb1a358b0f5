package permission

import (
	"context"
	"fmt"
	"sync"

	"tg-turfbot/internal/logger"
	"tg-turfbot/internal/models"
	"tg-turfbot/internal/platform"
)

// Store is the persistence surface for permission rules.
type Store interface {
	Upsert(rule *models.PermissionRule) error
	Delete(communityID int64, kind models.TargetKind, targetID int64, command string) error
	GetAll() ([]*models.PermissionRule, error)
}

type ruleKey struct {
	communityID int64
	kind        models.TargetKind
	targetID    int64
	command     string
}

// Resolver answers "may this actor run this command here". Precedence,
// first match wins:
//
//	1. the configured owner
//	2. native community admins
//	3. an explicit rule for the user
//	4. the rule of the actor's highest-ranked role carrying one
//	5. deny
type Resolver struct {
	client  platform.Client
	store   Store
	ownerID int64

	mu    sync.RWMutex
	rules map[ruleKey]string
}

// NewResolver builds the resolver and loads all persisted rules.
func NewResolver(client platform.Client, store Store, ownerID int64) (*Resolver, error) {
	r := &Resolver{
		client:  client,
		store:   store,
		ownerID: ownerID,
		rules:   make(map[ruleKey]string),
	}
	rules, err := store.GetAll()
	if err != nil {
		return nil, fmt.Errorf("loading permission rules: %w", err)
	}
	for _, rule := range rules {
		r.rules[keyOf(rule)] = rule.Effect
	}
	logger.Infof("Permission resolver loaded with %d rules", len(r.rules))
	return r, nil
}

func keyOf(rule *models.PermissionRule) ruleKey {
	return ruleKey{
		communityID: rule.CommunityID,
		kind:        rule.TargetKind,
		targetID:    rule.TargetID,
		command:     rule.Command,
	}
}

func (r *Resolver) lookup(communityID int64, kind models.TargetKind, targetID int64, command string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	effect, ok := r.rules[ruleKey{communityID: communityID, kind: kind, targetID: targetID, command: command}]
	return effect, ok
}

// Allowed resolves whether the actor may run the command in the
// community. Platform lookups that fail fall through to the next rung
// rather than blocking the whole resolution.
func (r *Resolver) Allowed(ctx context.Context, communityID, actorID int64, command string) bool {
	if r.ownerID != 0 && actorID == r.ownerID {
		return true
	}

	isAdmin, err := r.client.IsAdmin(ctx, communityID, actorID)
	if err != nil {
		logger.Warningf("Error checking admin status of %d in %d: %v", actorID, communityID, err)
	}
	if isAdmin {
		return true
	}

	if effect, ok := r.lookup(communityID, models.TargetUser, actorID, command); ok {
		return effect == models.EffectAllow
	}

	// MemberRoles yields role ids ordered by descending rank, so the
	// first role carrying a rule shadows all lower ones.
	roleIDs, err := r.client.MemberRoles(ctx, communityID, actorID)
	if err != nil {
		logger.Warningf("Error loading roles of %d in %d: %v", actorID, communityID, err)
	}
	for _, roleID := range roleIDs {
		if effect, ok := r.lookup(communityID, models.TargetRole, roleID, command); ok {
			return effect == models.EffectAllow
		}
	}

	return false
}

// Set stores an allow or deny rule and updates the cache.
func (r *Resolver) Set(communityID int64, kind models.TargetKind, targetID int64, command, effect string) error {
	rule := &models.PermissionRule{
		CommunityID: communityID,
		TargetKind:  kind,
		TargetID:    targetID,
		Command:     command,
		Effect:      effect,
	}
	if err := r.store.Upsert(rule); err != nil {
		return err
	}
	r.mu.Lock()
	r.rules[keyOf(rule)] = effect
	r.mu.Unlock()
	return nil
}

// Reset removes a rule; resolution for the target falls back to the
// remaining rungs.
func (r *Resolver) Reset(communityID int64, kind models.TargetKind, targetID int64, command string) error {
	if err := r.store.Delete(communityID, kind, targetID, command); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.rules, ruleKey{communityID: communityID, kind: kind, targetID: targetID, command: command})
	r.mu.Unlock()
	return nil
}
