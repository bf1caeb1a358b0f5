package handler

import (
	"github.com/mymmrac/telego"

	"tg-turfbot/internal/ban"
	"tg-turfbot/internal/bridge"
	"tg-turfbot/internal/config"
	"tg-turfbot/internal/permission"
	"tg-turfbot/internal/platform"
	"tg-turfbot/internal/storage"
	"tg-turfbot/internal/waitlist"
)

// Handler wires incoming updates to the engines. All state lives on the
// struct; one instance serves the whole process.
type Handler struct {
	bot    *telego.Bot
	client platform.Client

	bans        *ban.Manager
	lists       *waitlist.Engine
	perms       *permission.Resolver
	relay       *bridge.Relay
	reminders   *storage.ReminderRepository
	communities *storage.CommunityRepository

	cfg    *config.Config
	langOf func(communityID int64) string
}

// New creates the handler
func New(bot *telego.Bot, client platform.Client, bans *ban.Manager, lists *waitlist.Engine,
	perms *permission.Resolver, relay *bridge.Relay, reminders *storage.ReminderRepository,
	communities *storage.CommunityRepository, cfg *config.Config,
	langOf func(communityID int64) string) *Handler {
	return &Handler{
		bot:         bot,
		client:      client,
		bans:        bans,
		lists:       lists,
		perms:       perms,
		relay:       relay,
		reminders:   reminders,
		communities: communities,
		cfg:         cfg,
		langOf:      langOf,
	}
}
