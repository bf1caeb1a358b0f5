package handler

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-turfbot/internal/logger"
)

// handleChatMemberUpdate watches member status transitions. A user
// whose expired ban still owes roles gets them back the moment they
// rejoin.
func (h *Handler) handleChatMemberUpdate(ctx *th.Context, update telego.Update) error {
	if update.ChatMember == nil {
		return nil
	}

	newChatMember := update.ChatMember.NewChatMember
	user := newChatMember.MemberUser()
	if user.IsBot {
		return nil
	}

	if !newChatMember.MemberIsMember() {
		return nil
	}

	chatID := update.ChatMember.Chat.ID
	logger.Debugf("Member update: user %d became member of %d", user.ID, chatID)
	h.bans.HandleRejoin(ctx.Context(), chatID, user.ID)
	return nil
}
