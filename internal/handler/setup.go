package handler

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-turfbot/internal/crash"
)

// SetupMessageHandlers configures all bot message and update handlers
func (h *Handler) SetupMessageHandlers(bh *th.BotHandler) {
	bh.HandleMessage(func(ctx *th.Context, message telego.Message) error {
		defer crash.RecoverWithStack("message-handler")
		return h.dispatchCommand(ctx, message)
	})

	bh.Handle(func(ctx *th.Context, update telego.Update) error {
		defer crash.RecoverWithStack("chat-member-handler")
		return h.handleChatMemberUpdate(ctx, update)
	}, th.AnyChatMember())

	bh.HandleCallbackQuery(func(ctx *th.Context, query telego.CallbackQuery) error {
		defer crash.RecoverWithStack("callback-handler")
		return h.handleCallbackQuery(ctx, query)
	})
}
