package handler

import (
	"errors"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-turfbot/internal/ban"
	"tg-turfbot/internal/logger"
	"tg-turfbot/internal/waitlist"
)

// handleCallbackQuery routes inline button presses.
func (h *Handler) handleCallbackQuery(ctx *th.Context, query telego.CallbackQuery) error {
	switch query.Data {
	case ban.RefreshCallback:
		return h.handleBanRefresh(ctx, query)
	case waitlist.JoinCallback, waitlist.LeaveCallback, waitlist.ReserveCallback:
		return h.handleListButton(ctx, query)
	}
	return nil
}

// handleBanRefresh re-renders the countdown DM the button hangs off of.
// The pressing user is the ban subject; the lookup needs nothing else.
func (h *Handler) handleBanRefresh(ctx *th.Context, query telego.CallbackQuery) error {
	err := h.bans.RefreshCountdown(ctx.Context(), query.From.ID)
	text := h.tr(query.From.ID, "ban_refresh_success")
	if err != nil {
		text = h.tr(query.From.ID, "ban_refresh_fail_noban")
	}
	return h.answerCallback(ctx, query.ID, text)
}

// handleListButton applies a join, leave or reserve press to the list
// of the community the display message lives in.
func (h *Handler) handleListButton(ctx *th.Context, query telego.CallbackQuery) error {
	if query.Message == nil {
		return h.answerCallback(ctx, query.ID, h.tr(query.From.ID, "list_err_no_list"))
	}
	communityID := query.Message.GetChat().ID
	userID := query.From.ID

	var text string
	switch query.Data {
	case waitlist.JoinCallback:
		result, err := h.lists.Join(ctx.Context(), communityID, userID)
		switch {
		case err == nil && result == waitlist.JoinedMain:
			text = h.tr(communityID, "list_msg_joined_main")
		case err == nil:
			text = h.tr(communityID, "list_msg_joined_reserve")
		default:
			text = h.listErrorText(communityID, userID, err)
		}
	case waitlist.LeaveCallback:
		_, err := h.lists.Leave(ctx.Context(), communityID, userID)
		if err == nil {
			text = h.tr(communityID, "list_msg_left")
		} else {
			text = h.listErrorText(communityID, userID, err)
		}
	case waitlist.ReserveCallback:
		err := h.lists.MoveToReserve(ctx.Context(), communityID, userID)
		if err == nil {
			text = h.tr(communityID, "list_msg_moved_reserve")
		} else {
			text = h.listErrorText(communityID, userID, err)
		}
	}

	return h.answerCallback(ctx, query.ID, text)
}

func (h *Handler) listErrorText(communityID, userID int64, err error) string {
	switch {
	case errors.Is(err, waitlist.ErrListLocked):
		return h.tr(communityID, "list_err_locked")
	case errors.Is(err, waitlist.ErrAlreadyInMain):
		return h.tr(communityID, "list_err_already_main")
	case errors.Is(err, waitlist.ErrAlreadyInReserve):
		return h.tr(communityID, "list_err_already_reserve")
	case errors.Is(err, waitlist.ErrNotOnList):
		return h.tr(communityID, "list_err_not_on_list")
	case errors.Is(err, waitlist.ErrNoList):
		return h.tr(communityID, "list_err_no_list")
	default:
		logger.Errorf("Error on list button from %d in %d: %v", userID, communityID, err)
		return h.tr(communityID, "unknown_error")
	}
}

func (h *Handler) answerCallback(ctx *th.Context, queryID, text string) error {
	return h.bot.AnswerCallbackQuery(ctx.Context(), &telego.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
		Text:            text,
	})
}
