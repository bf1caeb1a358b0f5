package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-turfbot/internal/ban"
	"tg-turfbot/internal/duration"
	"tg-turfbot/internal/logger"
	"tg-turfbot/internal/models"
	"tg-turfbot/internal/platform"
	"tg-turfbot/internal/roster"
	"tg-turfbot/internal/waitlist"
)

// knownCommands are the permission-controlled command names accepted by
// /access rules.
var knownCommands = map[string]bool{
	"ban":           true,
	"unban":         true,
	"kick":          true,
	"list_start":    true,
	"list_lock":     true,
	"list_refresh":  true,
	"access":        true,
	"reminder":      true,
	"reminder_edit": true,
	"message_role":  true,
	"language":      true,
}

// dispatchCommand routes a group message to its command handler.
func (h *Handler) dispatchCommand(ctx *th.Context, message telego.Message) error {
	if message.From == nil || message.From.IsBot {
		return nil
	}

	command, args := splitCommand(message.Text)
	if command == "" {
		if message.Chat.Type == "private" && message.Text != "" {
			return h.handleBridgeIngest(ctx, message)
		}
		return nil
	}

	if command == "help" {
		return h.handleHelp(ctx, message)
	}
	if handled, err := h.dispatchBridgeCommand(ctx, message, command, args); handled {
		return err
	}
	if !knownCommands[command] {
		return nil
	}

	// Moderation commands only make sense inside a community chat.
	if message.Chat.Type == "private" {
		return nil
	}

	if !h.perms.Allowed(ctx.Context(), message.Chat.ID, message.From.ID, command) {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "permission_denied"))
	}

	switch command {
	case "ban":
		return h.handleBan(ctx, message, args)
	case "unban":
		return h.handleUnban(ctx, message, args)
	case "kick":
		return h.handleKick(ctx, message)
	case "list_start":
		return h.handleListStart(ctx, message, args)
	case "list_lock":
		return h.handleListLock(ctx, message)
	case "list_refresh":
		return h.handleListRefresh(ctx, message)
	case "access":
		return h.handleAccess(ctx, message, args)
	case "reminder":
		return h.handleReminder(ctx, message, args)
	case "reminder_edit":
		return h.handleReminderEdit(ctx, message)
	case "message_role":
		return h.handleMessageRole(ctx, message, args)
	case "language":
		return h.handleLanguage(ctx, message, args)
	}
	return nil
}

func (h *Handler) handleHelp(ctx *th.Context, message telego.Message) error {
	text := fmt.Sprintf("<b>%s</b>\n\n%s", h.tr(message.Chat.ID, "help_title"), h.tr(message.Chat.ID, "help_text"))
	return h.reply(ctx, message.Chat.ID, text)
}

func (h *Handler) handleBan(ctx *th.Context, message telego.Message, args []string) error {
	target := replyTarget(message)
	if target == nil {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "need_reply_target"))
	}
	if target.ID == message.From.ID || target.IsBot {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "ban_self_or_bot"))
	}
	if len(args) == 0 {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "invalid_duration"))
	}

	d, err := duration.Parse(args[0])
	if err != nil {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "invalid_duration"))
	}
	reason := strings.Join(args[1:], " ")

	err = h.bans.IssueBan(ctx.Context(), message.Chat.ID, target.ID, message.From.ID, d, reason)
	switch {
	case err == nil:
		return h.reply(ctx, message.Chat.ID, fmt.Sprintf(h.tr(message.Chat.ID, "ban_success"), ban.FormatRemaining(d)))
	case errors.Is(err, ban.ErrAlreadyBanned):
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "ban_already_active"))
	case errors.Is(err, ban.ErrNotificationFailed):
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "ban_dm_failed"))
	case errors.Is(err, ban.ErrActionForbidden):
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "ban_perm_failed"))
	default:
		logger.Errorf("Error banning %d in %d: %v", target.ID, message.Chat.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
}

func (h *Handler) handleUnban(ctx *th.Context, message telego.Message, args []string) error {
	var targetID int64
	if target := replyTarget(message); target != nil {
		targetID = target.ID
	} else if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "need_reply_target"))
		}
		targetID = id
		args = args[1:]
	} else {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "need_reply_target"))
	}
	reason := strings.Join(args, " ")

	_, err := h.bans.ManualUnban(ctx.Context(), message.Chat.ID, targetID, message.From.ID, reason)
	switch {
	case err == nil:
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unban_success"))
	case errors.Is(err, ban.ErrNotBanned):
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unban_not_banned"))
	case errors.Is(err, ban.ErrActionForbidden):
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unban_perm_failed"))
	default:
		logger.Errorf("Error unbanning %d in %d: %v", targetID, message.Chat.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
}

func (h *Handler) handleKick(ctx *th.Context, message telego.Message) error {
	target := replyTarget(message)
	if target == nil {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "need_reply_target"))
	}
	if target.ID == message.From.ID || target.IsBot {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "kick_self_or_bot"))
	}

	if err := h.client.KickMember(ctx.Context(), message.Chat.ID, target.ID); err != nil {
		logger.Errorf("Error kicking %d from %d: %v", target.ID, message.Chat.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "kick_perm_fail"))
	}

	// Rejoin link goes to the kicked user, best-effort.
	communityName, err := h.client.CommunityName(ctx.Context(), message.Chat.ID)
	if err != nil || communityName == "" {
		communityName = strconv.FormatInt(message.Chat.ID, 10)
	}
	text := fmt.Sprintf("<b>%s</b>", fmt.Sprintf(h.tr(message.Chat.ID, "kick_dm_title"), communityName))
	if invite, err := h.client.CreateInvite(ctx.Context(), message.Chat.ID); err == nil && invite != "" {
		text += fmt.Sprintf("\n%s: %s", h.tr(message.Chat.ID, "kick_rejoin_link"), invite)
	}
	if _, err := h.client.SendDirectMessage(ctx.Context(), target.ID, text, nil); err != nil {
		logger.Warningf("Error sending kick DM to %d: %v", target.ID, err)
	}

	return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "kick_success"))
}

// handleListStart opens a fresh list. "/list_start keep" restarts the
// display while carrying the current line-up over.
func (h *Handler) handleListStart(ctx *th.Context, message telego.Message, args []string) error {
	clearParticipants := len(args) == 0 || args[0] != "keep"
	if err := h.lists.Start(ctx.Context(), message.Chat.ID, message.Chat.ID, clearParticipants); err != nil {
		logger.Errorf("Error starting list in %d: %v", message.Chat.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
	return nil
}

func (h *Handler) handleListLock(ctx *th.Context, message telego.Message) error {
	err := h.lists.Lock(ctx.Context(), message.Chat.ID)
	switch {
	case err == nil:
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "list_locked"))
	case errors.Is(err, waitlist.ErrNoList):
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "list_err_no_list"))
	case errors.Is(err, waitlist.ErrAlreadyLocked):
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "list_err_already_locked"))
	default:
		logger.Errorf("Error locking list in %d: %v", message.Chat.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
}

func (h *Handler) handleListRefresh(ctx *th.Context, message telego.Message) error {
	err := h.lists.Refresh(ctx.Context(), message.Chat.ID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, waitlist.ErrNoList):
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "list_err_no_list"))
	default:
		logger.Errorf("Error refreshing list in %d: %v", message.Chat.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
}

// handleAccess manages permission rules:
//
//	/access grant <command> role|user <id>
//	/access deny <command> role|user <id>
//	/access reset <command> role|user <id>
func (h *Handler) handleAccess(ctx *th.Context, message telego.Message, args []string) error {
	if len(args) != 4 {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "perms_usage"))
	}
	action, command, kindArg, idArg := args[0], args[1], args[2], args[3]

	if !knownCommands[command] {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "perms_bad_command"))
	}

	var kind models.TargetKind
	switch kindArg {
	case "role":
		kind = models.TargetRole
	case "user":
		kind = models.TargetUser
	default:
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "perms_bad_target"))
	}

	targetID, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "perms_bad_target"))
	}

	switch action {
	case "grant":
		err = h.perms.Set(message.Chat.ID, kind, targetID, command, models.EffectAllow)
	case "deny":
		err = h.perms.Set(message.Chat.ID, kind, targetID, command, models.EffectDeny)
	case "reset":
		err = h.perms.Reset(message.Chat.ID, kind, targetID, command)
	default:
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "perms_usage"))
	}
	if err != nil {
		logger.Errorf("Error updating permission rule in %d: %v", message.Chat.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}

	if action == "reset" {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "perms_reset"))
	}
	return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "perms_set"))
}

func (h *Handler) handleReminder(ctx *th.Context, message telego.Message, args []string) error {
	var targetID int64
	if target := replyTarget(message); target != nil {
		targetID = target.ID
	} else if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "need_reply_target"))
		}
		targetID = id
	} else {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "need_reply_target"))
	}

	text := h.tr(message.Chat.ID, "reminder_default")
	reminder, err := h.reminders.Get(message.Chat.ID)
	if err != nil {
		logger.Warningf("Error loading reminder for %d: %v", message.Chat.ID, err)
	}
	if reminder != nil && reminder.Text != "" {
		text = reminder.Text
	}

	communityName, err := h.client.CommunityName(ctx.Context(), message.Chat.ID)
	if err != nil || communityName == "" {
		communityName = strconv.FormatInt(message.Chat.ID, 10)
	}
	dm := fmt.Sprintf("<b>%s</b>\n%s", fmt.Sprintf(h.tr(message.Chat.ID, "reminder_dm_prefix"), communityName), text)

	if _, err := h.client.SendDirectMessage(ctx.Context(), targetID, dm, nil); err != nil {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "reminder_dm_fail"))
	}
	return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "reminder_sent"))
}

func (h *Handler) handleReminderEdit(ctx *th.Context, message telego.Message) error {
	// Keep newlines of the stored text; only strip the command itself.
	fields := strings.Fields(message.Text)
	text := strings.TrimSpace(strings.TrimPrefix(message.Text, fields[0]))
	if text == "" {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "reminder_default"))
	}

	if err := h.reminders.Set(message.Chat.ID, text); err != nil {
		logger.Errorf("Error storing reminder for %d: %v", message.Chat.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
	return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "reminder_edit_success"))
}

// handleMessageRole DMs every holder of a named role:
//
//	/message_role <role> <text>
func (h *Handler) handleMessageRole(ctx *th.Context, message telego.Message, args []string) error {
	if len(args) < 2 {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "message_role_usage"))
	}
	roleName := args[0]

	// Keep newlines of the announcement; only strip command and role.
	fields := strings.Fields(message.Text)
	text := strings.TrimSpace(strings.TrimPrefix(message.Text, fields[0]))
	text = strings.TrimSpace(strings.TrimPrefix(text, roleName))

	sent, err := roster.MessageRole(ctx.Context(), h.client, message.Chat.ID, roleName, text)
	switch {
	case errors.Is(err, platform.ErrNotFound):
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "message_role_no_role"))
	case err != nil:
		logger.Errorf("Error messaging role %q in %d: %v", roleName, message.Chat.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
	return h.reply(ctx, message.Chat.ID, fmt.Sprintf(h.tr(message.Chat.ID, "message_role_sent"), sent))
}

// handleLanguage switches the community's display language:
//
//	/language en|de
func (h *Handler) handleLanguage(ctx *th.Context, message telego.Message, args []string) error {
	if len(args) != 1 {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "language_usage"))
	}
	lang := strings.ToLower(args[0])
	if _, ok := models.Translations[lang]; !ok {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "language_usage"))
	}

	if err := h.communities.SetLanguage(message.Chat.ID, lang); err != nil {
		logger.Errorf("Error storing language for %d: %v", message.Chat.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
	// Confirm in the language that was just picked.
	return h.reply(ctx, message.Chat.ID, models.GetTranslation(lang, "language_set"))
}
