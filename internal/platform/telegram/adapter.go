package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoapi"

	"tg-turfbot/internal/platform"
	"tg-turfbot/internal/storage"
)

// Adapter implements platform.Client on top of the Telegram Bot API.
// Role artifacts are not a Telegram concept; they are kept in the
// bot-side role registry (see internal/storage.RoleRepository).
type Adapter struct {
	bot   *telego.Bot
	roles *storage.RoleRepository
}

// New creates a Telegram platform adapter
func New(bot *telego.Bot, roles *storage.RoleRepository) *Adapter {
	return &Adapter{bot: bot, roles: roles}
}

// mapError maps Bot API failures onto the platform sentinels
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *telegoapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.ErrorCode == 403:
			return platform.ErrForbidden
		case apiErr.ErrorCode == 400 && strings.Contains(strings.ToLower(apiErr.Description), "not found"):
			return platform.ErrNotFound
		case apiErr.ErrorCode == 400 && strings.Contains(strings.ToLower(apiErr.Description), "not enough rights"):
			return platform.ErrForbidden
		}
	}
	return err
}

func toMarkup(kb platform.Keyboard) *telego.InlineKeyboardMarkup {
	if len(kb) == 0 {
		return nil
	}
	rows := make([][]telego.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]telego.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, telego.InlineKeyboardButton{
				Text:         b.Text,
				CallbackData: b.Callback,
				URL:          b.URL,
			})
		}
		rows = append(rows, buttons)
	}
	return &telego.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// SendDirectMessage sends a private message to a user
func (a *Adapter) SendDirectMessage(ctx context.Context, userID int64, text string, kb platform.Keyboard) (platform.MessageRef, error) {
	return a.send(ctx, userID, text, kb)
}

// SendGroupMessage sends a message into a community chat
func (a *Adapter) SendGroupMessage(ctx context.Context, communityID int64, text string, kb platform.Keyboard) (platform.MessageRef, error) {
	return a.send(ctx, communityID, text, kb)
}

func (a *Adapter) send(ctx context.Context, chatID int64, text string, kb platform.Keyboard) (platform.MessageRef, error) {
	params := &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: "HTML",
	}
	if markup := toMarkup(kb); markup != nil {
		params.ReplyMarkup = markup
	}
	msg, err := a.bot.SendMessage(ctx, params)
	if err != nil {
		return platform.MessageRef{}, mapError(err)
	}
	return platform.MessageRef{ChatID: chatID, MessageID: msg.MessageID}, nil
}

// EditMessage replaces the text and keyboard of a previously sent message
func (a *Adapter) EditMessage(ctx context.Context, ref platform.MessageRef, text string, kb platform.Keyboard) error {
	params := &telego.EditMessageTextParams{
		ChatID:    telego.ChatID{ID: ref.ChatID},
		MessageID: ref.MessageID,
		Text:      text,
		ParseMode: "HTML",
	}
	if markup := toMarkup(kb); markup != nil {
		params.ReplyMarkup = markup
	}
	_, err := a.bot.EditMessageText(ctx, params)
	return mapError(err)
}

// DeleteMessage removes a previously sent message
func (a *Adapter) DeleteMessage(ctx context.Context, ref platform.MessageRef) error {
	err := a.bot.DeleteMessage(ctx, &telego.DeleteMessageParams{
		ChatID:    telego.ChatID{ID: ref.ChatID},
		MessageID: ref.MessageID,
	})
	return mapError(err)
}

// BanMember bans a user from a community
func (a *Adapter) BanMember(ctx context.Context, communityID, userID int64) error {
	err := a.bot.BanChatMember(ctx, &telego.BanChatMemberParams{
		ChatID: telego.ChatID{ID: communityID},
		UserID: userID,
	})
	return mapError(err)
}

// UnbanMember lifts a user's ban. Returns platform.ErrNotFound if the
// user is not currently banned; the Bot API itself treats that case as
// a no-op, which would hide the condition from callers.
func (a *Adapter) UnbanMember(ctx context.Context, communityID, userID int64) error {
	member, err := a.bot.GetChatMember(ctx, &telego.GetChatMemberParams{
		ChatID: telego.ChatID{ID: communityID},
		UserID: userID,
	})
	if err != nil {
		return mapError(err)
	}
	if member.MemberStatus() != telego.MemberStatusBanned {
		return platform.ErrNotFound
	}
	err = a.bot.UnbanChatMember(ctx, &telego.UnbanChatMemberParams{
		ChatID:       telego.ChatID{ID: communityID},
		UserID:       userID,
		OnlyIfBanned: true,
	})
	return mapError(err)
}

// KickMember removes a user without a lasting ban
func (a *Adapter) KickMember(ctx context.Context, communityID, userID int64) error {
	err := a.bot.BanChatMember(ctx, &telego.BanChatMemberParams{
		ChatID: telego.ChatID{ID: communityID},
		UserID: userID,
	})
	if err != nil {
		return mapError(err)
	}
	err = a.bot.UnbanChatMember(ctx, &telego.UnbanChatMemberParams{
		ChatID:       telego.ChatID{ID: communityID},
		UserID:       userID,
		OnlyIfBanned: true,
	})
	return mapError(err)
}

// IsMember reports whether a user is currently present in the community
func (a *Adapter) IsMember(ctx context.Context, communityID, userID int64) (bool, error) {
	member, err := a.bot.GetChatMember(ctx, &telego.GetChatMemberParams{
		ChatID: telego.ChatID{ID: communityID},
		UserID: userID,
	})
	if err != nil {
		mapped := mapError(err)
		if errors.Is(mapped, platform.ErrNotFound) {
			return false, nil
		}
		return false, mapped
	}
	switch member.MemberStatus() {
	case telego.MemberStatusCreator, telego.MemberStatusAdministrator,
		telego.MemberStatusMember, telego.MemberStatusRestricted:
		return true, nil
	}
	return false, nil
}

// IsAdmin reports whether a user holds the community's administrative capability
func (a *Adapter) IsAdmin(ctx context.Context, communityID, userID int64) (bool, error) {
	member, err := a.bot.GetChatMember(ctx, &telego.GetChatMemberParams{
		ChatID: telego.ChatID{ID: communityID},
		UserID: userID,
	})
	if err != nil {
		return false, mapError(err)
	}
	status := member.MemberStatus()
	return status == telego.MemberStatusCreator || status == telego.MemberStatusAdministrator, nil
}

// CreateInvite creates a single-use invite link valid for one day
func (a *Adapter) CreateInvite(ctx context.Context, communityID int64) (string, error) {
	link, err := a.bot.CreateChatInviteLink(ctx, &telego.CreateChatInviteLinkParams{
		ChatID:      telego.ChatID{ID: communityID},
		MemberLimit: 1,
		ExpireDate:  time.Now().Add(24 * time.Hour).Unix(),
	})
	if err != nil {
		return "", mapError(err)
	}
	return link.InviteLink, nil
}

// CommunityName returns the community's display title
func (a *Adapter) CommunityName(ctx context.Context, communityID int64) (string, error) {
	chat, err := a.bot.GetChat(ctx, &telego.GetChatParams{ChatID: telego.ChatID{ID: communityID}})
	if err != nil {
		return "", mapError(err)
	}
	return chat.Title, nil
}

// UserName returns a user's display name
func (a *Adapter) UserName(ctx context.Context, userID int64) (string, error) {
	chat, err := a.bot.GetChat(ctx, &telego.GetChatParams{ChatID: telego.ChatID{ID: userID}})
	if err != nil {
		return "", mapError(err)
	}
	name := chat.FirstName
	if chat.LastName != "" {
		name += " " + chat.LastName
	}
	if name == "" {
		name = chat.Title
	}
	return name, nil
}
