package handler

import (
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-turfbot/internal/models"
)

// tr resolves a translation in the community's configured language,
// falling back to the process default. Private chats use the default.
func (h *Handler) tr(communityID int64, key string) string {
	return models.GetTranslation(h.langOf(communityID), key)
}

// reply sends an HTML message into the chat the update came from
func (h *Handler) reply(ctx *th.Context, chatID int64, text string) error {
	_, err := h.bot.SendMessage(ctx.Context(), &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: "HTML",
	})
	return err
}

// splitCommand breaks a message into the bare command name and the rest
// of the arguments. "/ban@some_bot 1h spam" yields ("ban", ["1h",
// "spam"]).
func splitCommand(text string) (string, []string) {
	if !strings.HasPrefix(text, "/") {
		return "", nil
	}
	fields := strings.Fields(text)
	command := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(command, "@"); at >= 0 {
		command = command[:at]
	}
	return command, fields[1:]
}

// replyTarget extracts the user a moderation command aims at: the
// author of the replied-to message.
func replyTarget(message telego.Message) *telego.User {
	if message.ReplyToMessage == nil {
		return nil
	}
	return message.ReplyToMessage.From
}
