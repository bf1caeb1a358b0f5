package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-turfbot/internal/bridge"
	"tg-turfbot/internal/logger"
)

// Bridge settings are per user and only live in the private chat with
// the bot. The login flow of the external source account is outside the
// bot; whatever arrives in the private chat is treated as captured
// source material and relayed.

func (h *Handler) dispatchBridgeCommand(ctx *th.Context, message telego.Message, command string, args []string) (bool, error) {
	if message.Chat.Type != "private" {
		return false, nil
	}
	switch command {
	case "bridge_intro":
		return true, h.handleBridgeIntro(ctx, message)
	case "bridge_format":
		return true, h.handleBridgeFormat(ctx, message)
	case "bridge_webhook":
		return true, h.handleBridgeWebhook(ctx, message, args)
	case "bridge_preset":
		return true, h.handleBridgePreset(ctx, message, args)
	case "bridge_preset_load":
		return true, h.handleBridgePresetLoad(ctx, message, args)
	case "bridge_presets":
		return true, h.handleBridgePresets(ctx, message)
	}
	return false, nil
}

// commandRemainder returns everything after the command token with
// whitespace and newlines preserved.
func commandRemainder(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(text, fields[0]))
}

func (h *Handler) handleBridgeIntro(ctx *th.Context, message telego.Message) error {
	intro := commandRemainder(message.Text)
	if intro == "" {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "bridge_usage"))
	}
	if err := h.relay.SetIntro(message.From.ID, intro); err != nil {
		logger.Errorf("Error storing bridge intro for %d: %v", message.From.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
	return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "bridge_intro_set"))
}

func (h *Handler) handleBridgeFormat(ctx *th.Context, message telego.Message) error {
	format := commandRemainder(message.Text)
	if format == "" {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "bridge_usage"))
	}
	if err := h.relay.SetFormat(message.From.ID, format); err != nil {
		logger.Errorf("Error storing bridge format for %d: %v", message.From.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
	return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "bridge_format_set"))
}

func (h *Handler) handleBridgeWebhook(ctx *th.Context, message telego.Message, args []string) error {
	if len(args) != 1 || !strings.HasPrefix(args[0], "https://") {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "bridge_usage"))
	}
	if err := h.relay.SetWebhook(message.From.ID, args[0]); err != nil {
		logger.Errorf("Error storing bridge webhook for %d: %v", message.From.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
	return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "bridge_webhook_set"))
}

func (h *Handler) handleBridgePreset(ctx *th.Context, message telego.Message, args []string) error {
	if len(args) < 2 {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "bridge_usage"))
	}
	name := args[0]
	format := strings.TrimSpace(strings.TrimPrefix(commandRemainder(message.Text), name))
	if err := h.relay.SavePreset(message.From.ID, name, format); err != nil {
		logger.Errorf("Error storing bridge preset for %d: %v", message.From.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
	return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "bridge_preset_saved"))
}

func (h *Handler) handleBridgePresetLoad(ctx *th.Context, message telego.Message, args []string) error {
	if len(args) != 1 {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "bridge_usage"))
	}
	err := h.relay.LoadPreset(message.From.ID, args[0])
	switch {
	case errors.Is(err, bridge.ErrNoPreset):
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "bridge_preset_missing"))
	case err != nil:
		logger.Errorf("Error loading bridge preset for %d: %v", message.From.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
	return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "bridge_preset_loaded"))
}

func (h *Handler) handleBridgePresets(ctx *th.Context, message telego.Message) error {
	presets, err := h.relay.Presets(message.From.ID)
	if err != nil {
		logger.Errorf("Error listing bridge presets for %d: %v", message.From.ID, err)
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "unknown_error"))
	}
	if len(presets) == 0 {
		return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "bridge_presets_empty"))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", h.tr(message.Chat.ID, "bridge_presets_header"))
	for _, preset := range presets {
		fmt.Fprintf(&b, "%s: <code>%s</code>\n", preset.Name, preset.Format)
	}
	return h.reply(ctx, message.Chat.ID, b.String())
}

// handleBridgeIngest relays a plain private message to the sender's
// webhook. Users without a delivery target just get no relay.
func (h *Handler) handleBridgeIngest(ctx *th.Context, message telego.Message) error {
	sender := message.From.FirstName
	if message.From.Username != "" {
		sender = message.From.Username
	}

	err := h.relay.Send(ctx.Context(), message.From.ID, sender, message.Text)
	if err != nil {
		logger.Debugf("Bridge relay skipped for %d: %v", message.From.ID, err)
		return nil
	}
	return h.reply(ctx, message.Chat.ID, h.tr(message.Chat.ID, "bridge_relayed"))
}
