package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"tg-turfbot/internal/config"
	"tg-turfbot/internal/models"
)

// BotService represents the Telegram bot service
type BotService struct {
	Bot     *telego.Bot
	Handler *th.BotHandler
}

// Start starts the bot handler
func (b *BotService) Start() {
	b.Handler.Start()
}

// Stop stops the bot handler
func (b *BotService) Stop() {
	b.Handler.Stop()
}

// Initialize initializes the bot and webhook
func Initialize(ctx context.Context, cfg *config.Config) (*BotService, *WebhookServer, error) {
	if cfg.Bot.Token == "" {
		return nil, nil, fmt.Errorf("bot token is required")
	}

	bot, err := telego.NewBot(cfg.Bot.Token, telego.WithDefaultDebugLogger())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize bot: %w", err)
	}

	botUser, err := bot.GetMe(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get bot info: %w", err)
	}
	log.Printf("Authorized on account %s", botUser.Username)

	setLocalizedCommands(ctx, bot)

	// Delete any existing webhook
	err = bot.DeleteWebhook(ctx, &telego.DeleteWebhookParams{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to delete existing webhook: %w", err)
	}

	// Set fixed secret token or generate one based on bot token
	secretToken := "secure_webhook_token_" + cfg.Bot.Token[len(cfg.Bot.Token)-6:]

	bh, server, err := SetupWebhook(ctx, bot, cfg.Bot.Webhook.Endpoint, cfg.Bot.Webhook.ListenPort, secretToken, cfg.Bot.Webhook.CertFile, cfg.Bot.Webhook.KeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to setup webhook: %w", err)
	}

	return &BotService{
		Bot:     bot,
		Handler: bh,
	}, server, nil
}

// setLocalizedCommands sets bot commands in different languages
func setLocalizedCommands(ctx context.Context, bot *telego.Bot) {
	commandKeys := []struct {
		Command string
		DescKey string
	}{
		{Command: "help", DescKey: "cmd_desc_help"},
		{Command: "ban", DescKey: "cmd_desc_ban"},
		{Command: "unban", DescKey: "cmd_desc_unban"},
		{Command: "kick", DescKey: "cmd_desc_kick"},
		{Command: "list_start", DescKey: "cmd_desc_list_start"},
		{Command: "list_lock", DescKey: "cmd_desc_list_lock"},
		{Command: "list_refresh", DescKey: "cmd_desc_list_refresh"},
		{Command: "access", DescKey: "cmd_desc_access"},
		{Command: "reminder", DescKey: "cmd_desc_reminder"},
		{Command: "reminder_edit", DescKey: "cmd_desc_reminder_edit"},
		{Command: "message_role", DescKey: "cmd_desc_message_role"},
		{Command: "language", DescKey: "cmd_desc_language"},
	}

	langCodes := map[string]string{
		models.LangEnglish: "en",
		models.LangGerman:  "de",
	}

	for lang, telegramLang := range langCodes {
		var commands []telego.BotCommand

		for _, cmd := range commandKeys {
			commands = append(commands, telego.BotCommand{
				Command:     cmd.Command,
				Description: models.GetTranslation(lang, cmd.DescKey),
			})
		}

		err := bot.SetMyCommands(ctx, &telego.SetMyCommandsParams{
			Commands:     commands,
			LanguageCode: telegramLang,
		})

		if err != nil {
			log.Printf("Warning: Failed to set bot commands for %s: %v", lang, err)
		}
	}

	// Default commands without a language code fall back to English
	var defaultCommands []telego.BotCommand
	for _, cmd := range commandKeys {
		defaultCommands = append(defaultCommands, telego.BotCommand{
			Command:     cmd.Command,
			Description: models.GetTranslation(models.LangEnglish, cmd.DescKey),
		})
	}

	err := bot.SetMyCommands(ctx, &telego.SetMyCommandsParams{
		Commands: defaultCommands,
	})

	if err != nil {
		log.Printf("Warning: Failed to set default bot commands: %v", err)
	}
}
