package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tg-turfbot/internal/ban"
	"tg-turfbot/internal/bot"
	"tg-turfbot/internal/bridge"
	"tg-turfbot/internal/config"
	"tg-turfbot/internal/crash"
	"tg-turfbot/internal/handler"
	"tg-turfbot/internal/logger"
	"tg-turfbot/internal/permission"
	"tg-turfbot/internal/platform/telegram"
	"tg-turfbot/internal/storage"
	"tg-turfbot/internal/waitlist"
)

func main() {
	defer crash.RecoverWithStackAndExit("main")

	crash.SetupCrashHandler()

	// Define command line flags
	configPath := flag.String("config", "configs/config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging first
	if err := logger.Setup(cfg); err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	if err := storage.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	log.Println("Database connection established")

	db := storage.GetDB()
	banRepo := storage.NewBanRepository(db)
	listRepo := storage.NewWaitlistRepository(db)
	permRepo := storage.NewPermissionRepository(db)
	roleRepo := storage.NewRoleRepository(db)
	bridgeRepo := storage.NewBridgeRepository(db)
	reminderRepo := storage.NewReminderRepository(db)
	communityRepo := storage.NewCommunityRepository(db)

	migrations := []func() error{
		banRepo.MigrateTable,
		listRepo.MigrateTable,
		permRepo.MigrateTable,
		roleRepo.MigrateTable,
		bridgeRepo.MigrateTable,
		reminderRepo.MigrateTable,
		communityRepo.MigrateTable,
	}
	for _, migrate := range migrations {
		if err := migrate(); err != nil {
			log.Fatalf("Failed to migrate database tables: %v", err)
		}
	}

	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize bot with configuration
	botService, server, err := bot.Initialize(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize bot: %v", err)
	}

	client := telegram.New(botService.Bot, roleRepo)

	// Communities without a stored choice render in the configured
	// default language.
	langOf := func(communityID int64) string {
		if lang := communityRepo.Language(communityID); lang != "" {
			return lang
		}
		return cfg.Bot.Language
	}

	bans, err := ban.NewManager(client, banRepo, langOf)
	if err != nil {
		log.Fatalf("Failed to initialize ban ledger: %v", err)
	}
	lists := waitlist.NewEngine(client, listRepo, langOf,
		cfg.List.MaxMainSlots, cfg.List.RoleInName, cfg.List.RoleReserveName)
	perms, err := permission.NewResolver(client, permRepo, cfg.Bot.OwnerID)
	if err != nil {
		log.Fatalf("Failed to initialize permission resolver: %v", err)
	}
	relay := bridge.NewRelay(bridgeRepo, cfg.Bridge.WebhookURL, cfg.Bridge.DefaultIntro)

	h := handler.New(botService.Bot, client, bans, lists, perms, relay, reminderRepo, communityRepo, cfg, langOf)

	// Start HTTP server in a goroutine
	crash.SafeGoroutine("http-server", func() {
		if err := server.Start(); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	})

	// Give server time to start
	time.Sleep(500 * time.Millisecond)
	log.Println("HTTP server is ready, starting bot handler...")

	// Pick up where the last run left off: pending expiries fire on the
	// first wake cycle, list displays catch up with stored state.
	bans.ResumeSessions()
	lists.RefreshAll(ctx)

	// Setup and start message handlers
	h.SetupMessageHandlers(botService.Handler)
	botService.Start()

	// Create a channel for receiving OS signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, os.Kill, syscall.SIGTERM)

	// Wait for signal
	sig := <-sigChan
	log.Printf("Received signal: %v, shutting down...", sig)

	// Gracefully shutdown server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Server gracefully stopped")
}
