package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/turkeydev/gamesbot/internal/api"
	"github.com/turkeydev/gamesbot/internal/config"
	"github.com/turkeydev/gamesbot/internal/discord"
	"github.com/turkeydev/gamesbot/internal/factory"
	"github.com/turkeydev/gamesbot/internal/words"
)

// run starts the bot and blocks until a shutdown signal or fatal error
func run(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags override the environment
	if flags.token != "" {
		cfg.Token = flags.token
	}
	if flags.httpAddr != "" {
		cfg.HTTPAddr = flags.httpAddr
	}
	if flags.blunderChance >= 0 {
		cfg.BlunderChance = flags.blunderChance
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}

	if cfg.Token == "" {
		return errors.New("bot token is required (GAMESBOT_TOKEN or --token)")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}

	app, err := factory.New(factory.Config{
		Transport:     discord.NewClient(session, logger),
		Words:         words.NewClient(cfg.WordAPIURL),
		BlunderChance: cfg.BlunderChance,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}

	gateway := discord.NewGateway(session, app.Router, app.Router.CommandSpecs(), logger)
	gateway.Bind()

	if err := session.Open(); err != nil {
		return fmt.Errorf("open gateway connection: %w", err)
	}
	defer func() { _ = session.Close() }()

	logger.Info("bot connected")

	// Status API
	serverConfig := api.DefaultServerConfig()
	serverConfig.Addr = cfg.HTTPAddr
	server := api.NewServer(api.NewRouter(api.RouterConfig{
		Logger:   logger,
		Sessions: app.Registry,
	}), serverConfig, logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("status server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("status server: %w", err)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("status server shutdown: %w", err)
		}
	}

	logger.Info("bot stopped")
	return nil
}
