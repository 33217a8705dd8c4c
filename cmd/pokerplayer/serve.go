package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/kevsman/pokerplayer/internal/config"
	"github.com/kevsman/pokerplayer/internal/server"
)

// ServeCmd runs the advisory WebSocket server.
type ServeCmd struct {
	Config string `kong:"default='advisor.hcl',env='POKERPLAYER_CONFIG',help='Path to the HCL config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Logging.Level, c.Debug)

	s, err := server.NewServer(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("starting advisory server",
		"addr", cfg.ListenAddress(),
		"big_blind", cfg.Game.BigBlind,
		"small_blind", cfg.Game.SmallBlind,
		"tournament_level", cfg.Game.TournamentLevel,
		"simulations", cfg.Strategy.EquitySimulations,
		"profiles", cfg.Server.ProfilesFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
