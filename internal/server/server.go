// Package server exposes the decision engine over a WebSocket endpoint.
// Clients stream table snapshots and receive advised actions back; opponent
// profiles accumulate across connections and are persisted on shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/kevsman/pokerplayer/advisor"
	"github.com/kevsman/pokerplayer/internal/config"
	"github.com/kevsman/pokerplayer/internal/opponents"
)

// Server is the advisory WebSocket server.
type Server struct {
	addr         string
	profilesFile string
	engineCfg    advisor.Config
	upgrader     websocket.Upgrader
	connections  map[*Connection]bool
	register     chan *Connection
	unregister   chan *Connection
	tracker      *opponents.Tracker
	logger       *log.Logger
	mu           sync.RWMutex
	ctx          context.Context
	cancel       context.CancelFunc
	httpServer   *http.Server
}

// NewServer builds the server from the application configuration. Invalid
// game settings (blinds in particular) fail here, not at request time.
func NewServer(cfg *config.Config, logger *log.Logger) (*Server, error) {
	engineCfg := advisor.Config{
		BigBlind:                 cfg.Game.BigBlind,
		SmallBlind:               cfg.Game.SmallBlind,
		TournamentLevel:          cfg.Game.TournamentLevel,
		PreflopAggression:        cfg.Strategy.PreflopAggression,
		PostflopAggression:       cfg.Strategy.PostflopAggression,
		BluffFrequency:           cfg.Strategy.BluffFrequency,
		SemiBluffFrequency:       cfg.Strategy.SemiBluffFrequency,
		ContinuationBetFrequency: cfg.Strategy.ContinuationBetFrequency,
		Simulations:              cfg.Strategy.EquitySimulations,
		Seed:                     cfg.Strategy.EquitySeed,
	}
	if err := engineCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid advisor config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:         cfg.ListenAddress(),
		profilesFile: cfg.Server.ProfilesFile,
		engineCfg:    engineCfg,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		tracker:     opponents.NewTracker(logger),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// Tracker exposes the shared opponent tracker.
func (s *Server) Tracker() *opponents.Tracker { return s.tracker }

// Handler returns the HTTP handler serving /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start loads persisted opponent profiles and serves until Stop is called.
func (s *Server) Start() error {
	if s.profilesFile != "" {
		if err := s.tracker.Load(s.profilesFile); err != nil {
			s.logger.Warn("could not load opponent profiles", "file", s.profilesFile, "error", err)
		}
	}

	go s.run()

	s.httpServer = &http.Server{Addr: s.addr, Handler: s.Handler()}
	s.logger.Info("starting advisory server", "addr", s.addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop shuts the server down, closing all connections and persisting the
// opponent profiles.
func (s *Server) Stop(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	if s.profilesFile != "" {
		if err := s.tracker.Save(s.profilesFile); err != nil {
			s.logger.Error("failed to save opponent profiles", "file", s.profilesFile, "error", err)
		} else {
			s.logger.Info("saved opponent profiles", "file", s.profilesFile)
		}
	}

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// run handles connection lifecycle.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket upgrades the request and starts a per-connection engine
// sharing the server-wide opponent tracker.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	engine, err := advisor.NewEngine(s.engineCfg, s.logger, advisor.WithTracker(s.tracker))
	if err != nil {
		// Config was validated at construction; this is unreachable in
		// practice but the connection still needs closing.
		s.logger.Error("failed to build engine", "error", err)
		_ = conn.Close()
		return
	}

	client := NewConnection(conn, engine, s.logger)
	s.register <- client
	client.Start()

	go func() {
		select {
		case <-client.ctx.Done():
		case <-s.ctx.Done():
			return
		}
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
		}
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}
