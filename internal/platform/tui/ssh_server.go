package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the host key file, generated on first start.
	// Empty means ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the scores and saves database, a SQLite path or a
	// postgres:// DSN.
	DBPath string

	IdleTimeout time.Duration
	FrameRate   int

	// MaxPlayers caps concurrent connections; zero means no cap.
	MaxPlayers int

	// Session holds the game options shared by every player.
	Session defense.Options
}

// DefaultSSHServerConfig returns the settings used by `defense serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/defense.db",
		IdleTimeout: 30 * time.Minute,
		FrameRate:   30,
		MaxPlayers:  32,
	}
}

// SSHServer hosts one menu-and-game flow per SSH connection.
type SSHServer struct {
	config     SSHServerConfig
	server     *ssh.Server
	store      *storage.Store
	catalog    *catalog.Catalog
	newSession SessionFactory
	logger     *log.Logger
	players    atomic.Int32
}

// NewSSHServer prepares the server; nothing listens until ListenAndServe.
// A database that cannot be opened disables scores and saves rather than
// failing startup.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix("ssh")

	hostKey, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	if cfg.Session.Catalog == nil {
		cfg.Session.Catalog = catalog.Default()
	}
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("scores and saves disabled", "db", cfg.DBPath, "error", err)
		store = nil
	}

	s := &SSHServer{
		config:     cfg,
		store:      store,
		catalog:    cfg.Session.Catalog,
		newSession: NewSessionFactory(cfg.Session, store, logger),
		logger:     logger,
	}

	// Middleware runs last to first: track, then require a terminal, then play.
	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			s.trackMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cfg := core.RuntimeConfig{
		ScreenW:   pty.Window.Width,
		ScreenH:   pty.Window.Height,
		FrameRate: s.config.FrameRate,
		Seed:      time.Now().UnixNano(),
	}
	preset := s.config.Session.Config.Difficulty.Preset
	logger := s.logger.With("user", sess.User())
	return NewSessionModel(s.catalog, s.store, s.newSession, cfg, preset, sess.User(), logger),
		[]tea.ProgramOption{tea.WithAltScreen()}
}

// trackMiddleware enforces MaxPlayers and logs each connection under its
// own id.
func (s *SSHServer) trackMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.players.Add(1)
		defer s.players.Add(-1)

		id := uuid.NewString()[:8]
		logger := s.logger.With("conn", id, "user", sess.User(), "remote", sess.RemoteAddr().String())
		if limit := s.config.MaxPlayers; limit > 0 && int(n) > limit {
			logger.Warn("rejecting connection, server full", "players", n-1)
			wish.Fatalln(sess, "Server is full, try again later.")
			return
		}

		start := time.Now()
		logger.Info("session started", "players", n)
		next(sess)
		logger.Info("session ended", "duration", time.Since(start).Round(time.Second))
	}
}

// Players returns the number of open connections.
func (s *SSHServer) Players() int {
	return int(s.players.Load())
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("listening", "address", s.config.Address, "max_players", s.config.MaxPlayers)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "players", s.Players())
	return s.Shutdown()
}

// Shutdown stops accepting connections and waits for open ones, up to a
// grace period.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	defer s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("closing database", "error", err)
		}
		s.store = nil
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
