package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/render"
	"github.com/vovakirdan/flapper/internal/session"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the SSH server.
type SSHServerConfig struct {
	Address     string // host:port, e.g. ":23234"
	HostKeyPath string // empty uses ~/.flapper/host_key, generated on first start
	IdleTimeout time.Duration

	Game     config.FlappyConfig // shared by every session
	TickRate int
}

// DefaultSSHServerConfig returns the defaults used by `flapper serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Game:        config.Default(),
		TickRate:    60,
	}
}

// SSHServer hosts one game per SSH session. All sessions record into the
// same stats store, so players share a leaderboard.
type SSHServer struct {
	cfg    SSHServerConfig
	server *ssh.Server
	stats  session.Stats
	assets render.Assets
	logger *log.Logger
}

// NewSSHServer validates the game config and prepares the server. Nothing
// listens until Serve or ListenAndServe.
func NewSSHServer(cfg SSHServerConfig, stats session.Stats, logger *log.Logger) (*SSHServer, error) {
	if err := config.Validate(cfg.Game); err != nil {
		return nil, err
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{
		cfg:    cfg,
		stats:  stats,
		assets: render.NewAssets(cfg.Game.Theme),
		logger: logger,
	}

	// Middlewares run last to first: the logger wraps the game.
	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.newGame),
			srv.logSessions,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ssh: create server: %w", err)
	}
	return srv, nil
}

// hostKeyPath resolves the key location and makes sure its directory exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ssh: no home directory for host key: %w", err)
		}
		path = filepath.Join(home, ".flapper", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("ssh: host key directory: %w", err)
	}
	return path, nil
}

// newGame builds a driver and model for an SSH session. The SSH user name
// goes on the leaderboard.
func (s *SSHServer) newGame(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "flapper needs a terminal: connect with ssh -t")
		return nil, nil
	}

	logger := s.logger.With("user", sess.User())
	d, err := session.New(session.Options{
		Config: s.cfg.Game,
		Seed:   time.Now().UnixNano(),
		Stats:  s.stats,
		Logger: logger,
		Player: sess.User(),
	})
	if err != nil {
		logger.Error("cannot start game", "err", err)
		return nil, nil
	}
	logger.Debug("game ready", "session", d.ID(), "term", pty.Term)

	m := NewModel(d, Options{
		Assets:   s.assets,
		TickRate: s.cfg.TickRate,
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
		Logger:   logger,
	})
	return m, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("ssh session start", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("ssh session end", "user", sess.User(), "duration", time.Since(start).Round(time.Second))
	}
}

// Serve accepts connections until ctx is done, then shuts down.
func (s *SSHServer) Serve(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() { errc <- s.server.ListenAndServe() }()
	s.logger.Info("ssh server listening", "address", s.cfg.Address)

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("ssh server stopping")
	return s.Shutdown()
}

// ListenAndServe runs Serve until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Shutdown stops accepting connections and waits up to shutdownGrace for
// open sessions.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
