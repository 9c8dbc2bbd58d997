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

	"github.com/vovakirdan/tui-turnip/internal/core"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address     string        // host:port, ":23234" by default
	HostKeyPath string        // generated at ~/.turnip/host_key when empty
	IdleTimeout time.Duration // idle connections are closed after this

	// Factory builds the controller of each connecting user. Every SSH user
	// plays under the profile "ssh:<user>".
	Factory ControllerFactory

	// Runtime carries the timing and theme settings; the screen size is taken
	// from the client's PTY.
	Runtime core.RuntimeConfig

	// Logger receives session events. Defaults to stderr.
	Logger *log.Logger

	// OnClose is called once on shutdown, typically to close storage.
	OnClose func() error
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Runtime:     core.DefaultConfig(),
	}
}

// SSHServer wraps a Wish SSH server hosting one game per connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Factory == nil {
		return nil, errors.New("ssh server: controller factory is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "turnip-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	hostKeyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// resolveHostKeyPath defaults the key to ~/.turnip/host_key and makes sure
// its directory exists.
func resolveHostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".turnip", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// sessionProfile is the progress profile of an SSH user.
func sessionProfile(user string) string {
	if user == "" {
		user = "anonymous"
	}
	return "ssh:" + user
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := s.config.Runtime
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height

	profile := sessionProfile(sshSession.User())
	app, err := NewSessionApp(sshSession.Context(), s.config.Factory, profile, cfg)
	if err != nil {
		s.logger.Error("could not start game", "user", sshSession.User(), "error", err)
		wish.Fatalln(sshSession, "turnip: could not load your progress, try again later")
		return nil, nil
	}

	return app, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs connects and disconnects with the player's profile.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		logger := s.logger.With(
			"profile", sessionProfile(sshSession.User()),
			"remote", sshSession.RemoteAddr().String(),
		)
		start := time.Now()
		logger.Info("player connected")
		next(sshSession)
		logger.Info("player disconnected", "played", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe starts the SSH server and blocks until an interrupt or ctx
// is done.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		s.close()
		return err
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	return errors.Join(err, s.close())
}

func (s *SSHServer) close() error {
	if s.config.OnClose == nil {
		return nil
	}
	onClose := s.config.OnClose
	s.config.OnClose = nil
	return onClose()
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
