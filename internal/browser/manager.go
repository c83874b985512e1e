// File: internal/browser/manager.go

// Package browser owns the lifecycle of the automated browser and provides
// the bounded-wait interaction layer the page objects are built on. It
// delegates all element location, input dispatch, and script execution to
// chromedp; this package only orchestrates calls into it.
package browser

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/streamwatch-cli/internal/config"
	"github.com/xkilldash9x/streamwatch-cli/internal/devices"
)

// executables maps a supported browser identifier to the binary names probed
// on PATH, in preference order.
var executables = map[string][]string{
	"chrome": {"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "chrome"},
	"edge":   {"microsoft-edge", "microsoft-edge-stable", "msedge"},
}

// FindExecutable resolves the binary for a supported browser identifier.
// For chrome an empty path with a nil error means "let chromedp locate it".
func FindExecutable(name string) (string, error) {
	key := strings.ToLower(name)
	candidates, ok := executables[key]
	if !ok {
		return "", &config.ErrUnsupportedBrowser{Name: name}
	}
	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return path, nil
		}
	}
	if key == "chrome" {
		// chromedp ships its own default discovery for Chrome installs.
		return "", nil
	}
	return "", fmt.Errorf("no %s executable found on PATH (tried %s)", name, strings.Join(candidates, ", "))
}

// Manager handles the lifecycle of the browser process. All sessions are
// derived from its allocator context.
type Manager struct {
	logger  *zap.Logger
	cfg     *config.Config
	profile devices.Profile

	allocatorCtx    context.Context
	allocatorCancel context.CancelFunc
}

// NewManager validates the browser selection, launches the browser process,
// and verifies it responds. It fails fast on an unsupported browser name,
// before any process is started.
func NewManager(ctx context.Context, logger *zap.Logger, cfg *config.Config) (*Manager, error) {
	if !config.IsSupportedBrowser(cfg.Browser.Name) {
		return nil, &config.ErrUnsupportedBrowser{Name: cfg.Browser.Name}
	}

	profile, err := devices.Lookup(cfg.Browser.Device)
	if err != nil {
		return nil, fmt.Errorf("resolving device profile: %w", err)
	}

	m := &Manager{
		logger:  logger.Named("browser_manager"),
		cfg:     cfg,
		profile: profile,
	}

	if err := m.launch(ctx); err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	return m, nil
}

// Profile returns the device profile sessions will emulate.
func (m *Manager) Profile() devices.Profile {
	return m.profile
}

// launch prepares allocator options and starts the browser process.
func (m *Manager) launch(ctx context.Context) error {
	opts, err := m.buildAllocatorOptions()
	if err != nil {
		return err
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	m.allocatorCtx = allocCtx
	m.allocatorCancel = cancel

	// Verify the browser starts and responds before handing out sessions.
	probeCtx, cancelProbe := context.WithTimeout(allocCtx, 30*time.Second)
	probeCtx, cancelProbeCtx := chromedp.NewContext(probeCtx)
	defer cancelProbeCtx()
	defer cancelProbe()

	if err := chromedp.Run(probeCtx, chromedp.Navigate("about:blank")); err != nil {
		m.allocatorCancel()
		return fmt.Errorf("browser failed to start or respond: %w", err)
	}

	m.logger.Info("Browser launched and responsive.",
		zap.String("browser", m.cfg.Browser.Name),
		zap.String("device", m.profile.Name),
		zap.Bool("headless", m.cfg.Browser.Headless))
	return nil
}

// buildAllocatorOptions assembles the launch flags for the configured browser.
func (m *Manager) buildAllocatorOptions() ([]chromedp.ExecAllocatorOption, error) {
	// Start from the defaults, then disable the flag that advertises
	// automation; later options win over the defaults.
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("enable-automation", false))

	execPath, err := FindExecutable(m.cfg.Browser.Name)
	if err != nil {
		return nil, err
	}
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}

	opts = append(opts,
		chromedp.Flag("headless", m.cfg.Browser.Headless),
		chromedp.Flag("disable-gpu", m.cfg.Browser.Headless),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("mute-audio", true),
		chromedp.UserAgent(m.profile.UserAgent),
	)

	// Custom arguments from configuration, "--name=value" or "--name".
	for _, arg := range m.cfg.Browser.Args {
		parts := strings.SplitN(arg, "=", 2)
		flagName := strings.TrimPrefix(parts[0], "--")
		if len(parts) == 2 {
			opts = append(opts, chromedp.Flag(flagName, parts[1]))
		} else {
			opts = append(opts, chromedp.Flag(flagName, true))
		}
	}

	// Flags required when running inside containers.
	if runtime.GOOS == "linux" {
		opts = append(opts,
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)
	}

	return opts, nil
}

// Shutdown terminates the browser process and waits for it to exit.
func (m *Manager) Shutdown(ctx context.Context) error {
	if m.allocatorCancel == nil {
		return nil
	}
	m.logger.Info("Shutting down browser process...")
	m.allocatorCancel()

	select {
	case <-m.allocatorCtx.Done():
	case <-ctx.Done():
		m.logger.Warn("Deadline exceeded waiting for browser to terminate.", zap.Error(ctx.Err()))
		return ctx.Err()
	}
	return nil
}
