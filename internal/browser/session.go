// File: internal/browser/session.go
package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/streamwatch-cli/internal/config"
	"github.com/xkilldash9x/streamwatch-cli/internal/devices"
)

// Session is one isolated browser tab bound to a single check. Page objects
// share it by reference; usage is strictly sequential within one run, so the
// session carries no locking around its CDP context.
type Session struct {
	id     string
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	waits       config.WaitConfig
	evidenceDir string
	profile     devices.Profile
}

// NewSession creates a browser tab with device emulation applied.
// Exactly one session is expected to be active per check at a time.
func (m *Manager) NewSession(ctx context.Context) (*Session, error) {
	id := uuid.New().String()
	log := m.logger.With(zap.String("session_id", id[:8]))

	sessionCtx, cancel := chromedp.NewContext(m.allocatorCtx)

	s := &Session{
		id:          id,
		logger:      log,
		ctx:         sessionCtx,
		cancel:      cancel,
		waits:       m.cfg.Wait,
		evidenceDir: m.cfg.Report.EvidenceDir,
		profile:     m.profile,
	}

	if err := os.MkdirAll(s.evidenceDir, 0o755); err != nil {
		cancel()
		return nil, fmt.Errorf("creating evidence directory: %w", err)
	}

	if err := chromedp.Run(sessionCtx, chromedp.Emulate(m.profile.Emulation())); err != nil {
		cancel()
		return nil, fmt.Errorf("applying device emulation: %w", err)
	}

	log.Info("Browser session initialized.", zap.String("device", m.profile.Name))
	return s, nil
}

// ID returns the unique identifier for this session.
func (s *Session) ID() string {
	return s.id
}

// Navigate loads a URL and waits for the document body to be ready.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.logger.Debug("Navigating", zap.String("url", url))

	runCtx, cancel := s.callContext(ctx)
	defer cancel()
	navCtx, cancelNav := context.WithTimeout(runCtx, s.waits.NavigationTimeout)
	defer cancelNav()

	if err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// Title returns the current document title.
func (s *Session) Title(ctx context.Context) (string, error) {
	var title string
	if err := s.run(ctx, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("reading page title: %w", err)
	}
	return title, nil
}

// CurrentURL returns the session's current location.
func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	var loc string
	if err := s.run(ctx, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("reading location: %w", err)
	}
	return loc, nil
}

// Screenshot captures the viewport as a PNG named <name>.png under the
// evidence directory and returns the written path.
func (s *Session) Screenshot(ctx context.Context, name string) (string, error) {
	var buf []byte
	if err := s.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return "", fmt.Errorf("capturing screenshot %q: %w", name, err)
	}

	path := filepath.Join(s.evidenceDir, name+".png")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", fmt.Errorf("writing screenshot %q: %w", name, err)
	}

	s.logger.Info("Screenshot saved.", zap.String("path", path))
	return path, nil
}

// Close terminates the tab and waits briefly for it to go away.
func (s *Session) Close(ctx context.Context) error {
	s.logger.Debug("Closing session.")
	s.cancel()

	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	select {
	case <-s.ctx.Done():
	case <-waitCtx.Done():
		s.logger.Warn("Deadline exceeded waiting for session to close.", zap.Error(waitCtx.Err()))
	}
	return nil
}

// run executes chromedp actions against the session, honoring cancellation of
// the per-call context without tearing down the tab.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("session closed: %w", err)
	}
	runCtx, cancel := s.callContext(ctx)
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

// callContext derives a context from the session context that is additionally
// cancelled when the per-call ctx is done. Cancelling the derived context
// aborts in-flight CDP commands but leaves the tab alive.
func (s *Session) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(s.ctx)
	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-stopped:
		}
	}()
	return runCtx, func() {
		cancel()
		close(stopped)
	}
}
