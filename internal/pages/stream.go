// File: internal/pages/stream.go
package pages

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/streamwatch-cli/internal/browser"
)

var (
	videoElement      = browser.CSS("video")
	acceptVideoButton = browser.CSS("button[data-a-target*='start-watching-button']")
)

// videoReadyScript is truthy once the player has buffered enough to play
// (HAVE_FUTURE_DATA or better).
const videoReadyScript = "document.querySelector('video').readyState >= 3"

// Stream is an individual channel's stream page.
type Stream struct {
	b      Browser
	logger *zap.Logger
}

// NewStream builds the stream page object.
func NewStream(b Browser, logger *zap.Logger) *Stream {
	return &Stream{
		b:      b,
		logger: logger.Named("stream_page"),
	}
}

// HandleVideoBanner accepts the mature-content interstitial when it is shown.
// Absent banner is a no-op.
func (p *Stream) HandleVideoBanner(ctx context.Context) error {
	if !p.b.ElementExists(ctx, acceptVideoButton) {
		p.logger.Debug("No video banner present.")
		return nil
	}

	p.logger.Info("Accepting video banner.")
	if err := p.b.Click(ctx, acceptVideoButton); err != nil {
		return fmt.Errorf("accepting video banner: %w", err)
	}
	return nil
}

// WaitToLoadStream blocks until the video element is visible and the player
// reports it has buffered enough to play.
func (p *Stream) WaitToLoadStream(ctx context.Context) error {
	if err := p.b.WaitVisible(ctx, videoElement); err != nil {
		return fmt.Errorf("waiting for video element: %w", err)
	}
	if err := p.b.WaitScriptTrue(ctx, videoReadyScript); err != nil {
		return fmt.Errorf("waiting for video playback readiness: %w", err)
	}
	p.logger.Info("Stream is playing.")
	return nil
}

// TakeScreenshot captures the current stream view under the given name.
func (p *Stream) TakeScreenshot(ctx context.Context, name string) (string, error) {
	return p.b.Screenshot(ctx, name)
}
