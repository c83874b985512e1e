// File: internal/scenario/scenario.go

// Package scenario drives the end to end check flow: open the home page,
// search the configured topic, pick a live channel, and confirm its stream
// plays. Each step is timed and recorded, and a failing step captures a
// screenshot before the run aborts.
package scenario

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/streamwatch-cli/internal/config"
	"github.com/xkilldash9x/streamwatch-cli/internal/pages"
	"github.com/xkilldash9x/streamwatch-cli/internal/reporting"
)

// Runner executes the stream check against one browser session.
type Runner struct {
	logger   *zap.Logger
	cfg      *config.Config
	browser  pages.Browser
	recorder *reporting.Recorder

	home   *pages.Home
	search *pages.Search
	stream *pages.Stream
}

// NewRunner wires the page objects over the given browser session.
func NewRunner(logger *zap.Logger, cfg *config.Config, b pages.Browser, rec *reporting.Recorder) *Runner {
	return &Runner{
		logger:   logger.Named("scenario"),
		cfg:      cfg,
		browser:  b,
		recorder: rec,
		home:     pages.NewHome(b, logger, cfg.Site.BaseURL, cfg.Site.Title),
		search:   pages.NewSearch(b, logger),
		stream:   pages.NewStream(b, logger),
	}
}

// Run executes the full flow. The first failing step aborts the run; its
// error is returned after the remaining steps are recorded as skipped.
func (r *Runner) Run(ctx context.Context) error {
	topic := r.cfg.Site.Topic
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"open_home_page", r.home.Open},
		{"verify_home_loaded", r.verifyHomeLoaded},
		{"handle_cookies_banner", r.home.HandleCookiesBanner},
		{"search_topic", func(ctx context.Context) error {
			return r.search.SearchTopic(ctx, topic)
		}},
		{"select_channels_tab", r.search.SelectChannelsTab},
		{"load_more_results", r.loadMoreResults},
		{"select_live_stream", r.search.SelectStreamFromResults},
		{"handle_video_banner", r.stream.HandleVideoBanner},
		{"wait_stream_playing", r.stream.WaitToLoadStream},
		{"capture_stream_screenshot", r.captureStreamScreenshot},
	}

	var failure error
	for _, step := range steps {
		if failure != nil {
			r.recorder.RecordStep(reporting.Step{Name: step.name, Status: reporting.StatusSkipped})
			continue
		}
		if err := r.runStep(ctx, step.name, step.fn); err != nil {
			failure = fmt.Errorf("step %s: %w", step.name, err)
		}
	}
	return failure
}

// runStep executes one step, records its outcome, and on failure captures a
// screenshot named after the step. Screenshot capture is best effort.
func (r *Runner) runStep(ctx context.Context, name string, fn func(context.Context) error) error {
	r.logger.Info("Running step.", zap.String("step", name))
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	step := reporting.Step{Name: name, Status: reporting.StatusPassed, Duration: elapsed}
	if err != nil {
		step.Status = reporting.StatusFailed
		step.Error = err.Error()
		r.logger.Error("Step failed.", zap.String("step", name), zap.Error(err))

		if path, shotErr := r.browser.Screenshot(ctx, name+"_failure"); shotErr == nil {
			step.Screenshot = path
		} else {
			r.logger.Warn("Could not capture failure screenshot.", zap.Error(shotErr))
		}
	}

	r.recorder.RecordStep(step)
	return err
}

func (r *Runner) verifyHomeLoaded(ctx context.Context) error {
	loaded, err := r.home.IsLoaded(ctx)
	if err != nil {
		return err
	}
	if !loaded {
		return fmt.Errorf("home page did not load correctly")
	}
	return nil
}

// loadMoreResults scrolls twice so the channels view holds more than the
// initial screen of results before the live scan starts.
func (r *Runner) loadMoreResults(ctx context.Context) error {
	for i := 0; i < 2; i++ {
		if err := r.browser.ScrollToBottom(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) captureStreamScreenshot(ctx context.Context) error {
	path, err := r.stream.TakeScreenshot(ctx, "stream_page_loaded")
	if err != nil {
		return err
	}
	r.logger.Info("Stream screenshot captured.", zap.String("path", path))
	return nil
}
