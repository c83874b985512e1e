// File: internal/pages/search.go
package pages

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/streamwatch-cli/internal/browser"
)

// maxStreamAttempts bounds the live-channel scan. Between rounds the page is
// scrolled to the bottom to pull in more lazily loaded results.
const maxStreamAttempts = 3

var (
	searchButton     = browser.CSS("a[class*='Interactable'][href='/directory']")
	searchInput      = browser.CSS("[data-a-target='tw-input']")
	channelsTab      = browser.CSS("a[href*='type=channels'][role='tab']")
	channelsListItem = browser.CSS("div[role='list'] > div")
	liveStreamBadge  = browser.CSS("img[src*='/live_user']")
)

// Search is the directory/search page.
type Search struct {
	b      Browser
	logger *zap.Logger
}

// NewSearch builds the search page object.
func NewSearch(b Browser, logger *zap.Logger) *Search {
	return &Search{
		b:      b,
		logger: logger.Named("search_page"),
	}
}

// SearchTopic focuses the search input, types the topic verbatim, and submits
// with Enter.
func (s *Search) SearchTopic(ctx context.Context, topic string) error {
	s.logger.Info("Searching for topic.", zap.String("topic", topic))

	if err := s.b.Click(ctx, searchButton); err != nil {
		return fmt.Errorf("focusing search: %w", err)
	}
	if err := s.b.TypeText(ctx, searchInput, topic); err != nil {
		return fmt.Errorf("typing search topic: %w", err)
	}
	if err := s.b.SendEnter(ctx, searchInput); err != nil {
		return fmt.Errorf("submitting search: %w", err)
	}
	return nil
}

// SelectChannelsTab switches the results to the channels view and waits for
// both the URL and the result list to confirm it.
func (s *Search) SelectChannelsTab(ctx context.Context) error {
	if err := s.b.Click(ctx, channelsTab); err != nil {
		return fmt.Errorf("selecting channels tab: %w", err)
	}
	if err := s.b.WaitURLContains(ctx, "type=channels"); err != nil {
		return fmt.Errorf("waiting for channels tab url: %w", err)
	}
	if err := s.b.WaitVisible(ctx, channelsListItem); err != nil {
		return fmt.Errorf("waiting for channel results: %w", err)
	}
	return nil
}

// SelectStreamFromResults clicks the first result carrying a live badge.
// It scans the result list up to maxStreamAttempts times, scrolling to the
// bottom between rounds to load more entries, and returns
// *NoLiveStreamFoundError when every round comes up empty.
func (s *Search) SelectStreamFromResults(ctx context.Context) error {
	for attempt := 1; attempt <= maxStreamAttempts; attempt++ {
		channels, err := s.b.FindAll(ctx, channelsListItem)
		if err != nil {
			return fmt.Errorf("listing channel results: %w", err)
		}
		s.logger.Debug("Scanning channel results for a live stream.",
			zap.Int("attempt", attempt),
			zap.Int("results", len(channels)))

		for _, channel := range channels {
			if !s.b.NodeHas(ctx, channel, liveStreamBadge) {
				continue
			}
			if err := s.b.ClickNode(ctx, channel); err != nil {
				return fmt.Errorf("opening live channel: %w", err)
			}
			s.logger.Info("Live stream selected.", zap.Int("attempt", attempt))
			return nil
		}

		if attempt < maxStreamAttempts {
			if err := s.b.ScrollToBottom(ctx); err != nil {
				return fmt.Errorf("scrolling for more results: %w", err)
			}
		}
	}

	return &NoLiveStreamFoundError{Attempts: maxStreamAttempts}
}
