// File: internal/pages/home.go
package pages

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/streamwatch-cli/internal/browser"
)

var (
	acceptCookiesButton = browser.CSS("[data-a-target='consent-banner-accept']")
	homeSearchButton    = browser.CSS("a[href='/directory']")
)

// Home is the landing page of the mobile site.
type Home struct {
	b      Browser
	logger *zap.Logger
	url    string
	title  string
}

// NewHome builds the home page object rooted at baseURL. title is the
// document title that confirms the page loaded.
func NewHome(b Browser, logger *zap.Logger, baseURL, title string) *Home {
	return &Home{
		b:      b,
		logger: logger.Named("home_page"),
		url:    baseURL,
		title:  title,
	}
}

// Open navigates to the home page.
func (h *Home) Open(ctx context.Context) error {
	h.logger.Info("Opening home page.", zap.String("url", h.url))
	return h.b.Navigate(ctx, h.url)
}

// IsLoaded reports whether the document title matches the expected one.
func (h *Home) IsLoaded(ctx context.Context) (bool, error) {
	title, err := h.b.Title(ctx)
	if err != nil {
		return false, fmt.Errorf("checking home page title: %w", err)
	}
	return title == h.title, nil
}

// HandleCookiesBanner accepts the consent banner when it is shown and waits
// for it to disappear. When the banner is absent this is a no-op; running it
// again after acceptance is also a no-op.
func (h *Home) HandleCookiesBanner(ctx context.Context) error {
	if !h.b.ElementExists(ctx, acceptCookiesButton) {
		h.logger.Debug("No cookies banner present.")
		return nil
	}

	h.logger.Info("Accepting cookies banner.")
	if err := h.b.Click(ctx, acceptCookiesButton); err != nil {
		return fmt.Errorf("accepting cookies banner: %w", err)
	}
	if err := h.b.WaitInvisible(ctx, acceptCookiesButton); err != nil {
		return fmt.Errorf("waiting for cookies banner to dismiss: %w", err)
	}
	return nil
}

// ClickSearchButton opens the search/directory surface.
func (h *Home) ClickSearchButton(ctx context.Context) error {
	if err := h.b.Click(ctx, homeSearchButton); err != nil {
		return fmt.Errorf("opening search: %w", err)
	}
	return nil
}
