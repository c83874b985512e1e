// File: internal/pages/pages.go

// Package pages models the mobile site as page objects. Each page holds a
// Browser and exposes the interactions the check flow needs; none of them
// know how elements are located or waited on beyond the locators they own.
package pages

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/cdp"

	"github.com/xkilldash9x/streamwatch-cli/internal/browser"
)

// Browser is the slice of the session surface the page objects consume.
// *browser.Session satisfies it; tests substitute a scripted fake.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	Title(ctx context.Context) (string, error)
	CurrentURL(ctx context.Context) (string, error)
	Screenshot(ctx context.Context, name string) (string, error)

	WaitVisible(ctx context.Context, loc browser.Locator, opts ...browser.WaitOption) error
	WaitInvisible(ctx context.Context, loc browser.Locator, opts ...browser.WaitOption) error
	Click(ctx context.Context, loc browser.Locator, opts ...browser.WaitOption) error
	ClickNode(ctx context.Context, node *cdp.Node) error
	TypeText(ctx context.Context, loc browser.Locator, text string) error
	SendEnter(ctx context.Context, loc browser.Locator) error
	ElementExists(ctx context.Context, loc browser.Locator) bool
	FindAll(ctx context.Context, loc browser.Locator) ([]*cdp.Node, error)
	NodeHas(ctx context.Context, node *cdp.Node, loc browser.Locator) bool
	ScrollToBottom(ctx context.Context) error
	ScrollToElement(ctx context.Context, loc browser.Locator) error
	WaitURLContains(ctx context.Context, substr string, opts ...browser.WaitOption) error
	WaitURLEquals(ctx context.Context, url string, opts ...browser.WaitOption) error
	WaitScriptTrue(ctx context.Context, script string, opts ...browser.WaitOption) error
}

// NoLiveStreamFoundError reports that the live-channel scan exhausted its
// attempts without finding a single live result.
type NoLiveStreamFoundError struct {
	Attempts int
}

func (e *NoLiveStreamFoundError) Error() string {
	return fmt.Sprintf("no live streamers found after %d attempts", e.Attempts)
}
