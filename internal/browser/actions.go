// File: internal/browser/actions.go
package browser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"
)

// The interaction layer. Every bounded wait below shares the polling contract
// implemented by waitFor: fixed interval up to the configured timeout, then a
// *TimeoutError naming the locator and the elapsed time.

func (s *Session) params(opts ...WaitOption) waitParams {
	p := waitParams{timeout: s.waits.Timeout, interval: s.waits.PollInterval}
	for _, o := range opts {
		o(&p)
	}
	return p
}

// WaitVisible blocks until at least one element matching loc is present and
// visible.
func (s *Session) WaitVisible(ctx context.Context, loc Locator, opts ...WaitOption) error {
	return waitFor(ctx, "wait visible", loc.String(), s.params(opts...), func(ctx context.Context) (bool, error) {
		return s.evalBool(ctx, jsVisible(loc))
	})
}

// WaitInvisible blocks until no element matching loc is visible. An absent
// element counts as invisible.
func (s *Session) WaitInvisible(ctx context.Context, loc Locator, opts ...WaitOption) error {
	return waitFor(ctx, "wait invisible", loc.String(), s.params(opts...), func(ctx context.Context) (bool, error) {
		visible, err := s.evalBool(ctx, jsVisible(loc))
		return !visible, err
	})
}

// Click waits for the element to be clickable (visible and enabled) and then
// dispatches a click to it.
func (s *Session) Click(ctx context.Context, loc Locator, opts ...WaitOption) error {
	s.logger.Debug("Clicking element", zap.String("locator", loc.String()))

	err := waitFor(ctx, "wait clickable", loc.String(), s.params(opts...), func(ctx context.Context) (bool, error) {
		return s.evalBool(ctx, jsClickable(loc))
	})
	if err != nil {
		return err
	}

	if err := s.run(ctx, chromedp.Click(loc.Selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click %s: %w", loc, err)
	}
	return nil
}

// ClickNode clicks an element that has already been resolved, for flows that
// scan a node list and act on one entry.
func (s *Session) ClickNode(ctx context.Context, node *cdp.Node) error {
	if err := s.run(ctx, chromedp.MouseClickNode(node)); err != nil {
		return fmt.Errorf("click node %d: %w", node.NodeID, err)
	}
	return nil
}

// TypeText waits for the element to be visible and sends text to it. The text
// is passed through to the driver unmodified.
func (s *Session) TypeText(ctx context.Context, loc Locator, text string) error {
	s.logger.Debug("Typing into element", zap.String("locator", loc.String()))

	if err := s.WaitVisible(ctx, loc); err != nil {
		return err
	}
	if err := s.run(ctx, chromedp.SendKeys(loc.Selector, text, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("type into %s: %w", loc, err)
	}
	return nil
}

// SendEnter dispatches the Enter key to the element, submitting whatever it
// is focused on.
func (s *Session) SendEnter(ctx context.Context, loc Locator) error {
	if err := s.run(ctx, chromedp.SendKeys(loc.Selector, kb.Enter, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("send enter to %s: %w", loc, err)
	}
	return nil
}

// ElementExists probes for a visible element matching loc within the default
// timeout. It never returns an error: not found and timeout both report false.
func (s *Session) ElementExists(ctx context.Context, loc Locator) bool {
	err := s.WaitVisible(ctx, loc)
	if err != nil {
		s.logger.Debug("Element probe negative", zap.String("locator", loc.String()))
	}
	return err == nil
}

// FindAll immediately queries all elements matching loc. It never waits and
// returns an empty slice when nothing matches.
func (s *Session) FindAll(ctx context.Context, loc Locator) ([]*cdp.Node, error) {
	var nodes []*cdp.Node
	err := s.run(ctx, chromedp.Nodes(loc.Selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", loc, err)
	}
	return nodes, nil
}

// NodeHas probes, non-fatally, whether node contains a descendant matching
// loc. Query failures report false rather than an error.
func (s *Session) NodeHas(ctx context.Context, node *cdp.Node, loc Locator) bool {
	var kids []*cdp.Node
	err := s.run(ctx, chromedp.Nodes(loc.Selector, &kids,
		chromedp.ByQueryAll, chromedp.FromNode(node), chromedp.AtLeast(0)))
	return err == nil && len(kids) > 0
}

// ScrollToBottom scrolls the window to the bottom of the document and waits
// for the loading spinner to clear, the signal that lazily loaded content has
// settled.
func (s *Session) ScrollToBottom(ctx context.Context) error {
	if err := s.run(ctx, chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil)); err != nil {
		return fmt.Errorf("scroll to bottom: %w", err)
	}
	return s.WaitInvisible(ctx, LoadingSpinner)
}

// ScrollToElement brings the element into view and waits for loading to
// settle.
func (s *Session) ScrollToElement(ctx context.Context, loc Locator) error {
	if err := s.WaitVisible(ctx, loc); err != nil {
		return err
	}
	if err := s.run(ctx, chromedp.ScrollIntoView(loc.Selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("scroll to %s: %w", loc, err)
	}
	return s.WaitInvisible(ctx, LoadingSpinner)
}

// WaitURLContains polls the current location until it contains substr.
func (s *Session) WaitURLContains(ctx context.Context, substr string, opts ...WaitOption) error {
	return waitFor(ctx, "wait url contains", substr, s.params(opts...), func(ctx context.Context) (bool, error) {
		loc, err := s.CurrentURL(ctx)
		if err != nil {
			return false, err
		}
		return strings.Contains(loc, substr), nil
	})
}

// WaitURLEquals polls the current location until it matches url exactly.
func (s *Session) WaitURLEquals(ctx context.Context, url string, opts ...WaitOption) error {
	return waitFor(ctx, "wait url equals", url, s.params(opts...), func(ctx context.Context) (bool, error) {
		loc, err := s.CurrentURL(ctx)
		if err != nil {
			return false, err
		}
		return loc == url, nil
	})
}

// WaitScriptTrue re-evaluates a JavaScript expression until it is truthy.
func (s *Session) WaitScriptTrue(ctx context.Context, script string, opts ...WaitOption) error {
	expr := fmt.Sprintf("!!(%s)", script)
	return waitFor(ctx, "wait script", script, s.params(opts...), func(ctx context.Context) (bool, error) {
		return s.evalBool(ctx, expr)
	})
}

// evalBool evaluates a JavaScript expression expected to produce a boolean.
func (s *Session) evalBool(ctx context.Context, expr string) (bool, error) {
	var res bool
	if err := s.run(ctx, chromedp.Evaluate(expr, &res)); err != nil {
		return false, err
	}
	return res, nil
}

// jsQuery returns a querySelector expression for the locator. The selector is
// quoted so characters like quotes survive embedding in a script.
func jsQuery(loc Locator) string {
	return fmt.Sprintf("document.querySelector(%s)", strconv.Quote(loc.Selector))
}

// jsVisible produces an expression that is true when the element exists and
// is rendered: not display:none, not visibility:hidden, and has layout boxes.
func jsVisible(loc Locator) string {
	return fmt.Sprintf(`(() => {
		const el = %s;
		if (!el) return false;
		const style = window.getComputedStyle(el);
		if (style.display === 'none' || style.visibility === 'hidden') return false;
		return el.getClientRects().length > 0;
	})()`, jsQuery(loc))
}

// jsClickable extends visibility with the enabled check.
func jsClickable(loc Locator) string {
	return fmt.Sprintf(`(() => {
		const el = %s;
		if (!el || el.disabled) return false;
		const style = window.getComputedStyle(el);
		if (style.display === 'none' || style.visibility === 'hidden') return false;
		return el.getClientRects().length > 0;
	})()`, jsQuery(loc))
}
