// File: internal/pages/fake_test.go
package pages

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/cdp"

	"github.com/xkilldash9x/streamwatch-cli/internal/browser"
)

// fakeBrowser is a scripted Browser: each behavior is a settable func, and
// every invocation is appended to calls as "op target" for order assertions.
// Unset funcs succeed with zero values.
type fakeBrowser struct {
	calls []string

	title        string
	url          string
	existing     map[string]bool
	findAllFn    func(attempt int) []*cdp.Node
	findAllCalls int
	nodeHasFn    func(node *cdp.Node) bool
	clickErr     map[string]error
	waitErr      map[string]error
	screenshotFn func(name string) (string, error)
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		existing: map[string]bool{},
		clickErr: map[string]error{},
		waitErr:  map[string]error{},
	}
}

func (f *fakeBrowser) record(op string, target string) {
	f.calls = append(f.calls, fmt.Sprintf("%s %s", op, target))
}

func (f *fakeBrowser) Navigate(_ context.Context, url string) error {
	f.record("navigate", url)
	f.url = url
	return nil
}

func (f *fakeBrowser) Title(context.Context) (string, error) {
	f.record("title", "")
	return f.title, nil
}

func (f *fakeBrowser) CurrentURL(context.Context) (string, error) {
	return f.url, nil
}

func (f *fakeBrowser) Screenshot(_ context.Context, name string) (string, error) {
	f.record("screenshot", name)
	if f.screenshotFn != nil {
		return f.screenshotFn(name)
	}
	return name + ".png", nil
}

func (f *fakeBrowser) WaitVisible(_ context.Context, loc browser.Locator, _ ...browser.WaitOption) error {
	f.record("wait_visible", loc.Selector)
	return f.waitErr[loc.Selector]
}

func (f *fakeBrowser) WaitInvisible(_ context.Context, loc browser.Locator, _ ...browser.WaitOption) error {
	f.record("wait_invisible", loc.Selector)
	return f.waitErr[loc.Selector]
}

func (f *fakeBrowser) Click(_ context.Context, loc browser.Locator, _ ...browser.WaitOption) error {
	f.record("click", loc.Selector)
	return f.clickErr[loc.Selector]
}

func (f *fakeBrowser) ClickNode(_ context.Context, node *cdp.Node) error {
	f.record("click_node", fmt.Sprintf("%d", node.NodeID))
	return nil
}

func (f *fakeBrowser) TypeText(_ context.Context, loc browser.Locator, text string) error {
	f.record("type", loc.Selector+" "+text)
	return nil
}

func (f *fakeBrowser) SendEnter(_ context.Context, loc browser.Locator) error {
	f.record("enter", loc.Selector)
	return nil
}

func (f *fakeBrowser) ElementExists(_ context.Context, loc browser.Locator) bool {
	f.record("exists", loc.Selector)
	return f.existing[loc.Selector]
}

func (f *fakeBrowser) FindAll(_ context.Context, loc browser.Locator) ([]*cdp.Node, error) {
	f.findAllCalls++
	f.record("find_all", loc.Selector)
	if f.findAllFn != nil {
		return f.findAllFn(f.findAllCalls), nil
	}
	return nil, nil
}

func (f *fakeBrowser) NodeHas(_ context.Context, node *cdp.Node, loc browser.Locator) bool {
	f.record("node_has", fmt.Sprintf("%d %s", node.NodeID, loc.Selector))
	if f.nodeHasFn != nil {
		return f.nodeHasFn(node)
	}
	return false
}

func (f *fakeBrowser) ScrollToBottom(context.Context) error {
	f.record("scroll_bottom", "")
	return nil
}

func (f *fakeBrowser) ScrollToElement(_ context.Context, loc browser.Locator) error {
	f.record("scroll_to", loc.Selector)
	return nil
}

func (f *fakeBrowser) WaitURLContains(_ context.Context, substr string, _ ...browser.WaitOption) error {
	f.record("wait_url_contains", substr)
	return f.waitErr[substr]
}

func (f *fakeBrowser) WaitURLEquals(_ context.Context, url string, _ ...browser.WaitOption) error {
	f.record("wait_url_equals", url)
	return f.waitErr[url]
}

func (f *fakeBrowser) WaitScriptTrue(_ context.Context, script string, _ ...browser.WaitOption) error {
	f.record("wait_script", script)
	return f.waitErr[script]
}

// nodes builds placeholder DOM nodes with the given IDs.
func nodes(ids ...int64) []*cdp.Node {
	out := make([]*cdp.Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, &cdp.Node{NodeID: cdp.NodeID(id)})
	}
	return out
}
