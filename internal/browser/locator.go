// File: internal/browser/locator.go
package browser

import "fmt"

// Strategy identifies how a selector string should be interpreted.
type Strategy string

const (
	// ByCSS locates elements with a CSS selector via querySelector.
	ByCSS Strategy = "css"
)

// Locator pairs a location strategy with a selector string. It is a value
// object and is never mutated.
type Locator struct {
	By       Strategy
	Selector string
}

// CSS builds a CSS locator.
func CSS(selector string) Locator {
	return Locator{By: ByCSS, Selector: selector}
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.By, l.Selector)
}

// LoadingSpinner marks in-flight content loading across the site. Scroll
// helpers treat its disappearance as the "content settled" signal.
var LoadingSpinner = CSS("[data-a-target='loading-spinner']")
