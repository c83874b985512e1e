// File: internal/pages/home_test.go
package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHomeOpen(t *testing.T) {
	t.Parallel()

	fb := newFakeBrowser()
	home := NewHome(fb, zap.NewNop(), "https://m.twitch.tv/", "Twitch")

	require.NoError(t, home.Open(context.Background()))
	assert.Equal(t, []string{"navigate https://m.twitch.tv/"}, fb.calls)
}

func TestHomeIsLoaded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		title  string
		loaded bool
	}{
		{"exact title", "Twitch", true},
		{"wrong title", "Error", false},
		{"prefix is not enough", "Twitch - StarCraft II", false},
		{"empty title", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := newFakeBrowser()
			fb.title = tc.title
			home := NewHome(fb, zap.NewNop(), "https://m.twitch.tv/", "Twitch")

			loaded, err := home.IsLoaded(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.loaded, loaded)
		})
	}
}

func TestHandleCookiesBanner_Present(t *testing.T) {
	t.Parallel()

	fb := newFakeBrowser()
	fb.existing[acceptCookiesButton.Selector] = true
	home := NewHome(fb, zap.NewNop(), "https://m.twitch.tv/", "Twitch")

	require.NoError(t, home.HandleCookiesBanner(context.Background()))
	assert.Equal(t, []string{
		"exists " + acceptCookiesButton.Selector,
		"click " + acceptCookiesButton.Selector,
		"wait_invisible " + acceptCookiesButton.Selector,
	}, fb.calls)
}

func TestHandleCookiesBanner_Absent(t *testing.T) {
	t.Parallel()

	fb := newFakeBrowser()
	home := NewHome(fb, zap.NewNop(), "https://m.twitch.tv/", "Twitch")

	require.NoError(t, home.HandleCookiesBanner(context.Background()))
	assert.Equal(t, []string{"exists " + acceptCookiesButton.Selector}, fb.calls,
		"an absent banner must not be clicked or waited on")
}

func TestHandleCookiesBanner_SecondRunIsNoop(t *testing.T) {
	t.Parallel()

	fb := newFakeBrowser()
	fb.existing[acceptCookiesButton.Selector] = true
	home := NewHome(fb, zap.NewNop(), "https://m.twitch.tv/", "Twitch")

	require.NoError(t, home.HandleCookiesBanner(context.Background()))

	// The banner is gone after acceptance.
	fb.existing[acceptCookiesButton.Selector] = false
	fb.calls = nil

	require.NoError(t, home.HandleCookiesBanner(context.Background()))
	assert.Equal(t, []string{"exists " + acceptCookiesButton.Selector}, fb.calls)
}

func TestHandleCookiesBanner_ClickFailure(t *testing.T) {
	t.Parallel()

	fb := newFakeBrowser()
	fb.existing[acceptCookiesButton.Selector] = true
	fb.clickErr[acceptCookiesButton.Selector] = errors.New("click intercepted")
	home := NewHome(fb, zap.NewNop(), "https://m.twitch.tv/", "Twitch")

	err := home.HandleCookiesBanner(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepting cookies banner")
}

func TestClickSearchButton(t *testing.T) {
	t.Parallel()

	fb := newFakeBrowser()
	home := NewHome(fb, zap.NewNop(), "https://m.twitch.tv/", "Twitch")

	require.NoError(t, home.ClickSearchButton(context.Background()))
	assert.Equal(t, []string{"click " + homeSearchButton.Selector}, fb.calls)
}
