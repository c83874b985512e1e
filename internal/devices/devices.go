// File: internal/devices/devices.go

// Package devices holds the mobile device profiles available for browser
// emulation. Profiles are process-wide constants consumed when a session is
// created; they are never mutated.
package devices

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chromedp/chromedp/device"
)

// Profile describes one emulated mobile device.
type Profile struct {
	Name       string
	Width      int64
	Height     int64
	PixelRatio float64
	UserAgent  string
}

// IPhone8 is the default device for the streaming check.
var IPhone8 = Profile{
	Name:       "iPhone 8",
	Width:      375,
	Height:     667,
	PixelRatio: 2.0,
	UserAgent:  "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1",
}

// Pixel7 is an Android alternative.
var Pixel7 = Profile{
	Name:       "Pixel 7",
	Width:      412,
	Height:     915,
	PixelRatio: 2.625,
	UserAgent:  "Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Mobile Safari/537.36",
}

// Default is the profile used when none is configured.
var Default = IPhone8

var registry = map[string]Profile{
	normalize(IPhone8.Name): IPhone8,
	normalize(Pixel7.Name):  Pixel7,
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Lookup resolves a profile by name, tolerating case and spacing differences.
// An empty name resolves to Default.
func Lookup(name string) (Profile, error) {
	if strings.TrimSpace(name) == "" {
		return Default, nil
	}
	if p, ok := registry[normalize(name)]; ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("unknown device profile %q; known profiles: %s", name, strings.Join(Names(), ", "))
}

// Names returns the known profile names, sorted for stable error messages.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, p := range registry {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Emulation converts the profile into the chromedp device descriptor applied
// to a session at creation time.
func (p Profile) Emulation() device.Info {
	return device.Info{
		Name:      p.Name,
		UserAgent: p.UserAgent,
		Width:     p.Width,
		Height:    p.Height,
		Scale:     p.PixelRatio,
		Mobile:    true,
		Touch:     true,
	}
}
