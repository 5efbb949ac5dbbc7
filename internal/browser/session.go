// Package browser provides the browser session abstraction the page objects
// drive, with playwright and chromedp backends.
package browser

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrElementNotFound is returned when a located control does not appear
	// within the session's implicit wait.
	ErrElementNotFound = errors.New("element not found")

	// ErrTimeoutExceeded is returned when an explicit wait condition never
	// became true within its timeout.
	ErrTimeoutExceeded = errors.New("timeout exceeded")

	// ErrSessionClosed is returned by any call made after Close.
	ErrSessionClosed = errors.New("browser session closed")
)

// Session is a controllable, navigable browser instance.
type Session interface {
	// Navigate loads url in the current page.
	Navigate(ctx context.Context, url string) error

	// Find returns the first element matching loc, blocking up to the
	// implicit wait. It fails with ErrElementNotFound.
	Find(ctx context.Context, loc Locator) (Element, error)

	// FindAll returns every element currently matching loc. It does not
	// wait; an empty result is not an error.
	FindAll(ctx context.Context, loc Locator) ([]Element, error)

	// WaitUntil polls cond until it holds or timeout elapses, failing with
	// ErrTimeoutExceeded.
	WaitUntil(ctx context.Context, cond Condition, timeout time.Duration) error

	// Screenshot writes a PNG of the current page to path.
	Screenshot(ctx context.Context, path string) error

	// Close releases the page, the browser and the driver process.
	Close() error
}

// Element is a located UI control.
type Element interface {
	SendText(ctx context.Context, value string) error
	Click(ctx context.Context) error
	Text(ctx context.Context) (string, error)
}

// Options configures a session at launch. ImplicitWait applies to every
// Find call of the session.
type Options struct {
	Driver          string
	Headless        bool
	SlowMo          time.Duration
	ImplicitWait    time.Duration
	PollInterval    time.Duration
	ViewportWidth   int
	ViewportHeight  int
	InstallBrowsers bool
}

// DefaultOptions mirrors the suite defaults.
func DefaultOptions() Options {
	return Options{
		Driver:         DriverPlaywright,
		Headless:       true,
		ImplicitWait:   10 * time.Second,
		PollInterval:   250 * time.Millisecond,
		ViewportWidth:  1280,
		ViewportHeight: 720,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Driver == "" {
		o.Driver = d.Driver
	}
	if o.ImplicitWait <= 0 {
		o.ImplicitWait = d.ImplicitWait
	}
	if o.PollInterval <= 0 {
		o.PollInterval = d.PollInterval
	}
	if o.ViewportWidth <= 0 || o.ViewportHeight <= 0 {
		o.ViewportWidth, o.ViewportHeight = d.ViewportWidth, d.ViewportHeight
	}
	return o
}
