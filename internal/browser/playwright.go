package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// DriverPlaywright selects the playwright-go backend.
const DriverPlaywright = "playwright"

// PlaywrightSession drives Chromium through playwright-go.
type PlaywrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	opts    Options

	mu     sync.Mutex
	closed bool
}

// NewPlaywrightSession starts the driver, launches Chromium and opens a page.
// On error everything started so far is released.
func NewPlaywrightSession(opts Options) (*PlaywrightSession, error) {
	opts = opts.withDefaults()
	s := &PlaywrightSession{opts: opts}

	if opts.InstallBrowsers && os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	s.pw = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(float64(opts.SlowMo.Milliseconds())),
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}
	s.browser = browser

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("could not create context: %w", err)
	}
	s.context = bctx

	page, err := bctx.NewPage()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	s.page = page
	page.SetDefaultTimeout(ms(opts.ImplicitWait))

	return s, nil
}

func ms(d time.Duration) float64 {
	return float64(d.Milliseconds())
}

func (s *PlaywrightSession) alive(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return ctx.Err()
}

// Navigate loads url and waits for the load event.
func (s *PlaywrightSession) Navigate(ctx context.Context, url string) error {
	if err := s.alive(ctx); err != nil {
		return err
	}
	if _, err := s.page.Goto(url); err != nil {
		if strings.Contains(err.Error(), "ERR_TOO_MANY_REDIRECTS") {
			return fmt.Errorf("redirect loop navigating to %s: %w", url, err)
		}
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// Find waits up to the implicit wait for loc to be attached.
func (s *PlaywrightSession) Find(ctx context.Context, loc Locator) (Element, error) {
	if err := s.alive(ctx); err != nil {
		return nil, err
	}
	l := s.page.Locator(loc.PlaywrightSelector()).First()
	err := l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(ms(s.opts.ImplicitWait)),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return nil, fmt.Errorf("%w: %s", ErrElementNotFound, loc)
		}
		return nil, fmt.Errorf("find %s: %w", loc, err)
	}
	return &playwrightElement{loc: l, desc: loc}, nil
}

// FindAll returns a snapshot of all elements currently matching loc.
func (s *PlaywrightSession) FindAll(ctx context.Context, loc Locator) ([]Element, error) {
	if err := s.alive(ctx); err != nil {
		return nil, err
	}
	all, err := s.page.Locator(loc.PlaywrightSelector()).All()
	if err != nil {
		return nil, fmt.Errorf("find all %s: %w", loc, err)
	}
	els := make([]Element, 0, len(all))
	for _, l := range all {
		els = append(els, &playwrightElement{loc: l, desc: loc})
	}
	return els, nil
}

// WaitUntil polls cond at the configured interval.
func (s *PlaywrightSession) WaitUntil(ctx context.Context, cond Condition, timeout time.Duration) error {
	if err := s.alive(ctx); err != nil {
		return err
	}
	return Poll(ctx, s, cond, timeout, s.opts.PollInterval)
}

// Screenshot saves a full-page PNG.
func (s *PlaywrightSession) Screenshot(ctx context.Context, path string) error {
	if err := s.alive(ctx); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

// Close releases page, context, browser and driver. Later calls are no-ops.
func (s *PlaywrightSession) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	var errs []error
	if s.page != nil {
		errs = append(errs, s.page.Close())
	}
	if s.context != nil {
		errs = append(errs, s.context.Close())
	}
	if s.browser != nil {
		errs = append(errs, s.browser.Close())
	}
	if s.pw != nil {
		errs = append(errs, s.pw.Stop())
	}
	return errors.Join(errs...)
}

type playwrightElement struct {
	loc  playwright.Locator
	desc Locator
}

func (e *playwrightElement) SendText(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.loc.Fill(value); err != nil {
		return fmt.Errorf("fill %s: %w", e.desc, err)
	}
	return nil
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.loc.Click(); err != nil {
		return fmt.Errorf("click %s: %w", e.desc, err)
	}
	return nil
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := e.loc.InnerText()
	if err != nil {
		return "", fmt.Errorf("text of %s: %w", e.desc, err)
	}
	return text, nil
}
