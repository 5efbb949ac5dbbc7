// Package pages holds the page objects that drive the OrangeHRM UI: login,
// top-level navigation, employee creation and employee list verification.
package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
	"github.com/gotrs-io/hrm-e2e/internal/config"
)

// base is embedded by every page object.
type base struct {
	session  browser.Session
	locators config.Locators
	timeout  time.Duration
}

func newBase(s browser.Session, l config.Locators, explicitWait time.Duration) base {
	if explicitWait <= 0 {
		explicitWait = 10 * time.Second
	}
	return base{session: s, locators: l, timeout: explicitWait}
}

func (b base) click(ctx context.Context, loc browser.Locator) error {
	el, err := b.session.Find(ctx, loc)
	if err != nil {
		return err
	}
	return el.Click(ctx)
}

func (b base) fill(ctx context.Context, loc browser.Locator, value string) error {
	el, err := b.session.Find(ctx, loc)
	if err != nil {
		return err
	}
	return el.SendText(ctx, value)
}

func (b base) waitFor(ctx context.Context, loc browser.Locator) error {
	if err := b.session.WaitUntil(ctx, browser.PresenceOf(loc), b.timeout); err != nil {
		return fmt.Errorf("waiting for %s: %w", loc, err)
	}
	return nil
}
