package pages

import (
	"context"
	"time"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
	"github.com/gotrs-io/hrm-e2e/internal/config"
)

// DashboardPage moves between top-level sections and logs out.
type DashboardPage struct {
	base
}

func NewDashboardPage(s browser.Session, l config.Locators, explicitWait time.Duration) *DashboardPage {
	return &DashboardPage{base: newBase(s, l, explicitWait)}
}

// GoToEmployeeModule opens PIM from the main menu.
func (p *DashboardPage) GoToEmployeeModule(ctx context.Context) error {
	return p.click(ctx, p.locators.PIMMenu)
}

// Logout opens the user dropdown, waits for its Logout link, clicks it and
// waits for the login form to come back.
func (p *DashboardPage) Logout(ctx context.Context) error {
	if err := p.click(ctx, p.locators.UserDropdown); err != nil {
		return err
	}
	if err := p.waitFor(ctx, p.locators.LogoutLink); err != nil {
		return err
	}
	if err := p.click(ctx, p.locators.LogoutLink); err != nil {
		return err
	}
	return p.waitFor(ctx, p.locators.Username)
}
