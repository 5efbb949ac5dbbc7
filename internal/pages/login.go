package pages

import (
	"context"
	"time"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
	"github.com/gotrs-io/hrm-e2e/internal/config"
)

// LoginPage submits credentials on the login form.
type LoginPage struct {
	base
}

func NewLoginPage(s browser.Session, l config.Locators, explicitWait time.Duration) *LoginPage {
	return &LoginPage{base: newBase(s, l, explicitWait)}
}

// Login locates the username field, password field and submit control in
// that order, fills the credentials and submits. Success is not checked here;
// the next page interaction waits for the dashboard.
func (p *LoginPage) Login(ctx context.Context, username, password string) error {
	user, err := p.session.Find(ctx, p.locators.Username)
	if err != nil {
		return err
	}
	pass, err := p.session.Find(ctx, p.locators.Password)
	if err != nil {
		return err
	}
	submit, err := p.session.Find(ctx, p.locators.Submit)
	if err != nil {
		return err
	}

	if err := user.SendText(ctx, username); err != nil {
		return err
	}
	if err := pass.SendText(ctx, password); err != nil {
		return err
	}
	return submit.Click(ctx)
}
