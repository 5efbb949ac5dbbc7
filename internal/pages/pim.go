package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
	"github.com/gotrs-io/hrm-e2e/internal/config"
)

// PIMPage drives the Add Employee form.
type PIMPage struct {
	base
}

func NewPIMPage(s browser.Session, l config.Locators, explicitWait time.Duration) *PIMPage {
	return &PIMPage{base: newBase(s, l, explicitWait)}
}

// AddEmployee creates one employee. Saving redirects to the employee's
// details page, so callers must navigate back to PIM before the next add.
func (p *PIMPage) AddEmployee(ctx context.Context, firstName, lastName string) error {
	if err := p.click(ctx, p.locators.AddButton); err != nil {
		return err
	}
	if err := p.waitFor(ctx, p.locators.FirstName); err != nil {
		return err
	}
	if err := p.fill(ctx, p.locators.FirstName, firstName); err != nil {
		return err
	}
	if err := p.fill(ctx, p.locators.LastName, lastName); err != nil {
		return err
	}
	if err := p.click(ctx, p.locators.SaveButton); err != nil {
		return err
	}
	if err := p.waitFor(ctx, p.locators.SaveConfirmation); err != nil {
		return fmt.Errorf("saving %s %s: %w", firstName, lastName, err)
	}
	return nil
}

// GoToEmployeeList opens the Employee List tab.
func (p *PIMPage) GoToEmployeeList(ctx context.Context) error {
	return p.click(ctx, p.locators.EmployeeListLink)
}
