package pages

import (
	"context"
	"strings"
	"time"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
	"github.com/gotrs-io/hrm-e2e/internal/config"
	"github.com/gotrs-io/hrm-e2e/internal/models"
)

// RecordChecker is the part of the record store verification needs.
type RecordChecker interface {
	Exists(ctx context.Context, firstName, lastName string) (bool, error)
}

// EmployeeListPage scans the rendered employee table.
type EmployeeListPage struct {
	base
	store RecordChecker
}

// NewEmployeeListPage creates the page. A nil store selects the two-way
// outcome set: rows are only ever FoundButUnrecorded or NotFound.
func NewEmployeeListPage(s browser.Session, l config.Locators, explicitWait time.Duration, store RecordChecker) *EmployeeListPage {
	return &EmployeeListPage{base: newBase(s, l, explicitWait), store: store}
}

// StoreAware reports whether outcomes are cross-checked against a store.
func (p *EmployeeListPage) StoreAware() bool {
	return p.store != nil
}

// Verify looks for a row whose text contains the record's display name.
// Matching is by substring, so "SuperAdmin111 Test" and "Admin111 Tester"
// both satisfy "Admin111 Test".
// NotFound is a normal outcome; errors are reserved for lookup, wait and
// store failures.
func (p *EmployeeListPage) Verify(ctx context.Context, record models.EmployeeRecord) (models.Outcome, error) {
	if err := p.waitFor(ctx, p.locators.ListRows); err != nil {
		return models.NotFound, err
	}

	rows, err := p.session.FindAll(ctx, p.locators.ListRows)
	if err != nil {
		return models.NotFound, err
	}

	want := record.DisplayName()
	for _, row := range rows {
		text, err := row.Text(ctx)
		if err != nil {
			return models.NotFound, err
		}
		if !strings.Contains(text, want) {
			continue
		}
		if p.store == nil {
			return models.FoundButUnrecorded, nil
		}
		ok, err := p.store.Exists(ctx, record.FirstName, record.LastName)
		if err != nil {
			return models.NotFound, err
		}
		if ok {
			return models.FoundAndVerified, nil
		}
		return models.FoundButUnrecorded, nil
	}
	return models.NotFound, nil
}
