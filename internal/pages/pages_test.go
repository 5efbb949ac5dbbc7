package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
	"github.com/gotrs-io/hrm-e2e/internal/browser/browsertest"
	"github.com/gotrs-io/hrm-e2e/internal/config"
)

var loc = config.DefaultLocators()

func TestLoginPage_Login(t *testing.T) {
	ctx := context.Background()
	s := browsertest.NewFakeSession().
		Add(loc.Username).
		Add(loc.Password).
		Add(loc.Submit)

	require.NoError(t, NewLoginPage(s, loc, time.Second).Login(ctx, "Admin", "admin123"))

	assert.Equal(t, []string{
		"type username Admin",
		"type password admin123",
		"click button[type='submit']",
	}, s.Calls())
}

func TestLoginPage_MissingControl(t *testing.T) {
	ctx := context.Background()
	s := browsertest.NewFakeSession().
		Add(loc.Username).
		Add(loc.Submit)

	err := NewLoginPage(s, loc, time.Second).Login(ctx, "Admin", "admin123")
	assert.ErrorIs(t, err, browser.ErrElementNotFound)
	assert.Empty(t, s.Calls(), "nothing is typed until all controls are located")
	assert.Zero(t, s.FindCount(loc.Submit), "controls are located in order")
}

func TestDashboardPage_GoToEmployeeModule(t *testing.T) {
	s := browsertest.NewFakeSession().Add(loc.PIMMenu)
	require.NoError(t, NewDashboardPage(s, loc, time.Second).GoToEmployeeModule(context.Background()))
	assert.Equal(t, []string{"click //span[text()='PIM']"}, s.Calls())
}

func TestDashboardPage_Logout(t *testing.T) {
	ctx := context.Background()
	s := browsertest.NewFakeSession().Add(loc.UserDropdown)
	s.OnClick(loc.UserDropdown, func(s *browsertest.FakeSession) { s.Add(loc.LogoutLink) })
	s.OnClick(loc.LogoutLink, func(s *browsertest.FakeSession) { s.Add(loc.Username) })

	require.NoError(t, NewDashboardPage(s, loc, time.Second).Logout(ctx))
	assert.Equal(t, []string{
		"click oxd-userdropdown-tab",
		"wait",
		"click //a[text()='Logout']",
		"wait",
	}, s.Calls())
}

func TestDashboardPage_LogoutDropdownNeverOpens(t *testing.T) {
	s := browsertest.NewFakeSession().Add(loc.UserDropdown)
	err := NewDashboardPage(s, loc, time.Second).Logout(context.Background())
	assert.ErrorIs(t, err, browser.ErrTimeoutExceeded)
}

func newPIMSession() *browsertest.FakeSession {
	s := browsertest.NewFakeSession().Add(loc.AddButton).Add(loc.EmployeeListLink)
	s.OnClick(loc.AddButton, func(s *browsertest.FakeSession) {
		s.Remove(loc.SaveConfirmation)
		s.Add(loc.FirstName).Add(loc.LastName).Add(loc.SaveButton)
	})
	s.OnClick(loc.SaveButton, func(s *browsertest.FakeSession) {
		s.Add(loc.SaveConfirmation, "Successfully Saved")
	})
	return s
}

func TestPIMPage_AddEmployee(t *testing.T) {
	ctx := context.Background()
	s := newPIMSession()

	require.NoError(t, NewPIMPage(s, loc, time.Second).AddEmployee(ctx, "Admin111", "Test"))
	assert.Equal(t, []string{
		"click //button[text()=' Add ']",
		"wait",
		"type firstName Admin111",
		"type lastName Test",
		"click //button[text()=' Save ']",
		"wait",
	}, s.Calls())
}

func TestPIMPage_AddEmployeeSaveNeverConfirmed(t *testing.T) {
	ctx := context.Background()
	s := newPIMSession()
	s.OnClick(loc.SaveButton, nil)

	err := NewPIMPage(s, loc, time.Second).AddEmployee(ctx, "Admin111", "Test")
	assert.ErrorIs(t, err, browser.ErrTimeoutExceeded)
	assert.Contains(t, err.Error(), "Admin111 Test")
}

func TestPIMPage_AddEmployeeMissingSave(t *testing.T) {
	ctx := context.Background()
	s := newPIMSession().FailFind(loc.SaveButton, 1, nil)

	err := NewPIMPage(s, loc, time.Second).AddEmployee(ctx, "Admin111", "Test")
	assert.ErrorIs(t, err, browser.ErrElementNotFound)
}

func TestPIMPage_GoToEmployeeList(t *testing.T) {
	s := newPIMSession()
	require.NoError(t, NewPIMPage(s, loc, time.Second).GoToEmployeeList(context.Background()))
	assert.Equal(t, []string{"click //a[text()='Employee List']"}, s.Calls())
}

func TestPIMPage_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewPIMPage(newPIMSession(), loc, time.Second).AddEmployee(ctx, "Admin111", "Test")
	assert.True(t, errors.Is(err, context.Canceled))
}
