package config

import (
	"fmt"
	"sort"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
)

// Locators is the single table of UI locators the page objects use. Several
// entries depend on literal rendered text (the Add and Save buttons carry
// surrounding spaces) and change whenever the application's markup does.
type Locators struct {
	Username         browser.Locator `mapstructure:"username"`
	Password         browser.Locator `mapstructure:"password"`
	Submit           browser.Locator `mapstructure:"submit"`
	PIMMenu          browser.Locator `mapstructure:"pim_menu"`
	UserDropdown     browser.Locator `mapstructure:"user_dropdown"`
	LogoutLink       browser.Locator `mapstructure:"logout_link"`
	AddButton        browser.Locator `mapstructure:"add_button"`
	FirstName        browser.Locator `mapstructure:"first_name"`
	LastName         browser.Locator `mapstructure:"last_name"`
	SaveButton       browser.Locator `mapstructure:"save_button"`
	SaveConfirmation browser.Locator `mapstructure:"save_confirmation"`
	EmployeeListLink browser.Locator `mapstructure:"employee_list_link"`
	ListRows         browser.Locator `mapstructure:"list_rows"`
}

// DefaultLocators returns the locators for the OrangeHRM 5 UI.
func DefaultLocators() Locators {
	return Locators{
		Username:         browser.Name("username"),
		Password:         browser.Name("password"),
		Submit:           browser.CSS("button[type='submit']"),
		PIMMenu:          browser.XPath("//span[text()='PIM']"),
		UserDropdown:     browser.Class("oxd-userdropdown-tab"),
		LogoutLink:       browser.XPath("//a[text()='Logout']"),
		AddButton:        browser.XPath("//button[text()=' Add ']"),
		FirstName:        browser.Name("firstName"),
		LastName:         browser.Name("lastName"),
		SaveButton:       browser.XPath("//button[text()=' Save ']"),
		SaveConfirmation: browser.Class("oxd-toast"),
		EmployeeListLink: browser.XPath("//a[text()='Employee List']"),
		ListRows:         browser.XPath("//div[@role='rowgroup']/div"),
	}
}

// table keys the locators by their config names.
func (l Locators) table() map[string]browser.Locator {
	return map[string]browser.Locator{
		"username":           l.Username,
		"password":           l.Password,
		"submit":             l.Submit,
		"pim_menu":           l.PIMMenu,
		"user_dropdown":      l.UserDropdown,
		"logout_link":        l.LogoutLink,
		"add_button":         l.AddButton,
		"first_name":         l.FirstName,
		"last_name":          l.LastName,
		"save_button":        l.SaveButton,
		"save_confirmation":  l.SaveConfirmation,
		"employee_list_link": l.EmployeeListLink,
		"list_rows":          l.ListRows,
	}
}

// Validate checks every locator in the table.
func (l Locators) Validate() []error {
	table := l.table()
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		if err := table[key].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("locators.%s: %w", key, err))
		}
	}
	return errs
}
