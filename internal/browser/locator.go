package browser

import (
	"fmt"
	"strings"
)

// Strategy selects how a Locator value is interpreted.
type Strategy string

const (
	ByName  Strategy = "name"
	ByCSS   Strategy = "css"
	ByXPath Strategy = "xpath"
	ByClass Strategy = "class"
)

// Locator identifies a UI element as a (strategy, value) pair.
type Locator struct {
	Strategy Strategy `mapstructure:"by" yaml:"by"`
	Value    string   `mapstructure:"value" yaml:"value"`
}

func Name(v string) Locator  { return Locator{Strategy: ByName, Value: v} }
func CSS(v string) Locator   { return Locator{Strategy: ByCSS, Value: v} }
func XPath(v string) Locator { return Locator{Strategy: ByXPath, Value: v} }
func Class(v string) Locator { return Locator{Strategy: ByClass, Value: v} }

func (l Locator) String() string {
	return fmt.Sprintf("%s=%q", l.Strategy, l.Value)
}

// Validate checks the strategy is known and the value usable with it.
func (l Locator) Validate() error {
	if strings.TrimSpace(l.Value) == "" {
		return fmt.Errorf("locator %s: empty value", l.Strategy)
	}
	switch l.Strategy {
	case ByName, ByCSS, ByXPath:
		return nil
	case ByClass:
		if strings.ContainsAny(l.Value, " \t\n") {
			return fmt.Errorf("locator %s: class name must be a single token", l)
		}
		return nil
	default:
		return fmt.Errorf("locator %s: unknown strategy %q", l, l.Strategy)
	}
}

// CSSSelector returns the CSS form of non-XPath locators.
// ok is false for XPath locators.
func (l Locator) CSSSelector() (sel string, ok bool) {
	switch l.Strategy {
	case ByName:
		return fmt.Sprintf(`[name=%q]`, l.Value), true
	case ByClass:
		return "." + l.Value, true
	case ByCSS:
		return l.Value, true
	default:
		return "", false
	}
}

// PlaywrightSelector returns the selector string for page.Locator.
func (l Locator) PlaywrightSelector() string {
	if sel, ok := l.CSSSelector(); ok {
		return "css=" + sel
	}
	return "xpath=" + l.Value
}
