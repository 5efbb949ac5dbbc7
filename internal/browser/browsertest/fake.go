// Package browsertest provides an in-memory browser.Session for tests.
package browsertest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
)

// FakeSession is a scripted browser.Session. Elements are registered per
// locator; Find never blocks, it fails immediately with
// browser.ErrElementNotFound when nothing is registered.
type FakeSession struct {
	mu          sync.Mutex
	elements    map[browser.Locator][]*FakeElement
	onClick     map[browser.Locator]func(*FakeSession)
	failures    map[browser.Locator]failure
	finds       map[browser.Locator]int
	calls       []string
	url         string
	screenshots []string
	closeCount  int

	// MaxWait caps WaitUntil so tests never sleep for the real timeout.
	MaxWait time.Duration
}

type failure struct {
	nth int
	err error
}

// NewFakeSession returns an empty session.
func NewFakeSession() *FakeSession {
	return &FakeSession{
		elements: make(map[browser.Locator][]*FakeElement),
		onClick:  make(map[browser.Locator]func(*FakeSession)),
		failures: make(map[browser.Locator]failure),
		finds:    make(map[browser.Locator]int),
	}
}

// Add registers elements for loc, one per text.
func (f *FakeSession) Add(loc browser.Locator, texts ...string) *FakeSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addLocked(loc, texts...)
	return f
}

func (f *FakeSession) addLocked(loc browser.Locator, texts ...string) {
	if len(texts) == 0 {
		texts = []string{""}
	}
	for _, t := range texts {
		f.elements[loc] = append(f.elements[loc], &FakeElement{session: f, loc: loc, text: t})
	}
}

// Remove drops every element registered for loc.
func (f *FakeSession) Remove(loc browser.Locator) *FakeSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.elements, loc)
	return f
}

// OnClick runs fn whenever an element matching loc is clicked. fn may call
// Add and Remove.
func (f *FakeSession) OnClick(loc browser.Locator, fn func(*FakeSession)) *FakeSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onClick[loc] = fn
	return f
}

// FailFind makes the nth Find of loc (1-based) fail with err. A nil err
// fails with browser.ErrElementNotFound.
func (f *FakeSession) FailFind(loc browser.Locator, nth int, err error) *FakeSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		err = fmt.Errorf("%w: %s", browser.ErrElementNotFound, loc)
	}
	f.failures[loc] = failure{nth: nth, err: err}
	return f
}

func (f *FakeSession) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *FakeSession) Navigate(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return err
	}
	f.url = url
	f.record("navigate %s", url)
	return nil
}

func (f *FakeSession) Find(ctx context.Context, loc browser.Locator) (browser.Element, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	f.finds[loc]++
	if fl, ok := f.failures[loc]; ok && fl.nth == f.finds[loc] {
		return nil, fl.err
	}
	els := f.elements[loc]
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", browser.ErrElementNotFound, loc)
	}
	return els[0], nil
}

func (f *FakeSession) FindAll(ctx context.Context, loc browser.Locator) ([]browser.Element, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	els := make([]browser.Element, 0, len(f.elements[loc]))
	for _, el := range f.elements[loc] {
		els = append(els, el)
	}
	return els, nil
}

func (f *FakeSession) WaitUntil(ctx context.Context, cond browser.Condition, timeout time.Duration) error {
	f.mu.Lock()
	if timeout > f.MaxWait {
		timeout = f.MaxWait
	}
	f.record("wait")
	f.mu.Unlock()
	return browser.Poll(ctx, f, cond, timeout, time.Millisecond)
}

func (f *FakeSession) Screenshot(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screenshots = append(f.screenshots, path)
	return nil
}

func (f *FakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCount++
	f.record("close")
	return nil
}

func (f *FakeSession) check(ctx context.Context) error {
	if f.closeCount > 0 {
		return browser.ErrSessionClosed
	}
	return ctx.Err()
}

// Calls returns the recorded actions in order.
func (f *FakeSession) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// URL returns the last navigated URL.
func (f *FakeSession) URL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url
}

// CloseCount reports how many times Close was called.
func (f *FakeSession) CloseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeCount
}

// Screenshots returns the paths passed to Screenshot.
func (f *FakeSession) Screenshots() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.screenshots...)
}

// FindCount reports how many times Find was called for loc.
func (f *FakeSession) FindCount(loc browser.Locator) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.finds[loc]
}

// FakeElement is an element of a FakeSession.
type FakeElement struct {
	session *FakeSession
	loc     browser.Locator
	text    string
	value   string
}

func (e *FakeElement) SendText(ctx context.Context, value string) error {
	f := e.session
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(ctx); err != nil {
		return err
	}
	e.value += value
	f.record("type %s %s", e.loc.Value, value)
	return nil
}

func (e *FakeElement) Click(ctx context.Context) error {
	f := e.session
	f.mu.Lock()
	if err := f.check(ctx); err != nil {
		f.mu.Unlock()
		return err
	}
	f.record("click %s", e.loc.Value)
	hook := f.onClick[e.loc]
	f.mu.Unlock()

	if hook != nil {
		hook(f)
	}
	return nil
}

func (e *FakeElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.text, nil
}

// Value returns the text typed into the element.
func (e *FakeElement) Value() string {
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	return e.value
}
