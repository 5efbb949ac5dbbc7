package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// DriverChromedp selects the chromedp backend.
const DriverChromedp = "chromedp"

// ChromedpSession drives a local Chrome over the DevTools protocol.
type ChromedpSession struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
	opts        Options

	mu     sync.Mutex
	closed bool
}

// NewChromedpSession starts Chrome and attaches a tab.
func NewChromedpSession(opts Options, logf func(string, ...interface{})) (*ChromedpSession, error) {
	opts = opts.withDefaults()
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(opts.ViewportWidth, opts.ViewportHeight),
	)

	s := &ChromedpSession{opts: opts}
	s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(context.Background(), allocOpts...)

	var ctxOpts []chromedp.ContextOption
	if logf != nil {
		ctxOpts = append(ctxOpts, chromedp.WithLogf(logf))
	}
	s.ctx, s.cancel = chromedp.NewContext(s.allocCtx, ctxOpts...)

	// The first Run starts the browser.
	if err := chromedp.Run(s.ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("could not start chrome: %w", err)
	}
	return s, nil
}

// run executes actions on the tab, bounded by ctx and the given timeout.
func (s *ChromedpSession) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(tctx, actions...)
}

func (s *ChromedpSession) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, s.opts.ImplicitWait*3, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func queryOpts(loc Locator) (string, chromedp.QueryOption) {
	if sel, ok := loc.CSSSelector(); ok {
		return sel, chromedp.ByQueryAll
	}
	return loc.Value, chromedp.BySearch
}

func (s *ChromedpSession) Find(ctx context.Context, loc Locator) (Element, error) {
	var nodes []*cdp.Node
	sel, by := queryOpts(loc)
	err := s.run(ctx, s.opts.ImplicitWait, chromedp.Nodes(sel, &nodes, by))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %s", ErrElementNotFound, loc)
		}
		return nil, fmt.Errorf("find %s: %w", loc, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, loc)
	}
	return &chromedpElement{s: s, node: nodes[0], desc: loc}, nil
}

func (s *ChromedpSession) FindAll(ctx context.Context, loc Locator) ([]Element, error) {
	var nodes []*cdp.Node
	sel, by := queryOpts(loc)
	err := s.run(ctx, s.opts.ImplicitWait, chromedp.Nodes(sel, &nodes, by, chromedp.AtLeast(0)))
	if err != nil {
		return nil, fmt.Errorf("find all %s: %w", loc, err)
	}
	els := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		els = append(els, &chromedpElement{s: s, node: n, desc: loc})
	}
	return els, nil
}

func (s *ChromedpSession) WaitUntil(ctx context.Context, cond Condition, timeout time.Duration) error {
	return Poll(ctx, s, cond, timeout, s.opts.PollInterval)
}

func (s *ChromedpSession) Screenshot(ctx context.Context, path string) error {
	var buf []byte
	if err := s.run(ctx, s.opts.ImplicitWait, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// Close cancels the tab and the allocator, which kills Chrome.
func (s *ChromedpSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
	return nil
}

type chromedpElement struct {
	s    *ChromedpSession
	node *cdp.Node
	desc Locator
}

func (e *chromedpElement) ids() []cdp.NodeID {
	return []cdp.NodeID{e.node.NodeID}
}

func (e *chromedpElement) SendText(ctx context.Context, value string) error {
	if err := e.s.run(ctx, e.s.opts.ImplicitWait, chromedp.SendKeys(e.ids(), value, chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("send text to %s: %w", e.desc, err)
	}
	return nil
}

func (e *chromedpElement) Click(ctx context.Context) error {
	if err := e.s.run(ctx, e.s.opts.ImplicitWait, chromedp.MouseClickNode(e.node)); err != nil {
		return fmt.Errorf("click %s: %w", e.desc, err)
	}
	return nil
}

func (e *chromedpElement) Text(ctx context.Context) (string, error) {
	var text string
	if err := e.s.run(ctx, e.s.opts.ImplicitWait, chromedp.Text(e.ids(), &text, chromedp.ByNodeID)); err != nil {
		return "", fmt.Errorf("text of %s: %w", e.desc, err)
	}
	return text, nil
}
