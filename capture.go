package invoiceform

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Capturer renders an HTML document and returns a PNG image of its
// invoice region.
type Capturer interface {
	Capture(ctx context.Context, html string) ([]byte, error)
}

// ChromeCapturer captures HTML with a headless Chrome instance that is
// reused across captures. Each capture runs in its own tab, so it is safe
// for concurrent use.
//
// Call [ChromeCapturer.Close] when the capturer is no longer needed to
// release browser resources.
type ChromeCapturer struct {
	cfg           captureConfig
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewChromeCapturer starts a headless browser with the given options.
// The caller must call [ChromeCapturer.Close] when finished.
func NewChromeCapturer(opts ...Option) (*ChromeCapturer, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.chromePath == "" && cfg.autoDownload {
		if _, ok := lookBrowser(); !ok {
			path, err := resolveBrowser()
			if err != nil {
				return nil, err
			}
			cfg.logger.Infof("using downloaded browser at %s", path)
			cfg.chromePath = path
		}
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
		chromedp.WindowSize(int(cfg.width), int(cfg.height)),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("invoiceform: starting browser: %w", err)
	}

	return &ChromeCapturer{
		cfg:           cfg,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases all resources held by the capturer, including the
// browser process. Close is idempotent.
func (c *ChromeCapturer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.browserCancel()
	c.allocCancel()
	return nil
}

// Capture loads html into a fresh tab and screenshots the element
// matching the configured selector.
func (c *ChromeCapturer) Capture(ctx context.Context, html string) ([]byte, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	defer tabCancel()

	// The tab derives from the browser context; tie it to the caller's
	// context as well so cancellation propagates.
	runCtx, cancel := context.WithCancel(tabCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if c.cfg.timeout > 0 {
		var cancelTimeout context.CancelFunc
		runCtx, cancelTimeout = context.WithTimeout(runCtx, c.cfg.timeout)
		defer cancelTimeout()
	}

	var buf []byte
	if err := chromedp.Run(runCtx,
		chromedp.EmulateViewport(c.cfg.width, c.cfg.height, chromedp.EmulateScale(c.cfg.scale)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitVisible(c.cfg.selector, chromedp.ByQuery),
		chromedp.Screenshot(c.cfg.selector, &buf, chromedp.NodeVisible, chromedp.ByQuery),
	); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("invoiceform: capture failed: %w", ctxErr)
		}
		return nil, fmt.Errorf("invoiceform: capture failed: %w", err)
	}

	c.cfg.logger.Debugf("captured %q: %d bytes", c.cfg.selector, len(buf))
	return buf, nil
}

func (c *ChromeCapturer) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}
