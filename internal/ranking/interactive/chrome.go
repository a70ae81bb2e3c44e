package interactive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chromedp/chromedp"
)

// ChromeOptions configures the browser session behind a ChromePage.
type ChromeOptions struct {
	Headless bool
	// ExecPath overrides chromedp's browser discovery when non-empty.
	ExecPath string
}

// ChromePage is a Page backed by a dedicated headless chrome session.
// Every ChromePage owns its own browser process, Close releases it.
type ChromePage struct {
	ctx    context.Context
	cancel func()
}

func NewChromePage(ctx context.Context, opts ChromeOptions) (*ChromePage, error) {
	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	// the browser outlives any single call, so it hangs off a background
	// context and is torn down by Close
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	page := &ChromePage{
		ctx: browserCtx,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
	}
	// an empty Run starts the browser
	err := page.run(ctx)
	if err != nil {
		page.cancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}
	return page, nil
}

// run executes actions on the browser, aborting when ctx is done.
func (p *ChromePage) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func jsString(s string) string {
	encoded, _ := json.Marshal(s)
	return string(encoded)
}

func (p *ChromePage) Navigate(ctx context.Context, url string) error {
	return p.run(ctx, chromedp.Navigate(url))
}

func (p *ChromePage) WaitPresent(ctx context.Context, id string) error {
	return p.run(ctx, chromedp.WaitReady(id, chromedp.ByID))
}

const setValueScript = `(function(id, value) {
	var el = document.getElementById(id);
	if (!el) { throw new Error("element not found: " + id); }
	el.value = value;
	el.dispatchEvent(new Event("change", { bubbles: true }));
	el.blur();
	return el.value;
})(%s, %s)`

func (p *ChromePage) setValue(ctx context.Context, id, value string) error {
	var result string
	return p.run(ctx, chromedp.Evaluate(
		fmt.Sprintf(setValueScript, jsString(id), jsString(value)),
		&result,
	))
}

func (p *ChromePage) SelectValue(ctx context.Context, id, value string) error {
	return p.setValue(ctx, id, value)
}

func (p *ChromePage) SetText(ctx context.Context, id, value string) error {
	return p.setValue(ctx, id, value)
}

const valueScript = `(function(id) {
	var el = document.getElementById(id);
	if (!el) { throw new Error("element not found: " + id); }
	return el.value;
})(%s)`

func (p *ChromePage) Value(ctx context.Context, id string) (string, error) {
	var value string
	err := p.run(ctx, chromedp.Evaluate(fmt.Sprintf(valueScript, jsString(id)), &value))
	return value, err
}

const visibleScript = `(function(id) {
	var el = document.getElementById(id);
	if (!el) { return false; }
	var style = window.getComputedStyle(el);
	return style.display !== "none" && style.visibility !== "hidden" && el.getClientRects().length > 0;
})(%s)`

func (p *ChromePage) Visible(ctx context.Context, id string) (bool, error) {
	var visible bool
	err := p.run(ctx, chromedp.Evaluate(fmt.Sprintf(visibleScript, jsString(id)), &visible))
	return visible, err
}

func (p *ChromePage) OuterHTML(ctx context.Context, id string) (string, error) {
	var markup string
	err := p.run(ctx, chromedp.OuterHTML(id, &markup, chromedp.ByID))
	return markup, err
}

// Close shuts the browser down, it is safe to call more than once.
func (p *ChromePage) Close() error {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	return nil
}
