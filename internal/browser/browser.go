// Package browser provides the headless-Chrome implementation of the
// orchestrator's PageInspector capability, plus interactive portal login.
// Requires Chrome/Chromium to be installed on the system.
package browser

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"github.com/swapnil/naukri-auto-apply/internal/apply"
	"github.com/swapnil/naukri-auto-apply/internal/session"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Options configures the browsing context.
type Options struct {
	Headless bool
	// NavTimeout bounds page navigations; ProbeTimeout bounds indicator
	// probes and clicks. Both expire softly: the orchestrator converts
	// the error into a per-job skip.
	NavTimeout   time.Duration
	ProbeTimeout time.Duration
	Verbose      bool
}

func (o Options) withDefaults() Options {
	if o.NavTimeout <= 0 {
		o.NavTimeout = 60 * time.Second
	}
	if o.ProbeTimeout <= 0 {
		o.ProbeTimeout = 5 * time.Second
	}
	return o
}

// Browser owns one authenticated browsing context. It is not safe for
// concurrent use; the orchestrator serializes all calls.
type Browser struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	opts        Options
}

var _ apply.PageInspector = (*Browser)(nil)

// New launches a browser and opens a single tab.
func New(parent context.Context, opts Options) (*Browser, error) {
	opts = opts.withDefaults()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-features", "FederatedCredentialManagement"),
			chromedp.UserAgent(userAgent),
		)...,
	)

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// Materialize the browser process before the first real navigation.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &Browser{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		opts:        opts,
	}, nil
}

// Close tears down the tab and the browser process. Safe to call once in a
// deferred cleanup path.
func (b *Browser) Close() {
	b.cancelTab()
	b.cancelAlloc()
}

// SetSession installs the stored cookies into the browsing context.
func (b *Browser) SetSession(ctx context.Context, token *session.Token) error {
	if token == nil || len(token.Cookies) == 0 {
		return fmt.Errorf("session token has no cookies")
	}

	params := make([]*network.CookieParam, 0, len(token.Cookies))
	for _, c := range token.Cookies {
		p := &network.CookieParam{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   c.Path,
		}
		if c.HTTPOnly {
			p.HTTPOnly = true
		}
		if c.Secure {
			p.Secure = true
		}
		switch c.SameSite {
		case "Lax":
			p.SameSite = network.CookieSameSiteLax
		case "Strict":
			p.SameSite = network.CookieSameSiteStrict
		case "None":
			p.SameSite = network.CookieSameSiteNone
		}
		params = append(params, p)
	}

	return chromedp.Run(b.tab(ctx), chromedp.ActionFunc(func(ctx context.Context) error {
		return storage.SetCookies(params).Do(ctx)
	}))
}

// tab rebinds the shared tab context so caller cancellation is honored.
func (b *Browser) tab(ctx context.Context) context.Context {
	tabCtx := b.ctx
	if ctx == nil {
		return tabCtx
	}
	// chromedp actions must run against the tab context; caller deadlines
	// are applied per call in the methods below.
	return tabCtx
}

// run executes actions against the tab with a timeout.
func (b *Browser) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(b.tab(ctx), timeout)
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

// Navigate implements apply.PageInspector.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	if b.opts.Verbose {
		log.Printf("[BROWSER] Navigating to %s", url)
	}
	err := b.run(ctx, b.opts.NavTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Let client-side rendering settle before probes.
		chromedp.Sleep(3*time.Second),
	)
	if err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

const alreadyAppliedJS = `(() => {
	const span = document.querySelector("#already-applied, .already-applied");
	if (span) return true;
	const container = document.querySelector('[class*="apply-button-container"]');
	if (container) {
		const text = container.textContent.trim();
		return text === "Applied" || text === "Already Applied";
	}
	return false;
})()`

// AlreadyApplied implements apply.PageInspector.
func (b *Browser) AlreadyApplied(ctx context.Context) (bool, error) {
	var applied bool
	if err := b.run(ctx, b.opts.ProbeTimeout, chromedp.Evaluate(alreadyAppliedJS, &applied)); err != nil {
		return false, fmt.Errorf("already-applied probe failed: %w", err)
	}
	return applied, nil
}

// ExternalRedirect implements apply.PageInspector.
func (b *Browser) ExternalRedirect(ctx context.Context) (bool, error) {
	var redirect bool
	err := b.run(ctx, b.opts.ProbeTimeout,
		chromedp.Evaluate(`!!document.querySelector("#company-site-button")`, &redirect))
	if err != nil {
		return false, fmt.Errorf("redirect probe failed: %w", err)
	}
	return redirect, nil
}

// HasApplyControl implements apply.PageInspector.
func (b *Browser) HasApplyControl(ctx context.Context) (bool, error) {
	var visible bool
	err := b.run(ctx, b.opts.ProbeTimeout,
		chromedp.Evaluate(`(() => {
			const button = document.querySelector("#apply-button, .apply-button");
			return !!button && getComputedStyle(button).display !== "none";
		})()`, &visible))
	if err != nil {
		return false, fmt.Errorf("apply-control probe failed: %w", err)
	}
	return visible, nil
}

// ClickApply implements apply.PageInspector.
func (b *Browser) ClickApply(ctx context.Context) error {
	var clicked bool
	err := b.run(ctx, b.opts.ProbeTimeout,
		chromedp.Evaluate(`(() => {
			const button = document.querySelector("#apply-button, .apply-button");
			if (button && !button.disabled) {
				button.click();
				return true;
			}
			return false;
		})()`, &clicked))
	if err != nil {
		return fmt.Errorf("apply click failed: %w", err)
	}
	if !clicked {
		return fmt.Errorf("apply control not clickable")
	}
	return nil
}

// VerifyOutcome implements apply.PageInspector.
func (b *Browser) VerifyOutcome(ctx context.Context) (apply.SubmissionStatus, error) {
	var status struct {
		Success            bool `json:"success"`
		ButtonStillVisible bool `json:"buttonStillVisible"`
	}
	err := b.run(ctx, b.opts.ProbeTimeout,
		chromedp.Evaluate(`(() => {
			const successMessage = document.body.textContent.includes("successfully applied");
			const appliedIndicator = document.querySelector("#already-applied, .already-applied");
			const button = document.querySelector("#apply-button, .apply-button");
			return {
				success: successMessage || !!appliedIndicator,
				buttonStillVisible: button ? getComputedStyle(button).display !== "none" : false,
			};
		})()`, &status))
	if err != nil {
		return apply.SubmissionStatus{}, fmt.Errorf("submission verification failed: %w", err)
	}
	return apply.SubmissionStatus{
		Success:            status.Success,
		ButtonStillVisible: status.ButtonStillVisible,
	}, nil
}

// ConfirmationShown implements apply.PageInspector.
func (b *Browser) ConfirmationShown(ctx context.Context) (bool, error) {
	var shown bool
	err := b.run(ctx, b.opts.ProbeTimeout,
		chromedp.Evaluate(`document.body.innerText.includes("You have successfully applied to")`, &shown))
	if err != nil {
		return false, fmt.Errorf("confirmation probe failed: %w", err)
	}
	return shown, nil
}
