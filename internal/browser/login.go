package browser

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"github.com/swapnil/naukri-auto-apply/internal/session"
)

const (
	loginURL = "https://www.naukri.com/nlogin/login"

	selLoginUsername = `input[placeholder="Enter Email ID / Username"]`
	selLoginPassword = `input[placeholder="Enter Password"]`
	selLoginSubmit   = `button[type="submit"]`
	// Drawer renders only for authenticated users; its appearance marks a
	// completed login.
	selNavDrawer = `[class*="nI-gNb-drawer"]`
)

// Credentials holds the portal account used for interactive login.
type Credentials struct {
	Username string
	Password string
}

// Login drives the portal's login form and captures the resulting cookie
// jar as a reusable session token.
func (b *Browser) Login(ctx context.Context, creds Credentials) (*session.Token, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, fmt.Errorf("portal credentials are not set")
	}

	if b.opts.Verbose {
		log.Printf("[BROWSER] Logging in as %s", creds.Username)
	}

	err := b.run(ctx, 2*b.opts.NavTimeout,
		chromedp.Navigate(loginURL),
		chromedp.WaitVisible(selLoginUsername, chromedp.ByQuery),
		chromedp.SendKeys(selLoginUsername, creds.Username, chromedp.ByQuery),
		chromedp.SendKeys(selLoginPassword, creds.Password, chromedp.ByQuery),
		chromedp.Click(selLoginSubmit, chromedp.ByQuery),
		chromedp.WaitVisible(selNavDrawer, chromedp.ByQuery),
		// Let post-login redirects finish before reading cookies.
		chromedp.Sleep(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("login flow failed: %w", err)
	}

	var token session.Token
	err = b.run(ctx, b.opts.ProbeTimeout, chromedp.ActionFunc(func(ctx context.Context) error {
		cookies, err := storage.GetCookies().Do(ctx)
		if err != nil {
			return err
		}
		for _, c := range cookies {
			token.Cookies = append(token.Cookies, session.Cookie{
				Name:     c.Name,
				Value:    c.Value,
				Domain:   c.Domain,
				Path:     c.Path,
				Expires:  c.Expires,
				HTTPOnly: c.HTTPOnly,
				Secure:   c.Secure,
				SameSite: string(c.SameSite),
			})
		}
		return nil
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to capture session cookies: %w", err)
	}
	if len(token.Cookies) == 0 {
		return nil, fmt.Errorf("login produced no cookies")
	}

	return &token, nil
}
