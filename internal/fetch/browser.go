package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// MinContentLength is the shortest page text accepted without browser rendering.
const MinContentLength = 500

// revealDelay lets portfolio builders finish their entrance animations.
const revealDelay = 3 * time.Second

// consentButtons match cookie banners that cover the page until dismissed.
const consentButtons = `button[id*="accept"], button[class*="accept"], button[aria-label*="Accept"]`

// ShouldUseBrowser reports whether text is too thin to be the real page,
// as with single-page apps that build their content in JavaScript.
func ShouldUseBrowser(text string) bool {
	return len(strings.TrimSpace(text)) < MinContentLength
}

// WithBrowser loads url in headless Chrome at a desktop viewport, dismisses a
// cookie banner if one is shown and returns the rendered document. Chrome or
// Chromium must be installed.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(DefaultUserAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(1440, 900),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(revealDelay),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// No banner is fine.
			_ = chromedp.Click(consentButtons, chromedp.NodeVisible, chromedp.AtLeast(0)).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	logger.Debug("rendered page in browser",
		zap.String("url", url),
		zap.Int("bytes", len(html)),
		zap.Duration("took", time.Since(start)))
	return html, nil
}
