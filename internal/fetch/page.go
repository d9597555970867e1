package fetch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultCacheTTL is how long a fetched page is reused.
const DefaultCacheTTL = 10 * time.Minute

// Page is a fetched page reduced for analysis.
type Page struct {
	URL      string
	Text     string
	Outline  *Outline
	Platform Platform
	Rendered bool
}

// FetcherConfig holds configuration for a Fetcher.
type FetcherConfig struct {
	Options *Options
	// UseBrowser enables the chromedp fallback for client-side rendered pages.
	UseBrowser     bool
	BrowserTimeout time.Duration
	CacheTTL       time.Duration
	Logger         *zap.Logger
}

// Fetcher retrieves pages over HTTP, falls back to a headless browser when the
// HTTP response carries too little text, and caches results per URL.
type Fetcher struct {
	options        *Options
	useBrowser     bool
	browserTimeout time.Duration
	cacheTTL       time.Duration
	logger         *zap.Logger
	render         func(ctx context.Context, url string, timeout time.Duration, logger *zap.Logger) (string, error)
	now            func() time.Time

	mu    sync.Mutex
	cache map[string]cachedPage
}

type cachedPage struct {
	page      *Page
	fetchedAt time.Time
}

// NewFetcher creates a Fetcher.
func NewFetcher(config FetcherConfig) *Fetcher {
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.BrowserTimeout == 0 {
		config.BrowserTimeout = DefaultTimeout
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Fetcher{
		options:        config.Options,
		useBrowser:     config.UseBrowser,
		browserTimeout: config.BrowserTimeout,
		cacheTTL:       config.CacheTTL,
		logger:         config.Logger,
		render:         WithBrowser,
		now:            time.Now,
		cache:          make(map[string]cachedPage),
	}
}

// Fetch returns the page at urlStr, from cache when fresh.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (*Page, error) {
	if page := f.cached(urlStr); page != nil {
		return page, nil
	}

	platform := DetectPlatform(urlStr)
	html := ""
	resp, err := Get(ctx, urlStr, f.options)
	if err == nil {
		html = resp.HTML
	} else if !f.useBrowser {
		return nil, err
	} else {
		f.logger.Debug("http fetch failed, trying browser", zap.String("url", urlStr), zap.Error(err))
	}

	text, _ := MainText(html, platform)
	rendered := false
	if f.useBrowser && (ShouldUseBrowser(text) || RendersClientSide(platform)) {
		browserHTML, berr := f.render(ctx, urlStr, f.browserTimeout, f.logger)
		switch {
		case berr == nil:
			html, rendered = browserHTML, true
			text, _ = MainText(html, platform)
		case html == "":
			return nil, berr
		default:
			f.logger.Warn("browser rendering failed, using HTTP content", zap.String("url", urlStr), zap.Error(berr))
		}
	}

	outline, err := ExtractOutline(html)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to parse page", Cause: err}
	}

	page := &Page{URL: urlStr, Text: text, Outline: outline, Platform: platform, Rendered: rendered}
	f.store(urlStr, page)
	return page, nil
}

func (f *Fetcher) cached(urlStr string) *Page {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cache[urlStr]
	if !ok {
		return nil
	}
	if f.now().Sub(c.fetchedAt) >= f.cacheTTL {
		delete(f.cache, urlStr)
		return nil
	}
	return c.page
}

func (f *Fetcher) store(urlStr string, page *Page) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache[urlStr] = cachedPage{page: page, fetchedAt: f.now()}
}

// InvalidateCache forgets a cached page, forcing a re-fetch on next request.
func (f *Fetcher) InvalidateCache(urlStr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.cache, urlStr)
}
