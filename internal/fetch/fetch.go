// Package fetch retrieves web pages for website analysis and reduces them to
// their readable text and a structural outline.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds one HTTP fetch or browser render.
const DefaultTimeout = 30 * time.Second

// MaxBodyBytes caps how much of a page is read.
const MaxBodyBytes = 5 << 20

// DefaultUserAgent identifies the analyzer to the sites it reads.
const DefaultUserAgent = "Mozilla/5.0 (compatible; PortfolioAgent/1.0)"

// Response is one fetched HTML document.
type Response struct {
	URL string
	// FinalURL is the address after redirects, e.g. a custom domain
	// forwarding to its hosting platform.
	FinalURL   string
	HTML       string
	StatusCode int
}

// Error describes a page that could not be fetched or parsed.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures HTTP fetching.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Client overrides the HTTP client built from Timeout.
	Client *http.Client
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// NormalizeURL accepts what users type into a website field ("jane.design",
// "www.jane.design/work") and returns an absolute http(s) URL.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &Error{URL: raw, Message: "empty URL"}
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", &Error{URL: raw, Message: "invalid URL", Cause: err}
	}
	return u.String(), nil
}

// Get downloads the HTML document at rawURL. A non-200 status or a non-HTML
// body (a PDF portfolio, an image) is an error; for a bad status the Response
// is returned as well.
func Get(ctx context.Context, rawURL string, opts *Options) (*Response, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &Error{URL: target, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: target, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	out := &Response{URL: target, FinalURL: resp.Request.URL.String(), StatusCode: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		return out, &Error{URL: target, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, &Error{URL: target, Message: "failed to read page", Cause: err}
	}
	if !isHTML(resp.Header.Get("Content-Type"), body) {
		return nil, &Error{URL: target, Message: "not an HTML page"}
	}
	out.HTML = string(body)
	return out, nil
}

func isHTML(contentType string, body []byte) bool {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return media == "text/html" || media == "application/xhtml+xml"
}

// genericContentSelectors locate the main content on sites of unknown platform.
var genericContentSelectors = []string{
	"main",
	"article",
	".content",
	"#content",
	".main-content",
	"#main-content",
	"[role='main']",
}

// chromeSelectors are page furniture that never describes the portfolio owner's work.
const chromeSelectors = "nav, footer, header, script, style, noscript, svg, iframe, form, .sidebar, .popup"

// MainText returns the readable text of a page built on platform: chrome and
// platform noise are dropped, and the first matching content selector wins over
// the whole body. Lines are trimmed and blank lines removed.
func MainText(html string, platform Platform) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(chromeSelectors).Remove()
	doc.Find(strings.Join(PlatformNoiseSelectors(platform), ", ")).Remove()

	content := doc.Find("body")
	for _, selector := range PlatformContentSelectors(platform) {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	var lines []string
	for _, line := range strings.Split(content.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
