// Package analysis produces a design critique of a website. The page is
// fetched and summarized, an LLM scores it, and any failure along the way is
// answered with a plausible locally generated critique instead of an error.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-generator/internal/fetch"
	"github.com/jonathan/portfolio-generator/internal/llm"
	"github.com/jonathan/portfolio-generator/internal/prompts"
	"github.com/jonathan/portfolio-generator/internal/schemas"
	"github.com/jonathan/portfolio-generator/internal/types"
)

// Sampling parameters and input limits for analysis calls.
const (
	Temperature     = 0.7
	MaxTokens       = 1500
	MaxContentChars = 12000
)

// ErrNoURL is returned when no website URL was given.
var ErrNoURL = errors.New("no website URL provided")

// PageFetcher retrieves a page. *fetch.Fetcher satisfies it.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Page, error)
}

// Analyzer critiques websites.
type Analyzer struct {
	client  llm.Client
	fetcher PageFetcher
	logger  *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithFetcher sets the page fetcher. Without one the LLM only sees the URL.
func WithFetcher(f PageFetcher) Option {
	return func(a *Analyzer) { a.fetcher = f }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithRand sets the source used for fallback scores.
func WithRand(r *rand.Rand) Option {
	return func(a *Analyzer) { a.rng = r }
}

// New creates an Analyzer. A nil client makes every analysis a fallback.
func New(client llm.Client, opts ...Option) *Analyzer {
	a := &Analyzer{client: client, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		seed := uint64(time.Now().UnixNano())
		a.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return a
}

// Analyze critiques the site at websiteURL. It fails only for an empty URL.
func (a *Analyzer) Analyze(ctx context.Context, websiteURL string) (*types.WebsiteAnalysis, error) {
	websiteURL = strings.TrimSpace(websiteURL)
	if websiteURL == "" {
		return nil, ErrNoURL
	}

	result, err := a.analyze(ctx, websiteURL)
	if err != nil {
		a.logger.Warn("website analysis failed, using fallback critique",
			zap.String("url", websiteURL), zap.Error(err))
		a.mu.Lock()
		fb := Fallback(a.rng)
		a.mu.Unlock()
		return &fb, nil
	}
	return result, nil
}

func (a *Analyzer) analyze(ctx context.Context, websiteURL string) (*types.WebsiteAnalysis, error) {
	if a.client == nil {
		return nil, fmt.Errorf("LLM client is not configured")
	}

	content := ""
	if a.fetcher != nil {
		page, err := a.fetcher.Fetch(ctx, websiteURL)
		if err != nil {
			a.logger.Warn("could not fetch website, analyzing by URL only",
				zap.String("url", websiteURL), zap.Error(err))
		} else {
			content = PageContent(page)
		}
	}

	prompt, err := prompts.Build(prompts.FileWebsiteAnalysis, prompts.KeyAnalyzeWebsite, map[string]string{
		"WebsiteURL":  websiteURL,
		"PageContent": content,
	})
	if err != nil {
		return nil, err
	}

	text, err := a.client.GenerateContent(ctx, llm.Request{
		System:      prompts.MustGet(prompts.FileWebsiteAnalysis, prompts.KeySystem),
		Prompt:      prompt,
		Tier:        llm.TierAdvanced,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}
	return ParseResponse(text)
}

type rawAnalysis struct {
	DesignScore      float64  `json:"designScore"`
	ColorScheme      string   `json:"colorScheme"`
	LayoutStructure  string   `json:"layoutStructure"`
	Responsiveness   string   `json:"responsiveness"`
	ModernElements   []string `json:"modernElements"`
	ImprovementAreas []string `json:"improvementAreas"`
	GenZAppealScore  float64  `json:"genZAppealScore"`
}

// ParseResponse pulls the JSON object out of an LLM reply and validates it.
func ParseResponse(text string) (*types.WebsiteAnalysis, error) {
	object, err := llm.ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}
	if err := schemas.Validate(schemas.WebsiteAnalysis, []byte(object)); err != nil {
		return nil, err
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(object), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	return &types.WebsiteAnalysis{
		DesignScore:      int(math.Round(raw.DesignScore)),
		ColorScheme:      raw.ColorScheme,
		LayoutStructure:  raw.LayoutStructure,
		Responsiveness:   raw.Responsiveness,
		ModernElements:   orEmpty(raw.ModernElements),
		ImprovementAreas: orEmpty(raw.ImprovementAreas),
		GenZAppealScore:  int(math.Round(raw.GenZAppealScore)),
	}, nil
}

// PageContent renders a fetched page for the prompt: the outline followed by
// at most MaxContentChars characters of main text.
func PageContent(page *fetch.Page) string {
	var sb strings.Builder
	if page.Outline != nil {
		sb.WriteString(page.Outline.String())
		sb.WriteString("\n")
	}
	sb.WriteString(truncate(page.Text, MaxContentChars))
	return sb.String()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
