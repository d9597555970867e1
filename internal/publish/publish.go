// Package publish creates the portfolio envelope returned after generation.
// Nothing is provisioned: the subdomain is only a name.
package publish

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// StatusActive is the status of every newly published portfolio.
const StatusActive = "active"

// ErrMissingData is returned when user data or extracted content is absent.
var ErrMissingData = errors.New("missing required data")

var (
	whitespace = regexp.MustCompile(`\s+`)
	notSlug    = regexp.MustCompile(`[^a-z0-9-]`)
)

// Saver keeps a published copy under its subdomain. *localstore.Store
// satisfies it.
type Saver interface {
	Publish(subdomain string, rec *types.PortfolioRecord) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(subdomain string, rec *types.PortfolioRecord) error

// Publish implements Saver.
func (f SaverFunc) Publish(subdomain string, rec *types.PortfolioRecord) error {
	return f(subdomain, rec)
}

// Publisher builds portfolio envelopes.
type Publisher struct {
	saver  Saver
	suffix func() int
	newID  func() string
	now    func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithSaver keeps a copy of each published record.
func WithSaver(s Saver) Option {
	return func(p *Publisher) { p.saver = s }
}

// WithSuffix replaces the random subdomain suffix source.
func WithSuffix(fn func() int) Option {
	return func(p *Publisher) { p.suffix = fn }
}

// New creates a Publisher.
func New(opts ...Option) *Publisher {
	p := &Publisher{
		suffix: func() int { return rand.IntN(10000) },
		newID:  newID,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// newID returns a random 32-character lowercase hex id.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Subdomain lowercases name, turns whitespace runs into hyphens, drops anything
// outside [a-z0-9-] and appends "-" plus suffix.
func Subdomain(name string, suffix int) string {
	slug := whitespace.ReplaceAllString(strings.ToLower(name), "-")
	slug = notSlug.ReplaceAllString(slug, "")
	return fmt.Sprintf("%s-%d", slug, suffix)
}

// Publish builds the envelope for a generated portfolio. The subdomain comes
// from userData["name"] when it is a non-empty string, otherwise from the
// extracted name.
func (p *Publisher) Publish(req types.GeneratePortfolioRequest) (*types.PublishedPortfolio, error) {
	if req.UserData == nil || req.ExtractedContent == nil {
		return nil, ErrMissingData
	}

	name, _ := req.UserData["name"].(string)
	if name == "" {
		name = req.ExtractedContent.BasicInfo.Name
	}

	portfolio := &types.PublishedPortfolio{
		ID:        p.newID(),
		Subdomain: Subdomain(name, p.suffix()),
		UserData:  req.UserData,
		Content:   req.ExtractedContent,
		CreatedAt: p.now().UTC(),
		Status:    StatusActive,
		IsPremium: false,
	}

	if p.saver != nil {
		rec := RecordFromContent(req.ExtractedContent)
		if err := p.saver.Publish(portfolio.Subdomain, rec); err != nil {
			return nil, fmt.Errorf("failed to store published portfolio: %w", err)
		}
	}
	return portfolio, nil
}

// RecordFromContent lifts extracted content into a portfolio record.
func RecordFromContent(c *types.ExtractedContent) *types.PortfolioRecord {
	return &types.PortfolioRecord{
		BasicInfo:  c.BasicInfo,
		Projects:   c.Projects,
		Experience: c.Experience,
		Skills:     c.Skills,
	}
}
