// Package pipeline orchestrates portfolio generation: CV inference, concurrent
// provider fetches and aggregation, bounded by an overall deadline.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/portfolio-generator/internal/aggregate"
	"github.com/jonathan/portfolio-generator/internal/cvextract"
	"github.com/jonathan/portfolio-generator/internal/social"
	"github.com/jonathan/portfolio-generator/internal/types"
)

// DefaultTimeout bounds a whole generation run.
const DefaultTimeout = 30 * time.Second

// Source names reported in SourceStatus.
const (
	SourceCV       = "cv"
	SourceGitHub   = social.ProviderGitHub
	SourceLinkedIn = social.ProviderLinkedIn
)

// ErrNoInput is returned when neither a CV nor a GitHub or LinkedIn identifier was given.
var ErrNoInput = errors.New("please provide a CV file or at least a GitHub/LinkedIn username")

var errNotRequested = errors.New("not requested")

// TimeoutWarning accompanies a fallback record built after the deadline expired.
const TimeoutWarning = "Portfolio generation timed out. A basic profile was created from the information you entered."

// GitHubSource fetches starred repositories. *social.GitHubFetcher satisfies it.
type GitHubSource interface {
	Starred(ctx context.Context, username string) ([]types.GitHubRepo, error)
}

// LinkedInSource fetches a LinkedIn profile. *social.LinkedInFetcher satisfies it.
type LinkedInSource interface {
	Profile(ctx context.Context, profileURL string) (*types.LinkedInProfile, error)
}

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Input is one generation request.
type Input struct {
	// CVFilename is the uploaded CV's name; only the name is used.
	CVFilename string
	CVSize     int64
	GitHub     string
	LinkedIn   string
	Behance    string
	Dribbble   string
	Figma      string
	Website    string
	Manual     types.ManualInput
}

// Links returns the social identifiers of the input keyed by provider.
func (in Input) Links() types.SocialLinks {
	links := types.SocialLinks{}
	for k, v := range map[string]string{
		types.SocialGitHub:   in.GitHub,
		types.SocialLinkedIn: in.LinkedIn,
		types.SocialBehance:  in.Behance,
		types.SocialDribbble: in.Dribbble,
		types.SocialFigma:    in.Figma,
		types.SocialWebsite:  in.Website,
	} {
		if v = strings.TrimSpace(v); v != "" {
			links[k] = v
		}
	}
	return links
}

// Options configures a Runner.
type Options struct {
	GitHub   GitHubSource
	LinkedIn LinkedInSource
	// Timeout bounds the run. Zero selects DefaultTimeout.
	Timeout        time.Duration
	EvidenceLevels bool
	Logger         *zap.Logger
	OnProgress     ProgressCallback
}

// Output is the result of a run.
type Output struct {
	Record  types.PortfolioRecord
	Sources []types.SourceStatus
	// Fallback is set when the record was built from the form alone.
	Fallback bool
	Warning  string
}

// Runner executes generation runs.
type Runner struct {
	opts Options
}

// NewRunner creates a Runner.
func NewRunner(opts Options) *Runner {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Runner{opts: opts}
}

func (r *Runner) emit(step, category, message string) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{Step: step, Category: category, Message: message})
	}
}

// Run generates a portfolio record. Provider failures degrade to missing data
// and are reported in Output.Sources. When the deadline expires the record is
// rebuilt from the manual form and links with Fallback set.
func (r *Runner) Run(ctx context.Context, in Input) (*Output, error) {
	in.GitHub = strings.TrimSpace(in.GitHub)
	in.LinkedIn = strings.TrimSpace(in.LinkedIn)
	if in.CVFilename == "" && in.GitHub == "" && in.LinkedIn == "" {
		return nil, ErrNoInput
	}

	var cv *types.PortfolioRecord
	cvStatus := types.SourceStatus{Source: SourceCV, Skipped: true}
	if in.CVFilename != "" {
		if err := cvextract.ValidatePipelineUpload(in.CVFilename, in.CVSize); err != nil {
			return nil, err
		}
		profile := cvextract.InferProfile(in.CVFilename)
		cv = &profile
		cvStatus = types.SourceStatus{Source: SourceCV, OK: true}
		r.emit("parse_cv", "sources", "Inferred profile from "+in.CVFilename)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	var (
		github   = social.Failed[[]types.GitHubRepo](errNotRequested)
		linkedin = social.Failed[*types.LinkedInProfile](errNotRequested)
	)
	g, gctx := errgroup.WithContext(runCtx)
	if in.GitHub != "" {
		g.Go(func() error {
			github = r.fetchGitHub(gctx, in.GitHub)
			return nil
		})
	}
	if in.LinkedIn != "" {
		g.Go(func() error {
			linkedin = r.fetchLinkedIn(gctx, in.LinkedIn)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if runCtx.Err() != nil {
		r.opts.Logger.Warn("portfolio generation deadline exceeded, using fallback profile",
			zap.Duration("timeout", r.opts.Timeout))
		r.emit("fallback", "merge", "Timed out, building profile from form input")
		return &Output{
			Record:   aggregate.FallbackFromLinks(in.Manual, in.Links()),
			Sources:  []types.SourceStatus{cvStatus, statusOf(SourceGitHub, in.GitHub, github.Err), statusOf(SourceLinkedIn, in.LinkedIn, linkedin.Err)},
			Fallback: true,
			Warning:  TimeoutWarning,
		}, nil
	}

	rec := aggregate.Aggregate(aggregate.Sources{
		CV:       cv,
		GitHub:   github,
		LinkedIn: linkedin,
		Manual:   in.Manual,
		Links:    in.Links(),
	}, aggregate.Options{EvidenceLevels: r.opts.EvidenceLevels})
	r.emit("aggregate", "merge", "Merged all sources")

	return &Output{
		Record: rec,
		Sources: []types.SourceStatus{
			cvStatus,
			statusOf(SourceGitHub, in.GitHub, github.Err),
			statusOf(SourceLinkedIn, in.LinkedIn, linkedin.Err),
		},
	}, nil
}

func (r *Runner) fetchGitHub(ctx context.Context, username string) social.Result[[]types.GitHubRepo] {
	if r.opts.GitHub == nil {
		return social.Failed[[]types.GitHubRepo](&social.Error{Provider: social.ProviderGitHub, Kind: social.KindNotConfigured})
	}
	res := social.Collect(r.opts.GitHub.Starred(ctx, username))
	r.logResult(social.ProviderGitHub, res.Err)
	if res.OK() {
		r.emit("fetch_github", "sources", "Fetched GitHub repositories")
	}
	return res
}

func (r *Runner) fetchLinkedIn(ctx context.Context, profileURL string) social.Result[*types.LinkedInProfile] {
	if r.opts.LinkedIn == nil {
		return social.Failed[*types.LinkedInProfile](&social.Error{Provider: social.ProviderLinkedIn, Kind: social.KindNotConfigured})
	}
	res := social.Collect(r.opts.LinkedIn.Profile(ctx, profileURL))
	r.logResult(social.ProviderLinkedIn, res.Err)
	if res.OK() {
		r.emit("fetch_linkedin", "sources", "Fetched LinkedIn profile")
	}
	return res
}

func (r *Runner) logResult(provider string, err error) {
	if err == nil {
		return
	}
	r.opts.Logger.Warn("provider fetch failed, continuing without it",
		zap.String("provider", provider),
		zap.String("kind", string(social.KindOf(err))),
		zap.Error(err))
}

func statusOf(source, input string, err error) types.SourceStatus {
	switch {
	case input == "":
		return types.SourceStatus{Source: source, Skipped: true}
	case err != nil:
		return types.SourceStatus{Source: source, Kind: string(social.KindOf(err)), Message: err.Error()}
	default:
		return types.SourceStatus{Source: source, OK: true}
	}
}
