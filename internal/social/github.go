package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// DefaultGitHubBaseURL is the GitHub REST API root.
const DefaultGitHubBaseURL = "https://api.github.com"

// DefaultTimeout bounds a single provider request.
const DefaultTimeout = 15 * time.Second

// UserAgent is sent with every provider request.
const UserAgent = "PortfolioAgent/1.0"

// GitHubFetcher reads a user's starred repositories.
type GitHubFetcher struct {
	BaseURL string
	// Token is sent as a bearer token when set.
	Token  string
	Client *http.Client
}

// NewGitHubFetcher creates a fetcher. An empty baseURL selects DefaultGitHubBaseURL.
func NewGitHubFetcher(baseURL, token string) *GitHubFetcher {
	if baseURL == "" {
		baseURL = DefaultGitHubBaseURL
	}
	return &GitHubFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Client:  &http.Client{Timeout: DefaultTimeout},
	}
}

var (
	usernameRe    = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)
	profileURLRe  = regexp.MustCompile(`(?i)github\.com/([A-Za-z0-9-]+)`)
	reservedPaths = map[string]bool{"topics": true, "explore": true, "trending": true, "search": true, "settings": true, "orgs": true}
)

// GitHubUsername normalizes a username or profile URL ("https://github.com/octocat")
// to a bare username. ok is false when no valid username can be found.
func GitHubUsername(input string) (string, bool) {
	s := strings.TrimSpace(input)
	if m := profileURLRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	s = strings.Trim(strings.TrimPrefix(s, "@"), "/")
	if !usernameRe.MatchString(s) || reservedPaths[strings.ToLower(s)] {
		return "", false
	}
	return s, true
}

// ProfileURL returns the public profile URL for a username.
func ProfileURL(username string) string {
	return "https://github.com/" + username
}

// Starred fetches the repositories starred by username.
func (f *GitHubFetcher) Starred(ctx context.Context, username string) ([]types.GitHubRepo, error) {
	user, ok := GitHubUsername(username)
	if !ok {
		return nil, &Error{Provider: ProviderGitHub, Kind: KindInvalidInput, Message: fmt.Sprintf("invalid username %q", username)}
	}

	apiURL := fmt.Sprintf("%s/users/%s/starred", f.BaseURL, url.PathEscape(user))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, &Error{Provider: ProviderGitHub, Kind: KindInvalidInput, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", UserAgent)
	if f.Token != "" {
		req.Header.Set("Authorization", "Bearer "+f.Token)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &Error{Provider: ProviderGitHub, Kind: KindNetwork, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Provider: ProviderGitHub, Kind: KindStatus, Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var repos []types.GitHubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, &Error{Provider: ProviderGitHub, Kind: KindDecode, Cause: err}
	}
	if repos == nil {
		repos = []types.GitHubRepo{}
	}
	return repos, nil
}
