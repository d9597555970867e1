package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// DefaultLinkedInHost is the RapidAPI host of the LinkedIn profile proxy.
const DefaultLinkedInHost = "fresh-linkedin-profile-data.p.rapidapi.com"

// LinkedInFetcher reads a LinkedIn profile through the RapidAPI proxy.
type LinkedInFetcher struct {
	BaseURL string
	Host    string
	APIKey  string
	Client  *http.Client
}

// NewLinkedInFetcher creates a fetcher. An empty baseURL selects the public RapidAPI host.
// The API key has no default and must come from configuration.
func NewLinkedInFetcher(baseURL, apiKey string) *LinkedInFetcher {
	if baseURL == "" {
		baseURL = "https://" + DefaultLinkedInHost
	}
	return &LinkedInFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Host:    DefaultLinkedInHost,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: DefaultTimeout},
	}
}

// linkedInResponse mirrors the subset of the proxy payload that is mapped.
type linkedInResponse struct {
	Data *struct {
		FullName         string `json:"full_name"`
		Headline         string `json:"headline"`
		About            string `json:"about"`
		ProfileImageURL  string `json:"profile_image_url"`
		Location         string `json:"location"`
		ConnectionsCount int    `json:"connections_count"`
		Skills           string `json:"skills"`
		Experiences      []struct {
			Title       string `json:"title"`
			Company     string `json:"company"`
			DateRange   string `json:"date_range"`
			Description string `json:"description"`
			Location    string `json:"location"`
		} `json:"experiences"`
		Educations []struct {
			School       string `json:"school"`
			Degree       string `json:"degree"`
			DateRange    string `json:"date_range"`
			FieldOfStudy string `json:"field_of_study"`
		} `json:"educations"`
		Certifications []struct {
			Name      string `json:"name"`
			Authority string `json:"authority"`
			Issued    string `json:"issued"`
		} `json:"certifications"`
		Honors []struct {
			Title       string `json:"title"`
			Issuer      string `json:"issuer"`
			Date        string `json:"date"`
			Description string `json:"description"`
		} `json:"honors_and_awards"`
		Publications []struct {
			Title       string `json:"title"`
			Publisher   string `json:"publisher"`
			Date        string `json:"date"`
			Description string `json:"description"`
			Link        string `json:"link"`
		} `json:"publications"`
		Volunteers []struct {
			Title       string `json:"title"`
			Company     string `json:"company"`
			DateRange   string `json:"date_range"`
			Description string `json:"description"`
		} `json:"volunteers"`
		Projects []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
		} `json:"projects"`
	} `json:"data"`
}

// Profile fetches and maps the LinkedIn profile at profileURL.
func (f *LinkedInFetcher) Profile(ctx context.Context, profileURL string) (*types.LinkedInProfile, error) {
	if f.APIKey == "" {
		return nil, &Error{Provider: ProviderLinkedIn, Kind: KindNotConfigured, Message: "RAPIDAPI_KEY is not set"}
	}
	profileURL = strings.TrimSpace(profileURL)
	if profileURL == "" {
		return nil, &Error{Provider: ProviderLinkedIn, Kind: KindInvalidInput, Message: "empty profile URL"}
	}

	params := url.Values{"linkedin_url": {profileURL}}
	for _, section := range []string{"skills", "certifications", "publications", "honors", "volunteers", "projects"} {
		params.Set("include_"+section, "true")
	}
	apiURL := f.BaseURL + "/get-linkedin-profile?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, &Error{Provider: ProviderLinkedIn, Kind: KindInvalidInput, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("x-rapidapi-key", f.APIKey)
	req.Header.Set("x-rapidapi-host", f.Host)
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &Error{Provider: ProviderLinkedIn, Kind: KindNetwork, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Provider: ProviderLinkedIn, Kind: KindStatus, Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var payload linkedInResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &Error{Provider: ProviderLinkedIn, Kind: KindDecode, Cause: err}
	}
	if payload.Data == nil {
		return nil, &Error{Provider: ProviderLinkedIn, Kind: KindDecode, Message: "response has no data object"}
	}
	return mapLinkedIn(&payload), nil
}

func mapLinkedIn(payload *linkedInResponse) *types.LinkedInProfile {
	d := payload.Data
	p := &types.LinkedInProfile{
		Name:            d.FullName,
		Headline:        d.Headline,
		Bio:             d.About,
		ProfilePicture:  d.ProfileImageURL,
		Location:        d.Location,
		ConnectionCount: d.ConnectionsCount,
		Experience:      make([]types.LinkedInExperience, 0, len(d.Experiences)),
		Education:       make([]types.LinkedInEducation, 0, len(d.Educations)),
		Skills:          splitSkills(d.Skills),
		Certifications:  make([]types.LinkedInCertificate, 0, len(d.Certifications)),
		Honors:          make([]types.LinkedInHonor, 0, len(d.Honors)),
		Publications:    make([]types.LinkedInPublication, 0, len(d.Publications)),
		Volunteers:      make([]types.LinkedInVolunteer, 0, len(d.Volunteers)),
		Projects:        make([]types.LinkedInProject, 0, len(d.Projects)),
	}
	for _, e := range d.Experiences {
		p.Experience = append(p.Experience, types.LinkedInExperience{
			Title: e.Title, Company: e.Company, Duration: e.DateRange, Description: e.Description, Location: e.Location,
		})
	}
	for _, e := range d.Educations {
		p.Education = append(p.Education, types.LinkedInEducation{
			School: e.School, Degree: e.Degree, Duration: e.DateRange, FieldOfStudy: e.FieldOfStudy,
		})
	}
	for _, c := range d.Certifications {
		p.Certifications = append(p.Certifications, types.LinkedInCertificate{Name: c.Name, Authority: c.Authority, Issued: c.Issued})
	}
	for _, h := range d.Honors {
		p.Honors = append(p.Honors, types.LinkedInHonor{Title: h.Title, Issuer: h.Issuer, Date: h.Date, Description: h.Description})
	}
	for _, pub := range d.Publications {
		p.Publications = append(p.Publications, types.LinkedInPublication{
			Title: pub.Title, Publisher: pub.Publisher, Date: pub.Date, Description: pub.Description, Link: pub.Link,
		})
	}
	for _, v := range d.Volunteers {
		p.Volunteers = append(p.Volunteers, types.LinkedInVolunteer{
			Title: v.Title, Company: v.Company, Duration: v.DateRange, Description: v.Description,
		})
	}
	for _, pr := range d.Projects {
		p.Projects = append(p.Projects, types.LinkedInProject{Title: pr.Title, Description: pr.Description, URL: pr.URL})
	}
	return p
}

// splitSkills splits the proxy's pipe-delimited skill string.
func splitSkills(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
