// Package aggregate merges heterogeneous partial profile sources into one
// canonical PortfolioRecord.
//
// Scalar identity fields take the first non-empty value in the order
// LinkedIn, CV, manual form, built-in default. Collections are concatenated in
// source order (LinkedIn, CV, GitHub, manual). Experience and education entries
// are skipped when an entry with the same (company, position) or
// (institution, degree) was already added; nothing else is deduplicated.
// A failed source contributes nothing.
package aggregate

import (
	"strings"

	"github.com/jonathan/portfolio-generator/internal/social"
	"github.com/jonathan/portfolio-generator/internal/types"
)

// Defaults applied when no source supplies a scalar.
const (
	DefaultName  = "Unknown User"
	DefaultTitle = "Professional"
	DefaultBio   = "A skilled professional with experience in various domains."
)

// Sources is the full input to Aggregate. A nil CV, a failed Result or an empty
// Manual all mean the source contributes nothing.
type Sources struct {
	CV       *types.PortfolioRecord
	GitHub   social.Result[[]types.GitHubRepo]
	LinkedIn social.Result[*types.LinkedInProfile]
	Manual   types.ManualInput
	// Links holds the raw social identifiers from the form, keyed by provider.
	Links types.SocialLinks
}

// Options tunes post-merge processing.
type Options struct {
	// EvidenceLevels assigns levels to skills without one from how often they
	// appear in projects and experience, instead of the flat default.
	EvidenceLevels bool
}

// Aggregate merges all sources and returns a normalized record. It never fails.
func Aggregate(src Sources, opts Options) types.PortfolioRecord {
	linkedin, _ := src.LinkedIn.Get()
	repos, _ := src.GitHub.Get()
	cv := src.CV
	if cv == nil {
		cv = &types.PortfolioRecord{}
	}
	if linkedin == nil {
		linkedin = &types.LinkedInProfile{}
	}

	rec := types.PortfolioRecord{
		BasicInfo: types.BasicInfo{
			Name:            firstNonEmpty(linkedin.Name, cv.BasicInfo.Name, src.Manual.Name, DefaultName),
			Title:           firstNonEmpty(linkedin.Headline, cv.BasicInfo.Title, src.Manual.Title, DefaultTitle),
			Bio:             firstNonEmpty(linkedin.Bio, cv.BasicInfo.Bio, src.Manual.Bio, DefaultBio),
			ProfileImageURL: firstNonEmpty(linkedin.ProfilePicture, cv.BasicInfo.ProfileImageURL),
			Location:        firstNonEmpty(linkedin.Location, cv.BasicInfo.Location, src.Manual.Location),
			Email:           firstNonEmpty(cv.BasicInfo.Email, src.Manual.Email),
			Phone:           firstNonEmpty(cv.BasicInfo.Phone, src.Manual.Phone),
		},
		SocialLinks: socialLinks(src.Links),
	}

	m := &merger{rec: &rec}

	for _, e := range linkedin.Experience {
		m.addExperience(types.Experience{
			Company:     e.Company,
			Position:    e.Title,
			Duration:    e.Duration,
			Description: e.Description,
			Location:    e.Location,
		})
	}
	for _, e := range cv.Experience {
		m.addExperience(e)
	}
	for _, e := range src.Manual.Experience {
		m.addExperience(e)
	}

	for _, e := range linkedin.Education {
		m.addEducation(types.Education{
			Institution:  e.School,
			Degree:       e.Degree,
			Duration:     e.Duration,
			FieldOfStudy: e.FieldOfStudy,
		})
	}
	for _, e := range cv.Education {
		m.addEducation(e)
	}
	for _, e := range src.Manual.Education {
		m.addEducation(e)
	}

	for _, s := range linkedin.Skills {
		m.addSkill(types.Skill{Name: s})
	}
	for _, cat := range types.SkillCategories {
		for _, s := range *cv.Skills.Bucket(cat) {
			if s.Category == "" {
				s.Category = cat
			}
			m.addSkill(s)
		}
	}
	for _, r := range repos {
		if r.Language != "" {
			m.addSkill(types.Skill{Name: r.Language})
		}
	}
	for _, s := range src.Manual.Skills {
		m.addSkill(s)
	}

	for _, p := range linkedin.Projects {
		m.addProject(types.Project{
			Name:        p.Title,
			Description: p.Description,
			ProjectURL:  p.URL,
			Source:      types.SourceLinkedIn,
		})
	}
	for _, p := range cv.Projects {
		if p.Source == "" {
			p.Source = types.SourceCV
		}
		m.addProject(p)
	}
	for _, r := range repos {
		m.addProject(projectFromRepo(r))
	}
	for _, p := range src.Manual.Projects {
		if p.Source == "" {
			p.Source = types.SourceManual
		}
		m.addProject(p)
	}

	if opts.EvidenceLevels {
		AssignEvidenceLevels(&rec)
	}
	Normalize(&rec)
	return rec
}

// merger appends entries to a record under the experience/education dedup rule.
type merger struct {
	rec *types.PortfolioRecord
}

func (m *merger) addExperience(e types.Experience) {
	for _, existing := range m.rec.Experience {
		if sameKey(existing.Company, e.Company) && sameKey(existing.Position, e.Position) {
			return
		}
	}
	m.rec.Experience = append(m.rec.Experience, e)
}

func (m *merger) addEducation(e types.Education) {
	for _, existing := range m.rec.Education {
		if sameKey(existing.Institution, e.Institution) && sameKey(existing.Degree, e.Degree) {
			return
		}
	}
	m.rec.Education = append(m.rec.Education, e)
}

// addSkill files a skill under its own category, or under the classifier's
// choice when it has none.
func (m *merger) addSkill(s types.Skill) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return
	}
	if s.Category == "" {
		s.Category = Classify(s.Name)
	}
	bucket := m.rec.Skills.Bucket(s.Category)
	*bucket = append(*bucket, s)
}

func (m *merger) addProject(p types.Project) {
	m.rec.Projects = append(m.rec.Projects, p)
}

func projectFromRepo(r types.GitHubRepo) types.Project {
	stars, forks := r.Stars, r.Forks
	techs := []string{}
	if r.Language != "" {
		techs = append(techs, r.Language)
	}
	return types.Project{
		Name:         r.Name,
		Description:  r.Description,
		Technologies: techs,
		ProjectURL:   r.HTMLURL,
		Source:       types.SourceGitHub,
		StarCount:    &stars,
		ForkCount:    &forks,
		LastUpdated:  r.UpdatedAt,
	}
}

// socialLinks copies the non-empty form identifiers, expanding a GitHub
// username to its profile URL.
func socialLinks(links types.SocialLinks) types.SocialLinks {
	out := types.SocialLinks{}
	for provider, v := range links {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if provider == types.SocialGitHub {
			if user, ok := social.GitHubUsername(v); ok {
				v = social.ProfileURL(user)
			}
		}
		out[provider] = v
	}
	return out
}

func sameKey(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
