package render

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/portfolio-generator/internal/aggregate"
	"github.com/jonathan/portfolio-generator/internal/types"
)

// Page is the data passed to the portfolio template.
type Page struct {
	NotFound   bool
	Hero       Hero
	About      string
	Projects   []ProjectCard
	Skills     []SkillGroup
	Experience []types.Experience
	Education  []types.Education
	Contact    Contact
	Year       int
}

// Hero is the top section of the page.
type Hero struct {
	Name            string
	Title           string
	Location        string
	ProfileImageURL string
	Initials        string
}

// ProjectCard is one entry of the projects section.
type ProjectCard struct {
	Name         string
	Description  string
	Technologies []string
	URL          string
	Badge        string
	Stars        *int
	Forks        *int
	Updated      string
}

// SkillGroup holds the skills of one category.
type SkillGroup struct {
	Title  string
	Skills []SkillView
}

// SkillView is a skill with its display label.
type SkillView struct {
	Name    string
	Level   int
	Label   string
	Percent int
}

// Contact is the closing section of the page.
type Contact struct {
	Email string
	Phone string
	Links []Link
}

// Link is a labeled social profile link.
type Link struct {
	Label string
	URL   string
}

var groupTitles = map[types.SkillCategory]string{
	types.CategoryTechnical: "Technical Skills",
	types.CategoryDesign:    "Design Skills",
	types.CategorySoft:      "Soft Skills",
	types.CategoryLanguages: "Languages",
}

var linkLabels = []struct{ key, label string }{
	{types.SocialLinkedIn, "LinkedIn"},
	{types.SocialGitHub, "GitHub"},
	{types.SocialBehance, "Behance"},
	{types.SocialDribbble, "Dribbble"},
	{types.SocialFigma, "Figma"},
	{types.SocialWebsite, "Website"},
}

var now = time.Now

// Prepare builds the page for rec. The record is normalized on a copy; rec is
// not modified. A nil record or one without a name yields a NotFound page.
func Prepare(rec *types.PortfolioRecord) (*Page, error) {
	page := &Page{Year: now().Year()}
	if !rec.Valid() {
		page.NotFound = true
		return page, nil
	}

	r, err := clone(rec)
	if err != nil {
		return nil, &RenderError{Message: "failed to copy record", Cause: err}
	}
	aggregate.Normalize(r)

	page.Hero = Hero{
		Name:            r.BasicInfo.Name,
		Title:           r.BasicInfo.Title,
		Location:        r.BasicInfo.Location,
		ProfileImageURL: r.BasicInfo.ProfileImageURL,
		Initials:        initials(r.BasicInfo.Name),
	}
	page.About = r.BasicInfo.Bio
	page.Experience = r.Experience
	page.Education = r.Education

	for _, p := range r.Projects {
		page.Projects = append(page.Projects, projectCard(p))
	}

	for _, cat := range types.SkillCategories {
		bucket := *r.Skills.Bucket(cat)
		if len(bucket) == 0 {
			continue
		}
		group := SkillGroup{Title: groupTitles[cat]}
		for _, s := range bucket {
			group.Skills = append(group.Skills, SkillView{
				Name:    s.Name,
				Level:   s.Level,
				Label:   LevelLabel(s.Level, cat),
				Percent: s.Level * 20,
			})
		}
		page.Skills = append(page.Skills, group)
	}

	page.Contact = Contact{Email: r.BasicInfo.Email, Phone: r.BasicInfo.Phone}
	for _, l := range linkLabels {
		if url := r.SocialLinks[l.key]; url != "" {
			page.Contact.Links = append(page.Contact.Links, Link{Label: l.label, URL: url})
		}
	}
	return page, nil
}

// LevelLabel maps a 1-5 skill level to its display label. Languages use
// Native and Fluent for the top two levels.
func LevelLabel(level int, cat types.SkillCategory) string {
	switch {
	case level >= 5:
		if cat == types.CategoryLanguages {
			return "Native"
		}
		return "Expert"
	case level == 4:
		if cat == types.CategoryLanguages {
			return "Fluent"
		}
		return "Advanced"
	case level == 3:
		return "Intermediate"
	case level == 2:
		return "Basic"
	default:
		return "Beginner"
	}
}

// TruncateDate cuts an RFC 3339 timestamp down to its YYYY-MM-DD date.
// Anything else is returned unchanged.
func TruncateDate(s string) string {
	date, _, found := strings.Cut(s, "T")
	if !found {
		return s
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return s
	}
	return date
}

func projectCard(p types.Project) ProjectCard {
	card := ProjectCard{
		Name:         p.Name,
		Description:  p.Description,
		Technologies: nonEmpty(p.Technologies),
		URL:          p.ProjectURL,
		Stars:        p.StarCount,
		Forks:        p.ForkCount,
		Updated:      TruncateDate(p.LastUpdated),
	}
	if card.Description == "" {
		card.Description = "No description available"
	}
	switch p.Type {
	case types.ProjectTypeDesign:
		card.Badge = "Design"
	case types.ProjectTypeCode:
		card.Badge = "Code"
	default:
		card.Badge = "Project"
	}
	return card
}

func initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func clone(rec *types.PortfolioRecord) (*types.PortfolioRecord, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var out types.PortfolioRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
