// Package cvextract infers a professional profile from an uploaded CV.
//
// The file content is never parsed. The archetype and display name are derived
// from the filename alone, and one of a fixed set of template records is returned.
package cvextract

import (
	"regexp"
	"strings"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// Archetype is the professional category inferred from a filename.
type Archetype string

// Archetypes in detection order.
const (
	Designer  Archetype = "designer"
	Developer Archetype = "developer"
	Manager   Archetype = "manager"
	Generic   Archetype = "generic"
)

// FallbackName is used whenever no display name can be derived.
const FallbackName = "Professional"

var archetypeKeywords = []struct {
	archetype Archetype
	keywords  []string
}{
	{Designer, []string{"design", "ux", "ui"}},
	{Developer, []string{"dev", "engineer", "code"}},
	{Manager, []string{"manager", "lead", "director"}},
}

// DetectArchetype picks the first archetype whose keywords appear in the lower-cased filename.
func DetectArchetype(filename string) Archetype {
	lower := strings.ToLower(filename)
	for _, entry := range archetypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.archetype
			}
		}
	}
	return Generic
}

var (
	capitalRe = regexp.MustCompile(`([A-Z])`)
	wordRe    = regexp.MustCompile(`\w\S*`)
)

// DeriveName turns a CV filename into a display name. The segment before the first
// underscore (and before its first dot) is split on capitals and title-cased, so
// "JaneDoe_UX_Resume.pdf" becomes "Jane Doe".
func DeriveName(filename string) string {
	segment, _, _ := strings.Cut(filename, "_")
	segment, _, _ = strings.Cut(segment, ".")
	if segment == "" {
		return FallbackName
	}

	spaced := capitalRe.ReplaceAllString(segment, " $1")
	spaced = strings.TrimSpace(strings.ReplaceAll(spaced, "_", " "))

	name := wordRe.ReplaceAllStringFunc(spaced, func(word string) string {
		return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	})
	if strings.TrimSpace(name) == "" {
		return FallbackName
	}
	return name
}

var whitespaceRe = regexp.MustCompile(`\s`)

// placeholderEmail builds the example.com address shown on template profiles.
func placeholderEmail(name string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(name), ".") + "@example.com"
}

// InferProfile returns a complete record for the archetype implied by filename.
// It never fails.
func InferProfile(filename string) types.PortfolioRecord {
	name := DeriveName(filename)
	archetype := DetectArchetype(filename)

	rec := template(archetype)
	rec.BasicInfo.Name = name
	rec.BasicInfo.Email = placeholderEmail(name)
	return rec
}

// GenericProfile is returned when CV handling fails internally.
func GenericProfile() types.PortfolioRecord {
	return types.PortfolioRecord{
		BasicInfo: types.BasicInfo{
			Name:     FallbackName,
			Title:    "Experienced Professional",
			Bio:      "A skilled professional with experience across various domains.",
			Location: "United States",
		},
		Experience: []types.Experience{
			{
				Company:     "Company Name",
				Position:    "Senior Position",
				Duration:    "2020 - Present",
				Description: "Worked on various projects and initiatives.",
				Skills:      []string{"Leadership", "Project Management", "Strategic Planning"},
			},
			{
				Company:     "Previous Company",
				Position:    "Position",
				Duration:    "2017 - 2020",
				Description: "Contributed to team projects and company growth.",
				Skills:      []string{"Teamwork", "Communication", "Problem Solving"},
			},
		},
		Education: []types.Education{
			{Institution: "University", Degree: "Degree in Relevant Field", Duration: "2013 - 2017"},
		},
		Skills: types.Skills{
			Technical: skillList(types.CategoryTechnical, "Microsoft Office", "Data Analysis", "Research"),
			Design:    skillList(types.CategoryDesign, "Presentation Design", "Visual Communication"),
			Soft:      skillList(types.CategorySoft, "Communication", "Leadership", "Organization", "Time Management"),
			Languages: skillList(types.CategoryLanguages, "English"),
		},
		Projects: []types.Project{
			{
				Name:         "Major Project",
				Description:  "A significant project showcasing key skills and expertise",
				Technologies: []string{"Relevant Technologies"},
				Source:       types.SourceCV,
			},
			{
				Name:         "Secondary Project",
				Description:  "Another project demonstrating versatility and capabilities",
				Technologies: []string{"Additional Technologies"},
				Source:       types.SourceCV,
			},
		},
		SocialLinks: types.SocialLinks{},
	}
}

func skillList(cat types.SkillCategory, names ...string) []types.Skill {
	out := make([]types.Skill, 0, len(names))
	for _, n := range names {
		out = append(out, types.Skill{Name: n, Level: types.DefaultSkillLevel, Category: cat})
	}
	return out
}
