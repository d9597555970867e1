package aggregate

import (
	"strings"

	"github.com/jonathan/portfolio-generator/internal/social"
	"github.com/jonathan/portfolio-generator/internal/types"
)

// Fallback defaults used when generation fails and the profile is rebuilt from the form alone.
const (
	FallbackName = "Portfolio Owner"
	FallbackBio  = "Professional with expertise in various areas."
)

// FallbackFromLinks builds a placeholder profile from the manual form and the social
// links the user entered. It is used when generation times out or fails, so the
// wizard can continue with a warning instead of an error.
func FallbackFromLinks(manual types.ManualInput, links types.SocialLinks) types.PortfolioRecord {
	rec := types.PortfolioRecord{
		BasicInfo: types.BasicInfo{
			Name:     firstNonEmpty(manual.Name, FallbackName),
			Title:    firstNonEmpty(manual.Title, DefaultTitle),
			Bio:      firstNonEmpty(manual.Bio, FallbackBio),
			Location: manual.Location,
			Email:    manual.Email,
			Phone:    manual.Phone,
		},
		SocialLinks: types.SocialLinks{},
	}
	link := func(provider string) string { return strings.TrimSpace(links[provider]) }

	if gh := link(types.SocialGitHub); gh != "" {
		profile := gh
		if user, ok := social.GitHubUsername(gh); ok {
			profile = social.ProfileURL(user)
		}
		rec.Projects = append(rec.Projects, types.Project{
			Name:         "GitHub Project",
			Description:  "A project hosted on GitHub showcasing coding skills.",
			Technologies: []string{"JavaScript", "HTML", "CSS"},
			ProjectURL:   profile,
			Source:       types.SourceGitHub,
		})
		rec.Skills.Technical = append(rec.Skills.Technical, named(types.CategoryTechnical, "JavaScript", "Git", "HTML", "CSS")...)
		rec.SocialLinks[types.SocialGitHub] = profile
	}

	if li := link(types.SocialLinkedIn); li != "" {
		rec.Experience = append(rec.Experience, types.Experience{
			Company:     "Recent Company",
			Position:    "Professional",
			Duration:    "2020 - Present",
			Description: "Working on various professional projects and initiatives.",
			Skills:      []string{"Communication", "Teamwork", "Problem Solving"},
		})
		rec.Skills.Soft = append(rec.Skills.Soft, named(types.CategorySoft, "Communication", "Teamwork", "Leadership")...)
		rec.SocialLinks[types.SocialLinkedIn] = li
	}

	behance, dribbble := link(types.SocialBehance), link(types.SocialDribbble)
	if behance != "" || dribbble != "" {
		project := types.Project{
			Name:         "Design Portfolio",
			Description:  "A collection of design work showcasing creativity and visual skills.",
			Technologies: []string{"UI Design", "Graphic Design", "Illustration"},
			ProjectURL:   behance,
			Source:       types.SourceBehance,
		}
		if behance == "" {
			project.ProjectURL, project.Source = dribbble, types.SourceDribbble
		}
		rec.Projects = append(rec.Projects, project)
		rec.Skills.Design = append(rec.Skills.Design, named(types.CategoryDesign, "UI Design", "Graphic Design", "Visual Communication")...)
		if behance != "" {
			rec.SocialLinks[types.SocialBehance] = behance
		}
		if dribbble != "" {
			rec.SocialLinks[types.SocialDribbble] = dribbble
		}
	}

	if figma := link(types.SocialFigma); figma != "" {
		rec.Projects = append(rec.Projects, types.Project{
			Name:         "UI Design System",
			Description:  "A comprehensive design system for web and mobile applications.",
			Technologies: []string{"Figma", "UI Design", "Design Systems"},
			ProjectURL:   figma,
			Source:       types.SourceFigma,
		})
		rec.Skills.Design = append(rec.Skills.Design, named(types.CategoryDesign, "Figma", "UI Design", "Design Systems")...)
		rec.SocialLinks[types.SocialFigma] = figma
	}

	if site := link(types.SocialWebsite); site != "" {
		rec.Projects = append(rec.Projects, types.Project{
			Name:         "Personal Website",
			Description:  "A personal website showcasing portfolio and professional information.",
			Technologies: []string{"Web Development", "HTML", "CSS", "JavaScript"},
			ProjectURL:   site,
			Source:       types.SourceWebsite,
		})
		rec.SocialLinks[types.SocialWebsite] = site
	}

	rec.Experience = append(rec.Experience, manual.Experience...)
	rec.Education = append(rec.Education, manual.Education...)
	rec.Projects = append(rec.Projects, manual.Projects...)
	m := &merger{rec: &rec}
	for _, s := range manual.Skills {
		m.addSkill(s)
	}

	Normalize(&rec)
	return rec
}

func named(cat types.SkillCategory, names ...string) []types.Skill {
	out := make([]types.Skill, 0, len(names))
	for _, n := range names {
		out = append(out, types.Skill{Name: n, Category: cat})
	}
	return out
}
