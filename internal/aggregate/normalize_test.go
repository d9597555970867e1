package aggregate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-generator/internal/types"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in         string
		start, end string
		ok         bool
	}{
		{"2020 - Present", "2020", "Present", true},
		{"2015 – 2019", "2015", "2019", true},
		{"2018—current", "2018", "Present", true},
		{"Since 2017-2019", "2017", "2019", true},
		{"Apr 2024 - PRESENT", "2024", "Present", true},
		{"3 years", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			start, end, ok := ParseDuration(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestNormalize_ExperienceOrdering(t *testing.T) {
	rec := types.PortfolioRecord{Experience: []types.Experience{
		{Company: "old", Duration: "2010 - 2012"},
		{Company: "unknown-a", Duration: "a while"},
		{Company: "current", Duration: "2021 - Present"},
		{Company: "mid", Duration: "2013 - 2018"},
		{Company: "unknown-b"},
		{Company: "current-older", Duration: "2015 - Present"},
	}}
	Normalize(&rec)

	var order []string
	for _, e := range rec.Experience {
		order = append(order, e.Company)
	}
	assert.Equal(t, []string{"current", "current-older", "mid", "old", "unknown-a", "unknown-b"}, order)
	assert.Equal(t, "2021", rec.Experience[0].StartDate)
	assert.Equal(t, PresentEndDate, rec.Experience[0].EndDate)
	assert.Empty(t, rec.Experience[4].StartDate)
}

func TestNormalize_DatesFollowDuration(t *testing.T) {
	rec := types.PortfolioRecord{Experience: []types.Experience{
		{Company: "edited", Duration: "2022 - Present", StartDate: "2010", EndDate: "2012"},
		{Company: "vague", Duration: "a few years", StartDate: "2019", EndDate: "2020"},
		{Company: "older", Duration: "2016 - 2019"},
	}}
	Normalize(&rec)

	require.Len(t, rec.Experience, 3)
	assert.Equal(t, "edited", rec.Experience[0].Company)
	assert.Equal(t, "2022", rec.Experience[0].StartDate)
	assert.Equal(t, PresentEndDate, rec.Experience[0].EndDate)
	assert.Equal(t, "older", rec.Experience[1].Company)
	assert.Equal(t, "vague", rec.Experience[2].Company)
	assert.Empty(t, rec.Experience[2].StartDate)
	assert.Empty(t, rec.Experience[2].EndDate)
}

func TestNormalize_SkillLevelsAndCategories(t *testing.T) {
	rec := types.PortfolioRecord{Skills: types.Skills{
		Technical: []types.Skill{{Name: "Go"}, {Name: "Rust", Level: 9}, {Name: "C", Level: -2}, {Name: "  "}},
		Design:    []types.Skill{{Name: "Figma", Level: 4, Category: types.CategoryTechnical}},
	}}
	Normalize(&rec)

	require.Len(t, rec.Skills.Technical, 3)
	assert.Equal(t, types.DefaultSkillLevel, rec.Skills.Technical[0].Level)
	assert.Equal(t, types.MaxSkillLevel, rec.Skills.Technical[1].Level)
	assert.Equal(t, types.MinSkillLevel, rec.Skills.Technical[2].Level)
	assert.Equal(t, types.CategoryDesign, rec.Skills.Design[0].Category)
	assert.NotNil(t, rec.Skills.Soft)
	assert.NotNil(t, rec.Skills.Languages)
	for _, s := range rec.Skills.Technical {
		assert.NotEmpty(t, s.ID)
	}
}

func TestNormalize_ProjectSourceRules(t *testing.T) {
	stars := 7
	rec := types.PortfolioRecord{Projects: []types.Project{
		{Name: "a", Source: "myspace", StarCount: &stars},
		{Name: "b", Source: types.SourceGitHub, StarCount: &stars, LastUpdated: "2024-01-01"},
		{Name: "c", Source: types.SourceDribbble, LastUpdated: "2024-01-01"},
	}}
	Normalize(&rec)

	assert.Equal(t, types.SourceManual, rec.Projects[0].Source)
	assert.Nil(t, rec.Projects[0].StarCount)
	assert.Equal(t, &stars, rec.Projects[1].StarCount)
	assert.Equal(t, "2024-01-01", rec.Projects[1].LastUpdated)
	assert.Empty(t, rec.Projects[2].LastUpdated)
	assert.Equal(t, types.ProjectTypeDesign, rec.Projects[2].Type)
	assert.NotNil(t, rec.Projects[0].Technologies)
}

func TestNormalize_Idempotent(t *testing.T) {
	rec := Aggregate(Sources{
		LinkedIn: linkedInOK(&types.LinkedInProfile{
			Name:   "Ada",
			Skills: []string{"Go", "Figma"},
			Experience: []types.LinkedInExperience{
				{Title: "Dev", Company: "A", Duration: "2019 - 2020"},
				{Title: "Dev", Company: "B", Duration: "2021 - Present"},
			},
		}),
	}, Options{})

	again := rec
	again.Experience = append([]types.Experience(nil), rec.Experience...)
	Normalize(&again)

	if diff := cmp.Diff(rec, again); diff != "" {
		t.Errorf("second Normalize changed the record (-first +second):\n%s", diff)
	}
}

func TestProjectTypeOf(t *testing.T) {
	tests := []struct {
		name string
		p    types.Project
		want types.ProjectType
	}{
		{"figma tech", types.Project{Technologies: []string{"Figma"}}, types.ProjectTypeDesign},
		{"react tech", types.Project{Technologies: []string{"React", "Node.js"}}, types.ProjectTypeCode},
		{"behance source", types.Project{Source: types.SourceBehance}, types.ProjectTypeDesign},
		{"github without techs", types.Project{Source: types.SourceGitHub}, types.ProjectTypeCode},
		{"nothing known", types.Project{Technologies: []string{"Six Sigma"}, Source: types.SourceCV}, types.ProjectTypeOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectTypeOf(tt.p))
		})
	}
}

func TestFallbackFromLinks(t *testing.T) {
	rec := FallbackFromLinks(types.ManualInput{Title: "Designer"}, types.SocialLinks{
		"github":   "octocat",
		"linkedin": "https://linkedin.com/in/octo",
		"dribbble": "https://dribbble.com/octo",
		"figma":    "https://figma.com/@octo",
		"website":  "https://octo.dev",
	})

	assert.Equal(t, FallbackName, rec.BasicInfo.Name)
	assert.Equal(t, "Designer", rec.BasicInfo.Title)
	assert.Equal(t, FallbackBio, rec.BasicInfo.Bio)

	var projects []string
	for _, p := range rec.Projects {
		projects = append(projects, p.Name+":"+string(p.Source))
	}
	assert.Equal(t, []string{
		"GitHub Project:github",
		"Design Portfolio:dribbble",
		"UI Design System:figma",
		"Personal Website:website",
	}, projects)

	assert.Equal(t, "https://github.com/octocat", rec.Projects[0].ProjectURL)
	assert.Equal(t, []string{"JavaScript", "Git", "HTML", "CSS"}, names(rec.Skills.Technical))
	assert.Equal(t, []string{"Communication", "Teamwork", "Leadership"}, names(rec.Skills.Soft))
	assert.Len(t, rec.Skills.Design, 6)
	require.Len(t, rec.Experience, 1)
	assert.Equal(t, "Recent Company", rec.Experience[0].Company)
	assert.Equal(t, "https://github.com/octocat", rec.SocialLinks["github"])
	assert.NotContains(t, rec.SocialLinks, "behance")
}

func TestFallbackFromLinks_BehancePreferred(t *testing.T) {
	rec := FallbackFromLinks(types.ManualInput{Name: "Kim"}, types.SocialLinks{
		"behance":  "https://behance.net/kim",
		"dribbble": "https://dribbble.com/kim",
	})
	require.Len(t, rec.Projects, 1)
	assert.Equal(t, types.SourceBehance, rec.Projects[0].Source)
	assert.Equal(t, "https://behance.net/kim", rec.Projects[0].ProjectURL)
	assert.Len(t, rec.SocialLinks, 2)
	assert.Equal(t, "Kim", rec.BasicInfo.Name)
}

func TestFallbackFromLinks_NoLinks(t *testing.T) {
	rec := FallbackFromLinks(types.ManualInput{}, nil)
	assert.True(t, rec.Valid())
	assert.Empty(t, rec.Projects)
	assert.NotNil(t, rec.Projects)
	assert.Empty(t, rec.SocialLinks)
}
