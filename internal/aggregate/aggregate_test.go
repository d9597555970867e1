package aggregate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-generator/internal/cvextract"
	"github.com/jonathan/portfolio-generator/internal/social"
	"github.com/jonathan/portfolio-generator/internal/types"
)

var ignoreIDs = cmpopts.IgnoreFields(types.Skill{}, "ID")

func linkedInOK(p *types.LinkedInProfile) social.Result[*types.LinkedInProfile] {
	return social.Collect(p, nil)
}

func githubOK(repos ...types.GitHubRepo) social.Result[[]types.GitHubRepo] {
	return social.Collect(repos, nil)
}

func names(skills []types.Skill) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, s.Name)
	}
	return out
}

func TestAggregate_NamePrecedence(t *testing.T) {
	cv := &types.PortfolioRecord{BasicInfo: types.BasicInfo{Name: "B"}}
	manual := types.ManualInput{Name: "C"}

	t.Run("linkedin wins", func(t *testing.T) {
		rec := Aggregate(Sources{
			CV:       cv,
			LinkedIn: linkedInOK(&types.LinkedInProfile{Name: "A"}),
			Manual:   manual,
		}, Options{})
		assert.Equal(t, "A", rec.BasicInfo.Name)
	})

	t.Run("cv when linkedin absent", func(t *testing.T) {
		rec := Aggregate(Sources{CV: cv, Manual: manual}, Options{})
		assert.Equal(t, "B", rec.BasicInfo.Name)
	})

	t.Run("cv when linkedin failed", func(t *testing.T) {
		rec := Aggregate(Sources{
			CV:       cv,
			LinkedIn: social.Failed[*types.LinkedInProfile](errors.New("down")),
			Manual:   manual,
		}, Options{})
		assert.Equal(t, "B", rec.BasicInfo.Name)
	})

	t.Run("manual when both absent", func(t *testing.T) {
		rec := Aggregate(Sources{Manual: manual}, Options{})
		assert.Equal(t, "C", rec.BasicInfo.Name)
	})

	t.Run("built-in defaults", func(t *testing.T) {
		rec := Aggregate(Sources{}, Options{})
		assert.Equal(t, DefaultName, rec.BasicInfo.Name)
		assert.Equal(t, DefaultTitle, rec.BasicInfo.Title)
		assert.Equal(t, DefaultBio, rec.BasicInfo.Bio)
	})
}

func TestAggregate_GitHubNeverSuppliesIdentity(t *testing.T) {
	rec := Aggregate(Sources{
		GitHub: githubOK(types.GitHubRepo{Name: "octo", Description: "bio-ish", Language: "Go"}),
		Manual: types.ManualInput{Name: "Manual Name", Bio: "Manual bio"},
	}, Options{})
	assert.Equal(t, "Manual Name", rec.BasicInfo.Name)
	assert.Equal(t, "Manual bio", rec.BasicInfo.Bio)
}

func TestAggregate_SkillOrderAndCount(t *testing.T) {
	cv := &types.PortfolioRecord{
		Skills: types.Skills{Technical: []types.Skill{{Name: "Python"}, {Name: "Go"}}},
	}
	rec := Aggregate(Sources{
		CV:       cv,
		LinkedIn: linkedInOK(&types.LinkedInProfile{Skills: []string{"Go", "Kubernetes", "UX Research", "Leadership", "English"}}),
		GitHub:   githubOK(types.GitHubRepo{Name: "a", Language: "Go"}, types.GitHubRepo{Name: "b", Language: "Rust"}, types.GitHubRepo{Name: "c"}),
	}, Options{})

	assert.Equal(t, []string{"Go", "Kubernetes", "Python", "Go", "Go", "Rust"}, names(rec.Skills.Technical))
	assert.Equal(t, []string{"UX Research"}, names(rec.Skills.Design))
	assert.Equal(t, []string{"Leadership"}, names(rec.Skills.Soft))
	assert.Equal(t, []string{"English"}, names(rec.Skills.Languages))
	// 5 linkedin + 2 cv + 2 github languages, duplicates included
	assert.Equal(t, 9, rec.Skills.Len())
}

func TestAggregate_PreCategorizedSkillsKeepCategory(t *testing.T) {
	rec := Aggregate(Sources{
		Manual: types.ManualInput{Skills: []types.Skill{
			{Name: "Design Thinking", Category: types.CategorySoft, Level: 5},
			{Name: "Figma"},
		}},
	}, Options{})

	require.Len(t, rec.Skills.Soft, 1)
	assert.Equal(t, "Design Thinking", rec.Skills.Soft[0].Name)
	assert.Equal(t, 5, rec.Skills.Soft[0].Level)
	assert.Equal(t, []string{"Figma"}, names(rec.Skills.Design))
}

func TestAggregate_ExperienceDedup(t *testing.T) {
	li := &types.LinkedInProfile{Experience: []types.LinkedInExperience{
		{Title: "Engineer", Company: "Acme", Duration: "2019 - 2021"},
	}}
	cv := &types.PortfolioRecord{Experience: []types.Experience{
		{Company: "Acme", Position: "Engineer", Duration: "2019 - 2021", Description: "dup"},
		{Company: "Acme", Position: "Lead", Duration: "2021 - 2022"},
	}}
	manual := types.ManualInput{Experience: []types.Experience{
		{Company: "Acme", Position: "Engineer"},
	}}

	rec := Aggregate(Sources{CV: cv, LinkedIn: linkedInOK(li), Manual: manual}, Options{})
	require.Len(t, rec.Experience, 2)
	assert.Empty(t, rec.Experience[1].Description, "linkedin entry kept, cv duplicate dropped")
}

func TestAggregate_EducationDedup(t *testing.T) {
	li := &types.LinkedInProfile{Education: []types.LinkedInEducation{
		{School: "MIT", Degree: "BSc", FieldOfStudy: "Math"},
	}}
	cv := &types.PortfolioRecord{Education: []types.Education{
		{Institution: "MIT", Degree: "BSc"},
		{Institution: "MIT", Degree: "MSc"},
	}}
	rec := Aggregate(Sources{CV: cv, LinkedIn: linkedInOK(li)}, Options{})
	require.Len(t, rec.Education, 2)
	assert.Equal(t, "Math", rec.Education[0].FieldOfStudy)
	assert.Equal(t, "MSc", rec.Education[1].Degree)
}

func TestAggregate_ProjectSourceOrder(t *testing.T) {
	rec := Aggregate(Sources{
		CV:       &types.PortfolioRecord{Projects: []types.Project{{Name: "cv"}}},
		LinkedIn: linkedInOK(&types.LinkedInProfile{Projects: []types.LinkedInProject{{Title: "li"}}}),
		GitHub:   githubOK(types.GitHubRepo{Name: "gh", Language: "Go", Stars: 3, Forks: 1, UpdatedAt: "2024-02-03T00:00:00Z"}),
		Manual:   types.ManualInput{Projects: []types.Project{{Name: "manual"}}},
	}, Options{})

	require.Len(t, rec.Projects, 4)
	var got []string
	for _, p := range rec.Projects {
		got = append(got, p.Name+":"+string(p.Source))
	}
	assert.Equal(t, []string{"li:linkedin", "cv:cv", "gh:github", "manual:manual"}, got)

	gh := rec.Projects[2]
	require.NotNil(t, gh.StarCount)
	assert.Equal(t, 3, *gh.StarCount)
	assert.Equal(t, 1, *gh.ForkCount)
	assert.Equal(t, types.ProjectTypeCode, gh.Type)
	assert.Nil(t, rec.Projects[0].StarCount)
}

func TestAggregate_GitHubFailureStillComplete(t *testing.T) {
	rec := Aggregate(Sources{
		GitHub: social.Failed[[]types.GitHubRepo](&social.Error{Provider: social.ProviderGitHub, Kind: social.KindNetwork}),
		Links:  types.SocialLinks{"github": "octocat"},
	}, Options{})

	assert.True(t, rec.Valid())
	assert.NotNil(t, rec.Projects)
	assert.Empty(t, rec.Projects)
	assert.NotNil(t, rec.Skills.Technical)
	assert.NotNil(t, rec.Skills.Design)
	assert.NotNil(t, rec.Skills.Soft)
	assert.NotNil(t, rec.Skills.Languages)
	assert.Equal(t, "https://github.com/octocat", rec.SocialLinks["github"])
}

func TestAggregate_SocialLinks(t *testing.T) {
	rec := Aggregate(Sources{Links: types.SocialLinks{
		"github":   "https://github.com/octocat",
		"linkedin": "https://linkedin.com/in/x",
		"behance":  "",
	}}, Options{})

	assert.Equal(t, types.SocialLinks{
		"github":   "https://github.com/octocat",
		"linkedin": "https://linkedin.com/in/x",
	}, rec.SocialLinks)
}

func TestAggregate_WithInferredCV(t *testing.T) {
	cv := cvextract.InferProfile("Jane_UX_Resume.pdf")
	rec := Aggregate(Sources{CV: &cv}, Options{})

	assert.Equal(t, "Jane", rec.BasicInfo.Name)
	assert.Equal(t, "UI/UX Designer", rec.BasicInfo.Title)
	assert.Equal(t, "jane@example.com", rec.BasicInfo.Email)
	if diff := cmp.Diff(cv.Skills, rec.Skills, ignoreIDs); diff != "" {
		t.Errorf("skills mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_EvidenceLevels(t *testing.T) {
	rec := Aggregate(Sources{
		LinkedIn: linkedInOK(&types.LinkedInProfile{
			Skills: []string{"React", "Go", "Haskell"},
			Experience: []types.LinkedInExperience{
				{Title: "a", Company: "x"},
			},
		}),
		Manual: types.ManualInput{
			Experience: []types.Experience{
				{Company: "y", Position: "b", Skills: []string{"react"}},
				{Company: "z", Position: "c", Skills: []string{"React", "go"}},
			},
			Projects: []types.Project{{Name: "p", Technologies: []string{"REACT"}}},
		},
	}, Options{EvidenceLevels: true})

	levels := map[string]int{}
	for _, s := range rec.Skills.Technical {
		levels[s.Name] = s.Level
	}
	assert.Equal(t, map[string]int{"React": 5, "Go": 4, "Haskell": 3}, levels)
}

func TestAggregate_WithoutEvidenceLevelsDefaultsToThree(t *testing.T) {
	rec := Aggregate(Sources{
		LinkedIn: linkedInOK(&types.LinkedInProfile{Skills: []string{"React"}}),
		Manual: types.ManualInput{
			Projects: []types.Project{{Name: "p", Technologies: []string{"React"}}},
		},
	}, Options{})
	require.Len(t, rec.Skills.Technical, 1)
	assert.Equal(t, types.DefaultSkillLevel, rec.Skills.Technical[0].Level)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		skill string
		want  types.SkillCategory
	}{
		{"Go", types.CategoryTechnical},
		{"UI Design", types.CategoryDesign},
		{"Adobe Photoshop", types.CategoryDesign},
		{"interaction design", types.CategoryDesign},
		{"Leadership", types.CategorySoft},
		{"soft skills", types.CategorySoft},
		{"Critical Thinking", types.CategorySoft},
		{"Japanese", types.CategoryLanguages},
		{"sign language", types.CategoryLanguages},
		// matching is case-sensitive
		{"leadership", types.CategoryTechnical},
		// design is checked before soft skills
		{"Design Leadership", types.CategoryDesign},
	}
	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.skill))
		})
	}
}
