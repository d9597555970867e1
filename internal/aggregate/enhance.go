package aggregate

import (
	"strings"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// AssignEvidenceLevels sets a level on every skill that has none, based on how many
// projects (by technology) and experience entries (by listed skill) mention it:
// more than two mentions is 5, at least one is 4, otherwise the default 3.
// Explicit levels are left alone.
func AssignEvidenceLevels(rec *types.PortfolioRecord) {
	for _, cat := range types.SkillCategories {
		bucket := *rec.Skills.Bucket(cat)
		for i := range bucket {
			if bucket[i].Level != 0 {
				continue
			}
			switch n := mentions(rec, bucket[i].Name); {
			case n > 2:
				bucket[i].Level = 5
			case n > 0:
				bucket[i].Level = 4
			default:
				bucket[i].Level = types.DefaultSkillLevel
			}
		}
	}
}

// mentions counts projects and experience entries that reference skill, case-insensitively.
func mentions(rec *types.PortfolioRecord, skill string) int {
	n := 0
	for _, p := range rec.Projects {
		if containsFold(p.Technologies, skill) {
			n++
		}
	}
	for _, e := range rec.Experience {
		if containsFold(e.Skills, skill) {
			n++
		}
	}
	return n
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

var (
	designTechs = []string{"figma", "sketch", "photoshop", "illustrator", "adobe", "ui", "ux", "design", "creative"}
	codeTechs   = []string{"javascript", "typescript", "react", "node", "python", "java", "html", "css", "code", "programming"}
)

// ProjectTypeOf classifies a project for display. Technology keywords decide first;
// design platforms default to design and GitHub repositories to code.
func ProjectTypeOf(p types.Project) types.ProjectType {
	techs := strings.ToLower(strings.Join(p.Technologies, " "))
	switch {
	case containsAny(techs, designTechs):
		return types.ProjectTypeDesign
	case containsAny(techs, codeTechs):
		return types.ProjectTypeCode
	}
	switch p.Source {
	case types.SourceBehance, types.SourceDribbble, types.SourceFigma:
		return types.ProjectTypeDesign
	case types.SourceGitHub:
		return types.ProjectTypeCode
	}
	return types.ProjectTypeOther
}
