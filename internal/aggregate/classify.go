package aggregate

import (
	"strings"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// Keyword lists are matched as case-sensitive substrings. The lower-case entries
// catch free-form LinkedIn skills such as "interaction design".
var (
	designKeywords   = []string{"UI", "UX", "Design", "Figma", "Sketch", "Adobe", "Photoshop", "Illustrator", "design"}
	softKeywords     = []string{"Communication", "Leadership", "Teamwork", "Problem Solving", "Critical Thinking", "soft"}
	languageKeywords = []string{"English", "Spanish", "French", "German", "Chinese", "Japanese", "language"}
)

// Classify buckets a bare skill string. Design is checked first, then soft skills,
// then spoken languages; anything else is technical.
func Classify(skill string) types.SkillCategory {
	switch {
	case containsAny(skill, designKeywords):
		return types.CategoryDesign
	case containsAny(skill, softKeywords):
		return types.CategorySoft
	case containsAny(skill, languageKeywords):
		return types.CategoryLanguages
	default:
		return types.CategoryTechnical
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
