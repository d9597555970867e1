package analysis

import (
	"math/rand/v2"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// Fallback returns a plausible critique: a design score in [40, 75], a Gen Z
// appeal score in [30, 59] and commentary banded on the design score.
func Fallback(rng *rand.Rand) types.WebsiteAnalysis {
	design := rng.IntN(36) + 40
	genZ := rng.IntN(30) + 30

	a := types.WebsiteAnalysis{
		DesignScore:     design,
		GenZAppealScore: genZ,
		ModernElements:  []string{"Some gradient effects", "Basic animations", "Standard typography"},
		ImprovementAreas: []string{
			"Update color palette for more vibrant contrasts",
			"Implement more interactive elements",
			"Modernize typography with variable fonts",
			"Add microinteractions for better engagement",
			"Improve mobile responsiveness",
		},
		Fallback: true,
	}

	switch {
	case design >= 70:
		a.ColorScheme = "Modern and cohesive"
		a.LayoutStructure = "Clean and intuitive"
		a.Responsiveness = "Fully responsive"
	case design >= 55:
		a.ColorScheme = "Decent but could be improved"
		a.LayoutStructure = "Functional but cluttered"
		a.Responsiveness = "Mostly responsive"
	default:
		a.ColorScheme = "Outdated and inconsistent"
		a.LayoutStructure = "Confusing and disorganized"
		a.Responsiveness = "Poor mobile experience"
	}
	return a
}
