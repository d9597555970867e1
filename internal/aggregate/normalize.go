package aggregate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// PresentEndDate marks an ongoing position.
const PresentEndDate = "Present"

var durationRe = regexp.MustCompile(`(?i)(\d{4})\s*[-–—]\s*(\d{4}|present|current)`)

// ParseDuration extracts start and end years from a free-text duration such as
// "2019 - Present". ok is false when the text has no recognizable range.
func ParseDuration(duration string) (start, end string, ok bool) {
	m := durationRe.FindStringSubmatch(duration)
	if m == nil {
		return "", "", false
	}
	end = m[2]
	if strings.EqualFold(end, "present") || strings.EqualFold(end, "current") {
		end = PresentEndDate
	}
	return m[1], end, true
}

// Normalize brings a record into canonical shape in place:
//   - every collection and skill bucket is a non-nil slice
//   - skill levels default to 3 and are clamped to 1..5; categories match their bucket
//   - unknown project sources become "manual"; star/fork/update metadata is kept only for GitHub
//   - entries without an ID get one
//   - experience start/end dates are filled from the duration and entries sorted most recent first
//
// Normalize is idempotent.
func Normalize(rec *types.PortfolioRecord) {
	if rec.Experience == nil {
		rec.Experience = []types.Experience{}
	}
	if rec.Education == nil {
		rec.Education = []types.Education{}
	}
	if rec.Projects == nil {
		rec.Projects = []types.Project{}
	}
	if rec.SocialLinks == nil {
		rec.SocialLinks = types.SocialLinks{}
	}

	for i := range rec.Experience {
		e := &rec.Experience[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.Skills == nil {
			e.Skills = []string{}
		}
		// Dates always follow Duration, so an edited duration replaces them.
		e.StartDate, e.EndDate, _ = ParseDuration(e.Duration)
	}
	SortExperience(rec.Experience)

	for i := range rec.Education {
		if rec.Education[i].ID == "" {
			rec.Education[i].ID = uuid.NewString()
		}
	}

	for _, cat := range types.SkillCategories {
		bucket := rec.Skills.Bucket(cat)
		normalized := make([]types.Skill, 0, len(*bucket))
		for _, s := range *bucket {
			s.Name = strings.TrimSpace(s.Name)
			if s.Name == "" {
				continue
			}
			s.Category = cat
			s.Level = clampLevel(s.Level)
			if s.ID == "" {
				s.ID = uuid.NewString()
			}
			normalized = append(normalized, s)
		}
		*bucket = normalized
	}

	for i := range rec.Projects {
		p := &rec.Projects[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
		if !p.Source.Known() {
			p.Source = types.SourceManual
		}
		if p.Source != types.SourceGitHub {
			p.StarCount, p.ForkCount, p.LastUpdated = nil, nil, ""
		}
		if p.Type == "" {
			p.Type = ProjectTypeOf(*p)
		}
	}
}

func clampLevel(level int) int {
	switch {
	case level == 0:
		return types.DefaultSkillLevel
	case level < types.MinSkillLevel:
		return types.MinSkillLevel
	case level > types.MaxSkillLevel:
		return types.MaxSkillLevel
	default:
		return level
	}
}

// SortExperience orders entries with a parseable end date most recent first
// ("Present" before any year, ties broken by later start). Entries without a
// parseable end date follow in their original order.
func SortExperience(entries []types.Experience) {
	sort.SliceStable(entries, func(i, j int) bool {
		ei, iok := yearOf(entries[i].EndDate)
		ej, jok := yearOf(entries[j].EndDate)
		switch {
		case iok && !jok:
			return true
		case !iok:
			return false
		case ei != ej:
			return ei > ej
		}
		si, _ := yearOf(entries[i].StartDate)
		sj, _ := yearOf(entries[j].StartDate)
		return si > sj
	})
}

// yearOf reads the leading four-digit year of a date; "Present" sorts after every year.
func yearOf(date string) (int, bool) {
	if date == PresentEndDate {
		return 10000, true
	}
	if len(date) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, false
	}
	return y, true
}
