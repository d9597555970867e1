// Package types provides type definitions for structured data used throughout the portfolio generator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PortfolioRecord is the canonical merged professional profile rendered as a portfolio page.
type PortfolioRecord struct {
	BasicInfo   BasicInfo    `json:"basicInfo"`
	Experience  []Experience `json:"experience"`
	Education   []Education  `json:"education"`
	Skills      Skills       `json:"skills"`
	Projects    []Project    `json:"projects"`
	SocialLinks SocialLinks  `json:"socialLinks"`
}

// Valid reports whether the record can be rendered. A record without a name is
// treated as missing.
func (r *PortfolioRecord) Valid() bool {
	return r != nil && strings.TrimSpace(r.BasicInfo.Name) != ""
}

// BasicInfo holds the scalar identity fields of a portfolio.
type BasicInfo struct {
	Name            string `json:"name"`
	Title           string `json:"title"`
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	Location        string `json:"location,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
}

// Experience is a single work history entry. Duration is free text such as "2020 - Present";
// StartDate and EndDate are derived from Duration on every normalization and
// are empty when Duration does not parse.
type Experience struct {
	ID          string   `json:"id,omitempty"`
	Company     string   `json:"company" validate:"required"`
	Position    string   `json:"position" validate:"required"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
}

// Education is a single education entry.
type Education struct {
	ID           string `json:"id,omitempty"`
	Institution  string `json:"institution" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	Duration     string `json:"duration"`
	Description  string `json:"description,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
}

// SkillCategory is one of the four fixed skill buckets.
type SkillCategory string

const (
	// CategoryTechnical holds programming languages, frameworks and tools
	CategoryTechnical SkillCategory = "technical"
	// CategoryDesign holds visual and UX skills
	CategoryDesign SkillCategory = "design"
	// CategorySoft holds interpersonal skills
	CategorySoft SkillCategory = "soft"
	// CategoryLanguages holds spoken languages
	CategoryLanguages SkillCategory = "languages"
)

// SkillCategories lists the buckets in render order.
var SkillCategories = []SkillCategory{CategoryTechnical, CategoryDesign, CategorySoft, CategoryLanguages}

// ParseSkillCategory maps a loose category name to a bucket. "language" is accepted
// as an alias of "languages".
func ParseSkillCategory(s string) (SkillCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "technical":
		return CategoryTechnical, true
	case "design":
		return CategoryDesign, true
	case "soft":
		return CategorySoft, true
	case "languages", "language":
		return CategoryLanguages, true
	}
	return "", false
}

// Skill levels range from 1 (Beginner) to 5 (Expert).
const (
	MinSkillLevel     = 1
	MaxSkillLevel     = 5
	DefaultSkillLevel = 3
)

// Skill is the normalized skill value. On the wire a skill may also be a bare
// string; Level 0 means the level was not supplied.
type Skill struct {
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"name" validate:"required"`
	Level    int           `json:"level,omitempty"`
	Category SkillCategory `json:"category,omitempty"`
}

// UnmarshalJSON accepts either a bare string or a {name, level, category} object.
func (s *Skill) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = Skill{Name: name}
		return nil
	}

	type rawSkill struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Level    int    `json:"level"`
		Category string `json:"category"`
	}
	var raw rawSkill
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("skill must be a string or an object: %w", err)
	}
	cat, _ := ParseSkillCategory(raw.Category)
	*s = Skill{ID: raw.ID, Name: raw.Name, Level: raw.Level, Category: cat}
	return nil
}

// Skills groups skills by category. After normalization every bucket is non-nil.
type Skills struct {
	Technical []Skill `json:"technical"`
	Design    []Skill `json:"design"`
	Soft      []Skill `json:"soft"`
	Languages []Skill `json:"languages"`
}

// Bucket returns a pointer to the slice holding the given category.
func (s *Skills) Bucket(cat SkillCategory) *[]Skill {
	switch cat {
	case CategoryDesign:
		return &s.Design
	case CategorySoft:
		return &s.Soft
	case CategoryLanguages:
		return &s.Languages
	default:
		return &s.Technical
	}
}

// Len returns the number of skills across all buckets.
func (s *Skills) Len() int {
	return len(s.Technical) + len(s.Design) + len(s.Soft) + len(s.Languages)
}

// ProjectSource identifies where a project entry came from.
type ProjectSource string

// Known project sources
const (
	SourceGitHub   ProjectSource = "github"
	SourceLinkedIn ProjectSource = "linkedin"
	SourceCV       ProjectSource = "cv"
	SourceManual   ProjectSource = "manual"
	SourceBehance  ProjectSource = "behance"
	SourceDribbble ProjectSource = "dribbble"
	SourceFigma    ProjectSource = "figma"
	SourceWebsite  ProjectSource = "website"
)

// Known reports whether the source is one of the fixed values.
func (p ProjectSource) Known() bool {
	switch p {
	case SourceGitHub, SourceLinkedIn, SourceCV, SourceManual,
		SourceBehance, SourceDribbble, SourceFigma, SourceWebsite:
		return true
	}
	return false
}

// ProjectType is a coarse classification used by the preview page.
type ProjectType string

// Project types
const (
	ProjectTypeDesign ProjectType = "design"
	ProjectTypeCode   ProjectType = "code"
	ProjectTypeOther  ProjectType = "other"
)

// Project is a portfolio project. StarCount, ForkCount and LastUpdated are only
// meaningful for GitHub projects.
type Project struct {
	ID           string        `json:"id,omitempty"`
	Name         string        `json:"name" validate:"required"`
	Description  string        `json:"description"`
	Technologies []string      `json:"technologies"`
	ProjectURL   string        `json:"projectUrl,omitempty"`
	Source       ProjectSource `json:"source"`
	Type         ProjectType   `json:"type,omitempty"`
	StarCount    *int          `json:"starCount,omitempty"`
	ForkCount    *int          `json:"forkCount,omitempty"`
	LastUpdated  string        `json:"lastUpdated,omitempty"`
}

// SocialLinks maps provider name to profile URL or username.
type SocialLinks map[string]string

// Social providers accepted by the creation form.
const (
	SocialGitHub   = "github"
	SocialLinkedIn = "linkedin"
	SocialBehance  = "behance"
	SocialDribbble = "dribbble"
	SocialFigma    = "figma"
	SocialWebsite  = "website"
)
