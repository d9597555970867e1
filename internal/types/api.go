package types

import (
	"encoding/json"
	"time"
)

// ExtractContentRequest is the body of POST /extract-content.
type ExtractContentRequest struct {
	SocialLinks SocialLinks      `json:"socialLinks"`
	CVData      *PortfolioRecord `json:"cvData,omitempty"`
}

// ExtractedContent is the structured object the LLM returns for extract-content.
type ExtractedContent struct {
	BasicInfo  BasicInfo    `json:"basicInfo"`
	Projects   []Project    `json:"projects"`
	Experience []Experience `json:"experience"`
	Skills     Skills       `json:"skills"`
}

// ExtractionSources reports which inputs contributed to an extraction.
type ExtractionSources struct {
	Social []string `json:"social"`
	CV     bool     `json:"cv"`
}

// GeneratePortfolioRequest is the body of POST /generate-portfolio.
type GeneratePortfolioRequest struct {
	UserData         map[string]any    `json:"userData"`
	ExtractedContent *ExtractedContent `json:"extractedContent"`
}

// PublishedPortfolio is the mocked envelope returned by generate-portfolio.
type PublishedPortfolio struct {
	ID        string            `json:"id"`
	Subdomain string            `json:"subdomain"`
	UserData  map[string]any    `json:"userData"`
	Content   *ExtractedContent `json:"content"`
	CreatedAt time.Time         `json:"createdAt"`
	Status    string            `json:"status"`
	IsPremium bool              `json:"isPremium"`
}

// PaymentRequest is the body of POST /payment.
type PaymentRequest struct {
	Plan        string `json:"plan" validate:"required"`
	PortfolioID string `json:"portfolioId" validate:"required"`
}

// PaymentSession is a mocked checkout session.
type PaymentSession struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"`
	Currency  string    `json:"currency"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
	Token     string    `json:"token,omitempty"`
}

// PaymentStatus is the mocked status of a checkout session.
type PaymentStatus struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Amount      int       `json:"amount"`
	Currency    string    `json:"currency"`
	Plan        string    `json:"plan,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	CompletedAt time.Time `json:"completedAt"`
}

// WebsiteAnalysisRequest is the body of POST /website-analysis.
type WebsiteAnalysisRequest struct {
	WebsiteURL string `json:"websiteUrl"`
}

// WebsiteAnalysis is a design critique of a website. Scores range 0-100.
type WebsiteAnalysis struct {
	DesignScore      int      `json:"designScore"`
	ColorScheme      string   `json:"colorScheme"`
	LayoutStructure  string   `json:"layoutStructure"`
	Responsiveness   string   `json:"responsiveness"`
	ModernElements   []string `json:"modernElements"`
	ImprovementAreas []string `json:"improvementAreas"`
	GenZAppealScore  int      `json:"genZAppealScore"`
	Fallback         bool     `json:"-"`
}

// EditRequest is the body of POST /portfolio-generator/edits.
type EditRequest struct {
	UserID     string          `json:"userId" validate:"required"`
	Collection string          `json:"collection" validate:"required,oneof=experience education projects skills"`
	Action     string          `json:"action" validate:"required,oneof=add save remove"`
	ID         string          `json:"id,omitempty"`
	Item       json.RawMessage `json:"item,omitempty"`
}

// SourceStatus describes the outcome of one data source during portfolio generation.
type SourceStatus struct {
	Source  string `json:"source"`
	OK      bool   `json:"ok"`
	Skipped bool   `json:"skipped,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}
