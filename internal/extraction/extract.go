// Package extraction turns social links and CV data into structured profile
// content with an LLM.
package extraction

import (
	"context"
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-generator/internal/llm"
	"github.com/jonathan/portfolio-generator/internal/prompts"
	"github.com/jonathan/portfolio-generator/internal/schemas"
	"github.com/jonathan/portfolio-generator/internal/types"
)

// Sampling parameters for extraction calls.
const (
	Temperature = 0.3
	MaxTokens   = 4000
)

// Extractor runs profile extraction against an LLM client.
type Extractor struct {
	client llm.Client
	logger *zap.Logger
}

// New creates an Extractor. A nil logger disables logging.
func New(client llm.Client, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{client: client, logger: logger}
}

// Result is a successful extraction with the sources that fed it.
type Result struct {
	Content *types.ExtractedContent
	Sources types.ExtractionSources
}

// SourcesOf lists the social networks with a non-empty link, sorted, and
// whether CV data was present.
func SourcesOf(req types.ExtractContentRequest) types.ExtractionSources {
	social := []string{}
	for k, v := range req.SocialLinks {
		if v != "" {
			social = append(social, k)
		}
	}
	sort.Strings(social)
	return types.ExtractionSources{Social: social, CV: req.CVData != nil}
}

// HasSources reports whether the request carries any input at all. A social
// links object with keys counts even when every value is empty.
func HasSources(req types.ExtractContentRequest) bool {
	return len(req.SocialLinks) > 0 || req.CVData != nil
}

// Extract asks the LLM for structured profile content and validates the answer.
func (e *Extractor) Extract(ctx context.Context, req types.ExtractContentRequest) (*Result, error) {
	if !HasSources(req) {
		return nil, ErrNoSources
	}
	if e.client == nil {
		return nil, &APICallError{Message: "LLM client is not configured"}
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	text, err := e.client.GenerateJSON(ctx, llm.Request{
		System:      prompts.MustGet(prompts.FileExtraction, prompts.KeySystem),
		Prompt:      prompt,
		Tier:        llm.TierStandard,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		return nil, &APICallError{Message: "failed to generate content from LLM", Cause: err}
	}
	if text == "" {
		return nil, &ParseError{Message: "no content in LLM response"}
	}

	content, err := ParseResponse(text)
	if err != nil {
		e.logger.Warn("extraction response rejected", zap.Error(err))
		return nil, err
	}
	return &Result{Content: content, Sources: SourcesOf(req)}, nil
}

// ParseResponse validates raw LLM output against the extraction schema and
// decodes it.
func ParseResponse(text string) (*types.ExtractedContent, error) {
	if !json.Valid([]byte(text)) {
		return nil, &ParseError{Message: "response is not valid JSON"}
	}
	if err := schemas.Validate(schemas.Extraction, []byte(text)); err != nil {
		return nil, &ValidationError{Message: "Missing required fields in LLM response", Cause: err}
	}

	var content types.ExtractedContent
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		return nil, &ParseError{Message: "failed to parse JSON response", Cause: err}
	}
	if content.BasicInfo.Name == "" {
		return nil, &ValidationError{Field: "basicInfo.name", Message: "name is required"}
	}
	return &content, nil
}

// BuildPrompt fills the extract-profile template. CV data is inlined as JSON.
func BuildPrompt(req types.ExtractContentRequest) (string, error) {
	links := req.SocialLinks
	if links == nil {
		links = types.SocialLinks{}
	}
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return "", &ParseError{Message: "failed to encode social links", Cause: err}
	}

	cv := "Not provided"
	if req.CVData != nil {
		data, err := json.Marshal(req.CVData)
		if err != nil {
			return "", &ParseError{Message: "failed to encode CV data", Cause: err}
		}
		cv = string(data)
	}

	return prompts.Build(prompts.FileExtraction, prompts.KeyExtractProfile, map[string]string{
		"SocialLinks": string(linksJSON),
		"CVData":      cv,
	})
}
