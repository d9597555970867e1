package server

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-generator/internal/analysis"
	"github.com/jonathan/portfolio-generator/internal/cvextract"
	"github.com/jonathan/portfolio-generator/internal/extraction"
	"github.com/jonathan/portfolio-generator/internal/publish"
)

const extractionJSON = `{
	"basicInfo": {"name": "Jane Doe", "title": "Designer", "bio": "Designs things"},
	"projects": [],
	"experience": [],
	"skills": {"technical": [], "design": ["Figma"], "soft": []}
}`

func TestExtractContent(t *testing.T) {
	tests := []struct {
		name    string
		client  *fakeLLM
		body    string
		code    int
		wantErr string
	}{
		{
			name:    "no sources",
			client:  &fakeLLM{response: extractionJSON},
			body:    `{}`,
			code:    http.StatusBadRequest,
			wantErr: "No data sources provided",
		},
		{
			name:    "llm failure",
			client:  &fakeLLM{err: errors.New("upstream 503")},
			body:    `{"socialLinks": {"github": "octocat"}}`,
			code:    http.StatusInternalServerError,
			wantErr: "Failed to extract content",
		},
		{
			name:    "schema violation",
			client:  &fakeLLM{response: `{"basicInfo": {}}`},
			body:    `{"socialLinks": {"github": "octocat"}}`,
			code:    http.StatusInternalServerError,
			wantErr: "Failed to extract content",
		},
		{
			name:   "success",
			client: &fakeLLM{response: extractionJSON},
			body:   `{"socialLinks": {"github": "octocat", "behance": ""}, "cvData": {"basicInfo": {"name": "Jane"}}}`,
			code:   http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, Config{Extractor: extraction.New(tt.client, nil)})

			w := do(t, s.Handler(), http.MethodPost, "/extract-content", strings.NewReader(tt.body), "application/json")
			require.Equal(t, tt.code, w.Code, w.Body.String())
			out := decode(t, w)

			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, out["error"])
				if tt.code == http.StatusInternalServerError {
					assert.Equal(t, false, out["success"])
					assert.NotEmpty(t, out["message"])
				}
				return
			}
			assert.Equal(t, true, out["success"])
			assert.Equal(t, "Jane Doe", out["data"].(map[string]any)["basicInfo"].(map[string]any)["name"])
			sources := out["sources"].(map[string]any)
			assert.Equal(t, []any{"github"}, sources["social"])
			assert.Equal(t, true, sources["cv"])
		})
	}
}

func TestExtractContent_NoClientConfigured(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	w := postJSON(t, s.Handler(), "/extract-content", map[string]any{"socialLinks": map[string]string{"github": "x"}})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to extract content", decode(t, w)["error"])
}

func TestExtractContent_BadJSON(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	w := do(t, s.Handler(), http.MethodPost, "/extract-content", strings.NewReader("{"), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeneratePortfolioEnvelope(t *testing.T) {
	s, _ := newTestServer(t, Config{Publisher: publish.New(publish.WithSuffix(func() int { return 42 }))})
	h := s.Handler()

	w := postJSON(t, h, "/generate-portfolio", map[string]any{"userData": map[string]any{"name": "Jane"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required data", decode(t, w)["error"])

	w = postJSON(t, h, "/generate-portfolio", map[string]any{
		"userData":         map[string]any{"name": "Jane Q. Doe"},
		"extractedContent": map[string]any{"basicInfo": map[string]any{"name": "Ignored"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, true, out["success"])
	portfolio := out["portfolio"].(map[string]any)
	assert.Equal(t, "jane-q-doe-42", portfolio["subdomain"])
	assert.Equal(t, "active", portfolio["status"])
	assert.Equal(t, false, portfolio["isPremium"])
	assert.NotEmpty(t, portfolio["id"])
}

func TestParseCV(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	h := s.Handler()

	t.Run("no file", func(t *testing.T) {
		body, ct := multipartBody(t, map[string]string{"other": "x"}, "", "", nil)
		w := do(t, h, http.MethodPost, "/parse-cv", body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No file provided", decode(t, w)["error"])
	})

	t.Run("wrong type", func(t *testing.T) {
		body, ct := multipartBody(t, nil, "file", "resume.docx", []byte("x"))
		w := do(t, h, http.MethodPost, "/parse-cv", body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid file type. Please upload a PDF document.", decode(t, w)["error"])
	})

	t.Run("too large", func(t *testing.T) {
		body, ct := multipartBody(t, nil, "file", "big.pdf", make([]byte, 5*1024*1024+1))
		w := do(t, h, http.MethodPost, "/parse-cv", body, ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "File too large. Maximum size is 5MB.", decode(t, w)["error"])
	})

	t.Run("body over the upload cap", func(t *testing.T) {
		body, ct := multipartBody(t, nil, "file", "huge.pdf", make([]byte, maxFormMemory+1))
		w := do(t, h, http.MethodPost, "/parse-cv", io.MultiReader(body), ct)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, cvextract.MsgTooLarge, decode(t, w)["error"])
	})

	t.Run("designer", func(t *testing.T) {
		body, ct := multipartBody(t, nil, "file", "Jane_UX_Resume.pdf", []byte("%PDF"))
		w := do(t, h, http.MethodPost, "/parse-cv", body, ct)
		require.Equal(t, http.StatusOK, w.Code)
		out := decode(t, w)
		assert.Equal(t, true, out["success"])
		assert.Equal(t, "UI/UX Designer", out["data"].(map[string]any)["basicInfo"].(map[string]any)["title"])
		assert.Equal(t, "Jane_UX_Resume.pdf", out["file"].(map[string]any)["name"])
	})

	t.Run("unreadable form falls back to generic profile", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/parse-cv", strings.NewReader("garbage"), "multipart/form-data; boundary=xyz")
		require.Equal(t, http.StatusOK, w.Code)
		out := decode(t, w)
		assert.Equal(t, true, out["success"])
		assert.Equal(t, "Failed to parse CV, using generic profile instead", out["error"])
		assert.NotNil(t, out["data"])
	})
}

func TestWebsiteAnalysis(t *testing.T) {
	t.Run("missing url", func(t *testing.T) {
		s, _ := newTestServer(t, Config{})
		w := postJSON(t, s.Handler(), "/website-analysis", map[string]string{"websiteUrl": "  "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No website URL provided", decode(t, w)["error"])
	})

	t.Run("llm result", func(t *testing.T) {
		client := &fakeLLM{response: `Here you go: {"designScore": 80, "colorScheme": "Muted", "layoutStructure": "Grid",
			"responsiveness": "Good", "modernElements": ["Cards"], "improvementAreas": ["Contrast"], "genZAppealScore": 61}`}
		s, _ := newTestServer(t, Config{Analyzer: analysis.New(client)})

		w := postJSON(t, s.Handler(), "/website-analysis", map[string]string{"websiteUrl": "https://example.com"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		out := decode(t, w)
		assert.Equal(t, false, out["fallback"])
		data := out["data"].(map[string]any)
		assert.EqualValues(t, 80, data["designScore"])
		assert.Equal(t, "Muted", data["colorScheme"])
	})

	t.Run("llm failure falls back", func(t *testing.T) {
		s, _ := newTestServer(t, Config{Analyzer: analysis.New(&fakeLLM{err: errors.New("down")})})

		w := postJSON(t, s.Handler(), "/website-analysis", map[string]string{"websiteUrl": "https://example.com"})
		require.Equal(t, http.StatusOK, w.Code)
		out := decode(t, w)
		assert.Equal(t, true, out["success"])
		assert.Equal(t, true, out["fallback"])
		score := out["data"].(map[string]any)["designScore"].(float64)
		assert.GreaterOrEqual(t, score, 40.0)
		assert.LessOrEqual(t, score, 75.0)
	})
}
