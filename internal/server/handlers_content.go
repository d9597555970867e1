package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/portfolio-generator/internal/cvextract"
	"github.com/jonathan/portfolio-generator/internal/types"
)

const (
	msgNoSources      = "No data sources provided"
	msgExtractFailed  = "Failed to extract content"
	msgMissingData    = "Missing required data"
	msgNoWebsiteURL   = "No website URL provided"
	msgAnalyzeFailed  = "Failed to analyze website"
	msgParseCVFailed  = "Failed to parse CV, using generic profile instead"
	msgInvalidRequest = "Invalid request body: "
)

// FileInfo describes an uploaded file.
type FileInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// handleExtractContent asks the LLM to structure the given links and CV data.
func (s *Server) handleExtractContent(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequest+err.Error())
		return
	}

	ctx := r.Context()
	if s.extractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.extractTimeout)
		defer cancel()
	}

	result, err := s.extractor.Extract(ctx, req)
	if err != nil {
		if status := HTTPStatus(err); status == http.StatusBadRequest {
			s.errorResponse(w, status, msgNoSources)
			return
		}
		s.logger.Error("content extraction failed", zap.Error(err))
		s.failureResponse(w, http.StatusInternalServerError, msgExtractFailed, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result.Content,
		"sources": result.Sources,
	})
}

// handleGeneratePortfolio returns the mock published envelope.
func (s *Server) handleGeneratePortfolio(w http.ResponseWriter, r *http.Request) {
	var req types.GeneratePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequest+err.Error())
		return
	}

	portfolio, err := s.publisher.Publish(req)
	if err != nil {
		if status := HTTPStatus(err); status == http.StatusBadRequest {
			s.errorResponse(w, status, msgMissingData)
			return
		}
		s.logger.Error("publishing portfolio failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, msgGenerateFailed)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":   true,
		"portfolio": portfolio,
	})
}

// handleParseCV infers a profile from the uploaded CV's filename. Rejected
// uploads get a 400; any other failure still answers success with the
// generic profile.
func (s *Server) handleParseCV(w http.ResponseWriter, r *http.Request) {
	if !limitUpload(w, r) {
		s.errorResponse(w, http.StatusBadRequest, cvextract.MsgTooLarge)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		switch {
		case errors.Is(err, http.ErrMissingFile):
			s.errorResponse(w, http.StatusBadRequest, cvextract.MsgNoFile)
			return
		case bodyTooLarge(err):
			s.errorResponse(w, http.StatusBadRequest, cvextract.MsgTooLarge)
			return
		}
		s.logger.Warn("reading CV upload, using generic profile", zap.Error(err))
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    cvextract.GenericProfile(),
			"error":   msgParseCVFailed,
			"message": err.Error(),
		})
		return
	}
	_ = file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := cvextract.ValidateUpload(header.Filename, contentType, header.Size); err != nil {
		var upload *cvextract.UploadError
		if errors.As(err, &upload) {
			s.errorResponse(w, http.StatusBadRequest, upload.Message)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    cvextract.InferProfile(header.Filename),
		"file": FileInfo{
			Name: header.Filename,
			Type: contentType,
			Size: header.Size,
		},
	})
}

// handleWebsiteAnalysis critiques a website. LLM failures are answered with a
// plausible fallback critique.
func (s *Server) handleWebsiteAnalysis(w http.ResponseWriter, r *http.Request) {
	var req types.WebsiteAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequest+err.Error())
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.WebsiteURL)
	if err != nil {
		if status := HTTPStatus(err); status == http.StatusBadRequest {
			s.errorResponse(w, status, msgNoWebsiteURL)
			return
		}
		s.logger.Error("website analysis failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, msgAnalyzeFailed)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":  true,
		"data":     result,
		"fallback": result.Fallback,
	})
}
