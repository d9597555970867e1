package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-generator/internal/cvextract"
	"github.com/jonathan/portfolio-generator/internal/editing"
	"github.com/jonathan/portfolio-generator/internal/pipeline"
	"github.com/jonathan/portfolio-generator/internal/render"
	"github.com/jonathan/portfolio-generator/internal/store"
	"github.com/jonathan/portfolio-generator/internal/types"
)

// Messages shown to clients of the generator routes.
const (
	msgNoInput        = "Please provide a CV file or at least a GitHub/LinkedIn username."
	msgUserNotFound   = "User data not found. Please generate your portfolio first."
	msgGenerateFailed = "Failed to generate portfolio"
	msgFetchFailed    = "Failed to fetch portfolio data"
	msgMissingUserID  = "Missing user ID"
)

// multipart memory budget: the CV plus form fields.
const maxFormMemory = cvextract.MaxUploadSize + 1<<20

var errUploadTooLarge = &cvextract.UploadError{Message: cvextract.MsgTooLarge}

// limitUpload caps the request body at maxFormMemory so an oversized upload
// fails while it is read instead of being spooled to disk. It reports false
// when the declared length is already over the cap.
func limitUpload(w http.ResponseWriter, r *http.Request) bool {
	if r.ContentLength > maxFormMemory {
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormMemory)
	return true
}

func bodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// GenerateResponse is the body returned by POST /portfolio-generator.
type GenerateResponse struct {
	Success bool                  `json:"success"`
	UserID  string                `json:"userId"`
	Data    types.PortfolioRecord `json:"data"`
	Sources []types.SourceStatus  `json:"sources"`
	Warning string                `json:"warning,omitempty"`
}

// generateInput reads the multipart generation form. Only the CV's name and
// size are used; its bytes are never read.
func generateInput(w http.ResponseWriter, r *http.Request) (pipeline.Input, error) {
	if !limitUpload(w, r) {
		return pipeline.Input{}, errUploadTooLarge
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		if bodyTooLarge(err) {
			return pipeline.Input{}, errUploadTooLarge
		}
		return pipeline.Input{}, &ErrValidation{Field: "form", Message: "invalid form data"}
	}

	in := pipeline.Input{
		GitHub:   r.FormValue("github"),
		LinkedIn: r.FormValue("linkedin"),
		Behance:  r.FormValue("behance"),
		Dribbble: r.FormValue("dribbble"),
		Figma:    r.FormValue("figma"),
		Website:  r.FormValue("website"),
		Manual: types.ManualInput{
			Name:     r.FormValue("name"),
			Title:    r.FormValue("title"),
			Bio:      r.FormValue("bio"),
			Location: r.FormValue("location"),
			Email:    r.FormValue("email"),
			Phone:    r.FormValue("phone"),
		},
	}

	file, header, err := r.FormFile("cv")
	switch {
	case err == nil:
		_ = file.Close()
		in.CVFilename = header.Filename
		in.CVSize = header.Size
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return pipeline.Input{}, &ErrValidation{Field: "cv", Message: "invalid file"}
	}
	return in, nil
}

// handleGenerate runs the aggregation pipeline and stores the record under
// the GitHub identifier, else the LinkedIn one, else "anonymous".
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	in, err := generateInput(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	out, err := pipeline.NewRunner(s.pipeline).Run(r.Context(), in)
	if err != nil {
		s.generateError(w, err)
		return
	}

	resp, err := s.saveGenerated(r, in, out)
	if err != nil {
		s.failureResponse(w, http.StatusInternalServerError, msgGenerateFailed, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGenerateStream runs the pipeline and streams progress events via SSE,
// ending with a "complete" event carrying the response body.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	in, err := generateInput(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if in.CVFilename == "" && strings.TrimSpace(in.GitHub) == "" && strings.TrimSpace(in.LinkedIn) == "" {
		s.errorResponse(w, http.StatusBadRequest, msgNoInput)
		return
	}

	stream, err := newProgressStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.pipeline
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := stream.step(event); err != nil && !errors.Is(err, errStreamClosed) {
			s.logger.Warn("writing progress event", zap.Error(err))
		}
	}

	out, err := pipeline.NewRunner(opts).Run(r.Context(), in)
	if err != nil {
		_ = stream.fail(generateMessage(err))
		return
	}
	resp, err := s.saveGenerated(r, in, out)
	if err != nil {
		_ = stream.fail(msgGenerateFailed)
		return
	}
	if err := stream.complete(resp); err != nil {
		s.logger.Debug("client left before completion", zap.Error(err))
	}
}

func (s *Server) saveGenerated(r *http.Request, in pipeline.Input, out *pipeline.Output) (*GenerateResponse, error) {
	key := store.Key(in.GitHub, in.LinkedIn)
	if err := s.store.Put(r.Context(), key, &out.Record); err != nil {
		return nil, err
	}
	s.logger.Info("portfolio generated",
		zap.String("user_id", key),
		zap.Bool("fallback", out.Fallback))
	return &GenerateResponse{
		Success: true,
		UserID:  key,
		Data:    out.Record,
		Sources: out.Sources,
		Warning: out.Warning,
	}, nil
}

func (s *Server) generateError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("portfolio generation failed", zap.Error(err))
		s.failureResponse(w, status, msgGenerateFailed, err)
		return
	}
	s.errorResponse(w, status, generateMessage(err))
}

// generateMessage returns the client-facing message for a pipeline error.
func generateMessage(err error) string {
	var upload *cvextract.UploadError
	switch {
	case errors.Is(err, pipeline.ErrNoInput):
		return msgNoInput
	case errors.As(err, &upload):
		return upload.Message
	case HTTPStatus(err) == http.StatusBadRequest:
		return err.Error()
	default:
		return msgGenerateFailed
	}
}

// lookup loads the record stored under the userId query parameter.
func (s *Server) lookup(r *http.Request) (*types.PortfolioRecord, error) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		return nil, &ErrValidation{Message: msgMissingUserID}
	}
	rec, err := s.store.Get(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &ErrNotFound{UserID: userID}
	}
	return rec, nil
}

// handleGetPortfolio returns the record stored by a previous generation.
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lookup(r)
	if err != nil {
		switch status := HTTPStatus(err); status {
		case http.StatusNotFound:
			s.errorResponse(w, status, msgUserNotFound)
		case http.StatusBadRequest:
			s.errorResponse(w, status, err.Error())
		default:
			s.failureResponse(w, status, msgFetchFailed, err)
		}
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "data": rec})
}

// handlePreview renders the stored record as an HTML portfolio page.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lookup(r)
	status := http.StatusOK
	switch {
	case err == nil && !rec.Valid():
		status = http.StatusNotFound
	case err != nil:
		status = HTTPStatus(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("loading portfolio for preview", zap.Error(err))
			http.Error(w, msgFetchFailed, status)
			return
		}
		rec = nil
	}

	page, err := render.Prepare(rec)
	if err != nil {
		s.logger.Error("preparing preview", zap.Error(err))
		http.Error(w, "Failed to render portfolio", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := render.RenderPage(w, page); err != nil {
		s.logger.Error("rendering preview", zap.Error(err))
	}
}

// handleEdit applies one add, save or remove to a stored record.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req types.EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if req.Action != string(editing.ActionAdd) && strings.TrimSpace(req.ID) == "" {
		s.errorResponse(w, http.StatusBadRequest, "id is required for "+req.Action)
		return
	}

	rec, err := s.store.Get(r.Context(), req.UserID)
	if err != nil {
		s.failureResponse(w, http.StatusInternalServerError, msgFetchFailed, err)
		return
	}
	if rec == nil {
		s.errorResponse(w, http.StatusNotFound, msgUserNotFound)
		return
	}

	if err := editing.ApplyToRecord(rec, req.Collection, editing.ActionKind(req.Action), req.ID, req.Item); err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			s.failureResponse(w, status, "Failed to apply edit", err)
			return
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	if err := s.store.Put(r.Context(), req.UserID, rec); err != nil {
		s.failureResponse(w, http.StatusInternalServerError, "Failed to save portfolio", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "data": rec})
}

// validationMessage turns validator errors into "field is required" style text.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return fe.Field() + " is required"
	}
	return fe.Field() + " must be one of: " + fe.Param()
}
