package cvextract

import (
	"fmt"
	"strings"
)

// MaxUploadSize is the largest CV upload accepted, in bytes.
const MaxUploadSize = 5 * 1024 * 1024

// Upload error messages returned to clients.
const (
	MsgNoFile          = "No file provided"
	MsgInvalidType     = "Invalid file type. Please upload a PDF document."
	MsgTooLarge        = "File too large. Maximum size is 5MB."
	MsgUnsupportedType = "Unsupported file format. Please upload a PDF or DOCX file."
)

// UploadError represents a rejected CV upload.
type UploadError struct {
	Filename string
	Message  string
}

func (e *UploadError) Error() string {
	if e.Filename == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Filename)
}

// ValidateUpload checks a single-file CV upload. The file is accepted when either
// the content type mentions pdf or the name ends in .pdf, and size is at most MaxUploadSize.
func ValidateUpload(filename, contentType string, size int64) error {
	if !strings.Contains(strings.ToLower(contentType), "pdf") &&
		!strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return &UploadError{Filename: filename, Message: MsgInvalidType}
	}
	if size > MaxUploadSize {
		return &UploadError{Filename: filename, Message: MsgTooLarge}
	}
	return nil
}

// ValidatePipelineUpload checks a CV attached to the full generation form, which
// accepts .pdf and .docx by extension.
func ValidatePipelineUpload(filename string, size int64) error {
	lower := strings.ToLower(filename)
	if !strings.HasSuffix(lower, ".pdf") && !strings.HasSuffix(lower, ".docx") {
		return &UploadError{Filename: filename, Message: MsgUnsupportedType}
	}
	if size > MaxUploadSize {
		return &UploadError{Filename: filename, Message: MsgTooLarge}
	}
	return nil
}
