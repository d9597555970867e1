package cvextract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-generator/internal/types"
)

func TestDetectArchetype(t *testing.T) {
	tests := []struct {
		filename string
		want     Archetype
	}{
		{"Jane_UX_Resume.pdf", Designer},
		{"portfolio-DESIGN.pdf", Designer},
		{"john_ui.pdf", Designer},
		{"alex_dev_cv.pdf", Developer},
		{"SoftwareEngineer.pdf", Developer},
		{"code_samples.pdf", Developer},
		{"sam_manager.pdf", Manager},
		{"TeamLead.pdf", Manager},
		{"director_cv.pdf", Manager},
		{"resume.pdf", Generic},
		{"", Generic},
		// designer keywords win over later archetypes
		{"lead_designer_dev.pdf", Designer},
		{"dev_lead.pdf", Developer},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectArchetype(tt.filename))
		})
	}
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Jane_UX_Resume.pdf", "Jane"},
		{"JaneDoe_UX_Resume.pdf", "Jane Doe"},
		{"jane.doe.pdf", "Jane"},
		{"MARIA.pdf", "M A R I A"},
		{"_resume.pdf", FallbackName},
		{".pdf", FallbackName},
		{"", FallbackName},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveName(tt.filename))
		})
	}
}

func TestInferProfile_Designer(t *testing.T) {
	rec := InferProfile("Jane_UX_Resume.pdf")

	assert.Equal(t, "Jane", rec.BasicInfo.Name)
	assert.Equal(t, "UI/UX Designer", rec.BasicInfo.Title)
	assert.Equal(t, "jane@example.com", rec.BasicInfo.Email)
	assert.Equal(t, "San Francisco, CA", rec.BasicInfo.Location)
	require.Len(t, rec.Projects, 1)
	assert.Equal(t, types.SourceCV, rec.Projects[0].Source)
	assert.Len(t, rec.Skills.Languages, 2)
}

func TestInferProfile_Developer(t *testing.T) {
	rec := InferProfile("JohnSmith_dev.pdf")

	assert.Equal(t, "John Smith", rec.BasicInfo.Name)
	assert.Equal(t, "john.smith@example.com", rec.BasicInfo.Email)
	assert.Equal(t, "Full Stack Developer", rec.BasicInfo.Title)
	assert.Equal(t, "Tech Solutions Inc.", rec.Experience[0].Company)
}

func TestInferProfile_ManagerUsesGenericBase(t *testing.T) {
	manager := InferProfile("pat_director.pdf")
	generic := InferProfile("pat_cv.pdf")

	assert.Equal(t, "Manager", manager.BasicInfo.Title)
	assert.Equal(t, "Professional", generic.BasicInfo.Title)
	assert.Equal(t, generic.Experience[0].Company, manager.Experience[0].Company)
	assert.Equal(t, generic.Skills, manager.Skills)
}

func TestInferProfile_TemplatesAreIndependentCopies(t *testing.T) {
	first := InferProfile("a_design.pdf")
	first.Skills.Design[0].Name = "mutated"

	second := InferProfile("b_design.pdf")
	assert.Equal(t, "UI Design", second.Skills.Design[0].Name)
}

func TestInferProfile_AlwaysComplete(t *testing.T) {
	for _, name := range []string{"", "_", "résumé.pdf", "a_b_c_d", "UX"} {
		rec := InferProfile(name)
		assert.True(t, rec.Valid(), name)
		assert.NotNil(t, rec.Skills.Technical, name)
		assert.NotNil(t, rec.Skills.Design, name)
		assert.NotNil(t, rec.Skills.Soft, name)
		assert.NotNil(t, rec.Skills.Languages, name)
		assert.NotNil(t, rec.SocialLinks, name)
	}
}

func TestGenericProfile(t *testing.T) {
	rec := GenericProfile()
	assert.Equal(t, FallbackName, rec.BasicInfo.Name)
	assert.Equal(t, "Experienced Professional", rec.BasicInfo.Title)
	assert.Len(t, rec.Experience, 2)
	assert.Len(t, rec.Projects, 2)
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantMsg     string
	}{
		{"4MB pdf accepted", "cv.pdf", "application/pdf", 4 * 1024 * 1024, ""},
		{"pdf content type without extension", "cv", "application/pdf", 100, ""},
		{"pdf extension without content type", "CV.PDF", "", 100, ""},
		{"exactly max size", "cv.pdf", "application/pdf", MaxUploadSize, ""},
		{"6MB rejected", "cv.pdf", "application/pdf", 6 * 1024 * 1024, MsgTooLarge},
		{"txt rejected", "cv.txt", "text/plain", 100, MsgInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.filename, tt.contentType, tt.size)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			var uploadErr *UploadError
			require.True(t, errors.As(err, &uploadErr))
			assert.Equal(t, tt.wantMsg, uploadErr.Message)
		})
	}
}

func TestValidatePipelineUpload(t *testing.T) {
	assert.NoError(t, ValidatePipelineUpload("cv.pdf", 10))
	assert.NoError(t, ValidatePipelineUpload("cv.DOCX", 10))

	err := ValidatePipelineUpload("cv.txt", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgUnsupportedType)

	err = ValidatePipelineUpload("cv.pdf", MaxUploadSize+1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgTooLarge)
}
