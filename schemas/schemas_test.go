package schemas

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range []string{Extraction, WebsiteAnalysis, Portfolio} {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := fs.ReadFile(FS, schemaFile)
			require.NoError(t, err, "schema file should be embedded")

			var schema map[string]any
			require.NoError(t, json.Unmarshal(data, &schema), "schema should be valid JSON")

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schema["$schema"])
			assert.NotEmpty(t, schema["title"])
			assert.Equal(t, "object", schema["type"])
		})
	}
}

func TestEmbeddedFiles(t *testing.T) {
	matches, err := fs.Glob(FS, "*.schema.json")
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}
