// Package schemas embeds the JSON Schema documents for LLM output and stored records.
package schemas

import "embed"

// Schema file names.
const (
	Extraction      = "extraction.schema.json"
	WebsiteAnalysis = "website_analysis.schema.json"
	Portfolio       = "portfolio.schema.json"
)

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
