// Package prompts loads the LLM prompt templates used for profile extraction
// and website analysis. Templates are JSON files embedded at compile time,
// each mapping a key to a prompt with {{.Name}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Prompt files and keys.
const (
	FileExtraction      = "extraction.json"
	FileWebsiteAnalysis = "website_analysis.json"

	KeySystem         = "system"
	KeyExtractProfile = "extract-profile"
	KeyAnalyzeWebsite = "analyze-website"
)

//go:embed *.json
var promptFiles embed.FS

var placeholderRE = regexp.MustCompile(`\{\{\.([A-Za-z][A-Za-z0-9]*)\}\}`)

// file is one parsed prompt file. err is set when the file is missing or
// malformed so repeated lookups report the same failure.
type file struct {
	prompts map[string]string
	err     error
}

var (
	filesMu sync.Mutex
	files   = map[string]*file{}
)

func lookup(name string) (map[string]string, error) {
	filesMu.Lock()
	defer filesMu.Unlock()

	if f, ok := files[name]; ok {
		return f.prompts, f.err
	}

	f := &file{}
	raw, err := promptFiles.ReadFile(name)
	switch {
	case err != nil:
		f.err = fmt.Errorf("failed to read prompt file %s: %w", name, err)
	default:
		if err := json.Unmarshal(raw, &f.prompts); err != nil {
			f.err = fmt.Errorf("failed to parse prompt file %s: %w", name, err)
			f.prompts = nil
		}
	}
	files[name] = f
	return f.prompts, f.err
}

// Get retrieves a prompt by filename and key.
func Get(filename, key string) (string, error) {
	set, err := lookup(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := set[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts the binary cannot run without.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Placeholders lists the distinct placeholder names in a template, in order
// of first appearance.
func Placeholders(template string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range placeholderRE.FindAllStringSubmatch(template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Build loads a prompt and fills its placeholders from data. Every
// placeholder in the template must have a value.
func Build(filename, key string, data map[string]string) (string, error) {
	prompt, err := Get(filename, key)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, name := range Placeholders(prompt) {
		if _, ok := data[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("prompt %s/%s: no value for %s", filename, key, strings.Join(missing, ", "))
	}
	return Format(prompt, data), nil
}

// Format substitutes {{.Key}} placeholders in a single pass, so values that
// themselves look like placeholders are not expanded. Unknown placeholders
// are left in place.
func Format(template string, data map[string]string) string {
	return placeholderRE.ReplaceAllStringFunc(template, func(m string) string {
		if v, ok := data[m[3:len(m)-2]]; ok {
			return v
		}
		return m
	})
}

// ClearCache drops parsed prompt files.
func ClearCache() {
	filesMu.Lock()
	files = map[string]*file{}
	filesMu.Unlock()
}

// List returns the prompt keys in a file, sorted.
func List(filename string) ([]string, error) {
	set, err := lookup(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
