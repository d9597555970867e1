package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePortfolioHTML = `<!DOCTYPE html>
<html>
<head>
	<title> Jane Doe | Designer </title>
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<meta name="description" content="Product designer in Berlin">
	<link rel="stylesheet" href="/site.css">
	<link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;700&family=Space+Grotesk&display=swap" rel="stylesheet">
	<script src="/app.js"></script>
</head>
<body>
	<section><h1>Jane   Doe</h1><img src="me.png"></section>
	<section><h2>Work</h2><a href="/a">A</a><a href="/b">B</a></section>
	<section><h3></h3></section>
</body>
</html>`

func TestExtractOutline(t *testing.T) {
	o, err := ExtractOutline(samplePortfolioHTML)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe | Designer", o.Title)
	assert.Equal(t, "Product designer in Berlin", o.Description)
	assert.True(t, o.HasViewport)
	assert.Equal(t, []string{"h1: Jane Doe", "h2: Work"}, o.Headings)
	assert.Equal(t, 3, o.Sections)
	assert.Equal(t, 2, o.Links)
	assert.Equal(t, 1, o.Images)
	assert.Equal(t, 2, o.Stylesheets)
	assert.Equal(t, 1, o.Scripts)
	assert.Equal(t, []string{"Inter", "Space Grotesk"}, o.Fonts)
}

func TestOutline_String(t *testing.T) {
	o, err := ExtractOutline(samplePortfolioHTML)
	require.NoError(t, err)

	s := o.String()
	assert.Contains(t, s, "Viewport meta tag: true")
	assert.Contains(t, s, "Web fonts: Inter, Space Grotesk")
	assert.Contains(t, s, "- h2: Work")
}

func TestExtractOutline_Empty(t *testing.T) {
	o, err := ExtractOutline("")
	require.NoError(t, err)
	assert.False(t, o.HasViewport)
	assert.Empty(t, o.Headings)
}
