package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Outline summarizes the structure of a page for design review.
type Outline struct {
	Title       string
	Description string
	HasViewport bool
	Headings    []string
	Sections    int
	Links       int
	Images      int
	Stylesheets int
	Scripts     int
	Fonts       []string
}

// ExtractOutline parses HTML and collects the page's structural signals.
func ExtractOutline(html string) (*Outline, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	o := &Outline{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		HasViewport: doc.Find(`meta[name="viewport"]`).Length() > 0,
		Sections:    doc.Find("section").Length(),
		Links:       doc.Find("a[href]").Length(),
		Images:      doc.Find("img").Length(),
		Stylesheets: doc.Find(`link[rel="stylesheet"], style`).Length(),
		Scripts:     doc.Find("script").Length(),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		o.Description = strings.TrimSpace(desc)
	}

	doc.Find("h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			o.Headings = append(o.Headings, goquery.NodeName(s)+": "+text)
		}
	})

	seen := map[string]bool{}
	doc.Find(`link[href*="fonts.googleapis.com"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		_, query, _ := strings.Cut(href, "?")
		// css2 repeats family=, the legacy API joins families with "|".
		for _, param := range strings.Split(query, "&") {
			value, ok := strings.CutPrefix(param, "family=")
			if !ok {
				continue
			}
			for _, family := range strings.Split(value, "|") {
				name, _, _ := strings.Cut(family, ":")
				name = strings.ReplaceAll(name, "+", " ")
				if name != "" && !seen[name] {
					seen[name] = true
					o.Fonts = append(o.Fonts, name)
				}
			}
		}
	})
	return o, nil
}

// String renders the outline as plain text for an LLM prompt.
func (o *Outline) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", o.Title)
	if o.Description != "" {
		fmt.Fprintf(&sb, "Meta description: %s\n", o.Description)
	}
	fmt.Fprintf(&sb, "Viewport meta tag: %t\n", o.HasViewport)
	fmt.Fprintf(&sb, "Sections: %d, links: %d, images: %d, stylesheets: %d, scripts: %d\n",
		o.Sections, o.Links, o.Images, o.Stylesheets, o.Scripts)
	if len(o.Fonts) > 0 {
		fmt.Fprintf(&sb, "Web fonts: %s\n", strings.Join(o.Fonts, ", "))
	}
	if len(o.Headings) > 0 {
		sb.WriteString("Headings:\n")
		for _, h := range o.Headings {
			fmt.Fprintf(&sb, "- %s\n", h)
		}
	}
	return sb.String()
}
