package docs

import (
	"embed"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topic is one embedded help page: the slug addresses it (`rig docs views`),
// the title is its first markdown heading, for listings.
type Topic struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Topics lists the embedded pages, sorted by slug.
func Topics() []Topic {
	paths, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return nil
	}
	var topics []Topic
	for _, path := range paths {
		slug := strings.TrimSuffix(filepath.Base(path), ".md")
		if slug == "" {
			continue
		}
		body, err := contentFS.ReadFile(path)
		if err != nil {
			continue
		}
		topics = append(topics, Topic{Slug: slug, Title: titleOf(slug, string(body))})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Slug < topics[j].Slug })
	return topics
}

// Get returns the markdown body for a slug. Lookup is case-insensitive.
func Get(slug string) (string, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return "", false
	}
	b, err := contentFS.ReadFile(filepath.Join("content", slug+".md"))
	if err != nil {
		return "", false
	}
	return string(b), true
}

// titleOf takes the first level-one heading, falling back to the slug for
// pages without one.
func titleOf(slug, body string) string {
	for _, line := range strings.Split(body, "\n") {
		after, ok := strings.CutPrefix(strings.TrimSpace(line), "# ")
		if !ok || strings.HasPrefix(after, "#") {
			continue
		}
		if t := strings.TrimSpace(after); t != "" {
			return t
		}
	}
	return slug
}
