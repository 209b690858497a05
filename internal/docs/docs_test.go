package docs

import (
	"sort"
	"strings"
	"testing"
)

func TestTopics_SlugsSortedWithHeadingTitles(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatal("expected embedded topics")
	}
	if !sort.SliceIsSorted(topics, func(i, j int) bool { return topics[i].Slug < topics[j].Slug }) {
		t.Fatalf("topics not sorted by slug: %+v", topics)
	}
	for _, topic := range topics {
		if topic.Title == "" {
			t.Fatalf("topic %q has no title", topic.Slug)
		}
		if topic.Title == topic.Slug {
			t.Fatalf("topic %q should take its title from the page heading", topic.Slug)
		}
	}
}

func TestGet_BodyMatchesListedTopic(t *testing.T) {
	for _, topic := range Topics() {
		body, ok := Get(topic.Slug)
		if !ok {
			t.Fatalf("listed topic %q not gettable", topic.Slug)
		}
		if !strings.Contains(body, "# "+topic.Title) {
			t.Fatalf("body of %q does not carry its heading %q", topic.Slug, topic.Title)
		}
	}
}

func TestGet_UnknownAndCaseInsensitive(t *testing.T) {
	if _, ok := Get("no-such-topic"); ok {
		t.Fatal("unknown slug should not resolve")
	}
	if _, ok := Get(""); ok {
		t.Fatal("empty slug should not resolve")
	}
	if _, ok := Get(" Views "); !ok {
		t.Fatal("lookup should trim and lowercase the slug")
	}
}

func TestTitleOf_FallsBackToSlug(t *testing.T) {
	if got := titleOf("plain", "no heading here\njust text\n"); got != "plain" {
		t.Fatalf("fallback title: got %q want %q", got, "plain")
	}
	if got := titleOf("x", "## minor\n# Real Title\n"); got != "Real Title" {
		t.Fatalf("heading title: got %q", got)
	}
}
