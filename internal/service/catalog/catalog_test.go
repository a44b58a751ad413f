package catalog

import (
	"fmt"
	"testing"

	"google.golang.org/api/youtube/v3"

	"github.com/kjohnson/ytreport/pkg/errors"
)

func searchPage(nextToken string, ids ...string) *youtube.SearchListResponse {
	resp := &youtube.SearchListResponse{NextPageToken: nextToken}
	for _, id := range ids {
		resp.Items = append(resp.Items, &youtube.SearchResult{
			Id:      &youtube.ResourceId{VideoId: id},
			Snippet: &youtube.SearchResultSnippet{Title: "title " + id, PublishedAt: "2025-09-03T12:00:00Z"},
		})
	}
	return resp
}

func TestCollectListingMultiPage(t *testing.T) {
	pages := map[string]*youtube.SearchListResponse{
		"":   searchPage("p2", "a", "b"),
		"p2": searchPage("p3", "c"),
		"p3": searchPage("", "d"),
	}
	var tokens []string

	result := collectListing(func(pageToken string) (*youtube.SearchListResponse, error) {
		tokens = append(tokens, pageToken)
		return pages[pageToken], nil
	})

	if !result.Complete {
		t.Fatalf("result incomplete: %v", result.Errs)
	}
	if len(result.Videos) != 4 {
		t.Fatalf("got %d videos, want 4", len(result.Videos))
	}
	if result.Videos[0].ID != "a" || result.Videos[3].ID != "d" {
		t.Errorf("page order not preserved: %+v", result.Videos)
	}
	if len(tokens) != 3 || tokens[1] != "p2" || tokens[2] != "p3" {
		t.Errorf("page tokens = %v", tokens)
	}
}

func TestCollectListingPartialOnFailure(t *testing.T) {
	calls := 0
	result := collectListing(func(pageToken string) (*youtube.SearchListResponse, error) {
		calls++
		if pageToken == "" {
			return searchPage("p2", "a", "b"), nil
		}
		return nil, fmt.Errorf("quota exceeded")
	})

	if result.Complete {
		t.Fatal("mid-pagination failure must mark the result incomplete")
	}
	if len(result.Videos) != 2 {
		t.Errorf("got %d videos, want the 2 fetched before the failure", len(result.Videos))
	}
	if calls != 2 {
		t.Errorf("fetcher called %d times, want 2 (no retry loop)", calls)
	}
	if len(result.Errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(result.Errs))
	}
	if _, ok := result.Errs[0].(*errors.RemoteError); !ok {
		t.Errorf("error is %T, want *errors.RemoteError", result.Errs[0])
	}
}

func TestDecodeListingPageSkipsMalformed(t *testing.T) {
	resp := &youtube.SearchListResponse{
		Items: []*youtube.SearchResult{
			{Id: &youtube.ResourceId{VideoId: "v1"}, Snippet: &youtube.SearchResultSnippet{Title: "ok", PublishedAt: "2025-09-03T12:00:00Z"}},
			{Id: nil, Snippet: &youtube.SearchResultSnippet{Title: "no id"}},
			{Id: &youtube.ResourceId{VideoId: ""}, Snippet: &youtube.SearchResultSnippet{Title: "blank id"}},
			{Id: &youtube.ResourceId{VideoId: "v2"}, Snippet: nil},
			{Id: &youtube.ResourceId{VideoId: "v3"}, Snippet: &youtube.SearchResultSnippet{Title: "bad time", PublishedAt: "yesterday"}},
		},
	}

	entries := decodeListingPage(resp)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ID != "v1" || entries[0].Title != "ok" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[0].PublishedAt.IsZero() {
		t.Error("valid timestamp should be parsed")
	}
	// An unparseable timestamp keeps the entry, with a zero time.
	if entries[1].ID != "v3" || !entries[1].PublishedAt.IsZero() {
		t.Errorf("second entry = %+v", entries[1])
	}
}
