package store

import (
	"strings"

	"github.com/secondbrain-dev/secondbrain/pkg/brain/content"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/models"
)

// Filters is the active selection driving the derived visible list. Zero
// values are neutral: an empty type, tag set, or query filters nothing.
type Filters struct {
	ContentType models.ContentType
	TagIDs      []uint
	SearchQuery string
}

// Apply derives the visible list from the base collection. The three stages
// compose conjunctively; within the tag stage any selected tag matching is
// enough (OR semantics). The full matching set is returned, unranked.
func Apply(contents []content.ContentResponse, f Filters) []content.ContentResponse {
	filtered := make([]content.ContentResponse, 0, len(contents))
	for _, item := range contents {
		if !matchesType(item, f.ContentType) {
			continue
		}
		if !matchesTags(item, f.TagIDs) {
			continue
		}
		if !matchesSearch(item, f.SearchQuery) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func matchesType(item content.ContentResponse, contentType models.ContentType) bool {
	if contentType == "" {
		return true
	}
	return item.Type == contentType
}

func matchesTags(item content.ContentResponse, tagIDs []uint) bool {
	if len(tagIDs) == 0 {
		return true
	}
	for _, tag := range item.Tags {
		for _, id := range tagIDs {
			if tag.ID == id {
				return true
			}
		}
	}
	return false
}

func matchesSearch(item content.ContentResponse, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(item.Title), q) {
		return true
	}
	return item.Body != "" && strings.Contains(strings.ToLower(item.Body), q)
}
