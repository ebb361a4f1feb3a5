package store

import (
	"context"

	"github.com/secondbrain-dev/secondbrain/pkg/brain/client"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/content"
)

// Hydrate refetches the full content and tag collections into the store.
// Filtering after this point is purely local until the next Hydrate.
func Hydrate(ctx context.Context, c *client.Client, s *Store) error {
	s.Dispatch(StartLoading{})

	contents, err := c.Contents(ctx)
	if err != nil {
		s.Dispatch(Fail{Message: err.Error()})
		return err
	}
	s.Dispatch(LoadContents{Contents: contents})

	tagList, err := c.Tags(ctx)
	if err != nil {
		s.Dispatch(Fail{Message: err.Error()})
		return err
	}
	s.Dispatch(LoadTags{Tags: tagList})

	return nil
}

// CreateAndMerge submits new content (resolving embed metadata first, where
// applicable) and optimistically merges the created item into the mirror. On
// failure the mirror is left untouched.
func CreateAndMerge(ctx context.Context, c *client.Client, s *Store, req content.CreateContentRequest) (*content.ContentResponse, error) {
	created, err := c.CreateContentWithMetadata(ctx, req)
	if err != nil {
		s.Dispatch(Fail{Message: err.Error()})
		return nil, err
	}
	s.Dispatch(AddContent{Content: *created})
	return created, nil
}

// DeleteAndRemove deletes content server-side and drops it from the mirror.
// On failure the mirror is left untouched.
func DeleteAndRemove(ctx context.Context, c *client.Client, s *Store, id uint) error {
	if err := c.DeleteContent(ctx, id); err != nil {
		s.Dispatch(Fail{Message: err.Error()})
		return err
	}
	s.Dispatch(RemoveContent{ID: id})
	return nil
}
