package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/secondbrain-dev/secondbrain/pkg/brain/models"
)

// ErrUpstream is returned when a metadata provider is unreachable or answers
// with a non-success status. Callers creating content must treat it as
// non-fatal and proceed without the metadata block.
var ErrUpstream = errors.New("metadata provider request failed")

const (
	defaultTweetEndpoint = "https://publish.twitter.com/oembed"
	defaultVideoEndpoint = "https://noembed.com/embed"
)

// Resolver fetches normalized oEmbed metadata for external URLs. It is
// stateless; endpoints and client are exported so tests can point it at a
// fake provider.
type Resolver struct {
	Client        *http.Client
	TweetEndpoint string
	VideoEndpoint string
}

// NewResolver creates a resolver against the public providers
func NewResolver() *Resolver {
	return &Resolver{
		Client:        &http.Client{Timeout: 10 * time.Second},
		TweetEndpoint: defaultTweetEndpoint,
		VideoEndpoint: defaultVideoEndpoint,
	}
}

// oembedPayload covers the superset of fields the two providers return
type oembedPayload struct {
	HTML         string `json:"html"`
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ProviderName string `json:"provider_name"`
	ProviderURL  string `json:"provider_url"`
	CacheAge     string `json:"cache_age"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// ResolveTweet fetches tweet embed metadata and stamps the input URL into the
// result as tweet_url.
func (r *Resolver) ResolveTweet(ctx context.Context, tweetURL string) (*models.TweetMetadata, error) {
	payload, err := r.fetch(ctx, r.TweetEndpoint, tweetURL)
	if err != nil {
		return nil, err
	}

	return &models.TweetMetadata{
		AuthorName:   payload.AuthorName,
		AuthorURL:    payload.AuthorURL,
		HTML:         payload.HTML,
		ProviderName: payload.ProviderName,
		ProviderURL:  payload.ProviderURL,
		CacheAge:     payload.CacheAge,
		TweetURL:     tweetURL,
	}, nil
}

// ResolveVideo fetches video embed metadata and stamps the input URL into the
// result as video_url.
func (r *Resolver) ResolveVideo(ctx context.Context, videoURL string) (*models.VideoMetadata, error) {
	payload, err := r.fetch(ctx, r.VideoEndpoint, videoURL)
	if err != nil {
		return nil, err
	}

	return &models.VideoMetadata{
		HTML:         payload.HTML,
		Title:        payload.Title,
		AuthorName:   payload.AuthorName,
		AuthorURL:    payload.AuthorURL,
		ProviderName: payload.ProviderName,
		ProviderURL:  payload.ProviderURL,
		ThumbnailURL: payload.ThumbnailURL,
		VideoURL:     videoURL,
	}, nil
}

func (r *Resolver) fetch(ctx context.Context, endpoint, target string) (*oembedPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?url="+url.QueryEscape(target), nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var payload oembedPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return &payload, nil
}
