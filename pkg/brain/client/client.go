package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/secondbrain-dev/secondbrain/pkg/brain/auth"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/content"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/models"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/share"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/tags"
)

// Client is a typed HTTP client for the API. It holds the bearer token
// obtained at signin and attaches it to every request.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

// New creates a client for the given base URL (e.g. "http://localhost:8080")
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the server
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// SetToken replaces the bearer token (e.g. one restored from disk)
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token
func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &APIError{Status: resp.StatusCode, Message: errBody.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// SignUp creates an account and stores the returned token on the client
func (c *Client) SignUp(ctx context.Context, username, password string) (*auth.AuthResponse, error) {
	var resp auth.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/signup",
		auth.SignupRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// SignIn authenticates and stores the returned token on the client
func (c *Client) SignIn(ctx context.Context, username, password string) (*auth.AuthResponse, error) {
	var resp auth.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/signin",
		auth.SigninRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Me resolves the identity behind the stored token
func (c *Client) Me(ctx context.Context) (*auth.UserResponse, error) {
	var resp auth.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Contents fetches the caller's full content collection
func (c *Client) Contents(ctx context.Context) ([]content.ContentResponse, error) {
	var resp []content.ContentResponse
	if err := c.do(ctx, http.MethodGet, "/api/content", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateContent creates a content item as-is
func (c *Client) CreateContent(ctx context.Context, req content.CreateContentRequest) (*content.ContentResponse, error) {
	var resp content.ContentResponse
	if err := c.do(ctx, http.MethodPost, "/api/content", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateContentWithMetadata resolves the embed block for tweet/video content
// before submitting. Metadata failure never blocks submission; the item is
// created without the block.
func (c *Client) CreateContentWithMetadata(ctx context.Context, req content.CreateContentRequest) (*content.ContentResponse, error) {
	if req.Link != "" {
		switch req.Type {
		case models.TypeTweet:
			if req.TweetMetadata == nil {
				if md, err := c.TweetMetadata(ctx, req.Link); err == nil {
					req.TweetMetadata = md
				}
			}
		case models.TypeVideo:
			if req.VideoMetadata == nil {
				if md, err := c.VideoMetadata(ctx, req.Link); err == nil {
					req.VideoMetadata = md
				}
			}
		}
	}
	return c.CreateContent(ctx, req)
}

// GetContent fetches one content item
func (c *Client) GetContent(ctx context.Context, id uint) (*content.ContentResponse, error) {
	var resp content.ContentResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/content/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateContent replaces the provided fields of a content item
func (c *Client) UpdateContent(ctx context.Context, id uint, req content.UpdateContentRequest) (*content.ContentResponse, error) {
	var resp content.ContentResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/content/%d", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteContent removes a content item
func (c *Client) DeleteContent(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/content/%d", id), nil, nil)
}

// Tags fetches the caller's tags
func (c *Client) Tags(ctx context.Context) ([]tags.TagResponse, error) {
	var resp []tags.TagResponse
	if err := c.do(ctx, http.MethodGet, "/api/tags", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateTag creates a tag
func (c *Client) CreateTag(ctx context.Context, title string) (*tags.TagResponse, error) {
	var resp tags.TagResponse
	if err := c.do(ctx, http.MethodPost, "/api/tags", tags.CreateTagRequest{Title: title}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TweetMetadata resolves tweet embed metadata for a URL
func (c *Client) TweetMetadata(ctx context.Context, tweetURL string) (*models.TweetMetadata, error) {
	var resp models.TweetMetadata
	if err := c.do(ctx, http.MethodGet, "/api/tweet-metadata?url="+url.QueryEscape(tweetURL), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VideoMetadata resolves video embed metadata for a URL
func (c *Client) VideoMetadata(ctx context.Context, videoURL string) (*models.VideoMetadata, error) {
	var resp models.VideoMetadata
	if err := c.do(ctx, http.MethodGet, "/api/video-metadata?url="+url.QueryEscape(videoURL), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateShare mints (or returns) the caller's share link
func (c *Client) CreateShare(ctx context.Context) (*share.ShareResponse, error) {
	var resp share.ShareResponse
	if err := c.do(ctx, http.MethodPost, "/api/share", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RevokeShare deletes the caller's share link
func (c *Client) RevokeShare(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/share", nil, nil)
}

// ResolveShare fetches the read-only view behind a share hash
func (c *Client) ResolveShare(ctx context.Context, hash string) (*share.SharedBrainResponse, error) {
	var resp share.SharedBrainResponse
	if err := c.do(ctx, http.MethodGet, "/api/share/"+hash, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
