package content

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/auth"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/metadata"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Handler handles content-related requests
type Handler struct {
	db       *gorm.DB
	resolver *metadata.Resolver
	log      *zap.Logger
}

// NewHandler creates a new content handler
func NewHandler(db *gorm.DB, resolver *metadata.Resolver, log *zap.Logger) *Handler {
	return &Handler{db: db, resolver: resolver, log: log}
}

// CreateContentRequest represents the request to create content. Metadata
// blocks may be supplied by clients that resolved them up front; otherwise
// the server attempts resolution for tweet/video types.
type CreateContentRequest struct {
	Title         string                `json:"title" binding:"required"`
	Body          string                `json:"body"`
	Type          models.ContentType    `json:"type"`
	Link          string                `json:"link"`
	Tags          []uint                `json:"tags"`
	TweetMetadata *models.TweetMetadata `json:"tweet_metadata"`
	VideoMetadata *models.VideoMetadata `json:"video_metadata"`
}

// UpdateContentRequest represents the request to update content. Only the
// provided fields are replaced.
type UpdateContentRequest struct {
	Title string             `json:"title"`
	Body  *string            `json:"body"`
	Type  models.ContentType `json:"type"`
	Link  *string            `json:"link"`
	Tags  *[]uint            `json:"tags"`
}

// TagRef identifies a tag attached to content
type TagRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// ContentResponse represents a content item in API responses
type ContentResponse struct {
	ID            uint                  `json:"id"`
	Title         string                `json:"title"`
	Body          string                `json:"body,omitempty"`
	Type          models.ContentType    `json:"type"`
	Link          string                `json:"link,omitempty"`
	TweetMetadata *models.TweetMetadata `json:"tweet_metadata,omitempty"`
	VideoMetadata *models.VideoMetadata `json:"video_metadata,omitempty"`
	Tags          []TagRef              `json:"tags"`
	CreatedAt     string                `json:"created_at"`
	UpdatedAt     string                `json:"updated_at"`
}

// ToResponse converts a content model to its API representation
func ToResponse(content models.Content) ContentResponse {
	tags := make([]TagRef, len(content.Tags))
	for i, t := range content.Tags {
		tags[i] = TagRef{ID: t.ID, Title: t.Title}
	}

	resp := ContentResponse{
		ID:        content.ID,
		Title:     content.Title,
		Body:      content.Body,
		Type:      content.Type,
		Link:      content.Link,
		Tags:      tags,
		CreatedAt: content.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: content.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if content.TweetMetadata != nil {
		md := content.TweetMetadata.Data()
		resp.TweetMetadata = &md
	}
	if content.VideoMetadata != nil {
		md := content.VideoMetadata.Data()
		resp.VideoMetadata = &md
	}
	return resp
}

// loadTags fetches the caller's tags for the given IDs, failing validation
// when any ID is unknown or owned by someone else.
func (h *Handler) loadTags(userID uint, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var tags []models.Tag
	if err := h.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&tags).Error; err != nil {
		return nil, err
	}

	found := make(map[uint]bool, len(tags))
	for _, t := range tags {
		found[t.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return tags, nil
}

// attachMetadata resolves the embed block for tweet/video content when the
// client did not supply one. Resolution failure is non-fatal: the content is
// created without metadata.
func (h *Handler) attachMetadata(c *gin.Context, content *models.Content) {
	switch content.Type {
	case models.TypeTweet:
		if content.TweetMetadata != nil || content.Link == "" {
			return
		}
		md, err := h.resolver.ResolveTweet(c.Request.Context(), content.Link)
		if err != nil {
			h.log.Warn("tweet metadata resolution failed",
				zap.String("url", content.Link), zap.Error(err))
			return
		}
		content.TweetMetadata = models.JSONOf(*md)
	case models.TypeVideo:
		if content.VideoMetadata != nil || content.Link == "" {
			return
		}
		md, err := h.resolver.ResolveVideo(c.Request.Context(), content.Link)
		if err != nil {
			h.log.Warn("video metadata resolution failed",
				zap.String("url", content.Link), zap.Error(err))
			return
		}
		content.VideoMetadata = models.JSONOf(*md)
	}
}

// List returns all content owned by the caller, in creation order
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var contents []models.Content
	if err := h.db.Preload("Tags").Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").Find(&contents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch content"})
		return
	}

	responses := make([]ContentResponse, len(contents))
	for i, content := range contents {
		responses[i] = ToResponse(content)
	}

	c.JSON(http.StatusOK, responses)
}

// Create creates a new content item
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	contentType := req.Type
	if contentType == "" {
		contentType = models.TypeText
	}
	if !contentType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content type"})
		return
	}
	if contentType.RequiresLink() && req.Link == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Link is required for this content type"})
		return
	}
	if req.TweetMetadata != nil && contentType != models.TypeTweet {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tweet metadata is only valid for tweet content"})
		return
	}
	if req.VideoMetadata != nil && contentType != models.TypeVideo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video metadata is only valid for video content"})
		return
	}

	tags, err := h.loadTags(userID, req.Tags)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown tag"})
		return
	}

	content := models.Content{
		UserID: userID,
		Title:  strings.TrimSpace(req.Title),
		Body:   req.Body,
		Type:   contentType,
		Link:   req.Link,
		Tags:   tags,
	}
	if req.TweetMetadata != nil {
		content.TweetMetadata = models.JSONOf(*req.TweetMetadata)
	}
	if req.VideoMetadata != nil {
		content.VideoMetadata = models.JSONOf(*req.VideoMetadata)
	}

	h.attachMetadata(c, &content)

	if err := h.db.Create(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create content"})
		return
	}

	c.JSON(http.StatusCreated, ToResponse(content))
}

// Get returns one content item by ID
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	var content models.Content
	if err := h.db.Preload("Tags").Where("id = ? AND user_id = ?", id, userID).
		First(&content).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	c.JSON(http.StatusOK, ToResponse(content))
}

// Update replaces the provided fields of a content item
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	var content models.Content
	if err := h.db.Preload("Tags").Where("id = ? AND user_id = ?", id, userID).
		First(&content).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	var req UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != "" {
		content.Title = strings.TrimSpace(req.Title)
	}
	if req.Body != nil {
		content.Body = *req.Body
	}
	if req.Link != nil {
		content.Link = *req.Link
	}
	if req.Type != "" && req.Type != content.Type {
		if !req.Type.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content type"})
			return
		}
		content.Type = req.Type
		// Metadata blocks only make sense for their matching type
		if content.Type != models.TypeTweet {
			content.TweetMetadata = nil
		}
		if content.Type != models.TypeVideo {
			content.VideoMetadata = nil
		}
	}
	if content.Type.RequiresLink() && content.Link == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Link is required for this content type"})
		return
	}

	if req.Tags != nil {
		tags, err := h.loadTags(userID, *req.Tags)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown tag"})
			return
		}
		if err := h.db.Model(&content).Association("Tags").Replace(tags); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tags"})
			return
		}
		content.Tags = tags
	}

	if err := h.db.Save(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update content"})
		return
	}

	c.JSON(http.StatusOK, ToResponse(content))
}

// Delete removes a content item
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	var content models.Content
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&content).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	if err := h.db.Select(clause.Associations).Delete(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted"})
}

// RegisterRoutes registers content routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/content", h.List)
	rg.POST("/content", h.Create)
	rg.GET("/content/:id", h.Get)
	rg.PUT("/content/:id", h.Update)
	rg.DELETE("/content/:id", h.Delete)
}
