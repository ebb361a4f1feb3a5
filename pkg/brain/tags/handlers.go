package tags

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/auth"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/models"
	"gorm.io/gorm"
)

// Handler handles tag-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new tags handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateTagRequest represents the request to create a tag
type CreateTagRequest struct {
	Title string `json:"title" binding:"required"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// List returns all tags owned by the caller
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var tags []models.Tag
	if err := h.db.Where("user_id = ?", userID).Order("title ASC").Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	responses := make([]TagResponse, len(tags))
	for i, tag := range tags {
		responses[i] = TagResponse{ID: tag.ID, Title: tag.Title}
	}

	c.JSON(http.StatusOK, responses)
}

// Create creates a new tag. Titles are unique per user.
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	var existing models.Tag
	if err := h.db.Where("user_id = ? AND title = ?", userID, title).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Tag already exists"})
		return
	}

	tag := models.Tag{UserID: userID, Title: title}
	if err := h.db.Create(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, TagResponse{ID: tag.ID, Title: tag.Title})
}

// RegisterRoutes registers tag routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.List)
	rg.POST("/tags", h.Create)
}
