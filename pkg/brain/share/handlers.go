package share

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/auth"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/content"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/models"
	"gorm.io/gorm"
)

// Handler handles share-link requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new share handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ShareResponse represents a minted share link
type ShareResponse struct {
	Hash      string `json:"hash"`
	CreatedAt string `json:"created_at"`
}

// SharedBrainResponse is the read-only view returned for a resolved hash
type SharedBrainResponse struct {
	Username string                    `json:"username"`
	Contents []content.ContentResponse `json:"contents"`
}

// newHash mints an opaque share token
func newHash() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Create mints a share link for the caller. Minting is idempotent: an
// existing link is returned rather than rotated.
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var existing models.ShareLink
	if err := h.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, ShareResponse{
			Hash:      existing.Hash,
			CreatedAt: existing.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
		return
	}

	link := models.ShareLink{
		Hash:   newHash(),
		UserID: userID,
	}
	if err := h.db.Create(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create share link"})
		return
	}

	c.JSON(http.StatusCreated, ShareResponse{
		Hash:      link.Hash,
		CreatedAt: link.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// Revoke deletes the caller's share link. Resolving the old hash afterwards
// returns 404.
func (h *Handler) Revoke(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	result := h.db.Where("user_id = ?", userID).Delete(&models.ShareLink{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke share link"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Share link not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Share link revoked"})
}

// Resolve returns the read-only content set behind a share hash. Public; no
// edit capability is exposed and no other user's data is reachable.
func (h *Handler) Resolve(c *gin.Context) {
	hash := c.Param("hash")

	var link models.ShareLink
	if err := h.db.Where("hash = ?", hash).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Share link not found"})
		return
	}

	var user models.User
	if err := h.db.First(&user, link.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Share link not found"})
		return
	}

	var contents []models.Content
	if err := h.db.Preload("Tags").Where("user_id = ?", link.UserID).
		Order("created_at ASC, id ASC").Find(&contents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shared content"})
		return
	}

	responses := make([]content.ContentResponse, len(contents))
	for i, item := range contents {
		responses[i] = content.ToResponse(item)
	}

	c.JSON(http.StatusOK, SharedBrainResponse{
		Username: user.Username,
		Contents: responses,
	})
}

// RegisterRoutes registers the authenticated share routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/share", h.Create)
	rg.DELETE("/share", h.Revoke)
}

// RegisterPublicRoutes registers the unauthenticated resolution route
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/share/:hash", h.Resolve)
}
