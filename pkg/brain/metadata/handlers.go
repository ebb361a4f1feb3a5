package metadata

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles metadata resolution requests
type Handler struct {
	resolver *Resolver
}

// NewHandler creates a new metadata handler
func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// Tweet resolves tweet embed metadata for ?url=
func (h *Handler) Tweet(c *gin.Context) {
	tweetURL := c.Query("url")
	if tweetURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tweet URL is required"})
		return
	}

	md, err := h.resolver.ResolveTweet(c.Request.Context(), tweetURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch tweet metadata"})
		return
	}

	c.JSON(http.StatusOK, md)
}

// Video resolves video embed metadata for ?url=
func (h *Handler) Video(c *gin.Context) {
	videoURL := c.Query("url")
	if videoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video URL is required"})
		return
	}

	md, err := h.resolver.ResolveVideo(c.Request.Context(), videoURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch video metadata"})
		return
	}

	c.JSON(http.StatusOK, md)
}

// RegisterRoutes registers metadata routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tweet-metadata", h.Tweet)
	rg.GET("/video-metadata", h.Video)
}
