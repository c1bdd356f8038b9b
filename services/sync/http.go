package sync

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Sync is the interface for the provider sync service.
type Sync interface {
	SyncClubMatches(c *gin.Context, clubSlug, clubID, platform string, force bool) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Sync

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/club/:club_slug", h.syncClubMatchesHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) syncClubMatchesHandler(c *gin.Context) {
	clubSlug := c.Param("club_slug")

	clubID := c.Query("clubId")
	platform := c.Query("platform")
	if platform == "" {
		platform = "common-gen5"
	}
	forceParam := c.Query("force")
	if forceParam != "" {
		fmt.Printf("The 'force' parameter value is: %s\n", forceParam)
	}

	err := s.Service.SyncClubMatches(c, clubSlug, clubID, platform, forceParam == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
}
