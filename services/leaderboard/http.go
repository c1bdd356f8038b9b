package leaderboard

import (
	"context"
	"log"
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

// Leaderboard is the interface for the leaderboard read service.
type Leaderboard interface {
	GetLeaderboards(ctx context.Context, req LeaderboardRequest) (*Leaderboards, error)
	ListSeasons(ctx context.Context) ([]Season, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Leaderboard

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/boards", h.boardsHandler)
	r.GET("/seasons", h.seasonsHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) boardsHandler(c *gin.Context) {
	req := LeaderboardRequest{
		SeasonID:        c.Query("season"),
		IncludePlayoffs: c.Query("playoffs") == "true",
		SortColumn:      c.Query("sort"),
		SortDirection:   Descending,
	}
	if c.Query("direction") == string(Ascending) {
		req.SortDirection = Ascending
	}

	boards, err := h.Service.GetLeaderboards(c, req)
	if err != nil {
		log.Printf("Could not build leaderboards: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (h *httpHandler) seasonsHandler(c *gin.Context) {
	seasons, err := h.Service.ListSeasons(c)
	if err != nil {
		log.Printf("Could not list seasons: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"seasons": seasons})
}
