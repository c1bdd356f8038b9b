package matches

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	eashl "github.com/icetilt/league-sync/repos/eashl"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Matches is the interface for the match reconciliation service.
type Matches interface {
	LinkProviderGame(ctx context.Context, gameID, providerMatchID string) (*Match, error)
	SubmitManualStats(ctx context.Context, req ManualStatsRequest) (*Match, error)
	MergeProviderGames(ctx context.Context, gameID string, providerMatchIDs []string) (*MergeResponse, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Matches

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/game/:game_id/link", h.linkHandler)
	r.POST("/game/:game_id/merge", h.mergeHandler)
	r.POST("/manual", h.manualHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) linkHandler(c *gin.Context) {
	gameID := c.Param("game_id")

	var request LinkRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	match, err := h.Service.LinkProviderGame(c, gameID, request.ProviderMatchID)
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

func (h *httpHandler) mergeHandler(c *gin.Context) {
	gameID := c.Param("game_id")

	var request MergeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	response, err := h.Service.MergeProviderGames(c, gameID, request.ProviderMatchIDs)
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *httpHandler) manualHandler(c *gin.Context) {
	var request ManualStatsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	match, err := h.Service.SubmitManualStats(c, request)
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

func (h *httpHandler) abortWithServiceError(c *gin.Context, err error) {
	switch err {
	case ErrAlreadyMerged, eashl.ErrSuperseded:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case ErrInvalidMergeArity, ErrMissingClubMapping, ErrEmptyIdentity, ErrMissingTeamNames:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Could not process match request: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
	c.Abort()
}
