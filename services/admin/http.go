package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	access "github.com/icetilt/league-sync/pkg/accessCode"
	resend "github.com/icetilt/league-sync/repos/resend"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Admin is the interface for the club access service.
type Admin interface {
	ClaimAccess(c *gin.Context, request resend.AccessRequest) error
	AddClubAccess(c *gin.Context, slug, secret string) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Admin

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/claim", h.claimHandler)
	r.GET("/access/:access_code", h.accessHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) claimHandler(c *gin.Context) {

	var request resend.AccessRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	if err := s.Service.ClaimAccess(c, request); err != nil {
		if err == ErrInvalidClubID {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		log.Printf("Could not claim access: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": "Access granted",
		"slug":   request.Slug,
		"clubID": request.ClubID,
		"email":  request.Email,
	})
}

func (s *httpHandler) accessHandler(c *gin.Context) {
	accessCode := c.Param("access_code")
	slug, secret, err := access.Decode(accessCode)
	if err != nil {
		log.Printf("Failed to decode access code: %v\n", err)
		return
	}

	err = s.Service.AddClubAccess(c, slug, secret)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "not valid access code"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"slug": slug})
}
