package stubserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// authRequired validates the bearer token and stashes the user identity
// on the request context.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided"})
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")
		cl, err := s.validateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid or expired token"})
			return
		}
		c.Set("user_id", cl.UserID)
		c.Set("user_email", cl.Email)
		c.Next()
	}
}

// corsMiddleware mirrors the permissive CORS setup a dev collector runs
// with so a browser frontend can talk to the stub directly.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
