package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que l'utilisateur a le rôle "admin"
// (guichet retours, modération, analytics)
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"unauthorized": true, "message": "Accès réservé aux administrateurs"})
			c.Abort()
			return
		}
		c.Next()
	}
}
