package middleware

import (
	"log"
	"net/http"

	"shopsense/api/utils"

	"github.com/gin-gonic/gin"
)

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("jwt_token")
		if err != nil {
			tokenString = c.GetHeader("Authorization")
			if tokenString == "" {
				log.Println("AuthRequired: No JWT token found in cookie or header")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided"})
				return
			}
			if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
				tokenString = tokenString[7:]
			}
		}
		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			log.Printf("AuthRequired: Invalid JWT token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid or expired token"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("is_admin", claims.IsAdmin)

		c.Next()
	}
}

// AuthOptional populates the user context when a valid token is present
// and passes anonymous requests through untouched. Interaction tracking
// and recommendations are opt-in for authenticated users but must not
// reject anonymous storefront traffic.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("jwt_token")
		if err != nil {
			tokenString = c.GetHeader("Authorization")
			if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
				tokenString = tokenString[7:]
			}
		}
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			log.Printf("AuthOptional: ignoring invalid JWT token: %v", err)
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("is_admin", claims.IsAdmin)

		c.Next()
	}
}

// AdminRequired gates the admin analytics endpoints. Must run after
// AuthRequired, which populates is_admin from the JWT claims.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, ok := c.Get("is_admin")
		if !ok || isAdmin != true {
			log.Printf("AdminRequired: user %v denied admin access", c.GetString("user_email"))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: admin access required"})
			return
		}
		c.Next()
	}
}
