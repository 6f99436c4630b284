package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HannahChen955/referralx-platform/models"
	"github.com/HannahChen955/referralx-platform/utils"
)

// AuthMiddleware validates a referrer bearer token and loads the user into
// the gin context under "user".
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.ParseBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "未授权访问"})
			c.Abort()
			return
		}

		userIDFloat, ok := claims["user_id"].(float64) // JWT numeric values are float64
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "未授权访问"})
			c.Abort()
			return
		}

		var user models.User
		if err := utils.DB.First(&user, uint(userIDFloat)).Error; err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "用户不存在，请重新登录"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// AdminAuthMiddleware validates a back-office bearer token and loads the
// admin into the gin context under "admin".
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.ParseBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "未授权访问"})
			c.Abort()
			return
		}

		adminIDFloat, ok := claims["admin_id"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "未授权访问"})
			c.Abort()
			return
		}

		var admin models.AdminUser
		if err := utils.DB.First(&admin, uint(adminIDFloat)).Error; err != nil || !admin.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "未授权访问"})
			c.Abort()
			return
		}

		c.Set("admin", admin)
		c.Next()
	}
}

// CurrentUser fetches the authenticated user that AuthMiddleware stored in
// the context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	userInterface, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := userInterface.(models.User)
	return user, ok
}
