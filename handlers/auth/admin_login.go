package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/HannahChen955/referralx-platform/models"
	"github.com/HannahChen955/referralx-platform/utils"
)

// AdminLogin authenticates a back-office operator with email and password
// and issues a 24h admin token.
func AdminLogin(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请输入邮箱和密码"})
		return
	}

	var admin models.AdminUser
	err := utils.DB.Where("email = ? AND is_active = ?", strings.ToLower(input.Email), true).First(&admin).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "邮箱或密码错误"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "邮箱或密码错误"})
		return
	}

	token, err := utils.GenerateAdminToken(&admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "登录失败，请重试"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		},
	})
}
