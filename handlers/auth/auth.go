package auth

import (
	"fmt"
	"net/http"
	"os"
	"regexp"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/HannahChen955/referralx-platform/models"
	"github.com/HannahChen955/referralx-platform/utils"
	"github.com/HannahChen955/referralx-platform/verification"
)

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// CodeStore holds pending verification codes. Swappable so a shared cache
// can back it in a multi-instance deployment, and so tests can inject their
// own.
var CodeStore verification.Store = verification.NewMemoryStore()

// SendCode generates a verification code for a phone and delivers it via the
// SMS gateway.
func SendCode(c *gin.Context) {
	var input struct {
		Phone string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || !phonePattern.MatchString(input.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请输入有效的手机号"})
		return
	}

	code := verification.GenerateCode()
	CodeStore.Set(input.Phone, code)

	if err := utils.SendVerificationCode(input.Phone, code); err != nil {
		log.WithError(err).Error("Failed to send verification code")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "验证码发送失败，请稍后重试"})
		return
	}

	response := gin.H{"success": true, "message": "验证码已发送"}
	// Demo mode echoes the code so the flow can be exercised without an SMS
	// gateway.
	if os.Getenv("DEMO_MODE") == "true" {
		response["code"] = code
	}
	c.JSON(http.StatusOK, response)
}

// LoginWithCode verifies a phone + code pair, creating the user on first
// login, and issues a session token.
func LoginWithCode(c *gin.Context) {
	var input struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || !phonePattern.MatchString(input.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请输入有效的手机号"})
		return
	}

	if !CodeStore.Verify(input.Phone, input.Code) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "验证码错误或已过期"})
		return
	}

	var user models.User
	if err := utils.DB.Where("phone = ?", input.Phone).First(&user).Error; err != nil {
		// First login registers the user with a default nickname.
		user = models.User{
			Phone:    input.Phone,
			Name:     fmt.Sprintf("用户%s", input.Phone[len(input.Phone)-4:]),
			IsActive: true,
		}
		if err := utils.DB.Create(&user).Error; err != nil {
			log.WithError(err).Error("Failed to create user")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "登录失败，请稍后重试"})
			return
		}
	}

	token, err := utils.GenerateUserToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "登录失败，请稍后重试"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token": token,
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"phone": user.Phone,
			},
		},
	})
}

// UpdateProfile upserts the referrer's display name and email, keyed by
// phone.
func UpdateProfile(c *gin.Context) {
	var input struct {
		Phone string  `json:"phone"`
		Name  string  `json:"name"`
		Email *string `json:"email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Phone == "" || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "手机号和姓名为必填项"})
		return
	}

	if !phonePattern.MatchString(input.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请输入正确的手机号"})
		return
	}

	var user models.User
	if err := utils.DB.Where("phone = ?", input.Phone).First(&user).Error; err != nil {
		user = models.User{Phone: input.Phone, Name: input.Name, Email: input.Email, IsActive: true}
		if err := utils.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "登录失败，请重试"})
			return
		}
	} else {
		user.Name = input.Name
		if input.Email != nil {
			user.Email = input.Email
		}
		if err := utils.DB.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "登录失败，请重试"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user": gin.H{
				"id":    user.ID,
				"phone": user.Phone,
				"name":  user.Name,
				"email": user.Email,
			},
		},
	})
}
