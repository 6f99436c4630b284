package referrals

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/HannahChen955/referralx-platform/models"
	"github.com/HannahChen955/referralx-platform/reward"
	"github.com/HannahChen955/referralx-platform/sensitivity"
	"github.com/HannahChen955/referralx-platform/utils"
)

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

const minReasonLength = 10

// SubmitReferral accepts a multipart referral submission, quick-screening or
// formal, and records it with an initial SUBMITTED progress entry. The
// notification email is best effort and never affects the write.
func SubmitReferral(c *gin.Context) {
	jobID := c.PostForm("jobId")
	userID := c.PostForm("userId")
	candidateName := c.PostForm("candidateName")
	candidatePhone := c.PostForm("candidatePhone")
	candidateEmail := c.PostForm("candidateEmail")
	reason := c.PostForm("reason")
	isAnonymous := c.PostForm("isAnonymous") == "true"
	isDesensitized := c.PostForm("isDesensitized") == "true"

	referralType := models.ReferralType(c.DefaultPostForm("referralType", string(models.ReferralTypeFormal)))

	// Quick-screening profile fields; forwarded in the screening email only,
	// never persisted.
	industry := c.PostForm("industry")
	experience := c.PostForm("experience")
	skills := c.PostForm("skills")
	education := c.PostForm("education")
	location := c.PostForm("location")

	switch referralType {
	case models.ReferralTypeQuickScreening:
		if jobID == "" || userID == "" || industry == "" || experience == "" || skills == "" || reason == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请填写所有必填信息"})
			return
		}
	case models.ReferralTypeFormal:
		if jobID == "" || userID == "" || candidateName == "" || candidatePhone == "" || reason == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请填写所有必填信息"})
			return
		}
		if !phonePattern.MatchString(candidatePhone) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请输入正确的候选人手机号"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "无效的推荐类型"})
		return
	}

	if utf8.RuneCountInString(reason) < minReasonLength {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("推荐理由至少%d个字", minReasonLength)})
		return
	}

	// One formal referral per (job, candidate phone).
	if referralType == models.ReferralTypeFormal {
		var existing models.Referral
		err := utils.DB.Where("job_id = ? AND candidate_phone = ?", jobID, candidatePhone).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "该候选人已被推荐过此职位"})
			return
		}
	}

	var job models.Job
	if err := utils.DB.Where("id = ? AND is_active = ?", jobID, true).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "职位不存在或已下线"})
		return
	}

	uid, err := strconv.Atoi(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "用户不存在，请重新登录"})
		return
	}
	var user models.User
	if err := utils.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "用户不存在，请重新登录"})
		return
	}

	referral := models.Referral{
		JobID:          job.ID,
		UserID:         user.ID,
		CandidateName:  candidateName,
		CandidateEmail: optional(candidateEmail),
		Reason:         reason,
		IsAnonymous:    isAnonymous,
		ReferralType:   referralType,
		IsDesensitized: isDesensitized,
		Status:         models.StatusSubmitted,
	}
	if referralType == models.ReferralTypeQuickScreening {
		referral.CandidateName = "候选人"
	} else {
		phone := candidatePhone
		referral.CandidatePhone = &phone
	}

	if file, err := c.FormFile("resume"); err == nil && file.Size > 0 {
		referral.ResumeFileName = &file.Filename
		storedName := uuid.NewString() + filepath.Ext(file.Filename)
		uploadDir := os.Getenv("UPLOAD_DIR")
		if uploadDir == "" {
			uploadDir = "uploads/resumes"
		}
		if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, storedName)); err != nil {
			log.WithError(err).Warn("Failed to store resume file")
		} else {
			url := "/uploads/resumes/" + storedName
			referral.ResumeFileURL = &url
		}
	}

	if err := utils.DB.Create(&referral).Error; err != nil {
		// A concurrent duplicate can slip past the pre-check and land on the
		// unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "该候选人已被推荐过此职位"})
			return
		}
		log.WithError(err).Error("Failed to create referral")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "提交推荐失败，请重试"})
		return
	}

	progress := models.ReferralProgress{
		ReferralID:   referral.ID,
		Stage:        models.StatusSubmitted,
		Notes:        "推荐已提交，等待HR审核",
		RewardAmount: 0,
	}
	if err := utils.DB.Create(&progress).Error; err != nil {
		log.WithError(err).Error("Failed to create initial progress entry")
	}

	submitted := reward.RewardForStage(models.StatusSubmitted)
	if submitted.Points > 0 {
		if err := utils.DB.Model(&user).Update("points", user.Points+submitted.Points).Error; err != nil {
			log.WithError(err).Warn("Failed to award submission points")
		}
	}
	utils.DB.Model(&job).Update("referral_count", job.ReferralCount+1)

	go notify(&referral, &job, &user, candidatePhone, candidateEmail,
		industry, experience, skills, education, location)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"referral": gin.H{
				"id":             referral.ID,
				"candidate_name": referral.CandidateName,
				"job_title":      job.Title,
				"company":        job.Company,
				"status":         referral.Status,
				"referral_type":  referral.ReferralType,
				"created_at":     referral.CreatedAt,
			},
		},
	})
}

func notify(referral *models.Referral, job *models.Job, user *models.User,
	candidatePhone, candidateEmail, industry, experience, skills, education, location string) {
	userName := user.Name
	if referral.IsAnonymous {
		userName = "匿名用户"
	}

	if referral.ReferralType == models.ReferralTypeQuickScreening {
		matchReason := referral.Reason
		if referral.IsDesensitized {
			matchReason = sensitivity.ForQuickScreening(matchReason)
		}
		utils.SendQuickScreeningEmail(utils.QuickScreeningEmail{
			ReferralID:  referral.ID,
			UserName:    userName,
			JobTitle:    job.Title,
			Company:     job.Company,
			Industry:    industry,
			Experience:  experience,
			Skills:      skills,
			Education:   education,
			Location:    location,
			MatchReason: matchReason,
		})
		return
	}

	utils.SendFormalReferralEmail(utils.FormalReferralEmail{
		ReferralID:     referral.ID,
		UserName:       userName,
		JobTitle:       job.Title,
		Company:        job.Company,
		CandidateName:  referral.CandidateName,
		CandidatePhone: candidatePhone,
		CandidateEmail: candidateEmail,
		MatchReason:    referral.Reason,
	})
}

// GetUserReferrals lists the authenticated referrer's own submissions with
// their progress history.
func GetUserReferrals(c *gin.Context) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "未授权访问"})
		return
	}
	user := userInterface.(models.User)

	var referrals []models.Referral
	err := utils.DB.Preload("Job").
		Preload("ProgressHistory", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&referrals).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "获取推荐记录失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"referrals": referrals}})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
