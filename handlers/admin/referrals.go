package admin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/HannahChen955/referralx-platform/models"
	"github.com/HannahChen955/referralx-platform/reward"
	"github.com/HannahChen955/referralx-platform/utils"
)

// ListReferrals returns referrals for the back-office with optional status,
// job and type filters.
func ListReferrals(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := utils.DB.Model(&models.Referral{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if jobID := c.Query("jobId"); jobID != "" {
		query = query.Where("job_id = ?", jobID)
	}
	if referralType := c.Query("type"); referralType != "" {
		query = query.Where("referral_type = ?", referralType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "获取推荐列表失败"})
		return
	}

	var referrals []models.Referral
	err := query.Preload("Job").Preload("User").
		Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&referrals).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "获取推荐列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"referrals": referrals,
			"pagination": gin.H{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": (total + int64(limit) - 1) / int64(limit),
			},
		},
	})
}

// UpdateReferralStatus advances a referral through its lifecycle. The status
// write and the appended progress entry are committed together: either both
// land or neither does.
func UpdateReferralStatus(c *gin.Context) {
	var input struct {
		Status models.ReferralStatus `json:"status"`
		Notes  string                `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请提供目标状态"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "推荐记录不存在"})
		return
	}
	var referral models.Referral
	if err := utils.DB.Preload("Job").Preload("User").First(&referral, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "推荐记录不存在"})
		return
	}

	if !input.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "无效的状态"})
		return
	}
	if !referral.Status.CanTransition(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("状态不能从 %s 变更为 %s", referral.Status, input.Status),
		})
		return
	}

	stage := reward.RewardForStage(input.Status)
	rewardAmount := stage.CashAmount + reward.LevelBonus(stage.CashAmount, referral.User.Points)
	notes := input.Notes
	if notes == "" {
		notes = stage.Description
	}

	err = utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&referral).Update("status", input.Status).Error; err != nil {
			return err
		}
		progress := models.ReferralProgress{
			ReferralID:   referral.ID,
			Stage:        input.Status,
			Notes:        notes,
			RewardAmount: rewardAmount,
		}
		if err := tx.Create(&progress).Error; err != nil {
			return err
		}
		if stage.Points > 0 {
			if err := tx.Model(&referral.User).
				Update("points", referral.User.Points+stage.Points).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to update referral status")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "更新状态失败"})
		return
	}

	response := gin.H{
		"id":            referral.ID,
		"status":        input.Status,
		"reward_amount": rewardAmount,
		"points":        stage.Points,
	}
	// Reaching the retained stage unlocks the salary-based commission.
	if input.Status == models.StatusProbationPassed {
		response["commission_range"] = reward.CommissionRange(
			referral.Job.SalaryMin, referral.Job.SalaryMax,
			referral.Job.CommissionRate, referral.Job.ReferrerShareRate)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": response})
}
