package jobs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HannahChen955/referralx-platform/models"
	"github.com/HannahChen955/referralx-platform/reward"
	"github.com/HannahChen955/referralx-platform/utils"
)

// rewardSummary augments a job with its displayable reward numbers.
func rewardSummary(job *models.Job) gin.H {
	return gin.H{
		"process_reward":   reward.TotalProcessReward(),
		"commission_range": reward.CommissionRange(job.SalaryMin, job.SalaryMax, job.CommissionRate, job.ReferrerShareRate),
		"total_range":      reward.TotalRewardRange(job.SalaryMin, job.SalaryMax, job.CommissionRate, job.ReferrerShareRate),
	}
}

// ListJobs returns active jobs with pagination and optional search filters.
func ListJobs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := utils.DB.Model(&models.Job{}).Where("is_active = ?", true)

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("location LIKE ?", "%"+location+"%")
	}
	if company := c.Query("company"); company != "" {
		query = query.Where("company LIKE ?", "%"+company+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "获取职位列表失败"})
		return
	}

	var jobs []models.Job
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "获取职位列表失败"})
		return
	}

	items := make([]gin.H, 0, len(jobs))
	for i := range jobs {
		items = append(items, gin.H{
			"job":    jobs[i],
			"reward": rewardSummary(&jobs[i]),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"jobs": items,
			"pagination": gin.H{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": (total + int64(limit) - 1) / int64(limit),
			},
		},
	})
}

// GetJob returns one active job with its reward summary and recent
// non-rejected referrals. Anonymous referrers are not named.
func GetJob(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "职位不存在或已下线"})
		return
	}

	var job models.Job
	if err := utils.DB.Where("id = ? AND is_active = ?", id, true).First(&job).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "职位不存在或已下线"})
		return
	}

	var referrals []models.Referral
	if err := utils.DB.Preload("User").
		Where("job_id = ? AND status <> ?", job.ID, models.StatusRejected).
		Order("created_at DESC").Limit(10).Find(&referrals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "获取职位详情失败"})
		return
	}

	recent := make([]gin.H, 0, len(referrals))
	for _, r := range referrals {
		referrerName := r.User.Name
		if r.IsAnonymous {
			referrerName = "匿名用户"
		}
		recent = append(recent, gin.H{
			"id":         r.ID,
			"status":     r.Status,
			"created_at": r.CreatedAt,
			"referrer":   referrerName,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"job":              job,
			"reward":           rewardSummary(&job),
			"recent_referrals": recent,
		},
	})
}
