package admin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HannahChen955/referralx-platform/models"
	"github.com/HannahChen955/referralx-platform/utils"
)

// FlexInt and FlexFloat accept both JSON numbers and numeric strings; the
// admin UI posts form values as strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = FlexFloat(n)
	return nil
}

type jobInput struct {
	Title             *string    `json:"title"`
	Company           *string    `json:"company"`
	Location          *string    `json:"location"`
	SalaryMin         *FlexInt   `json:"salaryMin"`
	SalaryMax         *FlexInt   `json:"salaryMax"`
	Description       *string    `json:"description"`
	Requirements      *string    `json:"requirements"`
	Benefits          *string    `json:"benefits"`
	CommissionRate    *FlexFloat `json:"commissionRate"`
	ReferrerShareRate *FlexFloat `json:"referrerShareRate"`
	IsActive          *bool      `json:"isActive"`
}

func badSalaryRange(min, max *int) bool {
	return min != nil && max != nil && *min >= *max
}

// findJob resolves the :id path parameter to a job, writing the 404 response
// itself when the id is non-numeric or unknown.
func findJob(c *gin.Context) (models.Job, bool) {
	var job models.Job
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "职位不存在"})
		return job, false
	}
	if err := utils.DB.First(&job, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "职位不存在"})
		return job, false
	}
	return job, true
}

// ListJobs returns every job for the back-office, newest first, with an
// optional active/inactive filter.
func ListJobs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := utils.DB.Model(&models.Job{})
	switch c.DefaultQuery("status", "all") {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"jobs": jobs,
			"pagination": gin.H{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": (total + int64(limit) - 1) / int64(limit),
			},
		},
	})
}

// GetJob returns one job with its referrals, full candidate contact
// included for the back-office view.
func GetJob(c *gin.Context) {
	job, ok := findJob(c)
	if !ok {
		return
	}

	var referrals []models.Referral
	if err := utils.DB.Preload("User").Where("job_id = ?", job.ID).
		Order("created_at DESC").Find(&referrals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "获取职位详情失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"job":       job,
			"referrals": referrals,
		},
	})
}

// CreateJob creates a posting. Salary and rate fields coerce from strings;
// rates default to the platform standard when omitted.
func CreateJob(c *gin.Context) {
	var input jobInput
	if err := json.NewDecoder(c.Request.Body).Decode(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求格式错误"})
		return
	}

	if input.Title == nil || input.Company == nil || input.Location == nil ||
		input.Description == nil || input.Requirements == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请填写所有必填信息"})
		return
	}

	job := models.Job{
		Title:             *input.Title,
		Company:           *input.Company,
		Location:          *input.Location,
		Description:       *input.Description,
		Requirements:      *input.Requirements,
		Benefits:          input.Benefits,
		CommissionRate:    0.15,
		ReferrerShareRate: 0.60,
		IsActive:          true,
	}
	if input.SalaryMin != nil {
		v := int(*input.SalaryMin)
		job.SalaryMin = &v
	}
	if input.SalaryMax != nil {
		v := int(*input.SalaryMax)
		job.SalaryMax = &v
	}
	if badSalaryRange(job.SalaryMin, job.SalaryMax) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "最低薪资不能大于或等于最高薪资"})
		return
	}
	if input.CommissionRate != nil {
		job.CommissionRate = float64(*input.CommissionRate)
	}
	if input.ReferrerShareRate != nil {
		job.ReferrerShareRate = float64(*input.ReferrerShareRate)
	}

	if err := utils.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "创建职位失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": job})
}

// UpdateJob applies a partial field set to an existing posting.
func UpdateJob(c *gin.Context) {
	job, ok := findJob(c)
	if !ok {
		return
	}

	var input jobInput
	if err := json.NewDecoder(c.Request.Body).Decode(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求格式错误"})
		return
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Company != nil {
		job.Company = *input.Company
	}
	if input.Location != nil {
		job.Location = *input.Location
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Requirements != nil {
		job.Requirements = *input.Requirements
	}
	if input.Benefits != nil {
		job.Benefits = input.Benefits
	}
	if input.SalaryMin != nil {
		v := int(*input.SalaryMin)
		job.SalaryMin = &v
	}
	if input.SalaryMax != nil {
		v := int(*input.SalaryMax)
		job.SalaryMax = &v
	}
	if badSalaryRange(job.SalaryMin, job.SalaryMax) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "最低薪资不能大于或等于最高薪资"})
		return
	}
	if input.CommissionRate != nil {
		job.CommissionRate = float64(*input.CommissionRate)
	}
	if input.ReferrerShareRate != nil {
		job.ReferrerShareRate = float64(*input.ReferrerShareRate)
	}
	if input.IsActive != nil {
		job.IsActive = *input.IsActive
	}

	if err := utils.DB.Save(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "更新职位失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": job})
}

// DeleteJob takes a posting offline. Soft delete only: the row and its
// referrals remain.
func DeleteJob(c *gin.Context) {
	job, ok := findJob(c)
	if !ok {
		return
	}

	if err := utils.DB.Model(&job).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "删除职位失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "职位已下线"})
}
