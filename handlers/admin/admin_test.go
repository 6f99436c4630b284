package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/HannahChen955/referralx-platform/models"
	"github.com/HannahChen955/referralx-platform/utils"
)

var testDBCounter int64

func setupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.AdminUser{}, &models.Job{},
		&models.Referral{}, &models.ReferralProgress{},
	))
	utils.DB = db
}

func adminRouter() *gin.Engine {
	r := gin.New()
	r.GET("/api/admin/jobs", ListJobs)
	r.POST("/api/admin/jobs", CreateJob)
	r.GET("/api/admin/jobs/:id", GetJob)
	r.PUT("/api/admin/jobs/:id", UpdateJob)
	r.DELETE("/api/admin/jobs/:id", DeleteJob)
	r.GET("/api/admin/referrals", ListReferrals)
	r.PUT("/api/admin/referrals/:id/status", UpdateReferralStatus)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateJobWithStringCoercion(t *testing.T) {
	setupTestDB(t)
	r := adminRouter()

	rec := doJSON(r, http.MethodPost, "/api/admin/jobs", gin.H{
		"title":        "后端工程师",
		"company":      "字节跳动",
		"location":     "北京",
		"salaryMin":    "25000",
		"salaryMax":    "45000",
		"description":  "负责核心服务开发",
		"requirements": "熟悉Go语言",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var job models.Job
	require.NoError(t, utils.DB.Where("title = ?", "后端工程师").First(&job).Error)
	require.NotNil(t, job.SalaryMin)
	require.NotNil(t, job.SalaryMax)
	assert.Equal(t, 25000, *job.SalaryMin)
	assert.Equal(t, 45000, *job.SalaryMax)
	assert.Equal(t, 0.15, job.CommissionRate) // platform default
	assert.Equal(t, 0.60, job.ReferrerShareRate)
	assert.True(t, job.IsActive)
}

func TestCreateJobMissingRequiredFields(t *testing.T) {
	setupTestDB(t)
	r := adminRouter()

	rec := doJSON(r, http.MethodPost, "/api/admin/jobs", gin.H{
		"title":   "后端工程师",
		"company": "字节跳动",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateJobRejectsInvertedSalaryRange(t *testing.T) {
	setupTestDB(t)
	r := adminRouter()

	rec := doJSON(r, http.MethodPost, "/api/admin/jobs", gin.H{
		"title":        "后端工程师",
		"company":      "字节跳动",
		"location":     "北京",
		"salaryMin":    40000,
		"salaryMax":    25000,
		"description":  "负责核心服务开发",
		"requirements": "熟悉Go语言",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func newJob(t *testing.T, active bool) models.Job {
	t.Helper()
	min, max := 20000, 40000
	job := models.Job{
		Title:             "高级前端工程师",
		Company:           "阿里巴巴",
		Location:          "杭州",
		SalaryMin:         &min,
		SalaryMax:         &max,
		Description:       "负责前端架构设计",
		Requirements:      "3年以上前端经验",
		CommissionRate:    0.15,
		ReferrerShareRate: 0.60,
		IsActive:          active,
	}
	require.NoError(t, utils.DB.Create(&job).Error)
	return job
}

func TestUpdateJobPartial(t *testing.T) {
	setupTestDB(t)
	job := newJob(t, true)
	r := adminRouter()

	rec := doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/jobs/%d", job.ID), gin.H{
		"title": "资深前端工程师",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Job
	require.NoError(t, utils.DB.First(&updated, job.ID).Error)
	assert.Equal(t, "资深前端工程师", updated.Title)
	assert.Equal(t, "阿里巴巴", updated.Company)
	assert.Equal(t, 0.15, updated.CommissionRate)
	require.NotNil(t, updated.SalaryMin)
	assert.Equal(t, 20000, *updated.SalaryMin)
}

func TestUpdateJobRejectsInvertedSalaryRange(t *testing.T) {
	setupTestDB(t)
	job := newJob(t, true)
	r := adminRouter()

	rec := doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/jobs/%d", job.ID), gin.H{
		"salaryMin": 50000,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteJobIsSoft(t *testing.T) {
	setupTestDB(t)
	job := newJob(t, true)
	r := adminRouter()

	rec := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/admin/jobs/%d", job.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Job
	require.NoError(t, utils.DB.First(&updated, job.ID).Error)
	assert.False(t, updated.IsActive)
}

func TestListJobsStatusFilter(t *testing.T) {
	setupTestDB(t)
	newJob(t, true)
	newJob(t, false)
	r := adminRouter()

	for filter, want := range map[string]int{"all": 2, "active": 1, "inactive": 1} {
		rec := doJSON(r, http.MethodGet, "/api/admin/jobs?status="+filter, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Data struct {
				Jobs []models.Job `json:"jobs"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Data.Jobs, want, "filter %q", filter)
	}
}

func newReferral(t *testing.T, job models.Job, user models.User, status models.ReferralStatus) models.Referral {
	t.Helper()
	phone := "13812345678"
	referral := models.Referral{
		JobID:          job.ID,
		UserID:         user.ID,
		CandidateName:  "张三",
		CandidatePhone: &phone,
		Reason:         "候选人技术扎实，沟通能力强",
		ReferralType:   models.ReferralTypeFormal,
		Status:         status,
	}
	require.NoError(t, utils.DB.Create(&referral).Error)
	require.NoError(t, utils.DB.Create(&models.ReferralProgress{
		ReferralID: referral.ID,
		Stage:      models.StatusSubmitted,
		Notes:      "推荐已提交，等待HR审核",
	}).Error)
	return referral
}

func newUser(t *testing.T, points int) models.User {
	t.Helper()
	user := models.User{Phone: "13900000001", Name: "推荐人", Points: points, IsActive: true}
	require.NoError(t, utils.DB.Create(&user).Error)
	return user
}

func TestUpdateReferralStatusAdvancesAndAwardsPoints(t *testing.T) {
	setupTestDB(t)
	job := newJob(t, true)
	user := newUser(t, 100)
	referral := newReferral(t, job, user, models.StatusSubmitted)
	r := adminRouter()

	rec := doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/referrals/%d/status", referral.ID), gin.H{
		"status": "RECRUITER_REVIEW",
		"notes":  "HR已查看简历",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Referral
	require.NoError(t, utils.DB.First(&updated, referral.ID).Error)
	assert.Equal(t, models.StatusRecruiterReview, updated.Status)

	var progress []models.ReferralProgress
	require.NoError(t, utils.DB.Where("referral_id = ?", referral.ID).Order("id ASC").Find(&progress).Error)
	require.Len(t, progress, 2)
	assert.Equal(t, models.StatusRecruiterReview, progress[1].Stage)
	assert.Equal(t, "HR已查看简历", progress[1].Notes)

	var awarded models.User
	require.NoError(t, utils.DB.First(&awarded, user.ID).Error)
	assert.Equal(t, 300, awarded.Points) // 100 + 200 review points
}

func TestUpdateReferralStatusRejectsSkippedStage(t *testing.T) {
	setupTestDB(t)
	job := newJob(t, true)
	user := newUser(t, 0)
	referral := newReferral(t, job, user, models.StatusSubmitted)
	r := adminRouter()

	rec := doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/referrals/%d/status", referral.ID), gin.H{
		"status": "OFFER_MADE",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	utils.DB.Model(&models.ReferralProgress{}).Where("referral_id = ?", referral.ID).Count(&count)
	assert.EqualValues(t, 1, count) // no progress entry appended
}

func TestUpdateReferralStatusRejectsLeavingTerminalState(t *testing.T) {
	setupTestDB(t)
	job := newJob(t, true)
	user := newUser(t, 0)
	referral := newReferral(t, job, user, models.StatusRejected)
	r := adminRouter()

	rec := doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/referrals/%d/status", referral.ID), gin.H{
		"status": "SUBMITTED",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateReferralStatusRejectFromAnyActiveStage(t *testing.T) {
	setupTestDB(t)
	job := newJob(t, true)
	user := newUser(t, 0)
	referral := newReferral(t, job, user, models.StatusInterviewScheduled)
	r := adminRouter()

	rec := doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/referrals/%d/status", referral.ID), gin.H{
		"status": "REJECTED",
		"notes":  "候选人面试未通过",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Referral
	require.NoError(t, utils.DB.First(&updated, referral.ID).Error)
	assert.Equal(t, models.StatusRejected, updated.Status)
}

func TestUpdateReferralStatusAppliesLevelBonus(t *testing.T) {
	setupTestDB(t)
	job := newJob(t, true)
	user := newUser(t, 5000) // 百里挑一 tier, 10% cash bonus
	referral := newReferral(t, job, user, models.StatusInterviewScheduled)
	r := adminRouter()

	rec := doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/referrals/%d/status", referral.ID), gin.H{
		"status": "OFFER_MADE",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			RewardAmount int `json:"reward_amount"`
			Points       int `json:"points"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 550, body.Data.RewardAmount) // 500 cash + 10% bonus
	assert.Equal(t, 500, body.Data.Points)
}

func TestUpdateReferralStatusProbationPassedUnlocksCommission(t *testing.T) {
	setupTestDB(t)
	job := newJob(t, true)
	user := newUser(t, 0)
	referral := newReferral(t, job, user, models.StatusHired)
	r := adminRouter()

	rec := doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/referrals/%d/status", referral.ID), gin.H{
		"status": "PROBATION_PASSED",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			CommissionRange *struct {
				Min int `json:"min"`
				Max int `json:"max"`
			} `json:"commission_range"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Data.CommissionRange)
	assert.Equal(t, 21600, body.Data.CommissionRange.Min) // 20000*12*0.15*0.60
	assert.Equal(t, 43200, body.Data.CommissionRange.Max)
}

func TestJobEndpointsRejectNonNumericID(t *testing.T) {
	setupTestDB(t)
	newJob(t, true)
	r := adminRouter()

	for _, id := range []string{"abc", "1%20OR%201=1", "id%20=%201"} {
		path := "/api/admin/jobs/" + id
		assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, path, nil).Code, "GET %q", id)
		assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodPut, path, gin.H{"title": "新标题"}).Code, "PUT %q", id)
		assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodDelete, path, nil).Code, "DELETE %q", id)
	}

	var job models.Job
	require.NoError(t, utils.DB.First(&job).Error)
	assert.True(t, job.IsActive) // nothing was updated or taken offline
}

func TestUpdateReferralStatusRejectsNonNumericID(t *testing.T) {
	setupTestDB(t)
	r := adminRouter()

	rec := doJSON(r, http.MethodPut, "/api/admin/referrals/1%20OR%201=1/status", gin.H{"status": "RECRUITER_REVIEW"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateReferralStatusUnknownReferral(t *testing.T) {
	setupTestDB(t)
	r := adminRouter()

	rec := doJSON(r, http.MethodPut, "/api/admin/referrals/9999/status", gin.H{"status": "RECRUITER_REVIEW"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListReferralsFilters(t *testing.T) {
	setupTestDB(t)
	job := newJob(t, true)
	user := newUser(t, 0)
	newReferral(t, job, user, models.StatusSubmitted)

	quick := models.Referral{
		JobID:         job.ID,
		UserID:        user.ID,
		CandidateName: "候选人",
		Reason:        "候选人经验丰富，技术栈对口",
		ReferralType:  models.ReferralTypeQuickScreening,
		Status:        models.StatusRecruiterReview,
	}
	require.NoError(t, utils.DB.Create(&quick).Error)

	r := adminRouter()

	cases := map[string]int{
		"":                         2,
		"?status=SUBMITTED":        1,
		"?type=QUICK_SCREENING":    1,
		"?type=FORMAL":             1,
		"?status=PROBATION_PASSED": 0,
	}
	for query, want := range cases {
		rec := doJSON(r, http.MethodGet, "/api/admin/referrals"+query, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Data struct {
				Referrals []models.Referral `json:"referrals"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Data.Referrals, want, "query %q", query)
	}
}
