package users

import (
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

	"github.com/HannahChen955/referralx-platform/handlers/auth"
	"github.com/HannahChen955/referralx-platform/models"
	"github.com/HannahChen955/referralx-platform/utils"
)

var testDBCounter int64

func setupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:users_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	utils.DB = db
}

type levelResponse struct {
	Data struct {
		Points int `json:"points"`
		Level  struct {
			Name      string  `json:"name"`
			BonusRate float64 `json:"bonus_rate"`
		} `json:"level"`
		Progress           float64 `json:"progress"`
		PointsForNextLevel *int    `json:"points_for_next_level"`
	} `json:"data"`
}

func getMyLevel(t *testing.T, points int) levelResponse {
	t.Helper()
	user := models.User{Phone: "13900000001", Name: "推荐人", Points: points, IsActive: true}
	require.NoError(t, utils.DB.Create(&user).Error)

	token, err := utils.GenerateUserToken(&user)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/users/me/level", auth.AuthMiddleware(), GetMyLevel)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me/level", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body levelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetMyLevelNewUser(t *testing.T) {
	setupTestDB(t)

	body := getMyLevel(t, 0)
	assert.Equal(t, 0, body.Data.Points)
	assert.Equal(t, "慧眼新人", body.Data.Level.Name)
	assert.Equal(t, 0.0, body.Data.Level.BonusRate)
	require.NotNil(t, body.Data.PointsForNextLevel)
	assert.Equal(t, 500, *body.Data.PointsForNextLevel)
}

func TestGetMyLevelTopTier(t *testing.T) {
	setupTestDB(t)

	body := getMyLevel(t, 15000)
	assert.Equal(t, "慧眼识珠", body.Data.Level.Name)
	assert.Equal(t, 0.15, body.Data.Level.BonusRate)
	assert.Equal(t, 100.0, body.Data.Progress)
	assert.Nil(t, body.Data.PointsForNextLevel)
}

func TestGetMyLevelRequiresAuth(t *testing.T) {
	setupTestDB(t)

	r := gin.New()
	r.GET("/api/users/me/level", auth.AuthMiddleware(), GetMyLevel)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me/level", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
