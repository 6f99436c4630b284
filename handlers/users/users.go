package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HannahChen955/referralx-platform/handlers/auth"
	"github.com/HannahChen955/referralx-platform/reward"
)

// GetMyLevel returns the authenticated referrer's points, loyalty level and
// progress toward the next one.
func GetMyLevel(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "未授权访问"})
		return
	}

	level := reward.LevelByPoints(user.Points)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"points":                user.Points,
			"level":                 level,
			"progress":              reward.LevelProgress(user.Points),
			"points_for_next_level": reward.PointsForNextLevel(user.Points),
		},
	})
}
