package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/HannahChen955/referralx-platform/config"
	"github.com/HannahChen955/referralx-platform/handlers/admin"
	"github.com/HannahChen955/referralx-platform/handlers/auth"
	"github.com/HannahChen955/referralx-platform/handlers/jobs"
	"github.com/HannahChen955/referralx-platform/handlers/referrals"
	"github.com/HannahChen955/referralx-platform/handlers/users"
	"github.com/HannahChen955/referralx-platform/migrations"
	"github.com/HannahChen955/referralx-platform/seed"
	"github.com/HannahChen955/referralx-platform/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("Invalid reward configuration: %v", err)
	}

	r := gin.Default()

	allowOrigin := os.Getenv("CORS_ORIGIN")
	if allowOrigin == "" {
		allowOrigin = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded resumes are linked from the back-office referral views.
	r.Static("/uploads", "./uploads")

	utils.ConnectDatabase()

	if err := migrations.MigrateAll(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed initial data
	if err := seed.SeedAdmin(); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := seed.SeedJobs(); err != nil {
		log.Fatalf("Failed to seed jobs: %v", err)
	}

	api := r.Group("/api")
	{
		api.POST("/auth/send-code", auth.SendCode)
		api.POST("/auth/login-with-code", auth.LoginWithCode)
		api.POST("/auth/login", auth.UpdateProfile)
		api.POST("/admin/auth/login", auth.AdminLogin)

		api.GET("/jobs", jobs.ListJobs)
		api.GET("/jobs/:id", jobs.GetJob)
		api.POST("/referral", referrals.SubmitReferral)

		protected := api.Group("/")
		protected.Use(auth.AuthMiddleware())
		{
			protected.GET("/referrals", referrals.GetUserReferrals)
			protected.GET("/users/me/level", users.GetMyLevel)
		}

		adminAPI := api.Group("/admin")
		adminAPI.Use(auth.AdminAuthMiddleware())
		{
			adminAPI.GET("/jobs", admin.ListJobs)
			adminAPI.POST("/jobs", admin.CreateJob)
			adminAPI.GET("/jobs/:id", admin.GetJob)
			adminAPI.PUT("/jobs/:id", admin.UpdateJob)
			adminAPI.DELETE("/jobs/:id", admin.DeleteJob)
			adminAPI.GET("/referrals", admin.ListReferrals)
			adminAPI.PUT("/referrals/:id/status", admin.UpdateReferralStatus)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
