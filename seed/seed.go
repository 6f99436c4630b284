// seed/seed.go
package seed

import (
	"errors"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/HannahChen955/referralx-platform/models"
	"github.com/HannahChen955/referralx-platform/utils"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// SeedAdmin creates the initial back-office account if none exists. The
// password comes from ADMIN_PASSWORD, with a development default.
func SeedAdmin() error {
	var existing models.AdminUser
	err := utils.DB.First(&existing).Error
	if err == nil {
		log.Println("Admin user already exists. Skipping seeding.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@referralx.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123456"
		log.Warn("ADMIN_PASSWORD not set, seeding admin with the development default")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.AdminUser{
		Email:    email,
		Password: string(hashed),
		Name:     "管理员",
		Role:     "admin",
		IsActive: true,
	}
	if err := utils.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Infof("Admin user %s seeded successfully", email)
	return nil
}

// SeedJobs inserts a handful of sample postings on an empty jobs table.
func SeedJobs() error {
	var count int64
	if err := utils.DB.Model(&models.Job{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Jobs already exist. Skipping seeding.")
		return nil
	}

	jobs := []models.Job{
		{
			Title:         "高级前端工程师",
			Company:       "阿里巴巴",
			Location:      "杭州",
			SalaryMin:     intPtr(20000),
			SalaryMax:     intPtr(40000),
			Description:   "负责集团核心业务前端架构设计和开发工作，参与产品需求分析和技术方案制定。",
			Requirements:  "3年以上前端开发经验，熟练掌握React/Vue等主流框架，熟悉TypeScript与现代前端工具链。",
			Benefits:      strPtr("五险一金，年终奖，股票期权，弹性工作制，免费三餐"),
			ReferralLimit: 30,
		},
		{
			Title:         "资深产品经理",
			Company:       "腾讯",
			Location:      "深圳",
			SalaryMin:     intPtr(25000),
			SalaryMax:     intPtr(50000),
			Description:   "负责微信生态产品的规划、设计和运营，推动产品创新和业务增长。",
			Requirements:  "5年以上互联网产品经验，有C端产品成功案例，优秀的项目管理和跨团队协作能力。",
			Benefits:      strPtr("六险一金，年终奖，股票激励，团建预算，健身房"),
			ReferralLimit: 20,
		},
		{
			Title:         "Java架构师",
			Company:       "美团",
			Location:      "北京",
			SalaryMin:     intPtr(30000),
			SalaryMax:     intPtr(60000),
			Description:   "负责核心交易系统的架构设计和技术规划，支撑亿级用户的高并发业务场景。",
			Requirements:  "8年以上Java开发经验，深入理解分布式系统，熟悉微服务架构。",
			Benefits:      strPtr("七险二金，股票期权，年终奖，技术培训预算"),
			ReferralLimit: 15,
		},
		{
			Title:         "数据科学家",
			Company:       "字节跳动",
			Location:      "北京",
			SalaryMin:     intPtr(25000),
			SalaryMax:     intPtr(45000),
			Description:   "利用数据科学和机器学习技术，为推荐系统、广告投放等核心业务提供算法支持。",
			Requirements:  "3年以上机器学习或数据科学工作经验，熟练掌握Python、SQL、Spark等数据处理工具。",
			Benefits:      strPtr("股票期权，六险一金，免费三餐，班车接送"),
			ReferralLimit: 25,
		},
	}

	for i := range jobs {
		jobs[i].CommissionRate = 0.15
		jobs[i].ReferrerShareRate = 0.60
		jobs[i].IsActive = true
		if err := utils.DB.Create(&jobs[i]).Error; err != nil {
			return err
		}
		log.Infof("Seeded job: %s - %s", jobs[i].Title, jobs[i].Company)
	}

	return nil
}
