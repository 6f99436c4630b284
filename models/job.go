package models

import (
	"gorm.io/gorm"
)

type Job struct {
	gorm.Model
	Title             string  `gorm:"not null" json:"title"`
	Company           string  `gorm:"not null" json:"company"`
	Location          string  `gorm:"not null" json:"location"`
	SalaryMin         *int    `json:"salary_min"` // monthly, local currency
	SalaryMax         *int    `json:"salary_max"`
	Description       string  `gorm:"type:text;not null" json:"description"`
	Requirements      string  `gorm:"type:text;not null" json:"requirements"`
	Benefits          *string `gorm:"type:text" json:"benefits"`
	CommissionRate    float64 `gorm:"default:0.15" json:"commission_rate"`     // fraction of annual salary owed by the company
	ReferrerShareRate float64 `gorm:"default:0.60" json:"referrer_share_rate"` // fraction of the commission paid to the referrer
	ReferralLimit     int     `gorm:"default:20" json:"referral_limit"`
	ReferralCount     int     `gorm:"default:0" json:"referral_count"`
	IsActive          bool    `gorm:"default:true" json:"is_active"`
}
