package models

import (
	"gorm.io/gorm"
)

type AdminUser struct {
	gorm.Model
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `json:"name"`
	Role     string `gorm:"default:admin" json:"role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
