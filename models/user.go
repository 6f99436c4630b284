package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Phone    string  `gorm:"unique;not null" json:"phone"`
	Name     string  `gorm:"not null" json:"name"`
	Email    *string `json:"email"`
	Points   int     `gorm:"default:0" json:"points"`
	IsActive bool    `gorm:"default:true" json:"is_active"`
}
