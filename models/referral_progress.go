package models

import "time"

// ReferralProgress is one immutable entry in a referral's stage log. Rows are
// only ever appended; the owning referral's Status always equals the stage of
// its newest entry.
type ReferralProgress struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ReferralID   uint           `gorm:"not null;index" json:"referral_id"`
	Stage        ReferralStatus `gorm:"not null" json:"stage"`
	Notes        string         `gorm:"type:text" json:"notes"`
	RewardAmount int            `gorm:"default:0" json:"reward_amount"`
	CreatedAt    time.Time      `json:"created_at"`
}
