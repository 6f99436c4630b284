package models

import (
	"gorm.io/gorm"
)

type ReferralType string

const (
	ReferralTypeQuickScreening ReferralType = "QUICK_SCREENING"
	ReferralTypeFormal         ReferralType = "FORMAL"
)

// Referral is a single candidate-to-job submission. CandidatePhone is nil for
// quick-screening referrals, which keeps them out of the composite unique
// index: only formal referrals are deduplicated per (job, candidate phone).
type Referral struct {
	gorm.Model
	JobID           uint               `gorm:"not null;uniqueIndex:idx_job_candidate_phone" json:"job_id"`
	UserID          uint               `gorm:"not null" json:"user_id"`
	CandidateName   string             `json:"candidate_name"`
	CandidatePhone  *string            `gorm:"uniqueIndex:idx_job_candidate_phone" json:"candidate_phone"`
	CandidateEmail  *string            `json:"candidate_email"`
	Reason          string             `gorm:"type:text;not null" json:"reason"`
	IsAnonymous     bool               `gorm:"default:false" json:"is_anonymous"`
	ReferralType    ReferralType       `gorm:"default:FORMAL" json:"referral_type"`
	IsDesensitized  bool               `gorm:"default:false" json:"is_desensitized"`
	Status          ReferralStatus     `gorm:"default:SUBMITTED" json:"status"`
	ResumeFileName  *string            `json:"resume_file_name"`
	ResumeFileURL   *string            `json:"resume_file_url"`
	Job             Job                `json:"job,omitempty"`
	User            User               `json:"user,omitempty"`
	ProgressHistory []ReferralProgress `gorm:"foreignKey:ReferralID" json:"progress_history,omitempty"`
}
