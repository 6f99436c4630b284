// Package reward derives displayable reward ranges, per-stage payouts and
// referrer loyalty levels from job rates and accumulated points.
package reward

import (
	"fmt"
	"math"

	"github.com/HannahChen955/referralx-platform/models"
)

// Range is an inclusive cash range in the local currency unit.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// StageReward is the flat cash amount and point award unlocked when a
// referral reaches a stage. Only PROBATION_PASSED additionally unlocks the
// salary-based commission range.
type StageReward struct {
	Stage       models.ReferralStatus `mapstructure:"stage" json:"stage"`
	Description string                `mapstructure:"description" json:"description"`
	CashAmount  int                   `mapstructure:"cash_amount" json:"cash_amount"`
	Points      int                   `mapstructure:"points" json:"points"`
}

var stageRewards = DefaultStageRewards()

// DefaultStageRewards returns the built-in per-stage reward table.
func DefaultStageRewards() []StageReward {
	return []StageReward{
		{Stage: models.StatusSubmitted, Description: "简历提交", CashAmount: 0, Points: 100},
		{Stage: models.StatusRecruiterReview, Description: "HR初筛通过", CashAmount: 0, Points: 200},
		{Stage: models.StatusInterviewScheduled, Description: "面试通过", CashAmount: 200, Points: 300},
		{Stage: models.StatusOfferMade, Description: "Offer接受", CashAmount: 500, Points: 500},
		{Stage: models.StatusHired, Description: "正式入职", CashAmount: 0, Points: 0},
		{Stage: models.StatusProbationPassed, Description: "成功入职过保", CashAmount: 0, Points: 1500},
	}
}

// ConfigureStages replaces the stage table after validating it. Every
// non-rejected lifecycle stage must appear exactly once.
func ConfigureStages(stages []StageReward) error {
	seen := make(map[models.ReferralStatus]bool, len(stages))
	for _, s := range stages {
		if !s.Stage.IsValid() || s.Stage == models.StatusRejected {
			return fmt.Errorf("reward: invalid stage %q in stage table", s.Stage)
		}
		if seen[s.Stage] {
			return fmt.Errorf("reward: duplicate stage %q in stage table", s.Stage)
		}
		if s.CashAmount < 0 || s.Points < 0 {
			return fmt.Errorf("reward: negative amount for stage %q", s.Stage)
		}
		seen[s.Stage] = true
	}
	for _, status := range models.AllStatuses {
		if status != models.StatusRejected && !seen[status] {
			return fmt.Errorf("reward: stage table is missing %q", status)
		}
	}
	stageRewards = stages
	return nil
}

// StageRewards returns the active stage table in lifecycle order.
func StageRewards() []StageReward {
	out := make([]StageReward, len(stageRewards))
	copy(out, stageRewards)
	return out
}

// RewardForStage looks up the stage table entry for a lifecycle stage.
// REJECTED and unknown stages carry no reward.
func RewardForStage(stage models.ReferralStatus) StageReward {
	for _, s := range stageRewards {
		if s.Stage == stage {
			return s
		}
	}
	return StageReward{Stage: stage}
}

// TotalProcessReward is the sum of the flat per-stage cash bonuses, the number
// shown as "process reward" on job listings.
func TotalProcessReward() int {
	total := 0
	for _, s := range stageRewards {
		total += s.CashAmount
	}
	return total
}

// CommissionRange computes the salary-proportional payout range for a job:
// each monthly salary bound annualized and multiplied by the company's
// commission rate and the referrer's share of it, rounded to the nearest
// integer. Returns nil when either salary bound is absent, meaning the reward
// display falls back to "negotiable".
func CommissionRange(salaryMin, salaryMax *int, commissionRate, referrerShareRate float64) *Range {
	if salaryMin == nil || salaryMax == nil {
		return nil
	}
	return &Range{
		Min: int(math.Round(float64(*salaryMin) * 12 * commissionRate * referrerShareRate)),
		Max: int(math.Round(float64(*salaryMax) * 12 * commissionRate * referrerShareRate)),
	}
}

// TotalRewardRange is the headline number for a job listing: the flat process
// reward plus the commission bound, per bound. Nil when no commission range
// is computable.
func TotalRewardRange(salaryMin, salaryMax *int, commissionRate, referrerShareRate float64) *Range {
	commission := CommissionRange(salaryMin, salaryMax, commissionRate, referrerShareRate)
	if commission == nil {
		return nil
	}
	process := TotalProcessReward()
	return &Range{Min: process + commission.Min, Max: process + commission.Max}
}
