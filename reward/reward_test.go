package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HannahChen955/referralx-platform/models"
)

func intPtr(v int) *int { return &v }

func TestCommissionRange(t *testing.T) {
	got := CommissionRange(intPtr(20000), intPtr(40000), 0.15, 0.60)

	require.NotNil(t, got)
	assert.Equal(t, 21600, got.Min)
	assert.Equal(t, 43200, got.Max)
}

func TestCommissionRangeNilWithoutSalaryBounds(t *testing.T) {
	assert.Nil(t, CommissionRange(nil, intPtr(40000), 0.15, 0.60))
	assert.Nil(t, CommissionRange(intPtr(20000), nil, 0.15, 0.60))
	assert.Nil(t, CommissionRange(nil, nil, 0.15, 0.60))
}

func TestCommissionRangeMonotonicInRates(t *testing.T) {
	min, max := intPtr(20000), intPtr(40000)

	low := CommissionRange(min, max, 0.10, 0.50)
	high := CommissionRange(min, max, 0.20, 0.50)
	require.NotNil(t, low)
	require.NotNil(t, high)
	assert.LessOrEqual(t, low.Min, high.Min)
	assert.LessOrEqual(t, low.Max, high.Max)

	higherShare := CommissionRange(min, max, 0.10, 0.70)
	assert.LessOrEqual(t, low.Min, higherShare.Min)
	assert.LessOrEqual(t, low.Max, higherShare.Max)
}

func TestCommissionRangeMonotonicInSalary(t *testing.T) {
	small := CommissionRange(intPtr(10000), intPtr(20000), 0.15, 0.60)
	large := CommissionRange(intPtr(15000), intPtr(30000), 0.15, 0.60)

	assert.LessOrEqual(t, small.Min, large.Min)
	assert.LessOrEqual(t, small.Max, large.Max)
}

func TestTotalProcessReward(t *testing.T) {
	assert.Equal(t, 700, TotalProcessReward())
}

func TestTotalRewardRange(t *testing.T) {
	got := TotalRewardRange(intPtr(20000), intPtr(40000), 0.15, 0.60)

	require.NotNil(t, got)
	assert.Equal(t, 700+21600, got.Min)
	assert.Equal(t, 700+43200, got.Max)

	assert.Nil(t, TotalRewardRange(nil, nil, 0.15, 0.60))
}

func TestRewardForStage(t *testing.T) {
	cases := []struct {
		stage  models.ReferralStatus
		cash   int
		points int
	}{
		{models.StatusSubmitted, 0, 100},
		{models.StatusRecruiterReview, 0, 200},
		{models.StatusInterviewScheduled, 200, 300},
		{models.StatusOfferMade, 500, 500},
		{models.StatusHired, 0, 0},
		{models.StatusProbationPassed, 0, 1500},
		{models.StatusRejected, 0, 0},
	}
	for _, tc := range cases {
		t.Run(string(tc.stage), func(t *testing.T) {
			got := RewardForStage(tc.stage)
			assert.Equal(t, tc.cash, got.CashAmount)
			assert.Equal(t, tc.points, got.Points)
		})
	}
}

func TestConfigureStagesRejectsIncompleteTable(t *testing.T) {
	defer func() { _ = ConfigureStages(DefaultStageRewards()) }()

	stages := DefaultStageRewards()
	err := ConfigureStages(stages[:len(stages)-1])
	assert.Error(t, err)
}

func TestConfigureStagesRejectsDuplicates(t *testing.T) {
	defer func() { _ = ConfigureStages(DefaultStageRewards()) }()

	stages := append(DefaultStageRewards(), StageReward{Stage: models.StatusHired})
	err := ConfigureStages(stages)
	assert.Error(t, err)
}

func TestConfigureStagesRejectsRejectedStage(t *testing.T) {
	defer func() { _ = ConfigureStages(DefaultStageRewards()) }()

	stages := append(DefaultStageRewards(), StageReward{Stage: models.StatusRejected})
	err := ConfigureStages(stages)
	assert.Error(t, err)
}
