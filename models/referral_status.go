package models

// ReferralStatus is the lifecycle stage of a referral. The flow is a straight
// chain from SUBMITTED to PROBATION_PASSED, with REJECTED reachable from any
// non-terminal stage. REJECTED and PROBATION_PASSED are terminal.
type ReferralStatus string

const (
	StatusSubmitted          ReferralStatus = "SUBMITTED"
	StatusRecruiterReview    ReferralStatus = "RECRUITER_REVIEW"
	StatusInterviewScheduled ReferralStatus = "INTERVIEW_SCHEDULED"
	StatusOfferMade          ReferralStatus = "OFFER_MADE"
	StatusHired              ReferralStatus = "HIRED"
	StatusProbationPassed    ReferralStatus = "PROBATION_PASSED"
	StatusRejected           ReferralStatus = "REJECTED"
)

// AllStatuses lists every lifecycle stage in chain order, REJECTED last.
var AllStatuses = []ReferralStatus{
	StatusSubmitted,
	StatusRecruiterReview,
	StatusInterviewScheduled,
	StatusOfferMade,
	StatusHired,
	StatusProbationPassed,
	StatusRejected,
}

var nextStatus = map[ReferralStatus]ReferralStatus{
	StatusSubmitted:          StatusRecruiterReview,
	StatusRecruiterReview:    StatusInterviewScheduled,
	StatusInterviewScheduled: StatusOfferMade,
	StatusOfferMade:          StatusHired,
	StatusHired:              StatusProbationPassed,
}

// IsValid reports whether s is a known lifecycle stage.
func (s ReferralStatus) IsValid() bool {
	for _, status := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leads out of s.
func (s ReferralStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusProbationPassed
}

// CanTransition reports whether moving from s to target is a legal lifecycle
// transition: one step forward along the chain, or to REJECTED from any
// non-terminal stage.
func (s ReferralStatus) CanTransition(target ReferralStatus) bool {
	if !s.IsValid() || !target.IsValid() {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if target == StatusRejected {
		return true
	}
	return nextStatus[s] == target
}
