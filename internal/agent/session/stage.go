package session

// Stage is the explicit per-thread position in the loan origination flow.
// The model still chooses which tool to call; the stage gate makes an
// out-of-order call observable as a structured tool error instead of letting
// the conversation silently skip a step.
type Stage string

const (
	StageNew                Stage = "NEW"
	StageAuthenticating     Stage = "AUTHENTICATING"
	StageProfiled           Stage = "PROFILED"
	StageNegotiatingProduct Stage = "NEGOTIATING_PRODUCT"
	StageEligibilityChecked Stage = "ELIGIBILITY_CHECKED"
	StagePreApproved        Stage = "PRE_APPROVED"
	StageRejected           Stage = "REJECTED"
)

var stageRank = map[Stage]int{
	StageNew:                0,
	StageAuthenticating:     1,
	StageProfiled:           2,
	StageNegotiatingProduct: 3,
	StageEligibilityChecked: 4,
	StagePreApproved:        5,
	StageRejected:           5,
}

// AtLeast reports whether s has reached the given stage in the flow.
func (s Stage) AtLeast(other Stage) bool {
	return stageRank[s] >= stageRank[other]
}

// advance moves forward only; a later stage is never rolled back by an
// earlier tool being re-run (re-verifying identity mid-conversation must not
// forget an eligibility decision).
func advance(current, next Stage) Stage {
	if stageRank[next] > stageRank[current] {
		return next
	}
	return current
}
