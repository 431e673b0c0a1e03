package works

import "errors"

// Status is a one-way workflow: every artwork starts pending and never
// returns there. Rejection is terminal; there is no resubmit path.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var ErrInvalidTransition = errors.New("invalid artwork status transition")

// CanTransition reports whether from → to is allowed. Same-state
// transitions are allowed so that repeated moderation calls stay
// idempotent; the handler treats them as no-op successes.
func CanTransition(from, to Status) bool {
	if from == to {
		return from == StatusApproved || from == StatusRejected
	}
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusRejected
	case StatusRejected:
		return false
	default:
		return false
	}
}
