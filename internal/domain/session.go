package domain

// PendingState tracks a proposed command through the confirmation lifecycle.
type PendingState string

const (
	StateProposed            PendingState = "proposed"
	StateAutoApproved        PendingState = "auto_approved"
	StatePendingConfirmation PendingState = "pending_confirmation"
	StateExecuted            PendingState = "executed"
	StateFailed              PendingState = "failed"
	StateCancelled           PendingState = "cancelled"
	StateEdited              PendingState = "edited"
)

// Terminal reports whether the state ends the lifecycle of a proposal.
func (s PendingState) Terminal() bool {
	switch s {
	case StateExecuted, StateFailed, StateCancelled, StateEdited:
		return true
	default:
		return false
	}
}

// PendingCommand is a proposed, not-yet-executed command awaiting a human
// decision. At most one is held per interactive session; a new proposal
// replaces an unresolved one.
type PendingCommand struct {
	ID          string
	OriginInput string
	CommandText string
	Verdict     SafetyVerdict
	State       PendingState
}
