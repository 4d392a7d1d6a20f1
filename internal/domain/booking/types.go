package booking

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusCheckedOut Status = "CHECKED_OUT"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether a booking in this status accepts no further
// transitions. CHECKED_OUT, CANCELLED and NO_SHOW end the lifecycle.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCheckedOut, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

var allStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCheckedIn,
	StatusCheckedOut,
	StatusCancelled,
	StatusNoShow,
}

// AllowedTransitions returns the statuses reachable from the given one.
// Non-terminal statuses may move to any status other than themselves;
// terminal statuses originate nothing.
func AllowedTransitions(from Status) []Status {
	if !from.IsValid() || from.IsTerminal() {
		return nil
	}
	targets := make([]Status, 0, len(allStatuses)-1)
	for _, s := range allStatuses {
		if s != from {
			targets = append(targets, s)
		}
	}
	return targets
}

// CanTransition validates a requested status change against the transition
// table. A transition to the current status is rejected as a no-op.
func CanTransition(from, to Status) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	if from == to {
		return ErrNoStatusChange
	}
	if from.IsTerminal() {
		return ErrTerminalStatus
	}
	return nil
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

func (p PaymentStatus) String() string {
	return string(p)
}
