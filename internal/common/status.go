package common

// Job lifecycle statuses. Open is the initial status; Completed, Cancelled
// and Disputed are terminal. Cancelled is declared for the lifecycle model
// but no operation currently transitions into it: cancelling an open,
// unassigned job is expressed as deletion.
const (
	Open       = "Open"
	InProgress = "InProgress"
	Completed  = "Completed"
	Cancelled  = "Cancelled"
	Disputed   = "Disputed"
)

var statuses = map[string]struct{}{
	Open:       {},
	InProgress: {},
	Completed:  {},
	Cancelled:  {},
	Disputed:   {},
}

func IsValidStatus(s string) bool {
	_, ok := statuses[s]
	return ok
}

func IsTerminalStatus(s string) bool {
	return s == Completed || s == Cancelled || s == Disputed
}
