package entity

// db model
type Proposal struct {
	Freelancer     string `json:"freelancer" db:"freelancer"`
	CoverLetter    string `json:"coverLetter" db:"cover_letter"`
	ExpectedBudget uint64 `json:"expectedBudget" db:"expected_budget"`
	IsAccepted     bool   `json:"isAccepted" db:"is_accepted"`
}

// service + repo input model
type CreateProposalInput struct {
	JobId          uint64 // given
	Freelancer     string // given
	CoverLetter    string // given
	ExpectedBudget uint64 // given
	// IsAccepted starts false; set only through proposal acceptance
}

// controller model
type ProposalOutputModel struct {
	Freelancer     string `json:"freelancer"`
	CoverLetter    string `json:"coverLetter"`
	ExpectedBudget uint64 `json:"expectedBudget"`
	IsAccepted     bool   `json:"isAccepted"`
}
