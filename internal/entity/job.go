package entity

// db model
type Job struct {
	Id          uint64     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Budget      uint64     `json:"budget" db:"budget"`
	Deadline    string     `json:"deadline" db:"deadline"`
	Client      string     `json:"client" db:"client"`
	Freelancer  string     `json:"freelancer" db:"freelancer"`
	Proposals   []Proposal `json:"proposals"`
	Status      string     `json:"status" db:"status"`
	Funded      bool       `json:"funded" db:"funded"`
}

// service + repo input model
type CreateJobInput struct {
	Title       string // given
	Description string // given
	Budget      uint64 // given
	Deadline    string // given
	Client      string // given
	Status      string // should be set: "Open"
	// Id is allocated by the repo, strictly increasing, never reused
	// Freelancer stays empty until a proposal is accepted
	// Funded starts false
}

// service + repo filter for job listings; empty fields are not applied
type JobFilter struct {
	Status     string
	Client     string
	Freelancer string
}

// controller model
type JobOutputModel struct {
	Id          uint64                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Budget      uint64                `json:"budget"`
	Deadline    string                `json:"deadline"`
	Client      string                `json:"client"`
	Freelancer  string                `json:"freelancer,omitempty"`
	Proposals   []ProposalOutputModel `json:"proposals"`
	Status      string                `json:"status"`
	Funded      bool                  `json:"funded"`
}
