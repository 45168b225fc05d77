package entity

// db model. A chat is created exactly once per job, at the moment a
// proposal is accepted, and holds the two participants allowed to write.
type Chat struct {
	JobId      uint64    `json:"jobId" db:"job_id"`
	Client     string    `json:"client" db:"client"`
	Freelancer string    `json:"freelancer" db:"freelancer"`
	Messages   []Message `json:"messages"`
}

// db model. Messages are immutable once appended; ordering is append order.
type Message struct {
	Sender    string `json:"sender" db:"sender"`
	Content   string `json:"content" db:"content"`
	Timestamp uint64 `json:"timestamp" db:"ts"`
}

// service + repo input model
type CreateMessageInput struct {
	JobId     uint64 // given
	Sender    string // given
	Content   string // given
	Timestamp uint64 // given; 0 means "assign from the chat's logical clock"
}

// controller model
type MessageOutputModel struct {
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp uint64 `json:"timestamp"`
}
