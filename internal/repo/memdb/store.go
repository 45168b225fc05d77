package memdb

import (
	"freelance-market-api/internal/entity"
	"sync"
)

// Store is the single shared mutable resource of the in-memory backend:
// the job table, the per-job chat table and the identifier counter. One
// mutex serializes every operation, and reads hand out copies, so callers
// never observe the store mutated mid-iteration and no partial write is
// visible between operations.
type Store struct {
	mu     sync.Mutex
	jobs   []*entity.Job
	chats  map[uint64]*chatState
	nextId uint64
}

type chatState struct {
	chat   entity.Chat
	lastTs uint64
}

func NewStore() *Store {
	return &Store{
		chats:  make(map[uint64]*chatState),
		nextId: 1,
	}
}

// caller must hold s.mu
func (s *Store) findJob(id uint64) (*entity.Job, int) {
	for i, job := range s.jobs {
		if job.Id == id {
			return job, i
		}
	}

	return nil, -1
}

func copyJob(job *entity.Job) *entity.Job {
	c := *job
	c.Proposals = make([]entity.Proposal, len(job.Proposals))
	copy(c.Proposals, job.Proposals)

	return &c
}
