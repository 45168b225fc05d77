package memdb

import (
	"context"
	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo/repo_errors"
)

type JobRepo struct {
	store *Store
}

func NewJobRepo(store *Store) *JobRepo {
	return &JobRepo{store}
}

func (r *JobRepo) CreateJob(ctx context.Context, input *entity.CreateJobInput) (uint64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Identifiers are never reused or decremented, even after deletion.
	id := r.store.nextId
	r.store.nextId++

	r.store.jobs = append(r.store.jobs, &entity.Job{
		Id:          id,
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		Deadline:    input.Deadline,
		Client:      input.Client,
		Proposals:   make([]entity.Proposal, 0),
		Status:      input.Status,
	})

	return id, nil
}

func (r *JobRepo) GetJobById(ctx context.Context, id uint64) (*entity.Job, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	job, _ := r.store.findJob(id)
	if job == nil {
		return nil, repo_errors.ErrJobNotFound
	}

	return copyJob(job), nil
}

func (r *JobRepo) GetJobs(ctx context.Context, filter *entity.JobFilter) ([]entity.Job, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	jobs := make([]entity.Job, 0)
	for _, job := range r.store.jobs {
		if filter != nil {
			if filter.Status != "" && job.Status != filter.Status {
				continue
			}
			if filter.Client != "" && job.Client != filter.Client {
				continue
			}
			if filter.Freelancer != "" && job.Freelancer != filter.Freelancer {
				continue
			}
		}

		jobs = append(jobs, *copyJob(job))
	}

	return jobs, nil
}

func (r *JobRepo) DeleteJob(ctx context.Context, id uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	job, i := r.store.findJob(id)
	if job == nil {
		return repo_errors.ErrJobNotFound
	}
	if job.Freelancer != "" {
		return repo_errors.ErrFreelancerAssigned
	}

	r.store.jobs = append(r.store.jobs[:i], r.store.jobs[i+1:]...)
	delete(r.store.chats, id)

	return nil
}

func (r *JobRepo) AddProposal(ctx context.Context, input *entity.CreateProposalInput) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	job, _ := r.store.findJob(input.JobId)
	if job == nil {
		return repo_errors.ErrJobNotFound
	}
	if job.Status != common.Open {
		return repo_errors.ErrJobNotOpen
	}
	for _, p := range job.Proposals {
		if p.Freelancer == input.Freelancer {
			return repo_errors.ErrDuplicateProposal
		}
	}

	job.Proposals = append(job.Proposals, entity.Proposal{
		Freelancer:     input.Freelancer,
		CoverLetter:    input.CoverLetter,
		ExpectedBudget: input.ExpectedBudget,
	})

	return nil
}

// AcceptProposal marks the proposal accepted, assigns the freelancer, moves
// the job to InProgress and creates the chat, all under the store lock: no
// observer ever sees an assigned freelancer without a usable chat.
func (r *JobRepo) AcceptProposal(ctx context.Context, jobId uint64, freelancer string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	job, _ := r.store.findJob(jobId)
	if job == nil {
		return repo_errors.ErrJobNotFound
	}
	if job.Freelancer != "" {
		return repo_errors.ErrFreelancerAssigned
	}

	accepted := false
	for i := range job.Proposals {
		if job.Proposals[i].Freelancer == freelancer {
			job.Proposals[i].IsAccepted = true
			accepted = true
			break
		}
	}
	if !accepted {
		return repo_errors.ErrProposalNotFound
	}

	job.Freelancer = freelancer
	job.Status = common.InProgress
	r.store.chats[jobId] = &chatState{
		chat: entity.Chat{
			JobId:      jobId,
			Client:     job.Client,
			Freelancer: freelancer,
			Messages:   make([]entity.Message, 0),
		},
	}

	return nil
}

func (r *JobRepo) RemoveProposal(ctx context.Context, jobId uint64, freelancer string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	job, _ := r.store.findJob(jobId)
	if job == nil {
		return repo_errors.ErrJobNotFound
	}

	for i := range job.Proposals {
		if job.Proposals[i].Freelancer == freelancer {
			job.Proposals = append(job.Proposals[:i], job.Proposals[i+1:]...)
			return nil
		}
	}

	return repo_errors.ErrProposalNotFound
}

func (r *JobRepo) UpdateJobStatus(ctx context.Context, jobId uint64, fromStatus string, toStatus string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	job, _ := r.store.findJob(jobId)
	if job == nil {
		return repo_errors.ErrJobNotFound
	}
	if job.Status != fromStatus {
		return repo_errors.ErrWrongStatus
	}

	job.Status = toStatus

	return nil
}

func (r *JobRepo) MarkJobFunded(ctx context.Context, jobId uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	job, _ := r.store.findJob(jobId)
	if job == nil {
		return repo_errors.ErrJobNotFound
	}
	if job.Funded {
		return repo_errors.ErrAlreadyFunded
	}

	job.Funded = true

	return nil
}
