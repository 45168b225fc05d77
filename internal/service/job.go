package service

import (
	"context"
	"errors"
	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo"
	"freelance-market-api/internal/repo/repo_errors"
)

type JobService struct {
	jobRepo repo.Job
}

func NewJobService(repos *repo.Repositories) *JobService {
	return &JobService{jobRepo: repos.Job}
}

func (s *JobService) CreateJob(ctx context.Context, input *entity.CreateJobInput) (uint64, error) {
	if err := validateJobPosting(input); err != nil {
		return 0, err
	}

	input.Status = common.Open

	return s.jobRepo.CreateJob(ctx, input)
}

func (s *JobService) GetJobById(ctx context.Context, id uint64) (*entity.JobOutputModel, error) {
	job, err := s.jobRepo.GetJobById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	return mapJob(job), nil
}

func (s *JobService) GetJobs(ctx context.Context, filter *entity.JobFilter) ([]entity.JobOutputModel, error) {
	if err := validateJobFilter(filter); err != nil {
		return nil, err
	}

	jobs, err := s.jobRepo.GetJobs(ctx, filter)
	if err != nil {
		return nil, err
	}

	return mapJobs(jobs), nil
}

// DeleteJob removes an open, unassigned job and everything it owns. Only
// the client may delete, and never after a freelancer has been assigned;
// removed identifiers are never handed out again.
func (s *JobService) DeleteJob(ctx context.Context, id uint64, requester string) error {
	job, err := s.jobRepo.GetJobById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrJobNotFound) {
			return ErrJobNotFound
		}

		return err
	}

	if requester != job.Client {
		return ErrRequesterNotClient
	}

	err = s.jobRepo.DeleteJob(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrJobNotFound) {
			return ErrJobNotFound
		}
		if errors.Is(err, repo_errors.ErrFreelancerAssigned) {
			return ErrFreelancerAlreadyAssigned
		}

		return err
	}

	return nil
}

func (s *JobService) CompleteJob(ctx context.Context, id uint64, requester string) (*entity.JobOutputModel, error) {
	return s.finishJob(ctx, id, requester, common.Completed)
}

func (s *JobService) DisputeJob(ctx context.Context, id uint64, requester string) (*entity.JobOutputModel, error) {
	return s.finishJob(ctx, id, requester, common.Disputed)
}

// finishJob moves an InProgress job to one of its terminal statuses. The
// requester must be the client or the assigned freelancer; the transition
// itself is a compare-and-swap, so a repeated call fails even when two
// requests race.
func (s *JobService) finishJob(ctx context.Context, id uint64, requester string, toStatus string) (*entity.JobOutputModel, error) {
	job, err := s.jobRepo.GetJobById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	if requester != job.Client && (job.Freelancer == "" || requester != job.Freelancer) {
		return nil, ErrRequesterNotParticipant
	}

	err = s.jobRepo.UpdateJobStatus(ctx, id, common.InProgress, toStatus)
	if err != nil {
		if errors.Is(err, repo_errors.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		if errors.Is(err, repo_errors.ErrWrongStatus) {
			return nil, ErrJobNotInProgress
		}

		return nil, err
	}

	job, err = s.jobRepo.GetJobById(ctx, id)
	if err != nil {
		return nil, err
	}

	return mapJob(job), nil
}

// FundJob flips the funded flag exactly once. Funding never changes the job
// status; settlement lives with an external payment rail.
func (s *JobService) FundJob(ctx context.Context, id uint64, client string) (*entity.JobOutputModel, error) {
	job, err := s.jobRepo.GetJobById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	if client != job.Client {
		return nil, ErrRequesterNotClient
	}

	err = s.jobRepo.MarkJobFunded(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		if errors.Is(err, repo_errors.ErrAlreadyFunded) {
			return nil, ErrAlreadyFunded
		}

		return nil, err
	}

	job, err = s.jobRepo.GetJobById(ctx, id)
	if err != nil {
		return nil, err
	}

	return mapJob(job), nil
}
