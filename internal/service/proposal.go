package service

import (
	"context"
	"errors"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo"
	"freelance-market-api/internal/repo/repo_errors"
)

type ProposalService struct {
	jobRepo repo.Job
}

func NewProposalService(repos *repo.Repositories) *ProposalService {
	return &ProposalService{jobRepo: repos.Job}
}

func (s *ProposalService) SubmitProposal(ctx context.Context, input *entity.CreateProposalInput) error {
	if err := validateProposal(input); err != nil {
		return err
	}

	err := s.jobRepo.AddProposal(ctx, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrJobNotFound) {
			return ErrJobNotFound
		}
		if errors.Is(err, repo_errors.ErrJobNotOpen) {
			return ErrJobNotOpen
		}
		if errors.Is(err, repo_errors.ErrDuplicateProposal) {
			return ErrDuplicateProposal
		}

		return err
	}

	return nil
}

// AcceptProposal is the single event that assigns the freelancer, marks the
// proposal accepted, moves the job to InProgress and opens the chat. The
// first successful call wins; every later attempt for the same job fails
// with the freelancer-already-assigned conflict regardless of target.
func (s *ProposalService) AcceptProposal(ctx context.Context, jobId uint64, freelancer string) (*entity.JobOutputModel, error) {
	err := s.jobRepo.AcceptProposal(ctx, jobId, freelancer)
	if err != nil {
		if errors.Is(err, repo_errors.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		if errors.Is(err, repo_errors.ErrProposalNotFound) {
			return nil, ErrProposalNotFound
		}
		if errors.Is(err, repo_errors.ErrFreelancerAssigned) {
			return nil, ErrFreelancerAlreadyAssigned
		}

		return nil, err
	}

	job, err := s.jobRepo.GetJobById(ctx, jobId)
	if err != nil {
		return nil, err
	}

	return mapJob(job), nil
}

func (s *ProposalService) RejectProposal(ctx context.Context, jobId uint64, freelancer string) error {
	err := s.jobRepo.RemoveProposal(ctx, jobId, freelancer)
	if err != nil {
		if errors.Is(err, repo_errors.ErrJobNotFound) {
			return ErrJobNotFound
		}
		if errors.Is(err, repo_errors.ErrProposalNotFound) {
			return ErrProposalNotFound
		}

		return err
	}

	return nil
}
