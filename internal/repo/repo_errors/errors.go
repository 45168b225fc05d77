package repo_errors

import "errors"

var (
	ErrJobNotFound      = errors.New("job not found")
	ErrProposalNotFound = errors.New("proposal not found")
	ErrChatNotFound     = errors.New("chat not found")

	ErrDuplicateProposal  = errors.New("freelancer already has a proposal on this job")
	ErrFreelancerAssigned = errors.New("job already has a freelancer")
	ErrJobNotOpen         = errors.New("job is not open")
	ErrWrongStatus        = errors.New("job is not in the required status")
	ErrAlreadyFunded      = errors.New("job is already funded")
)
