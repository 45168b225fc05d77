package service

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	ErrJobNotFound      = errors.New("job not found")
	ErrProposalNotFound = errors.New("proposal not found")
	ErrChatNotFound     = errors.New("no chat history found for this job")

	ErrJobNotOpen       = errors.New("cannot submit proposal to a closed job")
	ErrJobNotInProgress = errors.New("job must be in progress")
	ErrJobNotActive     = errors.New("job is not active")

	ErrFreelancerAlreadyAssigned = errors.New("job already has a freelancer")
	ErrDuplicateProposal         = errors.New("you have already submitted a proposal for this job")

	ErrRequesterNotParticipant = errors.New("only the client or freelancer can perform this action")
	ErrRequesterNotClient      = errors.New("only the client can perform this action")

	ErrAlreadyFunded      = errors.New("job is already funded")
	ErrChatNotInitialized = errors.New("chat history not initialized")
)
