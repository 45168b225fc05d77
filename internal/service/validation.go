package service

import (
	"fmt"
	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
)

// Field bounds enforced here regardless of what the boundary layer already
// checked: the core never trusts its callers.

func validateJobPosting(input *entity.CreateJobInput) error {
	if len(input.Title) == 0 || len(input.Title) > 100 {
		return fmt.Errorf("%w: job title must be between 1 and 100 characters", ErrValidation)
	}
	if len(input.Description) == 0 || len(input.Description) > 1000 {
		return fmt.Errorf("%w: job description must be between 1 and 1000 characters", ErrValidation)
	}
	if input.Budget == 0 {
		return fmt.Errorf("%w: budget must be greater than 0", ErrValidation)
	}
	if input.Deadline == "" {
		return fmt.Errorf("%w: deadline cannot be empty", ErrValidation)
	}
	if input.Client == "" {
		return fmt.Errorf("%w: client name cannot be empty", ErrValidation)
	}

	return nil
}

func validateProposal(input *entity.CreateProposalInput) error {
	if input.Freelancer == "" {
		return fmt.Errorf("%w: freelancer name cannot be empty", ErrValidation)
	}
	if len(input.CoverLetter) == 0 || len(input.CoverLetter) > 500 {
		return fmt.Errorf("%w: cover letter must be between 1 and 500 characters", ErrValidation)
	}
	if input.ExpectedBudget == 0 {
		return fmt.Errorf("%w: expected budget must be greater than 0", ErrValidation)
	}

	return nil
}

func validateMessage(input *entity.CreateMessageInput) error {
	if input.Sender == "" {
		return fmt.Errorf("%w: sender cannot be empty", ErrValidation)
	}
	if len(input.Content) == 0 || len(input.Content) > 1000 {
		return fmt.Errorf("%w: message must be between 1 and 1000 characters", ErrValidation)
	}

	return nil
}

func validateJobFilter(filter *entity.JobFilter) error {
	if filter != nil && filter.Status != "" && !common.IsValidStatus(filter.Status) {
		return fmt.Errorf("%w: unknown job status %q", ErrValidation, filter.Status)
	}

	return nil
}
