package service

import (
	"context"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo"
)

type Diagnostics interface {
	Ping() error
}

type Job interface {
	CreateJob(ctx context.Context, input *entity.CreateJobInput) (uint64, error)
	GetJobById(ctx context.Context, id uint64) (*entity.JobOutputModel, error)
	GetJobs(ctx context.Context, filter *entity.JobFilter) ([]entity.JobOutputModel, error)
	DeleteJob(ctx context.Context, id uint64, requester string) error

	CompleteJob(ctx context.Context, id uint64, requester string) (*entity.JobOutputModel, error)
	DisputeJob(ctx context.Context, id uint64, requester string) (*entity.JobOutputModel, error)
	FundJob(ctx context.Context, id uint64, client string) (*entity.JobOutputModel, error)
}

type Proposal interface {
	SubmitProposal(ctx context.Context, input *entity.CreateProposalInput) error
	AcceptProposal(ctx context.Context, jobId uint64, freelancer string) (*entity.JobOutputModel, error)
	RejectProposal(ctx context.Context, jobId uint64, freelancer string) error
}

type Chat interface {
	SendMessage(ctx context.Context, input *entity.CreateMessageInput) (*entity.MessageOutputModel, error)
	GetChat(ctx context.Context, jobId uint64) ([]entity.MessageOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Job         Job
	Proposal    Proposal
	Chat        Chat
}

func NewServices(repos *repo.Repositories) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Job:         NewJobService(repos),
		Proposal:    NewProposalService(repos),
		Chat:        NewChatService(repos),
	}
}
