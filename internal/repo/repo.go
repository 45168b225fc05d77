package repo

import (
	"context"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo/memdb"
	"freelance-market-api/internal/repo/pgdb"
	"freelance-market-api/pkg/postgres"
)

type Diagnostics interface {
	Ping() error
}

// Job mutations are atomic: each call either fully applies or fails with a
// repo_errors sentinel, with the state precondition checked under the same
// lock/transaction as the write.
type Job interface {
	CreateJob(ctx context.Context, input *entity.CreateJobInput) (uint64, error)
	GetJobById(ctx context.Context, id uint64) (*entity.Job, error)
	GetJobs(ctx context.Context, filter *entity.JobFilter) ([]entity.Job, error)
	DeleteJob(ctx context.Context, id uint64) error

	AddProposal(ctx context.Context, input *entity.CreateProposalInput) error
	AcceptProposal(ctx context.Context, jobId uint64, freelancer string) error
	RemoveProposal(ctx context.Context, jobId uint64, freelancer string) error

	UpdateJobStatus(ctx context.Context, jobId uint64, fromStatus string, toStatus string) error
	MarkJobFunded(ctx context.Context, jobId uint64) error
}

type Chat interface {
	AppendMessage(ctx context.Context, input *entity.CreateMessageInput) (*entity.Message, error)
	GetChatByJobId(ctx context.Context, jobId uint64) (*entity.Chat, error)
}

type Repositories struct {
	Diagnostics
	Job
	Chat
}

func NewMemoryRepositories() *Repositories {
	store := memdb.NewStore()

	return &Repositories{
		Diagnostics: memdb.NewDiagnosticsRepo(store),
		Job:         memdb.NewJobRepo(store),
		Chat:        memdb.NewChatRepo(store),
	}
}

func NewPostgresRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Job:         pgdb.NewJobRepo(p),
		Chat:        pgdb.NewChatRepo(p),
	}
}
