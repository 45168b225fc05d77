package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo/repo_errors"
	"freelance-market-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
)

type JobRepo struct {
	*postgres.Postgres
}

func NewJobRepo(pg *postgres.Postgres) *JobRepo {
	return &JobRepo{pg}
}

func (r *JobRepo) CreateJob(ctx context.Context, input *entity.CreateJobInput) (uint64, error) {
	createJobSql, args, _ := r.SqlBuilder.
		Insert("job").
		Columns("title", "description", "budget", "deadline", "client", "status").
		Values(input.Title, input.Description, input.Budget, input.Deadline, input.Client, input.Status).
		Suffix("RETURNING id").
		ToSql()

	var jobId uint64
	err := r.Database.QueryRowContext(ctx, createJobSql, args...).Scan(&jobId)
	if err != nil {
		return 0, err
	}

	return jobId, nil
}

func (r *JobRepo) GetJobById(ctx context.Context, id uint64) (*entity.Job, error) {
	getJobSql, args, _ := r.SqlBuilder.
		Select("id", "title", "description", "budget", "deadline", "client", "freelancer", "status", "funded").
		From("job").
		Where("id = ?", id).
		ToSql()

	var job entity.Job
	row := r.Database.QueryRowContext(ctx, getJobSql, args...)
	err := row.Scan(&job.Id, &job.Title, &job.Description, &job.Budget, &job.Deadline,
		&job.Client, &job.Freelancer, &job.Status, &job.Funded)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrJobNotFound
		}

		return nil, err
	}

	proposals, err := r.getProposalsForJobs(ctx, []uint64{job.Id})
	if err != nil {
		return nil, err
	}
	job.Proposals = proposals[job.Id]
	if job.Proposals == nil {
		job.Proposals = make([]entity.Proposal, 0)
	}

	return &job, nil
}

func (r *JobRepo) GetJobs(ctx context.Context, filter *entity.JobFilter) ([]entity.Job, error) {
	query := r.SqlBuilder.
		Select("id", "title", "description", "budget", "deadline", "client", "freelancer", "status", "funded").
		From("job").
		OrderBy("id")

	if filter != nil {
		if filter.Status != "" {
			query = query.Where(squirrel.Eq{"status": filter.Status})
		}
		if filter.Client != "" {
			query = query.Where(squirrel.Eq{"client": filter.Client})
		}
		if filter.Freelancer != "" {
			query = query.Where(squirrel.Eq{"freelancer": filter.Freelancer})
		}
	}

	getJobsSql, args, _ := query.ToSql()
	rows, err := r.Database.QueryContext(ctx, getJobsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]entity.Job, 0)
	ids := make([]uint64, 0)
	for rows.Next() {
		var job entity.Job
		err = rows.Scan(&job.Id, &job.Title, &job.Description, &job.Budget, &job.Deadline,
			&job.Client, &job.Freelancer, &job.Status, &job.Funded)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, job)
		ids = append(ids, job.Id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	proposals, err := r.getProposalsForJobs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		jobs[i].Proposals = proposals[jobs[i].Id]
		if jobs[i].Proposals == nil {
			jobs[i].Proposals = make([]entity.Proposal, 0)
		}
	}

	return jobs, nil
}

func (r *JobRepo) getProposalsForJobs(ctx context.Context, jobIds []uint64) (map[uint64][]entity.Proposal, error) {
	proposals := make(map[uint64][]entity.Proposal)
	if len(jobIds) == 0 {
		return proposals, nil
	}

	getProposalsSql, args, _ := r.SqlBuilder.
		Select("job_id", "freelancer", "cover_letter", "expected_budget", "is_accepted").
		From("proposal").
		Where(squirrel.Eq{"job_id": jobIds}).
		OrderBy("id").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getProposalsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var jobId uint64
		var p entity.Proposal
		err = rows.Scan(&jobId, &p.Freelancer, &p.CoverLetter, &p.ExpectedBudget, &p.IsAccepted)
		if err != nil {
			return nil, err
		}

		proposals[jobId] = append(proposals[jobId], p)
	}

	return proposals, rows.Err()
}

func (r *JobRepo) DeleteJob(ctx context.Context, id uint64) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, freelancer, err := lockJob(ctx, tx, r.SqlBuilder, id)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if freelancer != "" {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrFreelancerAssigned
	}

	// proposals, chat and messages go with the job via ON DELETE CASCADE
	deleteJobSql, args, _ := r.SqlBuilder.
		Delete("job").
		Where("id = ?", id).
		ToSql()

	if _, err = tx.ExecContext(ctx, deleteJobSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	return tx.Commit()
}

func (r *JobRepo) AddProposal(ctx context.Context, input *entity.CreateProposalInput) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	status, _, err := lockJob(ctx, tx, r.SqlBuilder, input.JobId)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if status != common.Open {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrJobNotOpen
	}

	// the job row lock serializes proposal writers for this job, so the
	// duplicate check and the insert cannot interleave
	existsSql, args, _ := r.SqlBuilder.
		Select("1").
		From("proposal").
		Where("job_id = ? and freelancer = ?", input.JobId, input.Freelancer).
		ToSql()

	var one int
	err = tx.QueryRowContext(ctx, existsSql, args...).Scan(&one)
	if err == nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrDuplicateProposal
	}
	if !errors.Is(err, sql.ErrNoRows) {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	addProposalSql, args, _ := r.SqlBuilder.
		Insert("proposal").
		Columns("job_id", "freelancer", "cover_letter", "expected_budget").
		Values(input.JobId, input.Freelancer, input.CoverLetter, input.ExpectedBudget).
		ToSql()

	if _, err = tx.ExecContext(ctx, addProposalSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	return tx.Commit()
}

func (r *JobRepo) AcceptProposal(ctx context.Context, jobId uint64, freelancer string) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	lockSql, args, _ := r.SqlBuilder.
		Select("client", "freelancer").
		From("job").
		Where("id = ?", jobId).
		Suffix("FOR UPDATE").
		ToSql()

	var client, assigned string
	err = tx.QueryRowContext(ctx, lockSql, args...).Scan(&client, &assigned)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}
		if errors.Is(err, sql.ErrNoRows) {
			return repo_errors.ErrJobNotFound
		}

		return err
	}
	if assigned != "" {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrFreelancerAssigned
	}

	acceptSql, args, _ := r.SqlBuilder.
		Update("proposal").
		Set("is_accepted", true).
		Where("job_id = ? and freelancer = ?", jobId, freelancer).
		ToSql()

	result, err := tx.ExecContext(ctx, acceptSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if affected == 0 {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrProposalNotFound
	}

	assignSql, args, _ := r.SqlBuilder.
		Update("job").
		Set("freelancer", freelancer).
		Set("status", common.InProgress).
		Where("id = ?", jobId).
		ToSql()

	if _, err = tx.ExecContext(ctx, assignSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	createChatSql, args, _ := r.SqlBuilder.
		Insert("chat").
		Columns("job_id", "client", "freelancer").
		Values(jobId, client, freelancer).
		ToSql()

	if _, err = tx.ExecContext(ctx, createChatSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	return tx.Commit()
}

func (r *JobRepo) RemoveProposal(ctx context.Context, jobId uint64, freelancer string) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, _, err = lockJob(ctx, tx, r.SqlBuilder, jobId); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	removeSql, args, _ := r.SqlBuilder.
		Delete("proposal").
		Where("job_id = ? and freelancer = ?", jobId, freelancer).
		ToSql()

	result, err := tx.ExecContext(ctx, removeSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if affected == 0 {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrProposalNotFound
	}

	return tx.Commit()
}

func (r *JobRepo) UpdateJobStatus(ctx context.Context, jobId uint64, fromStatus string, toStatus string) error {
	updateSql, args, _ := r.SqlBuilder.
		Update("job").
		Set("status", toStatus).
		Where("id = ? and status = ?", jobId, fromStatus).
		ToSql()

	result, err := r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	return r.jobMissingOr(ctx, jobId, repo_errors.ErrWrongStatus)
}

func (r *JobRepo) MarkJobFunded(ctx context.Context, jobId uint64) error {
	fundSql, args, _ := r.SqlBuilder.
		Update("job").
		Set("funded", true).
		Where("id = ? and funded = false", jobId).
		ToSql()

	result, err := r.Database.ExecContext(ctx, fundSql, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	return r.jobMissingOr(ctx, jobId, repo_errors.ErrAlreadyFunded)
}

// jobMissingOr disambiguates a zero-row guarded update: job absent means
// not-found, otherwise the guard itself failed.
func (r *JobRepo) jobMissingOr(ctx context.Context, jobId uint64, guardErr error) error {
	existsSql, args, _ := r.SqlBuilder.
		Select("1").
		From("job").
		Where("id = ?", jobId).
		ToSql()

	var one int
	err := r.Database.QueryRowContext(ctx, existsSql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repo_errors.ErrJobNotFound
		}

		return err
	}

	return guardErr
}

// lockJob takes the job row lock and returns its status and freelancer.
func lockJob(ctx context.Context, tx *sql.Tx, builder squirrel.StatementBuilderType, jobId uint64) (string, string, error) {
	lockSql, args, _ := builder.
		Select("status", "freelancer").
		From("job").
		Where("id = ?", jobId).
		Suffix("FOR UPDATE").
		ToSql()

	var status, freelancer string
	err := tx.QueryRowContext(ctx, lockSql, args...).Scan(&status, &freelancer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", repo_errors.ErrJobNotFound
		}

		return "", "", err
	}

	return status, freelancer, nil
}
