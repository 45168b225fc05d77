package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo/repo_errors"
	"freelance-market-api/pkg/postgres"
)

type ChatRepo struct {
	*postgres.Postgres
}

func NewChatRepo(pg *postgres.Postgres) *ChatRepo {
	return &ChatRepo{pg}
}

func (r *ChatRepo) AppendMessage(ctx context.Context, input *entity.CreateMessageInput) (*entity.Message, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	lockChatSql, args, _ := r.SqlBuilder.
		Select("job_id").
		From("chat").
		Where("job_id = ?", input.JobId).
		Suffix("FOR UPDATE").
		ToSql()

	var jobId uint64
	err = tx.QueryRowContext(ctx, lockChatSql, args...).Scan(&jobId)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrChatNotFound
		}

		return nil, err
	}

	// caller-supplied timestamps are stored verbatim; zero means "next
	// tick of this chat's logical clock"
	ts := input.Timestamp
	if ts == 0 {
		clockSql, clockArgs, _ := r.SqlBuilder.
			Select("coalesce(max(ts), 0) + 1").
			From("message").
			Where("job_id = ?", input.JobId).
			ToSql()

		if err = tx.QueryRowContext(ctx, clockSql, clockArgs...).Scan(&ts); err != nil {
			if e := tx.Rollback(); e != nil {
				return nil, e
			}

			return nil, err
		}
	}

	appendSql, args, _ := r.SqlBuilder.
		Insert("message").
		Columns("job_id", "sender", "content", "ts").
		Values(input.JobId, input.Sender, input.Content, ts).
		ToSql()

	if _, err = tx.ExecContext(ctx, appendSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &entity.Message{Sender: input.Sender, Content: input.Content, Timestamp: ts}, nil
}

func (r *ChatRepo) GetChatByJobId(ctx context.Context, jobId uint64) (*entity.Chat, error) {
	getChatSql, args, _ := r.SqlBuilder.
		Select("job_id", "client", "freelancer").
		From("chat").
		Where("job_id = ?", jobId).
		ToSql()

	var chat entity.Chat
	err := r.Database.QueryRowContext(ctx, getChatSql, args...).Scan(&chat.JobId, &chat.Client, &chat.Freelancer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrChatNotFound
		}

		return nil, err
	}

	getMessagesSql, args, _ := r.SqlBuilder.
		Select("sender", "content", "ts").
		From("message").
		Where("job_id = ?", jobId).
		OrderBy("id").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getMessagesSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chat.Messages = make([]entity.Message, 0)
	for rows.Next() {
		var m entity.Message
		if err = rows.Scan(&m.Sender, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}

		chat.Messages = append(chat.Messages, m)
	}

	return &chat, rows.Err()
}
