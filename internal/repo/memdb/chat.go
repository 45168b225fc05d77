package memdb

import (
	"context"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo/repo_errors"
)

type ChatRepo struct {
	store *Store
}

func NewChatRepo(store *Store) *ChatRepo {
	return &ChatRepo{store}
}

func (r *ChatRepo) AppendMessage(ctx context.Context, input *entity.CreateMessageInput) (*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cs, ok := r.store.chats[input.JobId]
	if !ok {
		return nil, repo_errors.ErrChatNotFound
	}

	// Caller-supplied timestamps are stored verbatim; a zero timestamp is
	// filled in from the chat's logical clock, which never decreases.
	ts := input.Timestamp
	if ts == 0 {
		ts = cs.lastTs + 1
	}
	if ts > cs.lastTs {
		cs.lastTs = ts
	}

	message := entity.Message{
		Sender:    input.Sender,
		Content:   input.Content,
		Timestamp: ts,
	}
	cs.chat.Messages = append(cs.chat.Messages, message)

	return &message, nil
}

func (r *ChatRepo) GetChatByJobId(ctx context.Context, jobId uint64) (*entity.Chat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cs, ok := r.store.chats[jobId]
	if !ok {
		return nil, repo_errors.ErrChatNotFound
	}

	chat := cs.chat
	chat.Messages = make([]entity.Message, len(cs.chat.Messages))
	copy(chat.Messages, cs.chat.Messages)

	return &chat, nil
}
