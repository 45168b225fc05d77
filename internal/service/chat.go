package service

import (
	"context"
	"errors"
	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo"
	"freelance-market-api/internal/repo/repo_errors"
)

type ChatService struct {
	jobRepo  repo.Job
	chatRepo repo.Chat
}

func NewChatService(repos *repo.Repositories) *ChatService {
	return &ChatService{jobRepo: repos.Job, chatRepo: repos.Chat}
}

// SendMessage appends to the job's conversation. The chat must exist (it is
// created when a proposal is accepted), the job must still be active, and
// the sender must be one of the two stored participants.
func (s *ChatService) SendMessage(ctx context.Context, input *entity.CreateMessageInput) (*entity.MessageOutputModel, error) {
	job, err := s.jobRepo.GetJobById(ctx, input.JobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	chat, err := s.chatRepo.GetChatByJobId(ctx, input.JobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrChatNotFound) {
			return nil, ErrChatNotInitialized
		}

		return nil, err
	}

	if input.Sender != chat.Client && input.Sender != chat.Freelancer {
		return nil, ErrRequesterNotParticipant
	}

	if job.Status != common.Open && job.Status != common.InProgress {
		return nil, ErrJobNotActive
	}

	if err = validateMessage(input); err != nil {
		return nil, err
	}

	message, err := s.chatRepo.AppendMessage(ctx, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrChatNotFound) {
			return nil, ErrChatNotInitialized
		}

		return nil, err
	}

	return mapMessage(message), nil
}

func (s *ChatService) GetChat(ctx context.Context, jobId uint64) ([]entity.MessageOutputModel, error) {
	chat, err := s.chatRepo.GetChatByJobId(ctx, jobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrChatNotFound) {
			return nil, ErrChatNotFound
		}

		return nil, err
	}

	return mapMessages(chat.Messages), nil
}
