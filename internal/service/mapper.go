package service

import (
	"freelance-market-api/internal/entity"
)

func mapJob(j *entity.Job) *entity.JobOutputModel {
	return &entity.JobOutputModel{
		Id:          j.Id,
		Title:       j.Title,
		Description: j.Description,
		Budget:      j.Budget,
		Deadline:    j.Deadline,
		Client:      j.Client,
		Freelancer:  j.Freelancer,
		Proposals:   mapProposals(j.Proposals),
		Status:      j.Status,
		Funded:      j.Funded,
	}
}

func mapJobs(jobs []entity.Job) []entity.JobOutputModel {
	s := make([]entity.JobOutputModel, 0)
	for _, job := range jobs {
		s = append(s, *mapJob(&job))
	}

	return s
}

func mapProposal(p *entity.Proposal) *entity.ProposalOutputModel {
	return &entity.ProposalOutputModel{
		Freelancer:     p.Freelancer,
		CoverLetter:    p.CoverLetter,
		ExpectedBudget: p.ExpectedBudget,
		IsAccepted:     p.IsAccepted,
	}
}

func mapProposals(proposals []entity.Proposal) []entity.ProposalOutputModel {
	s := make([]entity.ProposalOutputModel, 0)
	for _, p := range proposals {
		s = append(s, *mapProposal(&p))
	}

	return s
}

func mapMessage(m *entity.Message) *entity.MessageOutputModel {
	return &entity.MessageOutputModel{
		Sender:    m.Sender,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

func mapMessages(messages []entity.Message) []entity.MessageOutputModel {
	s := make([]entity.MessageOutputModel, 0)
	for _, m := range messages {
		s = append(s, *mapMessage(&m))
	}

	return s
}
