package memdb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"freelance-market-api/internal/common"
	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/repo/repo_errors"
)

func newJobInput(client string) *entity.CreateJobInput {
	return &entity.CreateJobInput{
		Title:       "Build site",
		Description: "A simple website",
		Budget:      500,
		Deadline:    "2026-12-31",
		Client:      client,
		Status:      common.Open,
	}
}

func newProposalInput(jobId uint64, freelancer string) *entity.CreateProposalInput {
	return &entity.CreateProposalInput{
		JobId:          jobId,
		Freelancer:     freelancer,
		CoverLetter:    "I can do it",
		ExpectedBudget: 450,
	}
}

func TestCreateJobIdsMonotonic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewJobRepo(NewStore())

	var ids []uint64
	for i := 0; i < 5; i++ {
		id, err := r.CreateJob(ctx, newJobInput("alice"))
		if err != nil {
			t.Fatalf("CreateJob() error: %v", err)
		}
		ids = append(ids, id)
	}

	for i, id := range ids {
		if want := uint64(i + 1); id != want {
			t.Errorf("job %d: got id %d, want %d", i, id, want)
		}
	}

	// Deleting a job must not free its identifier.
	if err := r.DeleteJob(ctx, ids[len(ids)-1]); err != nil {
		t.Fatalf("DeleteJob() error: %v", err)
	}
	id, err := r.CreateJob(ctx, newJobInput("alice"))
	if err != nil {
		t.Fatalf("CreateJob() error: %v", err)
	}
	if want := uint64(len(ids) + 1); id != want {
		t.Errorf("created after delete: got id %d, want %d", id, want)
	}
}

func TestCreateJobIdsUniqueUnderConcurrency(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewJobRepo(NewStore())

	const workers = 32
	idsCh := make(chan uint64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := r.CreateJob(ctx, newJobInput("alice"))
			if err != nil {
				t.Errorf("CreateJob() error: %v", err)
				return
			}
			idsCh <- id
		}()
	}
	wg.Wait()
	close(idsCh)

	seen := make(map[uint64]bool)
	for id := range idsCh {
		if seen[id] {
			t.Errorf("id %d handed out twice", id)
		}
		seen[id] = true
	}
}

func TestAddProposal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewJobRepo(NewStore())
	jobId, _ := r.CreateJob(ctx, newJobInput("alice"))

	tests := []struct {
		name    string
		jobId   uint64
		wantErr error
	}{
		{"first proposal", jobId, nil},
		{"duplicate freelancer", jobId, repo_errors.ErrDuplicateProposal},
		{"missing job", jobId + 100, repo_errors.ErrJobNotFound},
	}
	for _, tt := range tests {
		err := r.AddProposal(ctx, newProposalInput(tt.jobId, "bob"))
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: AddProposal() = %v, want %v", tt.name, err, tt.wantErr)
		}
	}

	job, err := r.GetJobById(ctx, jobId)
	if err != nil {
		t.Fatalf("GetJobById() error: %v", err)
	}
	if len(job.Proposals) != 1 {
		t.Fatalf("got %d proposals, want 1", len(job.Proposals))
	}
	if job.Proposals[0].IsAccepted {
		t.Error("new proposal must not be accepted")
	}
}

func TestAddProposalClosedJob(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewJobRepo(NewStore())
	jobId, _ := r.CreateJob(ctx, newJobInput("alice"))
	if err := r.AddProposal(ctx, newProposalInput(jobId, "bob")); err != nil {
		t.Fatalf("AddProposal() error: %v", err)
	}
	if err := r.AcceptProposal(ctx, jobId, "bob"); err != nil {
		t.Fatalf("AcceptProposal() error: %v", err)
	}

	err := r.AddProposal(ctx, newProposalInput(jobId, "carol"))
	if !errors.Is(err, repo_errors.ErrJobNotOpen) {
		t.Errorf("AddProposal() on InProgress job = %v, want %v", err, repo_errors.ErrJobNotOpen)
	}
}

func TestAcceptProposal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewJobRepo(NewStore())
	jobId, _ := r.CreateJob(ctx, newJobInput("alice"))
	for _, freelancer := range []string{"bob", "carol"} {
		if err := r.AddProposal(ctx, newProposalInput(jobId, freelancer)); err != nil {
			t.Fatalf("AddProposal(%s) error: %v", freelancer, err)
		}
	}

	if err := r.AcceptProposal(ctx, jobId, "bob"); err != nil {
		t.Fatalf("AcceptProposal() error: %v", err)
	}

	job, err := r.GetJobById(ctx, jobId)
	if err != nil {
		t.Fatalf("GetJobById() error: %v", err)
	}
	if job.Freelancer != "bob" {
		t.Errorf("freelancer = %q, want %q", job.Freelancer, "bob")
	}
	if job.Status != common.InProgress {
		t.Errorf("status = %q, want %q", job.Status, common.InProgress)
	}
	accepted := 0
	for _, p := range job.Proposals {
		if p.IsAccepted {
			accepted++
			if p.Freelancer != "bob" {
				t.Errorf("accepted proposal belongs to %q, want %q", p.Freelancer, "bob")
			}
		}
	}
	if accepted != 1 {
		t.Errorf("got %d accepted proposals, want exactly 1", accepted)
	}

	// Acceptance is exclusive, whatever proposal the second call targets.
	for _, freelancer := range []string{"carol", "bob"} {
		if err := r.AcceptProposal(ctx, jobId, freelancer); !errors.Is(err, repo_errors.ErrFreelancerAssigned) {
			t.Errorf("second AcceptProposal(%s) = %v, want %v", freelancer, err, repo_errors.ErrFreelancerAssigned)
		}
	}
}

func TestAcceptProposalFirstCallWinsUnderConcurrency(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewJobRepo(NewStore())
	jobId, _ := r.CreateJob(ctx, newJobInput("alice"))

	const workers = 16
	for i := 0; i < workers; i++ {
		freelancer := fmt.Sprintf("freelancer-%d", i)
		if err := r.AddProposal(ctx, newProposalInput(jobId, freelancer)); err != nil {
			t.Fatalf("AddProposal(%s) error: %v", freelancer, err)
		}
	}

	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(freelancer string) {
			defer wg.Done()
			results <- r.AcceptProposal(ctx, jobId, freelancer)
		}(fmt.Sprintf("freelancer-%d", i))
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, repo_errors.ErrFreelancerAssigned) {
			t.Errorf("AcceptProposal() = %v, want nil or %v", err, repo_errors.ErrFreelancerAssigned)
		}
	}
	if succeeded != 1 {
		t.Errorf("%d accepts succeeded, want exactly 1", succeeded)
	}
}

func TestAcceptProposalMissing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewJobRepo(NewStore())
	jobId, _ := r.CreateJob(ctx, newJobInput("alice"))

	if err := r.AcceptProposal(ctx, jobId, "nobody"); !errors.Is(err, repo_errors.ErrProposalNotFound) {
		t.Errorf("AcceptProposal() = %v, want %v", err, repo_errors.ErrProposalNotFound)
	}
	if err := r.AcceptProposal(ctx, jobId+100, "bob"); !errors.Is(err, repo_errors.ErrJobNotFound) {
		t.Errorf("AcceptProposal() = %v, want %v", err, repo_errors.ErrJobNotFound)
	}
}

func TestRemoveProposal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewJobRepo(NewStore())
	jobId, _ := r.CreateJob(ctx, newJobInput("alice"))
	if err := r.AddProposal(ctx, newProposalInput(jobId, "bob")); err != nil {
		t.Fatalf("AddProposal() error: %v", err)
	}

	if err := r.RemoveProposal(ctx, jobId, "bob"); err != nil {
		t.Fatalf("RemoveProposal() error: %v", err)
	}
	if err := r.RemoveProposal(ctx, jobId, "bob"); !errors.Is(err, repo_errors.ErrProposalNotFound) {
		t.Errorf("RemoveProposal() repeated = %v, want %v", err, repo_errors.ErrProposalNotFound)
	}

	job, _ := r.GetJobById(ctx, jobId)
	if len(job.Proposals) != 0 {
		t.Errorf("got %d proposals after removal, want 0", len(job.Proposals))
	}
}

func TestUpdateJobStatusCompareAndSwap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewJobRepo(NewStore())
	jobId, _ := r.CreateJob(ctx, newJobInput("alice"))

	if err := r.UpdateJobStatus(ctx, jobId, common.InProgress, common.Completed); !errors.Is(err, repo_errors.ErrWrongStatus) {
		t.Errorf("UpdateJobStatus() from Open with InProgress guard = %v, want %v", err, repo_errors.ErrWrongStatus)
	}

	if err := r.AddProposal(ctx, newProposalInput(jobId, "bob")); err != nil {
		t.Fatalf("AddProposal() error: %v", err)
	}
	if err := r.AcceptProposal(ctx, jobId, "bob"); err != nil {
		t.Fatalf("AcceptProposal() error: %v", err)
	}

	if err := r.UpdateJobStatus(ctx, jobId, common.InProgress, common.Completed); err != nil {
		t.Fatalf("UpdateJobStatus() error: %v", err)
	}
	if err := r.UpdateJobStatus(ctx, jobId, common.InProgress, common.Completed); !errors.Is(err, repo_errors.ErrWrongStatus) {
		t.Errorf("repeated UpdateJobStatus() = %v, want %v", err, repo_errors.ErrWrongStatus)
	}
}

func TestMarkJobFundedOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewJobRepo(NewStore())
	jobId, _ := r.CreateJob(ctx, newJobInput("alice"))

	if err := r.MarkJobFunded(ctx, jobId); err != nil {
		t.Fatalf("MarkJobFunded() error: %v", err)
	}
	if err := r.MarkJobFunded(ctx, jobId); !errors.Is(err, repo_errors.ErrAlreadyFunded) {
		t.Errorf("second MarkJobFunded() = %v, want %v", err, repo_errors.ErrAlreadyFunded)
	}

	job, _ := r.GetJobById(ctx, jobId)
	if !job.Funded {
		t.Error("job must stay funded")
	}
}

func TestDeleteJobWithFreelancer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewJobRepo(NewStore())
	jobId, _ := r.CreateJob(ctx, newJobInput("alice"))
	if err := r.AddProposal(ctx, newProposalInput(jobId, "bob")); err != nil {
		t.Fatalf("AddProposal() error: %v", err)
	}
	if err := r.AcceptProposal(ctx, jobId, "bob"); err != nil {
		t.Fatalf("AcceptProposal() error: %v", err)
	}

	if err := r.DeleteJob(ctx, jobId); !errors.Is(err, repo_errors.ErrFreelancerAssigned) {
		t.Errorf("DeleteJob() = %v, want %v", err, repo_errors.ErrFreelancerAssigned)
	}
}

func TestGetJobsFilter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewJobRepo(NewStore())

	aliceJob, _ := r.CreateJob(ctx, newJobInput("alice"))
	if _, err := r.CreateJob(ctx, newJobInput("dave")); err != nil {
		t.Fatalf("CreateJob() error: %v", err)
	}
	if err := r.AddProposal(ctx, newProposalInput(aliceJob, "bob")); err != nil {
		t.Fatalf("AddProposal() error: %v", err)
	}
	if err := r.AcceptProposal(ctx, aliceJob, "bob"); err != nil {
		t.Fatalf("AcceptProposal() error: %v", err)
	}

	tests := []struct {
		name    string
		filter  *entity.JobFilter
		wantIds []uint64
	}{
		{"no filter", nil, []uint64{1, 2}},
		{"by status", &entity.JobFilter{Status: common.InProgress}, []uint64{1}},
		{"by client", &entity.JobFilter{Client: "dave"}, []uint64{2}},
		{"by freelancer", &entity.JobFilter{Freelancer: "bob"}, []uint64{1}},
		{"no match", &entity.JobFilter{Status: common.Completed}, []uint64{}},
	}
	for _, tt := range tests {
		jobs, err := r.GetJobs(ctx, tt.filter)
		if err != nil {
			t.Fatalf("%s: GetJobs() error: %v", tt.name, err)
		}
		if len(jobs) != len(tt.wantIds) {
			t.Errorf("%s: got %d jobs, want %d", tt.name, len(jobs), len(tt.wantIds))
			continue
		}
		for i, job := range jobs {
			if job.Id != tt.wantIds[i] {
				t.Errorf("%s: job %d has id %d, want %d", tt.name, i, job.Id, tt.wantIds[i])
			}
		}
	}
}

func TestGetJobByIdReturnsCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewJobRepo(NewStore())
	jobId, _ := r.CreateJob(ctx, newJobInput("alice"))
	if err := r.AddProposal(ctx, newProposalInput(jobId, "bob")); err != nil {
		t.Fatalf("AddProposal() error: %v", err)
	}

	job, _ := r.GetJobById(ctx, jobId)
	job.Title = "mutated"
	job.Proposals[0].IsAccepted = true

	fresh, _ := r.GetJobById(ctx, jobId)
	if fresh.Title != "Build site" {
		t.Error("mutating a returned job must not affect the store")
	}
	if fresh.Proposals[0].IsAccepted {
		t.Error("mutating a returned proposal must not affect the store")
	}
}
