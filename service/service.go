package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"autopublish-worker/constant"
	"autopublish-worker/dto"
	"autopublish-worker/entities"
	"autopublish-worker/pkg/provider"
	"autopublish-worker/repository"
)

var (
	// ErrConflict rejects a run request for a job whose pipeline is already
	// in flight.
	ErrConflict   = errors.New("job already processing")
	ErrValidation = errors.New("invalid job request")
)

type Service interface {
	CreateJob(ctx context.Context, req dto.CreateJobRequest) (entities.Job, error)
	ListJobs(ctx context.Context) []entities.Job
	GetJob(ctx context.Context, id string) (entities.Job, error)
	RunJob(ctx context.Context, id string) (entities.Job, error)
}

type Dependencies struct {
	Trends    provider.TrendSource
	Scripts   provider.ScriptBuilder
	Videos    provider.VideoGenerator
	Narration provider.NarrationGenerator
	Publisher provider.Publisher
}

type service struct {
	repo         repository.JobRepository
	deps         Dependencies
	stageTimeout time.Duration
}

func NewService(repo repository.JobRepository, deps Dependencies, stageTimeout time.Duration) Service {
	if stageTimeout <= 0 {
		stageTimeout = 30 * time.Second
	}
	return &service{
		repo:         repo,
		deps:         deps,
		stageTimeout: stageTimeout,
	}
}

func (s *service) ListJobs(ctx context.Context) []entities.Job {
	return s.repo.List()
}

func (s *service) GetJob(ctx context.Context, id string) (entities.Job, error) {
	return s.repo.Get(id)
}

// RunJob drives the job through video generation, narration generation and
// publishing. Provider failures are contained here as a failed transition
// with a log line; only store failures propagate as errors. The processing
// transition is guarded and persisted before the first provider call, so a
// concurrent second run of the same job gets ErrConflict with no state
// change.
func (s *service) RunJob(ctx context.Context, id string) (entities.Job, error) {
	job, err := s.repo.Update(id, func(j entities.Job) (entities.Job, error) {
		if j.Status == constant.JobStatusProcessing {
			return entities.Job{}, ErrConflict
		}
		j.Status = constant.JobStatusProcessing
		j.Logs = append(j.Logs, "Pipeline started")
		return j, nil
	})
	if err != nil {
		return entities.Job{}, err
	}
	zerolog.Ctx(ctx).Info().Str("job_id", id).Str("provider", job.Provider).Msg("pipeline started")

	video, err := s.generateVideo(ctx, job)
	if err != nil {
		return s.failJob(ctx, id, fmt.Errorf("video generation: %w", err))
	}
	if _, err = s.repo.Update(id, func(j entities.Job) (entities.Job, error) {
		j.Video = &video
		j.Logs = append(j.Logs, fmt.Sprintf("Video generated with provider %s", video.Provider))
		return j, nil
	}); err != nil {
		return entities.Job{}, err
	}

	narration, err := s.generateNarration(ctx, job)
	if err != nil {
		return s.failJob(ctx, id, fmt.Errorf("narration generation: %w", err))
	}
	if _, err = s.repo.Update(id, func(j entities.Job) (entities.Job, error) {
		j.Narration = &narration
		j.Logs = append(j.Logs, fmt.Sprintf("Narration provider: %s", narration.Provider))
		return j, nil
	}); err != nil {
		return entities.Job{}, err
	}

	publishResult, err := s.publish(ctx, job, video.URL)
	if err != nil {
		return s.failJob(ctx, id, fmt.Errorf("publish: %w", err))
	}

	now := time.Now().UTC()
	job, err = s.repo.Update(id, func(j entities.Job) (entities.Job, error) {
		j.PublishResult = &publishResult
		j.Logs = append(j.Logs, fmt.Sprintf("Publish status: %s", publishResult.Status))
		j.Status = constant.JobStatusCompleted
		j.CompletedAt = &now
		return j, nil
	})
	if err != nil {
		return entities.Job{}, err
	}

	zerolog.Ctx(ctx).Info().Str("job_id", id).Msg("pipeline completed")
	return job, nil
}

func (s *service) generateVideo(ctx context.Context, job entities.Job) (entities.StageArtifact, error) {
	ctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()
	return s.deps.Videos.Generate(ctx, job.Script, job.Provider)
}

func (s *service) generateNarration(ctx context.Context, job entities.Job) (entities.StageArtifact, error) {
	ctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()
	return s.deps.Narration.Generate(ctx, job.Script)
}

func (s *service) publish(ctx context.Context, job entities.Job, videoURL string) (entities.PublishResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()
	return s.deps.Publisher.Publish(ctx, videoURL, job.Script.FullText, job.Channel)
}

// failJob records a terminal failure. Artifacts attached by earlier stages
// stay on the job for debugging.
func (s *service) failJob(ctx context.Context, id string, stageErr error) (entities.Job, error) {
	zerolog.Ctx(ctx).Error().Err(stageErr).Str("job_id", id).Msg("pipeline failed")
	job, err := s.repo.Update(id, func(j entities.Job) (entities.Job, error) {
		j.Status = constant.JobStatusFailed
		j.Logs = append(j.Logs, fmt.Sprintf("Pipeline failed: %s", stageErr.Error()))
		return j, nil
	})
	if err != nil {
		return entities.Job{}, err
	}
	return job, nil
}
