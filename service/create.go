package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"autopublish-worker/constant"
	"autopublish-worker/dto"
	"autopublish-worker/entities"
)

const defaultTrendTitle = "AI changed my day"

// CreateJob resolves the topic, synthesizes the script and persists the
// starting job record. Nothing is persisted if any step fails.
func (s *service) CreateJob(ctx context.Context, req dto.CreateJobRequest) (entities.Job, error) {
	req = applyDefaults(req)
	if err := s.validate(req); err != nil {
		return entities.Job{}, err
	}

	// An empty manual title is accepted verbatim when autoTrend is off;
	// permissiveness here is a deliberate policy, not an oversight.
	title := req.ManualTitle
	if *req.AutoTrend {
		trends, err := s.fetchTrends(ctx, req.Niche)
		if err != nil {
			return entities.Job{}, fmt.Errorf("resolve trend: %w", err)
		}
		title = defaultTrendTitle
		if len(trends) > 0 {
			title = trends[0].Title
		}
	}

	script, err := s.deps.Scripts.Build(title, req.Niche, constant.LengthMode(req.LengthMode))
	if err != nil {
		return entities.Job{}, fmt.Errorf("build script: %w", err)
	}

	job := entities.Job{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Niche:      req.Niche,
		LengthMode: constant.LengthMode(req.LengthMode),
		Provider:   req.Provider,
		Channel:    req.Channel,
		TrendTitle: title,
		Script:     script,
		Status:     constant.JobStatusCreated,
		Logs:       []string{"Job created"},
	}

	inserted, err := s.repo.Insert(job)
	if err != nil {
		return entities.Job{}, err
	}

	zerolog.Ctx(ctx).Info().Str("job_id", inserted.ID).Str("niche", inserted.Niche).Msg("job created")
	return inserted, nil
}

func (s *service) fetchTrends(ctx context.Context, niche string) ([]entities.Trend, error) {
	ctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()
	return s.deps.Trends.Fetch(ctx, niche)
}

func (s *service) validate(req dto.CreateJobRequest) error {
	switch constant.LengthMode(req.LengthMode) {
	case constant.LengthModeAuto, constant.LengthModeShort, constant.LengthModeLong:
	default:
		return fmt.Errorf("%w: unknown length mode %q", ErrValidation, req.LengthMode)
	}
	if !s.deps.Videos.Supports(req.Provider) {
		return fmt.Errorf("%w: unknown video provider %q", ErrValidation, req.Provider)
	}
	return nil
}

func applyDefaults(req dto.CreateJobRequest) dto.CreateJobRequest {
	if req.Niche == "" {
		req.Niche = "ai-lifestyle"
	}
	if req.LengthMode == "" {
		req.LengthMode = string(constant.LengthModeAuto)
	}
	if req.Provider == "" {
		req.Provider = constant.VideoProviderMock
	}
	if req.Channel == "" {
		req.Channel = "main"
	}
	if req.AutoTrend == nil {
		autoTrend := true
		req.AutoTrend = &autoTrend
	}
	return req
}
