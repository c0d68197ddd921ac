package provider

import (
	"context"
	"errors"

	"autopublish-worker/constant"
	"autopublish-worker/entities"
)

var ErrProviderNotConfigured = errors.New("provider not configured")

// TrendSource resolves trending topic candidates for a niche. It is
// fail-soft: upstream outages yield a fixed fallback list, never an error,
// so job creation does not depend on the trend provider being up.
type TrendSource interface {
	Fetch(ctx context.Context, niche string) ([]entities.Trend, error)
}

type ScriptBuilder interface {
	Build(title, niche string, mode constant.LengthMode) (entities.Script, error)
}

// VideoGenerator turns a script into a rendered video through the backend
// selected by providerID.
type VideoGenerator interface {
	Generate(ctx context.Context, script entities.Script, providerID string) (entities.StageArtifact, error)
	Supports(providerID string) bool
}

type NarrationGenerator interface {
	Generate(ctx context.Context, script entities.Script) (entities.StageArtifact, error)
}

type Publisher interface {
	Publish(ctx context.Context, videoURL, caption, channel string) (entities.PublishResult, error)
}
