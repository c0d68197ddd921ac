package provider

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"autopublish-worker/config"
	"autopublish-worker/constant"
	"autopublish-worker/entities"
)

type generateFunc func(ctx context.Context, script entities.Script) (entities.StageArtifact, error)

// VideoRegistry resolves video backends through a lookup table keyed by
// provider id, so adding a backend never touches the pipeline engine.
type VideoRegistry struct {
	generators map[string]generateFunc
}

func NewVideoRegistry(cfg config.Video) *VideoRegistry {
	return &VideoRegistry{
		generators: map[string]generateFunc{
			constant.VideoProviderMock:   generateMock,
			constant.VideoProviderSora:   keyedGenerator(constant.VideoProviderSora, "Sora", "SORA_API_KEY", cfg.Sora),
			constant.VideoProviderRunway: keyedGenerator(constant.VideoProviderRunway, "Runway", "RUNWAY_API_KEY", cfg.Runway),
		},
	}
}

func (r *VideoRegistry) Supports(providerID string) bool {
	_, ok := r.generators[providerID]
	return ok
}

func (r *VideoRegistry) Generate(ctx context.Context, script entities.Script, providerID string) (entities.StageArtifact, error) {
	gen, ok := r.generators[providerID]
	if !ok {
		return entities.StageArtifact{}, fmt.Errorf("unknown video provider %q", providerID)
	}
	return gen(ctx, script)
}

func generateMock(ctx context.Context, script entities.Script) (entities.StageArtifact, error) {
	return entities.StageArtifact{
		Provider: constant.VideoProviderMock,
		URL:      fmt.Sprintf("https://example.com/mock-videos/%s.mp4", uuid.NewString()),
	}, nil
}

// keyedGenerator builds the generator for a credentialed backend. Without a
// key it fails as not configured; with one it returns a synthetic URL until
// the vendor API call is implemented.
func keyedGenerator(id, displayName, envName string, model config.VideoModel) generateFunc {
	return func(ctx context.Context, script entities.Script) (entities.StageArtifact, error) {
		if !model.Enabled() {
			return entities.StageArtifact{}, fmt.Errorf("%w: %s model not configured – set %s in .env", ErrProviderNotConfigured, displayName, envName)
		}
		// TODO: call the real vendor API once credentials grant access.
		return entities.StageArtifact{
			Provider: id,
			URL:      fmt.Sprintf("https://cdn.example.com/videos/%s.mp4", uuid.NewString()),
		}, nil
	}
}
