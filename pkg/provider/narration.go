package provider

import (
	"context"

	"autopublish-worker/config"
	"autopublish-worker/entities"
)

type NarrationService struct {
	apiKey string
}

func NewNarrationGenerator(cfg config.Narrator) *NarrationService {
	return &NarrationService{apiKey: cfg.APIKey}
}

func (s *NarrationService) Generate(ctx context.Context, script entities.Script) (entities.StageArtifact, error) {
	if s.apiKey == "" {
		return entities.StageArtifact{
			Provider: "mock-voice",
			URL:      "https://example.com/mock-audio/narration.mp3",
		}, nil
	}

	// TODO: call the real TTS provider (e.g. ElevenLabs) with the key.
	return entities.StageArtifact{
		Provider: "external-voice",
		URL:      "https://example.com/external-voice/narration.mp3",
	}, nil
}
