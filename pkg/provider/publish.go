package provider

import (
	"context"

	"autopublish-worker/config"
	"autopublish-worker/entities"
)

const (
	PublishStatusSimulated = "simulated"
	PublishStatusPending   = "pending-implementation"
)

type TikTokPublisher struct {
	accessToken string
	clientKey   string
}

func NewTikTokPublisher(cfg config.TikTok) *TikTokPublisher {
	return &TikTokPublisher{
		accessToken: cfg.AccessToken,
		clientKey:   cfg.ClientKey,
	}
}

func (p *TikTokPublisher) Publish(ctx context.Context, videoURL, caption, channel string) (entities.PublishResult, error) {
	if p.accessToken == "" {
		return entities.PublishResult{
			Status:   PublishStatusSimulated,
			Message:  "TikTok publishing simulated – set TIKTOK_ACCESS_TOKEN in .env for real integration.",
			ShareURL: "https://www.tiktok.com/@your-channel/video/1234567890",
		}, nil
	}

	// TODO: call the TikTok Content API when the integration lands.
	return entities.PublishResult{
		Status:  PublishStatusPending,
		Message: "Real TikTok API call not yet implemented.",
	}, nil
}
