package provider

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"autopublish-worker/config"
	"autopublish-worker/constant"
	"autopublish-worker/entities"
)

var mockURLPattern = regexp.MustCompile(`^https://example\.com/mock-videos/[0-9a-f-]{36}\.mp4$`)

func TestMockVideoAlwaysSucceeds(t *testing.T) {
	registry := NewVideoRegistry(config.Video{})

	artifact, err := registry.Generate(context.Background(), entities.Script{}, constant.VideoProviderMock)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if artifact.Provider != constant.VideoProviderMock {
		t.Errorf("provider = %q, want mock", artifact.Provider)
	}
	if !mockURLPattern.MatchString(artifact.URL) {
		t.Errorf("malformed mock url %q", artifact.URL)
	}
}

func TestKeyedProvidersRequireCredentials(t *testing.T) {
	registry := NewVideoRegistry(config.Video{})

	for _, id := range []string{constant.VideoProviderSora, constant.VideoProviderRunway} {
		_, err := registry.Generate(context.Background(), entities.Script{}, id)
		if !errors.Is(err, ErrProviderNotConfigured) {
			t.Errorf("%s: expected ErrProviderNotConfigured, got %v", id, err)
		}
		if err == nil || !strings.Contains(err.Error(), "model not configured") {
			t.Errorf("%s: missing not-configured message in %v", id, err)
		}
	}
}

func TestKeyedProviderWithCredential(t *testing.T) {
	registry := NewVideoRegistry(config.Video{Sora: config.VideoModel{APIKey: "sk-test"}})

	artifact, err := registry.Generate(context.Background(), entities.Script{}, constant.VideoProviderSora)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if artifact.Provider != constant.VideoProviderSora {
		t.Errorf("provider = %q, want sora", artifact.Provider)
	}
	if !strings.HasPrefix(artifact.URL, "https://cdn.example.com/videos/") {
		t.Errorf("unexpected url %q", artifact.URL)
	}
}

func TestUnknownProvider(t *testing.T) {
	registry := NewVideoRegistry(config.Video{})

	if registry.Supports("pika") {
		t.Error("unexpected support for unknown provider")
	}
	if _, err := registry.Generate(context.Background(), entities.Script{}, "pika"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
