package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"autopublish-worker/config"
	"autopublish-worker/entities"
)

type HTTPTrendSource struct {
	url    string
	apiKey string
	client *http.Client
}

func NewHTTPTrendSource(cfg config.Trends) *HTTPTrendSource {
	return &HTTPTrendSource{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPTrendSource) Fetch(ctx context.Context, niche string) ([]entities.Trend, error) {
	if s.url == "" || s.apiKey == "" {
		return mockTrends(niche), nil
	}

	operation := func() ([]entities.Trend, error) {
		return s.fetchOnce(ctx, niche)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = 2 * time.Second
	trends, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(3))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("niche", niche).Msg("trend fetch failed, using fallback trends")
		return fallbackTrends(niche), nil
	}
	return trends, nil
}

func (s *HTTPTrendSource) fetchOnce(ctx context.Context, niche string) ([]entities.Trend, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("trends api error: %d", res.StatusCode)
	}

	var payload struct {
		Trends []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			Name  string `json:"name"`
		} `json:"trends"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode trends response: %w", err)
	}

	trends := make([]entities.Trend, 0, len(payload.Trends))
	for i, t := range payload.Trends {
		id := t.ID
		if id == "" {
			id = fmt.Sprintf("api-%d", i)
		}
		title := t.Title
		if title == "" {
			title = t.Name
		}
		if title == "" {
			title = "Trend"
		}
		trends = append(trends, entities.Trend{ID: id, Title: title, Niche: niche})
	}
	return trends, nil
}

func mockTrends(niche string) []entities.Trend {
	return []entities.Trend{
		{ID: "mock-1", Title: "AI transforms my daily routine", Niche: niche},
		{ID: "mock-2", Title: "Before vs After using AI tools", Niche: niche},
		{ID: "mock-3", Title: "This AI video changed my mind", Niche: niche},
	}
}

func fallbackTrends(niche string) []entities.Trend {
	return []entities.Trend{
		{ID: "fallback-1", Title: "AI vs Human challenge", Niche: niche},
		{ID: "fallback-2", Title: "I let AI control my day", Niche: niche},
	}
}
