package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"autopublish-worker/constant"
	"autopublish-worker/entities"
)

func testRepo(t *testing.T) (JobRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	return NewRepo(context.Background(), path), path
}

func sampleJob(id string) entities.Job {
	return entities.Job{
		ID:         id,
		CreatedAt:  time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Niche:      "ai-lifestyle",
		LengthMode: constant.LengthModeAuto,
		Provider:   constant.VideoProviderMock,
		Channel:    "main",
		TrendTitle: "AI changed my day",
		Script: entities.Script{
			LengthMode:    constant.LengthModeAuto,
			TargetSeconds: 12,
			Paragraphs:    []string{"hook", "body", "outro"},
			FullText:      "hook body outro",
		},
		Status: constant.JobStatusCreated,
		Logs:   []string{"Job created"},
	}
}

func TestInsertAndGet(t *testing.T) {
	repo, _ := testRepo(t)

	if _, err := repo.Insert(sampleJob("a")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.Get("a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TrendTitle != "AI changed my day" {
		t.Errorf("unexpected trend title %q", got.TrendTitle)
	}
	if len(got.Logs) != 1 || got.Logs[0] != "Job created" {
		t.Errorf("unexpected logs %v", got.Logs)
	}
}

func TestInsertDuplicateID(t *testing.T) {
	repo, _ := testRepo(t)

	if _, err := repo.Insert(sampleJob("a")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := repo.Insert(sampleJob("a")); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if jobs := repo.List(); len(jobs) != 1 {
		t.Errorf("expected 1 job after duplicate insert, got %d", len(jobs))
	}
}

func TestGetAndUpdateNotFound(t *testing.T) {
	repo, _ := testRepo(t)

	if _, err := repo.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get: expected ErrNotFound, got %v", err)
	}
	_, err := repo.Update("missing", func(j entities.Job) (entities.Job, error) { return j, nil })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("update: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMutationErrorWritesNothing(t *testing.T) {
	repo, _ := testRepo(t)
	if _, err := repo.Insert(sampleJob("a")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	boom := errors.New("rejected")
	_, err := repo.Update("a", func(j entities.Job) (entities.Job, error) {
		j.Logs = append(j.Logs, "should not appear")
		return j, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutation error, got %v", err)
	}

	got, err := repo.Get("a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Logs) != 1 {
		t.Errorf("rejected mutation leaked into store: %v", got.Logs)
	}
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	repo := NewRepo(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	if jobs := repo.List(); len(jobs) != 0 {
		t.Errorf("expected empty store, got %d jobs", len(jobs))
	}
}

func TestLoadCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	repo := NewRepo(context.Background(), path)
	if jobs := repo.List(); len(jobs) != 0 {
		t.Errorf("expected empty store, got %d jobs", len(jobs))
	}

	// The corrupt store must still accept writes.
	if _, err := repo.Insert(sampleJob("a")); err != nil {
		t.Fatalf("insert after corrupt load: %v", err)
	}
}

func TestReloadRoundTrip(t *testing.T) {
	repo, path := testRepo(t)

	job := sampleJob("a")
	now := time.Date(2026, 8, 30, 11, 30, 0, 0, time.UTC)
	job.Status = constant.JobStatusCompleted
	job.CompletedAt = &now
	job.Video = &entities.StageArtifact{Provider: "mock", URL: "https://example.com/mock-videos/x.mp4"}
	job.Narration = &entities.StageArtifact{Provider: "mock-voice", URL: "https://example.com/mock-audio/narration.mp3"}
	job.PublishResult = &entities.PublishResult{Status: "simulated", Message: "ok", ShareURL: "https://www.tiktok.com/@x"}
	if _, err := repo.Insert(job); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := repo.Insert(sampleJob("b")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	before, err := json.Marshal(repo.List())
	if err != nil {
		t.Fatalf("marshal before: %v", err)
	}

	reloaded := NewRepo(context.Background(), path)
	after, err := json.Marshal(reloaded.List())
	if err != nil {
		t.Fatalf("marshal after: %v", err)
	}

	if string(before) != string(after) {
		t.Errorf("reload changed records:\nbefore %s\nafter  %s", before, after)
	}
}

func TestConcurrentUpdatesKeepEveryLog(t *testing.T) {
	repo, _ := testRepo(t)
	if _, err := repo.Insert(sampleJob("a")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	const writers = 40
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := repo.Update("a", func(j entities.Job) (entities.Job, error) {
				j.Logs = append(j.Logs, fmt.Sprintf("entry %d", n))
				return j, nil
			})
			if err != nil {
				t.Errorf("update %d: %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	got, err := repo.Get("a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Logs) != writers+1 {
		t.Errorf("lost updates: expected %d log entries, got %d", writers+1, len(got.Logs))
	}
}

func TestReturnedJobsAreCopies(t *testing.T) {
	repo, _ := testRepo(t)
	if _, err := repo.Insert(sampleJob("a")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.Get("a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Logs[0] = "tampered"
	got.Script.Paragraphs[0] = "tampered"

	fresh, err := repo.Get("a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fresh.Logs[0] != "Job created" || fresh.Script.Paragraphs[0] != "hook" {
		t.Errorf("caller mutation reached the store: %v %v", fresh.Logs, fresh.Script.Paragraphs)
	}
}
