package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"autopublish-worker/entities"
)

var (
	ErrNotFound    = errors.New("job not found")
	ErrDuplicateID = errors.New("duplicate job id")
	// ErrStore marks a durability failure. It is joined with the underlying
	// cause so callers can tell infrastructure failures from business ones.
	ErrStore = errors.New("store write failed")
)

type JobRepository interface {
	List() []entities.Job
	Get(id string) (entities.Job, error)
	Insert(job entities.Job) (entities.Job, error)
	// Update applies mutate to the latest stored value and persists the
	// result as one atomic step. No other write interleaves for any id while
	// it runs. A mutate error aborts the update with nothing written.
	Update(id string, mutate func(entities.Job) (entities.Job, error)) (entities.Job, error)
}

type snapshot struct {
	Jobs []entities.Job `json:"jobs"`
}

// fileRepo keeps the whole store in memory and mirrors every mutation to a
// single JSON snapshot file before returning. One mutex serializes all
// writes; mutations hold it only for the in-memory apply plus one small file
// write, so pipeline stages of distinct jobs still progress in parallel.
type fileRepo struct {
	path  string
	mu    sync.Mutex
	jobs  map[string]entities.Job
	order []string
}

func NewRepo(ctx context.Context, path string) JobRepository {
	r := &fileRepo{
		path: path,
		jobs: make(map[string]entities.Job),
	}

	snap, err := readSnapshot(path)
	if err != nil {
		// Fail open: a missing or corrupt data file starts an empty store.
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("starting with empty job store")
		return r
	}
	for _, job := range snap.Jobs {
		r.jobs[job.ID] = job
		r.order = append(r.order, job.ID)
	}
	return r
}

func (r *fileRepo) List() []entities.Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entities.Job, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.jobs[id].Clone())
	}
	return out
}

func (r *fileRepo) Get(id string) (entities.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return entities.Job{}, ErrNotFound
	}
	return job.Clone(), nil
}

func (r *fileRepo) Insert(job entities.Job) (entities.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.ID]; ok {
		return entities.Job{}, ErrDuplicateID
	}

	r.jobs[job.ID] = job.Clone()
	r.order = append(r.order, job.ID)
	if err := r.persistLocked(); err != nil {
		delete(r.jobs, job.ID)
		r.order = r.order[:len(r.order)-1]
		return entities.Job{}, err
	}
	return job.Clone(), nil
}

func (r *fileRepo) Update(id string, mutate func(entities.Job) (entities.Job, error)) (entities.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.jobs[id]
	if !ok {
		return entities.Job{}, ErrNotFound
	}

	next, err := mutate(prev.Clone())
	if err != nil {
		return entities.Job{}, err
	}
	next.ID = id

	r.jobs[id] = next.Clone()
	if err := r.persistLocked(); err != nil {
		r.jobs[id] = prev
		return entities.Job{}, err
	}
	return next.Clone(), nil
}

func (r *fileRepo) persistLocked() error {
	snap := snapshot{Jobs: make([]entities.Job, 0, len(r.order))}
	for _, id := range r.order {
		snap.Jobs = append(snap.Jobs, r.jobs[id])
	}
	if err := writeSnapshot(r.path, snap); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}
