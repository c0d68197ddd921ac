package entities

import (
	"time"

	"autopublish-worker/constant"
)

// Script is the synthesized narration script a job carries from creation on.
type Script struct {
	LengthMode    constant.LengthMode `json:"lengthMode"`
	TargetSeconds int                 `json:"targetSeconds"`
	Paragraphs    []string            `json:"paragraphs"`
	FullText      string              `json:"fullText"`
}

// StageArtifact is the output of the video or narration stage.
type StageArtifact struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

type PublishResult struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	ShareURL string `json:"shareUrl,omitempty"`
}

type Trend struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Niche string `json:"niche"`
}

// Job is one pipeline execution record. Request parameters and trendTitle
// are immutable after creation; artifacts and logs accumulate per stage.
type Job struct {
	ID            string              `json:"id"`
	CreatedAt     time.Time           `json:"createdAt"`
	CompletedAt   *time.Time          `json:"completedAt,omitempty"`
	Niche         string              `json:"niche"`
	LengthMode    constant.LengthMode `json:"lengthMode"`
	Provider      string              `json:"provider"`
	Channel       string              `json:"channel"`
	TrendTitle    string              `json:"trendTitle"`
	Script        Script              `json:"script"`
	Status        constant.JobStatus  `json:"status"`
	Video         *StageArtifact      `json:"video,omitempty"`
	Narration     *StageArtifact      `json:"narration,omitempty"`
	PublishResult *PublishResult      `json:"publishResult,omitempty"`
	Logs          []string            `json:"logs"`
}

// Clone returns a deep copy so callers can never mutate stored state
// through shared slices or pointers.
func (j Job) Clone() Job {
	out := j
	out.Logs = append([]string(nil), j.Logs...)
	out.Script.Paragraphs = append([]string(nil), j.Script.Paragraphs...)
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		out.CompletedAt = &t
	}
	if j.Video != nil {
		v := *j.Video
		out.Video = &v
	}
	if j.Narration != nil {
		n := *j.Narration
		out.Narration = &n
	}
	if j.PublishResult != nil {
		p := *j.PublishResult
		out.PublishResult = &p
	}
	return out
}
