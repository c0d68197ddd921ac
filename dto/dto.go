package dto

// CreateJobRequest carries the declarative job definition. AutoTrend is a
// pointer so an absent field defaults to true while an explicit false sticks.
type CreateJobRequest struct {
	Niche       string `json:"niche"`
	LengthMode  string `json:"lengthMode" binding:"omitempty,oneof=auto short long"`
	Provider    string `json:"provider"`
	AutoTrend   *bool  `json:"autoTrend"`
	ManualTitle string `json:"manualTitle"`
	Channel     string `json:"channel"`
}
