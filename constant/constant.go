package constant

type JobStatus string

const (
	JobStatusCreated    JobStatus = "created"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

type LengthMode string

const (
	LengthModeAuto  LengthMode = "auto"
	LengthModeShort LengthMode = "short"
	LengthModeLong  LengthMode = "long"
)

const (
	VideoProviderMock   = "mock"
	VideoProviderSora   = "sora"
	VideoProviderRunway = "runway"
)

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}
