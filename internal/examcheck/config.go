package examcheck

import (
	"time"

	"github.com/okian/examprep/internal/domain/types"
)

// Config holds configuration for the sample replay check
type Config struct {
	BaseURL string        // Base URL of the service
	Workers int           // Number of concurrent solve requests
	Timeout time.Duration // HTTP request timeout
	LogFile string        // Log file for check output
	Verbose bool          // Enable verbose logging
}

// Status is the verdict for one replayed sample.
type Status string

// Replay verdicts.
const (
	StatusMatched  Status = "matched"
	StatusMismatch Status = "mismatch"
	StatusFailed   Status = "failed"
)

// Solution represents the response from POST /solve
type Solution struct {
	Topic  string   `json:"topic"`
	Result any      `json:"result"`
	Steps  []string `json:"steps"`
}

// TopicSamples represents the response from GET /samples/{topic}
type TopicSamples struct {
	Topic       string                `json:"topic"`
	Description string                `json:"description"`
	Samples     []types.SampleProblem `json:"samples"`
}

// SampleResult records the outcome of replaying one sample.
type SampleResult struct {
	Topic    string
	SampleID string
	Expected string
	Got      string
	Status   Status
	Err      string
}

// Report holds check statistics
type Report struct {
	Topics     []string
	Results    []SampleResult
	Matched    int
	Mismatched int
	Failed     int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

// OK reports whether every sample solved and matched its expected answer.
func (r *Report) OK() bool {
	return r.Mismatched == 0 && r.Failed == 0
}
