package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// RequestStats is the per-request telemetry accumulator. One instance is
// created per audit request and a handle to it is passed explicitly through
// every stage; all fields are safe for concurrent increment from fan-out
// tasks.
type RequestStats struct {
	DiscardedByEvidence atomic.Int64
	BelowThreshold      atomic.Int64
	Confirmed           atomic.Int64
	Rejected            atomic.Int64
	Duplicates          atomic.Int64

	usage sync.Map // provider name -> *TokenCounts
}

// TokenCounts tracks input/output token usage for one provider.
type TokenCounts struct {
	Input  atomic.Int64
	Output atomic.Int64
}

// NewRequestStats returns a fresh accumulator.
func NewRequestStats() *RequestStats {
	return &RequestStats{}
}

// AddUsage records token usage for a provider. Concurrent callers accumulate
// into the same counters.
func (s *RequestStats) AddUsage(provider string, input, output int64) {
	v, _ := s.usage.LoadOrStore(provider, &TokenCounts{})
	tc := v.(*TokenCounts)
	tc.Input.Add(input)
	tc.Output.Add(output)
}

// UsageSnapshot is a plain copy of one provider's token counters.
type UsageSnapshot struct {
	Input  int64 `json:"input"`
	Output int64 `json:"output"`
}

// Snapshot is an immutable copy of the accumulated counters, suitable for
// response metadata.
type Snapshot struct {
	DiscardedByEvidence int64                    `json:"discardedByEvidence"`
	BelowThreshold      int64                    `json:"belowThreshold"`
	Confirmed           int64                    `json:"confirmed"`
	Rejected            int64                    `json:"rejected"`
	Duplicates          int64                    `json:"duplicates"`
	TokenUsage          map[string]UsageSnapshot `json:"tokenUsage,omitempty"`
}

// Snapshot copies the current counter values.
func (s *RequestStats) Snapshot() Snapshot {
	snap := Snapshot{
		DiscardedByEvidence: s.DiscardedByEvidence.Load(),
		BelowThreshold:      s.BelowThreshold.Load(),
		Confirmed:           s.Confirmed.Load(),
		Rejected:            s.Rejected.Load(),
		Duplicates:          s.Duplicates.Load(),
	}
	s.usage.Range(func(key, value any) bool {
		if snap.TokenUsage == nil {
			snap.TokenUsage = make(map[string]UsageSnapshot)
		}
		tc := value.(*TokenCounts)
		snap.TokenUsage[key.(string)] = UsageSnapshot{
			Input:  tc.Input.Load(),
			Output: tc.Output.Load(),
		}
		return true
	})
	return snap
}

// PipelineTimings records elapsed time per consolidation-pipeline stage.
type PipelineTimings struct {
	FanOut        time.Duration `json:"fanOut"`
	Anchor        time.Duration `json:"anchor"`
	Verification  time.Duration `json:"verification"`
	Consolidation time.Duration `json:"consolidation"`
}

// Total returns the summed stage durations.
func (t PipelineTimings) Total() time.Duration {
	return t.FanOut + t.Anchor + t.Verification + t.Consolidation
}
