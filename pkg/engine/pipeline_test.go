package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProducer struct {
	name   string
	issues []Issue
	err    error
}

func (f *fakeProducer) Name() string { return f.name }

func (f *fakeProducer) Analyze(ctx context.Context, documentText string) ([]Issue, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.issues, nil
}

type fakeVerifier struct {
	verdicts []Verdict
	err      error
	received []Issue
}

func (f *fakeVerifier) Verify(ctx context.Context, documentText string, candidates []Issue) ([]Verdict, error) {
	f.received = candidates
	if f.err != nil {
		return nil, f.err
	}
	return f.verdicts, nil
}

const pipelineDoc = "The system shall persist all orders in a relational database. " +
	"No test covers the refund flow at all. " +
	"The architecture chapter omits error handling entirely."

func TestRunProducersMergesAndAssignsInterimIDs(t *testing.T) {
	producers := []Producer{
		&fakeProducer{name: "req", issues: []Issue{
			{Category: "Requirements", Description: "r1", Confidence: 0.9},
		}},
		&fakeProducer{name: "test", issues: []Issue{
			{ID: "TST-001", Category: "Testing", Description: "t1", Confidence: 0.8},
		}},
	}

	merged, err := RunProducers(context.Background(), pipelineDoc, producers)
	require.NoError(t, err)
	require.Len(t, merged, 2)

	for _, issue := range merged {
		assert.NotEmpty(t, issue.ID)
	}
	// The issue without an id got an interim one.
	assert.True(t, strings.HasPrefix(merged[0].ID, "TMP-"))
	assert.Equal(t, "TST-001", merged[1].ID)
}

func TestRunProducersFailureCarriesIdentity(t *testing.T) {
	sentinel := errors.New("model unavailable")
	producers := []Producer{
		&fakeProducer{name: "req"},
		&fakeProducer{name: "arch", err: sentinel},
	}

	_, err := RunProducers(context.Background(), pipelineDoc, producers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "producer arch")
	assert.ErrorIs(t, err, sentinel)
}

func TestPipelineRunEndToEnd(t *testing.T) {
	page := 3
	verifier := &fakeVerifier{verdicts: []Verdict{
		{ID: "REQ-A", Confirmed: true, CorrectedPage: &page},
		{ID: "TST-A", Confirmed: false, Reason: "Merged into REQ-A, duplicate finding"},
	}}

	producers := []Producer{
		&fakeProducer{name: "req", issues: []Issue{
			{ID: "REQ-A", Category: "Requirements", Severity: SeverityHigh,
				Description: "orders persistence unspecified",
				Quote:       "shall persist all orders", Confidence: 0.9},
			// No quote: 0.9 -> 0.45, filtered below the publish threshold.
			{ID: "REQ-B", Category: "Requirements", Description: "unsupported claim", Confidence: 0.9},
		}},
		&fakeProducer{name: "test", issues: []Issue{
			{ID: "TST-A", Category: "Testing", Severity: SeverityHigh,
				Description: "refund flow untested",
				Quote:       "no test covers the refund flow", Confidence: 0.8},
			// Fabricated evidence: dropped at the anchor stage.
			{ID: "TST-B", Category: "Testing", Description: "invented",
				Quote: "zzz qqq xxx yyy zzz qqq xxx yyy", Confidence: 0.95},
		}},
	}

	stats := NewRequestStats()
	p := NewPipeline(producers, verifier, DefaultOptions(), zap.NewNop())
	result, err := p.Run(context.Background(), pipelineDoc, stats)
	require.NoError(t, err)

	// Verifier saw only the issues that survived anchoring and filtering.
	require.Len(t, verifier.received, 2)

	require.Len(t, result.Issues, 1)
	published := result.Issues[0]
	assert.Equal(t, "REQ-001", published.ID)
	assert.Equal(t, 3, published.PageReference)
	assert.Equal(t, "orders persistence unspecified", published.Description)

	assert.Equal(t, int64(1), stats.DiscardedByEvidence.Load())
	assert.Equal(t, int64(1), stats.BelowThreshold.Load())
	assert.Equal(t, int64(1), stats.Confirmed.Load())
	assert.Equal(t, int64(1), stats.Rejected.Load())
	assert.Equal(t, int64(1), stats.Duplicates.Load())
}

func TestPipelineVerifierFailureConfirmsAll(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("verifier down")}
	producers := []Producer{
		&fakeProducer{name: "req", issues: []Issue{
			{ID: "REQ-A", Category: "Requirements",
				Description: "orders persistence unspecified",
				Quote:       "shall persist all orders", Confidence: 0.9},
		}},
	}

	p := NewPipeline(producers, verifier, DefaultOptions(), zap.NewNop())
	result, err := p.Run(context.Background(), pipelineDoc, NewRequestStats())
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "REQ-001", result.Issues[0].ID)
}

func TestPipelineEmptyVerdictsConfirmsAll(t *testing.T) {
	verifier := &fakeVerifier{verdicts: nil}
	producers := []Producer{
		&fakeProducer{name: "req", issues: []Issue{
			{ID: "REQ-A", Category: "Requirements",
				Description: "orders persistence unspecified",
				Quote:       "shall persist all orders", Confidence: 0.9},
		}},
	}

	p := NewPipeline(producers, verifier, DefaultOptions(), zap.NewNop())
	result, err := p.Run(context.Background(), pipelineDoc, NewRequestStats())
	require.NoError(t, err)
	assert.Len(t, result.Issues, 1)
}

func TestPipelineMissingVerdictKeepsIssue(t *testing.T) {
	// A partial verdict set must not silently drop unmentioned issues.
	verifier := &fakeVerifier{verdicts: []Verdict{
		{ID: "REQ-A", Confirmed: true},
	}}
	producers := []Producer{
		&fakeProducer{name: "req", issues: []Issue{
			{ID: "REQ-A", Category: "Requirements",
				Description: "orders persistence unspecified",
				Quote:       "shall persist all orders", Confidence: 0.9},
			{ID: "TST-A", Category: "Testing",
				Description: "refund flow untested",
				Quote:       "no test covers the refund flow", Confidence: 0.9},
		}},
	}

	p := NewPipeline(producers, verifier, DefaultOptions(), zap.NewNop())
	result, err := p.Run(context.Background(), pipelineDoc, NewRequestStats())
	require.NoError(t, err)
	assert.Len(t, result.Issues, 2)
}

func TestPipelineCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocking := &fakeProducer{name: "req"}
	producers := []Producer{blocking, &fakeProducer{name: "ctx", err: ctx.Err()}}

	p := NewPipeline(producers, &fakeVerifier{}, DefaultOptions(), zap.NewNop())
	_, err := p.Run(ctx, pipelineDoc, NewRequestStats())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsDuplicateReason(t *testing.T) {
	assert.True(t, isDuplicateReason("Merged into REQ-001"))
	assert.True(t, isDuplicateReason("duplicate of TST-002"))
	assert.True(t, isDuplicateReason("Duplicated pattern"))
	assert.False(t, isDuplicateReason("quote not found"))
	assert.False(t, isDuplicateReason(""))
}
