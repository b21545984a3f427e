package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Producer is an external collaborator that analyzes the document and
// returns candidate issues. It must return an empty list, not an error,
// when it legitimately finds nothing.
type Producer interface {
	Name() string
	Analyze(ctx context.Context, documentText string) ([]Issue, error)
}

// Verifier is the external collaborator that confirms, corrects, or
// rejects/merges candidate issues using full-document context.
type Verifier interface {
	Verify(ctx context.Context, documentText string, candidates []Issue) ([]Verdict, error)
}

// Options tunes the consolidation pipeline.
type Options struct {
	// PublishThreshold is the minimum confidence for an issue to proceed
	// to verification.
	PublishThreshold float64

	// VerifyTimeout bounds the verification call independently of
	// producer timeouts.
	VerifyTimeout time.Duration
}

// DefaultOptions mirror the deployment defaults.
func DefaultOptions() Options {
	return Options{
		PublishThreshold: 0.75,
		VerifyTimeout:    3 * time.Minute,
	}
}

// Pipeline runs candidate issues through fan-out, evidence anchoring,
// confidence filtering, external verification, and final renumbering.
type Pipeline struct {
	producers []Producer
	verifier  Verifier
	opts      Options
	log       *zap.Logger
}

// NewPipeline assembles the consolidation pipeline. The producer slice
// order fixes the concatenation order of their results.
func NewPipeline(producers []Producer, verifier Verifier, opts Options, log *zap.Logger) *Pipeline {
	if opts.PublishThreshold <= 0 {
		opts.PublishThreshold = DefaultOptions().PublishThreshold
	}
	if opts.VerifyTimeout <= 0 {
		opts.VerifyTimeout = DefaultOptions().VerifyTimeout
	}
	return &Pipeline{producers: producers, verifier: verifier, opts: opts, log: log}
}

// Result carries the published issues plus per-stage timings.
type Result struct {
	Issues  []Issue
	Timings PipelineTimings
}

// Run executes the full pipeline on the document text. A producer failure
// is fatal to the request; a verifier failure falls back to confirming
// everything that passed the confidence threshold.
func (p *Pipeline) Run(ctx context.Context, documentText string, stats *RequestStats) (*Result, error) {
	res := &Result{}

	start := time.Now()
	candidates, err := RunProducers(ctx, documentText, p.producers)
	if err != nil {
		return nil, err
	}
	res.Timings.FanOut = time.Since(start)
	p.log.Info("producer fan-out completed",
		zap.Int("candidates", len(candidates)),
		zap.Duration("elapsed", res.Timings.FanOut))

	start = time.Now()
	anchorer := NewAnchorer(p.log, stats)
	anchored := anchorer.Anchor(documentText, candidates)
	res.Timings.Anchor = time.Since(start)

	confident := p.filterByConfidence(anchored, stats)

	start = time.Now()
	verified := p.verify(ctx, documentText, confident, stats)
	res.Timings.Verification = time.Since(start)

	start = time.Now()
	res.Issues = Renumber(verified)
	res.Timings.Consolidation = time.Since(start)

	p.log.Info("pipeline completed",
		zap.Int("published", len(res.Issues)),
		zap.Duration("total", res.Timings.Total()))
	return res, nil
}

// RunProducers invokes every producer concurrently against the same
// immutable document text and blocks until all have completed. Results are
// concatenated in producer order, not completion order, then sorted
// deterministically. Any producer failure cancels the remaining calls and
// is returned with the producer's identity.
func RunProducers(ctx context.Context, documentText string, producers []Producer) ([]Issue, error) {
	results := make([][]Issue, len(producers))

	g, ctx := errgroup.WithContext(ctx)
	for i, producer := range producers {
		i, producer := i, producer
		g.Go(func() error {
			issues, err := producer.Analyze(ctx, documentText)
			if err != nil {
				return fmt.Errorf("producer %s: %w", producer.Name(), err)
			}
			results[i] = issues
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []Issue
	for _, issues := range results {
		merged = append(merged, issues...)
	}
	for i := range merged {
		if merged[i].ID == "" {
			// Interim id so verification verdicts can reference the issue.
			merged[i].ID = "TMP-" + uuid.NewString()[:8]
		}
	}
	SortIssues(merged)
	return merged, nil
}

func (p *Pipeline) filterByConfidence(issues []Issue, stats *RequestStats) []Issue {
	kept := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Confidence >= p.opts.PublishThreshold {
			kept = append(kept, issue)
		}
	}
	if stats != nil {
		stats.BelowThreshold.Add(int64(len(issues) - len(kept)))
	}
	p.log.Info("confidence filtering completed",
		zap.Float64("threshold", p.opts.PublishThreshold),
		zap.Int("kept", len(kept)),
		zap.Int("dropped", len(issues)-len(kept)))
	return kept
}
