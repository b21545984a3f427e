// Package audit orchestrates a full document audit: ingestion, the issue
// consolidation pipeline, the auxiliary analyzers, and report assembly.
package audit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user/docaudit/pkg/adk"
	"github.com/user/docaudit/pkg/agents"
	"github.com/user/docaudit/pkg/config"
	"github.com/user/docaudit/pkg/engine"
	"github.com/user/docaudit/pkg/ingest"
	"github.com/user/docaudit/pkg/metrics"
	"github.com/user/docaudit/pkg/report"
	"github.com/user/docaudit/pkg/resilient"
)

// Service runs complete audits. It holds only request-independent state;
// agents and stats are built fresh per request.
type Service struct {
	llm       adk.LLMProvider
	extractor ingest.Extractor
	checklist []agents.Feature
	policy    resilient.Policy
	opts      engine.Options
	maxIssues int
	log       *zap.Logger
}

// NewService wires a Service from loaded configuration and a provider.
func NewService(cfg *config.Config, llm adk.LLMProvider, log *zap.Logger) (*Service, error) {
	checklist, err := agents.LoadChecklist(cfg.Audit.FeaturesFile)
	if err != nil {
		return nil, err
	}

	policy := resilient.Policy{
		MaxRetries: cfg.Audit.MaxRetries,
		BaseDelay:  resilient.DefaultPolicy().BaseDelay,
	}

	return &Service{
		llm:       llm,
		extractor: ingest.NewServiceExtractor(cfg.Audit.ExtractorBaseURL, policy, log),
		checklist: checklist,
		policy:    policy,
		opts: engine.Options{
			PublishThreshold: cfg.Audit.PublishThreshold,
			VerifyTimeout:    cfg.VerifyTimeout(),
		},
		maxIssues: cfg.Audit.MaxReportIssues,
		log:       log,
	}, nil
}

// Result is the complete outcome of one audit request.
type Result struct {
	Report   *report.AuditReport
	Markdown string
	Stats    engine.Snapshot
	Timings  engine.PipelineTimings
	Elapsed  time.Duration
}

// Analyze runs the end-to-end audit on one uploaded file. Extraction
// failure is the only error that aborts before any analysis; after that,
// producer and auxiliary-agent failures are fatal to the request while
// verifier failures degrade to confirm-all inside the pipeline.
func (s *Service) Analyze(ctx context.Context, filename string, data []byte) (*Result, error) {
	started := time.Now()

	doc, err := s.extractor.Extract(ctx, filename, data)
	if err != nil {
		metrics.DocumentsAnalyzed.WithLabelValues("error").Inc()
		return nil, err
	}

	stats := engine.NewRequestStats()
	env := agents.Env(s.llm, s.policy, stats, s.log)

	producers := []engine.Producer{
		agents.NewRequirementsAuditor(env),
		agents.NewTestAuditor(env),
		agents.NewArchitectureAuditor(env),
	}
	pipeline := engine.NewPipeline(producers, agents.NewMetaVerifier(env), s.opts, s.log)

	var (
		pipelineResult *engine.Result
		glossary       []report.GlossaryIssue
		features       []report.FeatureCoverage
		useCases       []report.UseCaseEntry
		requirements   []report.RequirementEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		pipelineResult, err = pipeline.Run(gctx, doc.Text, stats)
		return err
	})
	g.Go(func() (err error) {
		glossary, err = agents.NewGlossaryAnalyzer(env).Analyze(gctx, doc.Text)
		return err
	})
	g.Go(func() (err error) {
		features, err = agents.NewFeatureChecker(env, s.checklist).Check(gctx, doc.Text)
		return err
	})
	g.Go(func() (err error) {
		useCases, err = agents.NewUseCaseExtractor(env).Extract(gctx, doc.Text)
		return err
	})
	g.Go(func() (err error) {
		requirements, err = agents.NewRequirementExtractor(env).Extract(gctx, doc.Text)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.DocumentsAnalyzed.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("analyze %s: %w", filename, err)
	}

	// Traceability needs the extracted use cases and requirements, so it
	// runs after the concurrent phase.
	traceability, err := agents.NewTraceabilityBuilder(env).Build(ctx, doc.Text, useCases, requirements)
	if err != nil {
		metrics.DocumentsAnalyzed.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("analyze %s: %w", filename, err)
	}

	normalizer := report.NewNormalizer(s.maxIssues, s.log)
	issues := normalizer.NormalizeIssues(pipelineResult.Issues)

	rep := &report.AuditReport{
		Filename:        doc.Filename,
		GeneratedAt:     time.Now(),
		Issues:          issues,
		FeatureCoverage: features,
		MissingFeatures: normalizer.FilterMissingFeatures(features),
		Traceability:    traceability,
		Glossary:        glossary,
		UseCases:        useCases,
		Requirements:    requirements,
		Completeness:    normalizer.Completeness(issues, features),
		QualityScore:    normalizer.QualityScore(issues),
	}

	snap := stats.Snapshot()
	recordMetrics(rep, snap, pipelineResult.Timings)

	s.log.Info("audit completed",
		zap.String("filename", doc.Filename),
		zap.Int("issues", len(issues)),
		zap.Int64("confirmed", snap.Confirmed),
		zap.Int64("rejected", snap.Rejected),
		zap.Int64("duplicates", snap.Duplicates),
		zap.Duration("elapsed", time.Since(started)))

	return &Result{
		Report:   rep,
		Markdown: report.RenderMarkdown(rep),
		Stats:    snap,
		Timings:  pipelineResult.Timings,
		Elapsed:  time.Since(started),
	}, nil
}

func recordMetrics(rep *report.AuditReport, snap engine.Snapshot, timings engine.PipelineTimings) {
	metrics.DocumentsAnalyzed.WithLabelValues("ok").Inc()
	metrics.IssuesPublished.Add(float64(rep.TotalIssues()))
	metrics.IssuesDiscarded.WithLabelValues("evidence").Add(float64(snap.DiscardedByEvidence))
	metrics.IssuesDiscarded.WithLabelValues("threshold").Add(float64(snap.BelowThreshold))
	metrics.IssuesDiscarded.WithLabelValues("rejected").Add(float64(snap.Rejected))
	metrics.IssuesDiscarded.WithLabelValues("duplicate").Add(float64(snap.Duplicates))
	metrics.StageDuration.WithLabelValues("fanout").Observe(timings.FanOut.Seconds())
	metrics.StageDuration.WithLabelValues("anchor").Observe(timings.Anchor.Seconds())
	metrics.StageDuration.WithLabelValues("verification").Observe(timings.Verification.Seconds())
	metrics.StageDuration.WithLabelValues("consolidation").Observe(timings.Consolidation.Seconds())
	for name, usage := range snap.TokenUsage {
		metrics.TokensUsed.WithLabelValues(name, "input").Add(float64(usage.Input))
		metrics.TokensUsed.WithLabelValues(name, "output").Add(float64(usage.Output))
	}
}
