package engine

import (
	"go.uber.org/zap"
)

// Evidence anchoring confidence adjustments.
const (
	// noQuotePenalty halves confidence when an issue carries no quote.
	noQuotePenalty = 0.5

	// shortQuotePenalty applies when the normalized quote is too short
	// to match reliably.
	shortQuotePenalty = 0.7

	// minQuoteLength is the normalized length below which a quote is
	// considered too short for fuzzy matching.
	minQuoteLength = 15

	// maxPenalty is the confidence reduction at the similarity floor.
	maxPenalty = 0.3

	// boostSlope scales the confidence boost above BoostThreshold.
	boostSlope = 0.5
)

// Anchorer verifies that claimed quotes actually occur in the source text
// and adjusts each issue's confidence accordingly. It performs no I/O and
// never fails; malformed fields degrade per fixed rules.
type Anchorer struct {
	log   *zap.Logger
	stats *RequestStats
}

// NewAnchorer creates an Anchorer reporting discards into stats.
func NewAnchorer(log *zap.Logger, stats *RequestStats) *Anchorer {
	return &Anchorer{log: log, stats: stats}
}

// Anchor checks every candidate's quote against the document and returns the
// kept issues in their original order with adjusted confidence. Issues whose
// quote scores below MinSimilarity are dropped as likely-fabricated evidence.
func (a *Anchorer) Anchor(documentText string, candidates []Issue) []Issue {
	if len(candidates) == 0 {
		return candidates
	}

	normalizedDoc := Normalize(documentText)
	anchored := make([]Issue, 0, len(candidates))
	dropped := 0

	for _, issue := range candidates {
		if issue.Quote == "" {
			anchored = append(anchored, issue.WithConfidence(issue.Confidence*noQuotePenalty))
			continue
		}

		normalizedQuote := Normalize(issue.Quote)
		if len([]rune(normalizedQuote)) < minQuoteLength {
			anchored = append(anchored, issue.WithConfidence(issue.Confidence*shortQuotePenalty))
			continue
		}

		score := BestMatch(normalizedDoc, normalizedQuote)

		switch {
		case score < MinSimilarity:
			dropped++
			a.log.Debug("evidence anchor: quote not found, issue dropped",
				zap.String("id", issue.ID),
				zap.Float64("similarity", score),
				zap.String("quote", truncate(issue.Quote, 80)))

		case score < BoostThreshold:
			penalty := 1.0 - ((BoostThreshold-score)/(BoostThreshold-MinSimilarity))*maxPenalty
			anchored = append(anchored, issue.WithConfidence(issue.Confidence*penalty))

		default:
			boost := 1.0 + (score-BoostThreshold)*boostSlope
			anchored = append(anchored, issue.WithConfidence(issue.Confidence*boost))
		}
	}

	if a.stats != nil {
		a.stats.DiscardedByEvidence.Add(int64(dropped))
	}
	a.log.Info("evidence anchoring completed",
		zap.Int("kept", len(anchored)),
		zap.Int("candidates", len(candidates)),
		zap.Int("discarded", dropped))

	return anchored
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
