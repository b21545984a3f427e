package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const anchorDoc = "The system shall persist all orders in a relational database. " +
	"No test covers the refund flow at all."

func TestAnchorNoQuoteHalvesConfidence(t *testing.T) {
	stats := NewRequestStats()
	a := NewAnchorer(zap.NewNop(), stats)

	out := a.Anchor(Normalize(anchorDoc), []Issue{{ID: "REQ-001", Confidence: 0.9}})
	require.Len(t, out, 1)
	assert.InDelta(t, 0.45, out[0].Confidence, 1e-9)
	assert.Equal(t, int64(0), stats.DiscardedByEvidence.Load())
}

func TestAnchorShortQuotePenalty(t *testing.T) {
	a := NewAnchorer(zap.NewNop(), nil)

	out := a.Anchor(Normalize(anchorDoc), []Issue{{ID: "REQ-001", Quote: "orders", Confidence: 0.8}})
	require.Len(t, out, 1)
	assert.InDelta(t, 0.8*0.7, out[0].Confidence, 1e-9)
}

func TestAnchorExactQuoteBoostsAndClamps(t *testing.T) {
	a := NewAnchorer(zap.NewNop(), nil)

	out := a.Anchor(Normalize(anchorDoc), []Issue{
		{ID: "REQ-001", Quote: "shall persist all orders", Confidence: 0.9},
		{ID: "TST-001", Quote: "no test covers the refund flow", Confidence: 0.6},
	})
	require.Len(t, out, 2)
	// 0.9 * (1 + (1.0-0.70)*0.5) = 1.035, clamped to 1.0.
	assert.Equal(t, 1.0, out[0].Confidence)
	assert.InDelta(t, 0.6*1.15, out[1].Confidence, 1e-9)
}

func TestAnchorFabricatedQuoteDropped(t *testing.T) {
	stats := NewRequestStats()
	a := NewAnchorer(zap.NewNop(), stats)

	out := a.Anchor(Normalize(anchorDoc), []Issue{
		{ID: "REQ-001", Quote: "zzz qqq xxx yyy zzz qqq xxx yyy", Confidence: 0.95},
	})
	assert.Empty(t, out)
	assert.Equal(t, int64(1), stats.DiscardedByEvidence.Load())
}

func TestAnchorPartialMatchPenalty(t *testing.T) {
	// The quote half-matches the document (similarity exactly 0.5), landing
	// in the penalty band between the floor and the boost threshold.
	doc := strings.Repeat("a", 10) + strings.Repeat("b", 10)
	quote := strings.Repeat("a", 10) + strings.Repeat("c", 10)
	require.InDelta(t, 0.5, BestMatch(doc, quote), 1e-9)

	a := NewAnchorer(zap.NewNop(), nil)
	out := a.Anchor(doc, []Issue{{ID: "REQ-001", Quote: quote, Confidence: 0.8}})
	require.Len(t, out, 1)

	// penalty = 1 - ((0.70-0.5)/(0.70-0.45))*0.3 = 0.76
	assert.InDelta(t, 0.8*0.76, out[0].Confidence, 1e-9)
}

func TestAnchorPreservesOrderAndEmptyInput(t *testing.T) {
	a := NewAnchorer(zap.NewNop(), nil)
	assert.Empty(t, a.Anchor("whatever", nil))

	out := a.Anchor(Normalize(anchorDoc), []Issue{
		{ID: "B", Quote: "no test covers the refund flow", Confidence: 0.8},
		{ID: "A", Quote: "shall persist all orders", Confidence: 0.8},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "B", out[0].ID)
	assert.Equal(t, "A", out[1].ID)
}
