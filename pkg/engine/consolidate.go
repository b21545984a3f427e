package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// verify delegates merge/dedup/fact-check to the verification collaborator
// and applies its verdicts. The collaborator failing, or returning a
// malformed (empty) verdict set for a non-empty input, never drops the
// batch: the fallback confirms every issue that passed the threshold.
func (p *Pipeline) verify(ctx context.Context, documentText string, candidates []Issue, stats *RequestStats) []Issue {
	if len(candidates) == 0 {
		return candidates
	}
	if p.verifier == nil {
		return candidates
	}

	vctx, cancel := context.WithTimeout(ctx, p.opts.VerifyTimeout)
	defer cancel()

	verdicts, err := p.verifier.Verify(vctx, documentText, candidates)
	if err != nil {
		p.log.Warn("verification failed, confirming all candidates unverified",
			zap.Int("candidates", len(candidates)), zap.Error(err))
		return candidates
	}
	if len(verdicts) == 0 {
		p.log.Warn("verification returned no verdicts, confirming all candidates unverified",
			zap.Int("candidates", len(candidates)))
		return candidates
	}

	return p.applyVerdicts(candidates, verdicts, stats)
}

func (p *Pipeline) applyVerdicts(candidates []Issue, verdicts []Verdict, stats *RequestStats) []Issue {
	byID := make(map[string]Verdict, len(verdicts))
	for _, v := range verdicts {
		byID[v.ID] = v
	}

	confirmed := make([]Issue, 0, len(candidates))
	var rejected, duplicates int64
	for _, issue := range candidates {
		verdict, ok := byID[issue.ID]
		if !ok {
			// No verdict for this issue: keep it rather than silently
			// losing a finding to a partial collaborator response.
			confirmed = append(confirmed, issue)
			continue
		}
		if !verdict.Confirmed {
			rejected++
			if isDuplicateReason(verdict.Reason) {
				duplicates++
			}
			p.log.Debug("issue rejected by verifier",
				zap.String("id", issue.ID), zap.String("reason", verdict.Reason))
			continue
		}
		if verdict.CorrectedPage != nil && *verdict.CorrectedPage >= 0 {
			issue.PageReference = *verdict.CorrectedPage
		}
		if verdict.CorrectedDescription != "" {
			issue.Description = verdict.CorrectedDescription
		}
		confirmed = append(confirmed, issue)
	}

	if stats != nil {
		stats.Confirmed.Add(int64(len(confirmed)))
		stats.Rejected.Add(rejected)
		stats.Duplicates.Add(duplicates)
	}
	p.log.Info("verification completed",
		zap.Int("confirmed", len(confirmed)),
		zap.Int64("rejected", rejected),
		zap.Int64("duplicates", duplicates))
	return confirmed
}

func isDuplicateReason(reason string) bool {
	r := strings.ToLower(reason)
	return strings.Contains(r, "duplicat") || strings.Contains(r, "merged")
}
