package engine

import "strings"

// Similarity thresholds shared by the matcher and the evidence anchor.
const (
	// MinSimilarity is the floor below which a quote is treated as not found.
	MinSimilarity = 0.45

	// BoostThreshold is the score above which confidence gets boosted.
	BoostThreshold = 0.70

	// trigramFloor rejects windows whose trigram overlap is too low to be
	// worth an edit-distance pass (60% of the similarity floor).
	trigramFloor = MinSimilarity * 0.6

	// earlyExit stops the scan once a match this good has been found.
	earlyExit = 0.95

	// longStringLimit switches to the token-level LCS fallback: edit
	// distance on strings this long is too expensive.
	longStringLimit = 500

	// tokenCap bounds the LCS fallback cost.
	tokenCap = 200
)

// BestMatch returns the best similarity in [0,1] between the needle and any
// region of the haystack. Both inputs are expected to be normalized (see
// Normalize). Empty needle or haystack scores 0.
//
// Strategy, in order: exact containment, trigram-prefiltered sliding window
// with normalized edit distance, a tighter refinement pass when the best
// score stays below BoostThreshold, and a token-level LCS fallback for
// strings longer than longStringLimit.
func BestMatch(haystack, needle string) float64 {
	if needle == "" || haystack == "" {
		return 0
	}
	if strings.Contains(haystack, needle) {
		return 1.0
	}

	text := []rune(haystack)
	query := []rune(needle)
	qlen := len(query)

	windowSize := qlen * 3 / 2
	if windowSize > len(text) {
		windowSize = len(text)
	}
	step := qlen / 4
	if step < 1 {
		step = 1
	}

	best := 0.0
	scanEnd := len(text) - minInt(qlen/2, windowSize)
	for i := 0; i <= scanEnd; i += step {
		end := minInt(i+windowSize, len(text))
		window := text[i:end]

		// Cheap rejection test, not the final score.
		if trigramOverlap(window, query) < trigramFloor {
			continue
		}
		if sim := similarity(window, query); sim > best {
			best = sim
		}
		if best >= earlyExit {
			break
		}
	}

	// Refinement pass with a tighter window and a finer step.
	if best < BoostThreshold && len(text) > qlen {
		step = qlen / 3
		if step < 1 {
			step = 1
		}
		for i := 0; i <= len(text)-qlen; i += step {
			end := minInt(i+qlen+qlen/4, len(text))
			if sim := similarity(text[i:end], query); sim > best {
				best = sim
			}
			if best >= earlyExit {
				break
			}
		}
	}

	return best
}

// similarity computes normalized edit-distance similarity between two rune
// slices, falling back to a word-level LCS ratio for long inputs.
func similarity(a, b []rune) float64 {
	if string(a) == string(b) {
		return 1.0
	}
	maxLen := maxInt(len(a), len(b))
	if maxLen == 0 {
		return 1.0
	}
	if len(a) > longStringLimit || len(b) > longStringLimit {
		return lcsTokenRatio(string(a), string(b))
	}
	return 1.0 - float64(editDistance(a, b))/float64(maxLen)
}

// editDistance is the standard Levenshtein distance with row reuse,
// O(min(m,n)) space.
func editDistance(a, b []rune) int {
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[i] = minInt(minInt(curr[i-1]+1, prev[i]+1), prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// lcsTokenRatio computes LCS(tokensA, tokensB) / max(|tokensA|, |tokensB|)
// on whitespace-split tokens, each list capped at tokenCap.
func lcsTokenRatio(a, b string) float64 {
	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)

	m, n := len(tokensA), len(tokensB)
	if m == 0 || n == 0 {
		return 0
	}
	if m > tokenCap {
		tokensA = tokensA[:tokenCap]
		m = tokenCap
	}
	if n > tokenCap {
		tokensB = tokensB[:tokenCap]
		n = tokenCap
	}

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if tokensA[i-1] == tokensB[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = maxInt(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
		for j := range curr {
			curr[j] = 0
		}
	}

	return float64(prev[n]) / float64(maxInt(m, n))
}

// trigramOverlap returns the share of b's trigrams present in a.
func trigramOverlap(a, b []rune) float64 {
	if len(a) < 3 || len(b) < 3 {
		return 0
	}

	trigramsA := make(map[string]struct{}, len(a)-2)
	for i := 0; i <= len(a)-3; i++ {
		trigramsA[string(a[i:i+3])] = struct{}{}
	}

	matches, total := 0, 0
	for i := 0; i <= len(b)-3; i++ {
		if _, ok := trigramsA[string(b[i:i+3])]; ok {
			matches++
		}
		total++
	}

	if total == 0 {
		return 0
	}
	return float64(matches) / float64(total)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
