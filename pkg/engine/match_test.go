package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestMatchExactContainment(t *testing.T) {
	doc := Normalize("The payment service SHALL retry failed captures three times before alerting.")
	quote := Normalize("shall retry failed captures")
	assert.Equal(t, 1.0, BestMatch(doc, quote))
}

func TestBestMatchIdenticalStrings(t *testing.T) {
	for _, s := range []string{
		"a",
		"the system shall log all failed login attempts",
		strings.Repeat("repeated phrase ", 50),
	} {
		n := Normalize(s)
		assert.Equal(t, 1.0, BestMatch(n, n), "input %q", s)
	}
}

func TestBestMatchDeterministic(t *testing.T) {
	doc := Normalize("The system shall log all failed login attempts within five seconds.")
	quote := "shall log all failed logn attempts" // typo keeps it off the exact path
	first := BestMatch(doc, quote)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BestMatch(doc, quote))
	}
}

func TestBestMatchEmptyInputs(t *testing.T) {
	assert.Equal(t, 0.0, BestMatch("", "needle"))
	assert.Equal(t, 0.0, BestMatch("haystack", ""))
	assert.Equal(t, 0.0, BestMatch("", ""))
}

func TestBestMatchScoreBounds(t *testing.T) {
	docs := []string{
		"short",
		"the quick brown fox jumps over the lazy dog",
		strings.Repeat("lorem ipsum dolor sit amet ", 40),
	}
	needles := []string{
		"quick brown fox",
		"entirely unrelated content",
		"dolor sit amet lorem",
	}
	for _, d := range docs {
		for _, n := range needles {
			score := BestMatch(d, n)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestBestMatchSmallTypo(t *testing.T) {
	doc := "project scope statement and other things follow here"
	quote := "project scope statment" // missing 'e'
	score := BestMatch(doc, quote)
	assert.GreaterOrEqual(t, score, BoostThreshold)
	assert.Less(t, score, 1.0)
}

func TestBestMatchHalfOverlap(t *testing.T) {
	// Window covers the whole haystack, so the score is the plain
	// normalized edit distance: 10 substitutions over 20 runes.
	doc := strings.Repeat("a", 10) + strings.Repeat("b", 10)
	quote := strings.Repeat("a", 10) + strings.Repeat("c", 10)
	assert.InDelta(t, 0.5, BestMatch(doc, quote), 1e-9)
}

func TestBestMatchUnrelated(t *testing.T) {
	doc := Normalize("The system shall persist all orders in a relational database.")
	quote := "zzz qqq xxx yyy zzz qqq xxx yyy"
	assert.Less(t, BestMatch(doc, quote), MinSimilarity)
}

func TestBestMatchLongStringTokenFallback(t *testing.T) {
	var tokens []string
	for i := 0; i < 120; i++ {
		tokens = append(tokens, fmt.Sprintf("tok%03d", i))
	}
	doc := strings.Join(tokens, " ")

	altered := make([]string, len(tokens))
	copy(altered, tokens)
	altered[60] = "changed"
	quote := strings.Join(altered, " ")
	require.Greater(t, len(quote), longStringLimit)

	score := BestMatch(doc, quote)
	assert.Greater(t, score, 0.9)
	assert.LessOrEqual(t, score, 1.0)
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"kitten", "sitting", 3},
		{"", "abc", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, editDistance([]rune(tt.a), []rune(tt.b)), "%q vs %q", tt.a, tt.b)
	}
}

func TestTrigramOverlap(t *testing.T) {
	assert.Equal(t, 1.0, trigramOverlap([]rune("abcdef"), []rune("abcdef")))
	assert.Equal(t, 0.0, trigramOverlap([]rune("abcdef"), []rune("xyzuvw")))
	assert.Equal(t, 0.0, trigramOverlap([]rune("ab"), []rune("abcdef")))
}
