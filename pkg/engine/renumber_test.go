package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixForCategory(t *testing.T) {
	assert.Equal(t, "REQ", PrefixForCategory("Requirements"))
	assert.Equal(t, "TST", PrefixForCategory(" testing "))
	assert.Equal(t, "ARCH", PrefixForCategory("ARCHITECTURE"))
	assert.Equal(t, "ISS", PrefixForCategory("Security"))
	assert.Equal(t, "ISS", PrefixForCategory(""))
}

func TestSortIssuesOrdering(t *testing.T) {
	issues := []Issue{
		{Category: "Testing", Severity: SeverityLow, PageReference: 1, Description: "t1"},
		{Category: "", Severity: SeverityHigh, Description: "uncategorized"},
		{Category: "Requirements", Severity: SeverityMedium, PageReference: 3, Description: "r2"},
		{Category: "Requirements", Severity: SeverityHigh, PageReference: 9, Description: "r1"},
		{Category: "Requirements", Severity: SeverityMedium, PageReference: 3, Description: "a-first"},
	}
	SortIssues(issues)

	var got []string
	for _, i := range issues {
		got = append(got, i.Description)
	}
	// Category asc (blank last), HIGH before MEDIUM, page asc, description asc.
	want := []string{"r1", "a-first", "r2", "t1", "uncategorized"}
	assert.Equal(t, want, got)
}

func TestRenumberSequencesPerPrefix(t *testing.T) {
	issues := []Issue{
		{Category: "Testing", Description: "t1"},
		{Category: "Requirements", Description: "r1"},
		{Category: "Requirements", Description: "r2"},
		{Category: "Misc", Description: "m1"},
		{Category: "Architecture", Description: "a1"},
	}
	out := Renumber(issues)
	require.Len(t, out, 5)

	ids := map[string]string{}
	for _, i := range out {
		ids[i.Description] = i.ID
	}
	assert.Equal(t, "REQ-001", ids["r1"])
	assert.Equal(t, "REQ-002", ids["r2"])
	assert.Equal(t, "TST-001", ids["t1"])
	assert.Equal(t, "ARCH-001", ids["a1"])
	assert.Equal(t, "ISS-001", ids["m1"])
}

func TestRenumberDeterministic(t *testing.T) {
	a := []Issue{
		{Category: "Testing", Severity: SeverityHigh, Description: "x"},
		{Category: "Requirements", Severity: SeverityLow, Description: "y"},
		{Category: "Requirements", Severity: SeverityHigh, Description: "z"},
	}
	b := []Issue{a[2], a[0], a[1]}

	outA := Renumber(a)
	outB := Renumber(b)
	if diff := cmp.Diff(outA, outB); diff != "" {
		t.Errorf("renumbering depends on input order (-a +b):\n%s", diff)
	}
}

func TestRenumberDoesNotMutateInput(t *testing.T) {
	in := []Issue{{ID: "TMP-1", Category: "Requirements", Description: "r"}}
	_ = Renumber(in)
	assert.Equal(t, "TMP-1", in[0].ID)
}
