package dfa

import (
	"testing"

	"github.com/theblackbeans/nuts/nfa"
	"github.com/theblackbeans/nuts/pattern"
)

func compileDFA(t *testing.T, p string, label any, priority int) *DFA {
	t.Helper()
	node, err := pattern.Parse(p)
	if err != nil {
		t.Fatalf("Parse(%q): %v", p, err)
	}
	n, err := nfa.Compile(node, label, priority)
	if err != nil {
		t.Fatalf("Compile(%q): %v", p, err)
	}
	return Build(n)
}

// S1: compile("a|bc").match_longest("bcd") -> success, end=2, label=nil
func TestScenarioAlternationLongest(t *testing.T) {
	d := compileDFA(t, "a|bc", nil, 0)
	res := d.MatchLongest("bcd")
	if !res.Successful || res.End != 2 || res.Label != nil {
		t.Fatalf("MatchLongest(%q) = %+v, want successful end=2 label=nil", "bcd", res)
	}
}

// S2: compile("ab*c").match_longest("abbbc!") -> success, end=5
func TestScenarioStarLongest(t *testing.T) {
	d := compileDFA(t, "ab*c", nil, 0)
	res := d.MatchLongest("abbbc!")
	if !res.Successful || res.End != 5 {
		t.Fatalf("MatchLongest = %+v, want successful end=5", res)
	}
}

// S3: compile("(ab)+").match_all("ababab") -> yields end=2, 4, 6
func TestScenarioPlusMatchAll(t *testing.T) {
	d := compileDFA(t, "(ab)+", nil, 0)
	var ends []int
	for m := range d.MatchAll("ababab") {
		ends = append(ends, m.End)
	}
	want := []int{2, 4, 6}
	if len(ends) != len(want) {
		t.Fatalf("MatchAll ends = %v, want %v", ends, want)
	}
	for i := range want {
		if ends[i] != want[i] {
			t.Fatalf("MatchAll ends = %v, want %v", ends, want)
		}
	}
}

// S4: compile("\w+").match_longest("foo_9 bar") -> success, end=5, substring="foo_9"
func TestScenarioWordEscape(t *testing.T) {
	d := compileDFA(t, `\w+`, nil, 0)
	res := d.MatchLongest("foo_9 bar")
	if !res.Successful || res.End != 5 || res.Substring != "foo_9" {
		t.Fatalf("MatchLongest = %+v, want end=5 substring=foo_9", res)
	}
}

// Property: class ranges accept exactly their members.
func TestClassRangeAcceptsExactMembers(t *testing.T) {
	d := compileDFA(t, "[a-c]", nil, 0)
	for _, c := range []string{"a", "b", "c"} {
		if res := d.MatchLongest(c); !res.Successful {
			t.Errorf("expected %q to match [a-c]", c)
		}
	}
	if res := d.MatchLongest("d"); res.Successful {
		t.Errorf("expected %q not to match [a-c]", "d")
	}
}

// Property: longest.end >= shortest.end whenever both succeed.
func TestLongestAtLeastShortest(t *testing.T) {
	d := compileDFA(t, "a+", nil, 0)
	short := d.MatchShortest("aaaa")
	long := d.MatchLongest("aaaa")
	if !short.Successful || !long.Successful {
		t.Fatal("expected both shortest and longest to succeed")
	}
	if long.End < short.End {
		t.Errorf("longest.End=%d < shortest.End=%d", long.End, short.End)
	}
}

// Property: higher-priority accepting state wins when two patterns accept
// the same prefix.
func TestPriorityBreaksTies(t *testing.T) {
	lowNode, err := pattern.Parse("a")
	if err != nil {
		t.Fatal(err)
	}
	highNode, err := pattern.Parse("a")
	if err != nil {
		t.Fatal(err)
	}
	low, err := nfa.Compile(lowNode, "low", 1)
	if err != nil {
		t.Fatal(err)
	}
	high, err := nfa.Compile(highNode, "high", 5)
	if err != nil {
		t.Fatal(err)
	}
	low.Union(high)
	low.ComputeEpsilonClosures()

	d := Build(low)
	res := d.MatchLongest("a")
	if !res.Successful || res.Label != "high" {
		t.Fatalf("expected label %q, got %+v", "high", res)
	}
}

func TestMatchFailureDoesNotAdvancePastMiss(t *testing.T) {
	d := compileDFA(t, "ab", nil, 0)
	res := d.MatchShortest("ax")
	if res.Successful {
		t.Fatal("expected failure for non-matching input")
	}
	if res.End != 1 {
		t.Fatalf("End = %d, want 1 (the offset of the missing transition)", res.End)
	}
}

func TestToGraphNonEmpty(t *testing.T) {
	d := compileDFA(t, "a|b", nil, 0)
	if d.ToGraph() == "" {
		t.Fatal("expected non-empty graph output")
	}
}
