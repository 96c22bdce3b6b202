package nuts

import (
	"errors"

	"github.com/coregx/ahocorasick"

	"github.com/theblackbeans/nuts/dfa"
	"github.com/theblackbeans/nuts/nfa"
	"github.com/theblackbeans/nuts/pattern"
)

// ErrEmptyPatternSet is returned by Build when given no entries.
var ErrEmptyPatternSet = errors.New("nuts: pattern set has no entries")

// Entry is one labeled, prioritized pattern contributed to a PatternSet.
type Entry struct {
	Pattern  string
	Label    any
	Priority int
}

// PatternSet unions several labeled patterns (via nfa.NFA.Union) into one
// DFA, and adds a literal prefilter: entries whose syntax tree is
// literal-only (see pattern.Literal) contribute their exact bytes to a
// github.com/coregx/ahocorasick automaton. Classify consults that
// automaton first and only runs the DFA when it can't rule every
// literal-backed entry out, or when at least one entry isn't literal-backed
// at all — the result is always identical to running the DFA directly,
// this is purely an optimization for the common case of a set dominated by
// fixed strings.
type PatternSet struct {
	dfa           *dfa.DFA
	allLiteral    bool
	literalsFound bool
	aho           *ahocorasick.Automaton
}

// Build compiles every entry and unions them into a single DFA.
func Build(entries []Entry) (*PatternSet, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyPatternSet
	}

	var combined *nfa.NFA
	allLiteral := true
	var builder *ahocorasick.Builder

	for i, e := range entries {
		node, err := pattern.Parse(e.Pattern)
		if err != nil {
			return nil, err
		}

		if lit, ok := pattern.Literal(node); ok {
			if builder == nil {
				builder = ahocorasick.NewBuilder()
			}
			builder.AddPattern(lit)
		} else {
			allLiteral = false
		}

		n, err := nfa.Compile(node, e.Label, e.Priority)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			combined = n
		} else {
			combined.Union(n)
		}
	}
	combined.ComputeEpsilonClosures()

	ps := &PatternSet{
		dfa:        dfa.Build(combined),
		allLiteral: allLiteral,
	}
	if builder != nil {
		auto, err := builder.Build()
		if err == nil {
			ps.aho = auto
			ps.literalsFound = true
		}
	}
	return ps, nil
}

// Classify returns the label of the highest-priority pattern matching the
// longest prefix of s, and whether any pattern matched at all.
func (ps *PatternSet) Classify(s string) (label any, ok bool) {
	if ps.allLiteral && ps.literalsFound && ps.aho != nil {
		if !ps.aho.IsMatch([]byte(s)) {
			return nil, false
		}
	}
	res := ps.dfa.MatchLongest(s)
	return res.Label, res.Successful
}

// DFA exposes the underlying compiled matcher for callers that want the
// full MatchResult rather than just a label.
func (ps *PatternSet) DFA() *dfa.DFA { return ps.dfa }
