// Package nuts is the facade over pattern, nfa and dfa: compile a pattern
// straight to a matcher, or union several labeled patterns into one before
// paying for DFA construction, plus a multi-pattern PatternSet built on top
// of them.
package nuts

import (
	"github.com/theblackbeans/nuts/dfa"
	"github.com/theblackbeans/nuts/nfa"
	"github.com/theblackbeans/nuts/pattern"
)

// Compile parses pattern and builds a matcher in one step.
func Compile(p string, label any) (*dfa.DFA, error) {
	n, err := CompileNFA(p, label, 0)
	if err != nil {
		return nil, err
	}
	return dfa.Build(n), nil
}

// MustCompile is like Compile but panics on error, for use with constant
// patterns known at init time.
func MustCompile(p string, label any) *dfa.DFA {
	d, err := Compile(p, label)
	if err != nil {
		panic(err)
	}
	return d
}

// CompileNFA parses pattern and runs Thompson construction, but stops
// short of building a DFA — for callers that want to union several
// labeled, prioritized patterns (see PatternSet) before paying for subset
// construction once.
func CompileNFA(p string, label any, priority int) (*nfa.NFA, error) {
	node, err := pattern.Parse(p)
	if err != nil {
		return nil, err
	}
	return nfa.Compile(node, label, priority)
}
