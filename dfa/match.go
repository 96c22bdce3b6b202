package dfa

import "iter"

// MatchResult carries the outcome of a match attempt: whether it
// succeeded, the anchored start offset (always 0 in this version), the end
// offset, the matched substring, and the accepting state's label.
type MatchResult struct {
	Successful bool
	Start      int
	End        int
	Substring  string
	Label      any
}

// MatchShortest returns the first prefix of s at which the DFA is
// accepting. If the scan runs out of transitions before reaching an
// accepting state, the result is unsuccessful.
func (d *DFA) MatchShortest(s string) MatchResult {
	cur := d.Start
	for i := 0; i < len(s); i++ {
		if cur.Accepting {
			return MatchResult{true, 0, i, s[:i], cur.Label}
		}
		next := cur.Next(s[i])
		if next == nil {
			return MatchResult{false, 0, i, s[:i], nil}
		}
		cur = next
	}
	return MatchResult{cur.Accepting, 0, len(s), s, cur.Label}
}

// MatchLongest returns the longest prefix of s during whose scan the DFA
// was accepting at some point, continuing to scan past the first accept.
func (d *DFA) MatchLongest(s string) MatchResult {
	cur := d.Start
	successful := false
	end := 0
	var label any
	for i := 0; i < len(s); i++ {
		if cur.Accepting {
			successful = true
			end = i
			label = cur.Label
		}
		next := cur.Next(s[i])
		if next == nil {
			return MatchResult{successful, 0, end, s[:end], label}
		}
		cur = next
	}
	if cur.Accepting {
		successful = true
		end = len(s)
		label = cur.Label
	}
	return MatchResult{successful, 0, end, s[:end], label}
}

// Match is an alias of MatchLongest.
func (d *DFA) Match(s string) MatchResult { return d.MatchLongest(s) }

// MatchAll lazily yields every accepting prefix of s, in increasing length
// order, including one found at end-of-input.
func (d *DFA) MatchAll(s string) iter.Seq[MatchResult] {
	return func(yield func(MatchResult) bool) {
		cur := d.Start
		for i := 0; i < len(s); i++ {
			if cur.Accepting {
				if !yield(MatchResult{true, 0, i, s[:i], cur.Label}) {
					return
				}
			}
			next := cur.Next(s[i])
			if next == nil {
				return
			}
			cur = next
		}
		if cur.Accepting {
			yield(MatchResult{true, 0, len(s), s, cur.Label})
		}
	}
}
