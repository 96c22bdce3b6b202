// Package dfa builds a deterministic finite automaton from an nfa.NFA via
// subset construction, and matches byte sequences against it.
package dfa

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/theblackbeans/nuts/internal/queue"
	"github.com/theblackbeans/nuts/internal/sparse"
	"github.com/theblackbeans/nuts/nfa"
)

// CompoundState is a single DFA state: a frozen set of NFA state ids used
// as its identity, an accepting flag, the label carried from the
// highest-priority accepting constituent, and a transition table keyed by
// input byte. Default, when non-nil, is the target for any byte with no
// explicit entry — it exists only when some constituent NFA state has an
// nfa.Any transition, which the pattern parser never emits in this version.
type CompoundState struct {
	ids         []nfa.StateID
	Accepting   bool
	Label       any
	Transitions map[byte]*CompoundState
	Default     *CompoundState
}

// IDs returns the frozen set of NFA state ids this compound state
// represents, sorted ascending. Exposed for diagnostics (ToGraph) and
// tests; callers must not mutate the returned slice.
func (c *CompoundState) IDs() []nfa.StateID { return c.ids }

func (c *CompoundState) key() string {
	parts := make([]string, len(c.ids))
	for i, id := range c.ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

// DFA is the durable artifact returned by Build: an immutable graph of
// CompoundStates reachable from Start. Once built, a DFA holds no mutable
// state and may be shared across goroutines.
type DFA struct {
	Start *CompoundState
	byKey map[string]*CompoundState
}

// Build runs subset construction over n, which must already have had
// ComputeEpsilonClosures called (nfa.Compile does this for you). The
// worklist is a queue.Unique so every compound state is visited exactly
// once; accept-state coalescing picks the highest-priority accepting
// constituent, ties broken by first-seen.
func Build(n *nfa.NFA) *DFA {
	d := &DFA{byKey: make(map[string]*CompoundState)}

	startIDs := closure(n, []nfa.StateID{n.Start})
	start := d.getOrCreate(startIDs)
	d.Start = start

	wl := queue.New[string]()
	wl.Push(start.key())

	for wl.Len() > 0 {
		cur := d.byKey[wl.Pop()]
		d.resolveAccepting(n, cur)
		d.expandTransitions(n, cur, wl)
	}

	return d
}

func (d *DFA) getOrCreate(ids []nfa.StateID) *CompoundState {
	cs := &CompoundState{ids: ids, Transitions: make(map[byte]*CompoundState)}
	k := cs.key()
	if existing, ok := d.byKey[k]; ok {
		return existing
	}
	d.byKey[k] = cs
	return cs
}

// resolveAccepting sets cur.Accepting/Label from the highest-priority
// accepting NFA state among cur's constituents; ties go to whichever was
// encountered first while iterating cur.ids (which is sorted, so this is
// deterministic).
func (d *DFA) resolveAccepting(n *nfa.NFA, cur *CompoundState) {
	havePriority := false
	best := 0
	for _, id := range cur.ids {
		s := n.State(id)
		if !s.Accepting {
			continue
		}
		if !havePriority || s.Priority > best {
			cur.Accepting = true
			cur.Label = s.Label
			best = s.Priority
			havePriority = true
		}
	}
}

func (d *DFA) expandTransitions(n *nfa.NFA, cur *CompoundState, wl *queue.Unique[string]) {
	byByte := make(map[byte]map[nfa.StateID]struct{})
	var anyTargets map[nfa.StateID]struct{}

	for _, id := range cur.ids {
		for sym, targets := range n.State(id).Transitions {
			switch sym {
			case nfa.Epsilon:
				continue
			case nfa.Any:
				if anyTargets == nil {
					anyTargets = make(map[nfa.StateID]struct{})
				}
				for t := range targets {
					anyTargets[t] = struct{}{}
				}
			default:
				b := byte(sym)
				if byByte[b] == nil {
					byByte[b] = make(map[nfa.StateID]struct{})
				}
				for t := range targets {
					byByte[b][t] = struct{}{}
				}
			}
		}
	}

	if len(anyTargets) > 0 {
		target := d.target(n, flatten(anyTargets), wl)
		cur.Default = target
	}

	for b, targets := range byByte {
		merged := flatten(targets)
		if anyTargets != nil {
			for t := range anyTargets {
				merged = append(merged, t)
			}
		}
		cur.Transitions[b] = d.target(n, merged, wl)
	}
}

func (d *DFA) target(n *nfa.NFA, seed []nfa.StateID, wl *queue.Unique[string]) *CompoundState {
	ids := closure(n, seed)
	next := d.getOrCreate(ids)
	wl.Push(next.key())
	return next
}

// closure unions seed with the epsilon closure of every state in seed and
// returns the sorted, deduplicated result.
func closure(n *nfa.NFA, seed []nfa.StateID) []nfa.StateID {
	set := sparse.NewSet(n.Capacity())
	for _, id := range seed {
		set.Insert(uint32(id))
		for e := range n.EpsilonClosure(id) {
			set.Insert(uint32(e))
		}
	}
	vals := set.Values()
	ids := make([]nfa.StateID, len(vals))
	for i, v := range vals {
		ids[i] = nfa.StateID(v)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func flatten(set map[nfa.StateID]struct{}) []nfa.StateID {
	ids := make([]nfa.StateID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// Next returns the compound state reached from cur on input byte b, or nil
// if no transition (explicit or Default) exists.
func (cur *CompoundState) Next(b byte) *CompoundState {
	if t, ok := cur.Transitions[b]; ok {
		return t
	}
	return cur.Default
}

// ToGraph renders the DFA as a Graphviz "digraph" description, for
// diagnostics only.
func (d *DFA) ToGraph() string {
	var nodes, edges []string
	done := map[string]bool{}
	var walk func(c *CompoundState)
	walk = func(c *CompoundState) {
		k := c.key()
		if done[k] {
			return
		}
		done[k] = true
		shape := "circle"
		if c.Accepting {
			shape = "doublecircle"
		}
		nodes = append(nodes, fmt.Sprintf(`node_%s [shape="%s", label="%s"];`, strings.ReplaceAll(k, ",", "_"), shape, k))
		for b, next := range c.Transitions {
			edges = append(edges, fmt.Sprintf(`node_%s -> node_%s [label="%q"];`, strings.ReplaceAll(k, ",", "_"), strings.ReplaceAll(next.key(), ",", "_"), string(b)))
			walk(next)
		}
		if c.Default != nil {
			edges = append(edges, fmt.Sprintf(`node_%s -> node_%s [label="*"];`, strings.ReplaceAll(k, ",", "_"), strings.ReplaceAll(c.Default.key(), ",", "_")))
			walk(c.Default)
		}
	}
	walk(d.Start)
	return fmt.Sprintf("digraph {\nrankdir=LR;\n%s\n\n%s\n}\n", strings.Join(nodes, "\n"), strings.Join(edges, "\n"))
}
