// Package nfa implements a Thompson-construction nondeterministic finite
// automaton: an id-addressed state arena, epsilon-closure memoization, and
// the union operation used to combine multiple labeled patterns before DFA
// construction.
package nfa

import (
	"fmt"
	"sort"
	"strings"
)

// StateID uniquely identifies an NFA state within its owning NFA.
type StateID uint32

// InvalidState is returned by accessors when no such state exists.
const InvalidState StateID = 0xFFFFFFFF

// Symbol is either a literal byte value (0-255), Epsilon, or Any.
type Symbol int32

const (
	// Epsilon is the empty-move symbol: it consumes no input.
	Epsilon Symbol = -1
	// Any is the wildcard symbol. The pattern parser never emits it; it
	// exists so callers building an NFA directly can use it.
	Any Symbol = -2
)

// Sym wraps a literal input byte as a Symbol.
func Sym(b byte) Symbol { return Symbol(b) }

func (s Symbol) String() string {
	switch s {
	case Epsilon:
		return "ε"
	case Any:
		return "."
	default:
		return string(rune(byte(s)))
	}
}

// State is a single NFA state: an accepting flag, an optional label and
// priority (used to break ties when several accepting states coalesce into
// one DFA state), and a transition map from symbol to the set of states it
// may move to.
type State struct {
	id          StateID
	Accepting   bool
	Label       any
	Priority    int
	Transitions map[Symbol]map[StateID]struct{}
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// AddTransition adds to -> the set of targets reachable from s on sym.
func (s *State) AddTransition(sym Symbol, to StateID) {
	if s.Transitions == nil {
		s.Transitions = make(map[Symbol]map[StateID]struct{})
	}
	if s.Transitions[sym] == nil {
		s.Transitions[sym] = make(map[StateID]struct{})
	}
	s.Transitions[sym][to] = struct{}{}
}

// NFA owns a set of states by id and records the designated start state.
// ComputeEpsilonClosures must be called once construction is finished and
// before the NFA is handed to the dfa package.
type NFA struct {
	states         map[StateID]*State
	nextID         StateID
	Start          StateID
	epsilonClosure map[StateID]map[StateID]struct{}
}

// New creates an empty NFA with no states and no start state set.
func New() *NFA {
	return &NFA{
		states: make(map[StateID]*State),
		Start:  InvalidState,
	}
}

// CreateState allocates a new state and returns its id.
func (n *NFA) CreateState() StateID {
	id := n.nextID
	n.nextID++
	n.states[id] = &State{id: id}
	return id
}

// SetStart designates id as the NFA's start state.
func (n *NFA) SetStart(id StateID) { n.Start = id }

// State returns the state for id, or nil if it doesn't exist.
func (n *NFA) State(id StateID) *State { return n.states[id] }

// Capacity returns one past the highest state id ever allocated; state ids
// are contiguous from 0, so this is a tight upper bound for sizing a
// sparse.Set over this NFA's ids.
func (n *NFA) Capacity() uint32 { return uint32(n.nextID) }

// SetAccepting marks id as accepting with the given label/priority.
func (n *NFA) SetAccepting(id StateID, label any, priority int) {
	s := n.states[id]
	s.Accepting = true
	s.Label = label
	s.Priority = priority
}

// States returns every state id owned by the NFA, in creation order.
func (n *NFA) States() []StateID {
	ids := make([]StateID, 0, len(n.states))
	for id := range n.states {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ComputeEpsilonClosures computes, for every state, the set of states
// reachable via zero or more epsilon transitions, memoized by state id.
// Self-loops are skipped. This must be re-run (or the cache manually
// invalidated) after any further mutation, including Union.
func (n *NFA) ComputeEpsilonClosures() {
	n.epsilonClosure = make(map[StateID]map[StateID]struct{}, len(n.states))
	for id := range n.states {
		n.epsilonClosure[id] = n.epsilonClosureOf(id, make(map[StateID]bool))
	}
}

// epsilonClosureOf walks epsilon edges depth-first from id. visiting is
// shared across one top-level walk, so each state is expanded once and a
// cycle terminates; only the top-level result is complete, so only that
// one is stored by ComputeEpsilonClosures.
func (n *NFA) epsilonClosureOf(id StateID, visiting map[StateID]bool) map[StateID]struct{} {
	if visiting[id] {
		// Already expanded in this walk: its successors are already being
		// folded into the top-level closure.
		return map[StateID]struct{}{}
	}
	visiting[id] = true
	closure := make(map[StateID]struct{})
	s := n.states[id]
	for target := range s.Transitions[Epsilon] {
		if target == id {
			continue
		}
		closure[target] = struct{}{}
		for t := range n.epsilonClosureOf(target, visiting) {
			closure[t] = struct{}{}
		}
	}
	return closure
}

// EpsilonClosure returns the memoized epsilon closure of id. Call
// ComputeEpsilonClosures first.
func (n *NFA) EpsilonClosure(id StateID) map[StateID]struct{} {
	return n.epsilonClosure[id]
}

// Union grafts other's start state as an epsilon-alternative of n's start,
// renumbering other's state ids above n's current maximum to avoid
// collision. It invalidates any cached epsilon closures on n.
func (n *NFA) Union(other *NFA) {
	n.epsilonClosure = nil

	offset := n.nextID
	renumbered := make(map[StateID]StateID, len(other.states))
	for id := range other.states {
		renumbered[id] = offset + id
	}

	for oldID, s := range other.states {
		newID := renumbered[oldID]
		ns := &State{
			id:        newID,
			Accepting: s.Accepting,
			Label:     s.Label,
			Priority:  s.Priority,
		}
		for sym, targets := range s.Transitions {
			for t := range targets {
				ns.AddTransition(sym, renumbered[t])
			}
		}
		n.states[newID] = ns
	}
	n.nextID = offset + other.nextID

	startState := n.states[n.Start]
	startState.AddTransition(Epsilon, renumbered[other.Start])
}

// ToGraph renders the NFA as a Graphviz "digraph" description, for
// diagnostics only; it is not on any hot path.
func (n *NFA) ToGraph() string {
	var nodes, edges []string
	for _, id := range n.States() {
		s := n.states[id]
		shape := "circle"
		if s.Accepting {
			shape = "doublecircle"
		}
		nodes = append(nodes, fmt.Sprintf(`%d [shape="%s"];`, id, shape))
		for sym, targets := range s.Transitions {
			for t := range targets {
				edges = append(edges, fmt.Sprintf(`%d -> %d [label="%s"];`, id, t, sym))
			}
		}
	}
	return fmt.Sprintf("digraph {\nrankdir=LR;\n%s\n\n%s\n}\n", strings.Join(nodes, "\n"), strings.Join(edges, "\n"))
}
