package nfa

import "testing"

func TestEpsilonClosureSelfLoopSkipped(t *testing.T) {
	n := New()
	a := n.CreateState()
	n.SetStart(a)
	n.State(a).AddTransition(Epsilon, a) // self-loop
	b := n.CreateState()
	n.State(a).AddTransition(Epsilon, b)
	n.ComputeEpsilonClosures()

	closure := n.EpsilonClosure(a)
	if _, ok := closure[a]; ok {
		t.Error("self-loop should not appear in its own closure")
	}
	if _, ok := closure[b]; !ok {
		t.Error("b should be reachable via epsilon from a")
	}
}

func TestEpsilonClosureCycle(t *testing.T) {
	n := New()
	a := n.CreateState()
	b := n.CreateState()
	n.SetStart(a)
	n.State(a).AddTransition(Epsilon, b)
	n.State(b).AddTransition(Epsilon, a)
	n.ComputeEpsilonClosures()

	// Must terminate and should see the cycle partner.
	if _, ok := n.EpsilonClosure(a)[b]; !ok {
		t.Error("a's closure should include b")
	}
}

func TestUnionRenumbersAndInvalidatesCache(t *testing.T) {
	left := New()
	a := left.CreateState()
	left.SetStart(a)
	accept := left.CreateState()
	left.State(a).AddTransition(Sym('x'), accept)
	left.SetAccepting(accept, "left", 0)
	left.ComputeEpsilonClosures()

	right := New()
	r0 := right.CreateState()
	right.SetStart(r0)
	r1 := right.CreateState()
	right.State(r0).AddTransition(Sym('y'), r1)
	right.SetAccepting(r1, "right", 0)
	right.ComputeEpsilonClosures()

	rightStateCount := len(right.States())
	left.Union(right)

	if len(left.States()) != 2+rightStateCount {
		t.Errorf("expected %d states after union, got %d", 2+rightStateCount, len(left.States()))
	}

	// right's old ids (0, 1) must have been renumbered away from left's (0, 1).
	for _, id := range left.States() {
		if left.State(id).Label == "right" && (id == r0 || id == r1) {
			t.Errorf("right's accepting state kept id %d, want it renumbered above left's ids", id)
		}
	}

	if left.EpsilonClosure(left.Start) != nil {
		t.Error("Union should invalidate the cached epsilon closures")
	}

	found := false
	for sym := range left.State(left.Start).Transitions {
		if sym == Epsilon {
			found = true
		}
	}
	if !found {
		t.Error("expected an epsilon transition grafting the unioned NFA's start")
	}
}

func TestSetAcceptingMarksOnlyTarget(t *testing.T) {
	n := New()
	a := n.CreateState()
	n.SetStart(a)
	accept := n.CreateState()
	n.State(a).AddTransition(Sym('a'), accept)
	n.SetAccepting(accept, nil, 0)
	n.ComputeEpsilonClosures()

	if n.State(a).Accepting {
		t.Error("start state should not be accepting")
	}
	if !n.State(accept).Accepting {
		t.Error("accept state should be accepting")
	}
}

func TestToGraphProducesDigraph(t *testing.T) {
	n := New()
	a := n.CreateState()
	n.SetStart(a)
	n.SetAccepting(a, nil, 0)
	n.ComputeEpsilonClosures()

	g := n.ToGraph()
	if g == "" {
		t.Fatal("expected non-empty graph output")
	}
}
