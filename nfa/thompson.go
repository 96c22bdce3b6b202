package nfa

import "github.com/theblackbeans/nuts/pattern"

// Compile runs Thompson construction over a parsed pattern, producing an
// NFA whose single accepting state carries label/priority. Each syntax node
// has a construction rule taking (start state, nfa) and returning the
// fragment's accepting state.
func Compile(node pattern.Node, label any, priority int) (*NFA, error) {
	n := New()
	start := n.CreateState()
	n.SetStart(start)

	accept, err := compileNode(n, node, start)
	if err != nil {
		return nil, err
	}
	n.SetAccepting(accept, label, priority)
	n.ComputeEpsilonClosures()
	return n, nil
}

// compileNode dispatches on the concrete pattern.Node type, threading the
// accepting state of each fragment into the next.
func compileNode(n *NFA, node pattern.Node, start StateID) (StateID, error) {
	switch v := node.(type) {
	case pattern.Char:
		accept := n.CreateState()
		n.State(start).AddTransition(Sym(v.Value), accept)
		return accept, nil

	case pattern.Any:
		accept := n.CreateState()
		n.State(start).AddTransition(Any, accept)
		return accept, nil

	case pattern.Class:
		accept := n.CreateState()
		for _, c := range v.Set {
			n.State(start).AddTransition(Sym(c), accept)
		}
		return accept, nil

	case pattern.Concat:
		cur := start
		for _, sub := range v.Nodes {
			next, err := compileNode(n, sub, cur)
			if err != nil {
				return InvalidState, err
			}
			cur = next
		}
		return cur, nil

	case pattern.Group:
		return compileNode(n, v.Elem, start)

	case pattern.Alt:
		n1 := n.CreateState()
		n2 := n.CreateState()
		accept := n.CreateState()

		n.State(start).AddTransition(Epsilon, n1)
		e1, err := compileNode(n, v.Left, n1)
		if err != nil {
			return InvalidState, err
		}
		n.State(e1).AddTransition(Epsilon, accept)

		n.State(start).AddTransition(Epsilon, n2)
		e2, err := compileNode(n, v.Right, n2)
		if err != nil {
			return InvalidState, err
		}
		n.State(e2).AddTransition(Epsilon, accept)

		return accept, nil

	case pattern.Star:
		accept := n.CreateState()
		n.State(start).AddTransition(Epsilon, accept)
		inner := n.CreateState()
		n.State(start).AddTransition(Epsilon, inner)
		e, err := compileNode(n, v.Elem, inner)
		if err != nil {
			return InvalidState, err
		}
		n.State(e).AddTransition(Epsilon, inner)
		n.State(e).AddTransition(Epsilon, accept)
		return accept, nil

	case pattern.Plus:
		accept := n.CreateState()
		inner := n.CreateState()
		n.State(start).AddTransition(Epsilon, inner)
		e, err := compileNode(n, v.Elem, inner)
		if err != nil {
			return InvalidState, err
		}
		n.State(e).AddTransition(Epsilon, inner)
		n.State(e).AddTransition(Epsilon, accept)
		return accept, nil

	case pattern.Opt:
		accept := n.CreateState()
		n.State(start).AddTransition(Epsilon, accept)
		e, err := compileNode(n, v.Elem, start)
		if err != nil {
			return InvalidState, err
		}
		n.State(e).AddTransition(Epsilon, accept)
		return accept, nil

	default:
		return InvalidState, ErrUnsupportedNode
	}
}
