package pattern

// Literal returns the exact byte sequence n matches if, and only if, n is
// built entirely from Char, Concat and Group nodes — no alternation,
// repetition, class or wildcard. It is used by nuts.PatternSet to build an
// Aho-Corasick prefilter over patterns that are really just literal
// strings in disguise.
func Literal(n Node) ([]byte, bool) {
	switch v := n.(type) {
	case Char:
		return []byte{v.Value}, true
	case Group:
		return Literal(v.Elem)
	case Concat:
		var out []byte
		for _, sub := range v.Nodes {
			lit, ok := Literal(sub)
			if !ok {
				return nil, false
			}
			out = append(out, lit...)
		}
		return out, true
	default:
		return nil, false
	}
}
