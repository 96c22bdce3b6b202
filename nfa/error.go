package nfa

import "errors"

// ErrInvalidState indicates an operation was attempted against a state id
// that does not exist in the NFA.
var ErrInvalidState = errors.New("nfa: invalid state id")

// ErrUnsupportedNode indicates the pattern parser produced a syntax node
// the Thompson construction does not know how to compile. This should be
// unreachable for anything pattern.Parse returns; it guards against future
// pattern.Node variants being added without a matching compile case.
var ErrUnsupportedNode = errors.New("nfa: unsupported syntax node")
