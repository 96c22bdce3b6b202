package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunClassify(t *testing.T) {
	cfg := &Config{Patterns: []PatternConfig{
		{Label: "digits", Pattern: "[0-9]+", Priority: 0},
		{Label: "word", Pattern: `[a-zA-Z]+`, Priority: 0},
	}}
	ps, err := buildPatternSet(cfg)
	require.NoError(t, err)

	var out strings.Builder
	in := strings.NewReader("123\nabc\n")
	require.NoError(t, runClassify(ps, in, &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "123\tdigits", lines[0])
	assert.Equal(t, "abc\tword", lines[1])
}

func TestRunClassifySkipsUnmatched(t *testing.T) {
	cfg := &Config{Patterns: []PatternConfig{{Label: "digits", Pattern: "[0-9]+", Priority: 0}}}
	ps, err := buildPatternSet(cfg)
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, runClassify(ps, strings.NewReader("!!!\n"), &out))
	assert.Empty(t, out.String())
}
