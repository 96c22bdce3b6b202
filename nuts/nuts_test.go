package nuts

import "testing"

func TestCompileAndMatch(t *testing.T) {
	d, err := Compile("a|bc", nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	res := d.MatchLongest("bcd")
	if !res.Successful || res.End != 2 {
		t.Fatalf("MatchLongest = %+v, want successful end=2", res)
	}
}

func TestCompileInvalidPattern(t *testing.T) {
	if _, err := Compile("(ab", nil); err == nil {
		t.Fatal("expected error for unterminated group")
	}
}

func TestMustCompilePanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid pattern")
		}
	}()
	MustCompile("a**", nil)
}

func TestPatternSetClassifyPriority(t *testing.T) {
	ps, err := Build([]Entry{
		{Pattern: "foo", Label: "generic", Priority: 1},
		{Pattern: "foo", Label: "specific", Priority: 5},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	label, ok := ps.Classify("foo")
	if !ok || label != "specific" {
		t.Fatalf("Classify = (%v, %v), want (specific, true)", label, ok)
	}
}

func TestPatternSetLiteralPrefilterRejectsNoMatch(t *testing.T) {
	ps, err := Build([]Entry{
		{Pattern: "abc", Label: "abc", Priority: 0},
		{Pattern: "xyz", Label: "xyz", Priority: 0},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := ps.Classify("nothing in here"); ok {
		t.Fatal("expected no match")
	}
	label, ok := ps.Classify("xyz")
	if !ok || label != "xyz" {
		t.Fatalf("Classify(xyz) = (%v, %v), want (xyz, true)", label, ok)
	}
}

func TestPatternSetMixedLiteralAndPattern(t *testing.T) {
	ps, err := Build([]Entry{
		{Pattern: "abc", Label: "lit", Priority: 0},
		{Pattern: `\w+`, Label: "word", Priority: 0},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	label, ok := ps.Classify("zzz")
	if !ok || label != "word" {
		t.Fatalf("Classify(zzz) = (%v, %v), want (word, true)", label, ok)
	}
}

func TestBuildRejectsEmptySet(t *testing.T) {
	if _, err := Build(nil); err != ErrEmptyPatternSet {
		t.Fatalf("expected ErrEmptyPatternSet, got %v", err)
	}
}
