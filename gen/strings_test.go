package gen

import (
	"testing"
	"unicode"
)

func TestAlphaCharIsAlphabetic(t *testing.T) {
	for seed := int64(0); seed < 60; seed++ {
		r, err := AlphaChar().Call(testParams(seed))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !unicode.IsLetter(r) {
			t.Errorf("Generated a non-letter rune: %q", r)
		}
	}
}

func TestAlphaStringContent(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		p := testParams(seed)
		p.Size = 12
		s, err := AlphaString().Call(p)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(s) > 12 {
			t.Errorf("Generated string longer than the size: %q", s)
		}
		for _, r := range s {
			if !unicode.IsLetter(r) {
				t.Errorf("Generated string contains a non-letter rune: %q", s)
			}
		}
	}
}

func TestAnyStringIsPrintable(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		s, err := AnyString().Call(testParams(seed))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for _, r := range s {
			if !unicode.IsPrint(r) {
				t.Errorf("Generated string contains a non-printable rune: %q", s)
			}
		}
	}
}

func TestStringShrinksTowardEmpty(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		tr, err := AlphaString().Generate(testParams(seed))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if tr.Root() == "" {
			continue
		}
		for c := range tr.Children() {
			if c.Root() == "" {
				return
			}
		}
		t.Fatalf("A nonempty string should offer the empty string as a candidate. Root: %q", tr.Root())
	}
	t.Fatalf("Only empty strings were generated in 50 draws")
}
