package tui

import (
	"testing"
	"unicode/utf8"
)

// staticText serves expected text by cycling over a fixed rune sequence,
// mirroring how corpus.Provider pads and repeats its corpus.
type staticText []rune

func (s staticText) Text(length int) string {
	if length <= 0 {
		return ""
	}
	out := make([]rune, length)
	for i := range out {
		out[i] = s[i%len(s)]
	}
	return string(out)
}

func TestSplitByCharIndex(t *testing.T) {
	left, right := SplitByCharIndex("hello world", 5)
	if left != "hello" || right != " world" {
		t.Fatalf("unexpected split: %q / %q", left, right)
	}
}

func TestSplitByCharIndexCountsRunes(t *testing.T) {
	left, right := SplitByCharIndex("Բարեւ Ձեզ", 5)
	if left != "Բարեւ" {
		t.Fatalf("expected %q, got %q", "Բարեւ", left)
	}
	if right != " Ձեզ" {
		t.Fatalf("expected %q, got %q", " Ձեզ", right)
	}
}

func TestSplitByCharIndexBounds(t *testing.T) {
	left, right := SplitByCharIndex("abc", 0)
	if left != "" || right != "abc" {
		t.Fatalf("unexpected split at 0: %q / %q", left, right)
	}
	left, right = SplitByCharIndex("abc", 10)
	if left != "abc" || right != "" {
		t.Fatalf("unexpected split past end: %q / %q", left, right)
	}
}

func TestLayoutFirstLine(t *testing.T) {
	provider := staticText("abcdefghij ")
	typed, rest, following := Layout(provider, 4, 10)
	if n := utf8.RuneCountInString(typed); n != 4 {
		t.Fatalf("expected 4 typed runes, got %d", n)
	}
	if n := utf8.RuneCountInString(rest); n != 6 {
		t.Fatalf("expected 6 remaining runes, got %d", n)
	}
	if n := utf8.RuneCountInString(following); n != 10 {
		t.Fatalf("expected a full lookahead line, got %d runes", n)
	}
	if typed+rest+following != provider.Text(20) {
		t.Fatalf("layout lost characters: %q %q %q", typed, rest, following)
	}
}

func TestLayoutTracksCursorLine(t *testing.T) {
	provider := staticText("abcdefghij ")
	typed, rest, following := Layout(provider, 13, 10)
	if n := utf8.RuneCountInString(typed); n != 13 {
		t.Fatalf("expected 13 typed runes, got %d", n)
	}
	if n := utf8.RuneCountInString(rest); n != 7 {
		t.Fatalf("expected 7 remaining runes, got %d", n)
	}
	if n := utf8.RuneCountInString(following); n != 10 {
		t.Fatalf("expected a full lookahead line, got %d runes", n)
	}
}

func TestLayoutClampsInput(t *testing.T) {
	provider := staticText("ab ")
	typed, rest, _ := Layout(provider, -3, 0)
	if typed != "" {
		t.Fatalf("expected no typed text, got %q", typed)
	}
	if rest == "" {
		t.Fatalf("expected a cursor line")
	}
}
