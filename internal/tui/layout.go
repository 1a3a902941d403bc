package tui

// ExpectedText serves exact-length slices of the reference text.
// Implemented by corpus.Provider; tests substitute their own.
type ExpectedText interface {
	Text(length int) string
}

// SplitByCharIndex splits s at the given character index. Indexing is by
// Unicode code point, never by byte.
func SplitByCharIndex(s string, index int) (string, string) {
	if index <= 0 {
		return "", s
	}
	count := 0
	for i := range s {
		if count == index {
			return s[:i], s[i:]
		}
		count++
	}
	return s, ""
}

// Layout maps the flat expected text onto wrapped terminal rows of the
// given width, synchronized to how far the user has typed.
//
// It returns the expected text already covered by input, the remainder of
// the cursor's line, and one full lookahead line. The first return value
// always spans exactly typedLen characters.
func Layout(provider ExpectedText, typedLen, width int) (alreadyTyped, currentLineRest, followingLines string) {
	if width < 1 {
		width = 1
	}
	if typedLen < 0 {
		typedLen = 0
	}
	currentLine := typedLen / width

	text := provider.Text((currentLine + 2) * width)
	currentBlock, following := SplitByCharIndex(text, (currentLine+1)*width)
	typed, rest := SplitByCharIndex(currentBlock, typedLen)
	return typed, rest, following
}
