// Package wordlist loads dictionary word lists.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads one word per line from the provided file path.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dictionary.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("dictionary is empty")
	}
	return words, nil
}

// Builtin returns the built-in fallback word list.
func Builtin() []string {
	out := make([]string, len(builtinWords))
	copy(out, builtinWords)
	return out
}

var builtinWords = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
	"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
	"this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
	"or", "an", "will", "my", "one", "all", "would", "there", "their", "what",
	"so", "up", "out", "if", "about", "who", "get", "which", "go", "me",
	"when", "make", "can", "like", "time", "no", "just", "him", "know", "take",
	"people", "into", "year", "your", "good", "some", "could", "them", "see", "other",
	"than", "then", "now", "look", "only", "come", "its", "over", "think", "also",
	"back", "after", "use", "two", "how", "our", "work", "first", "well", "way",
	"even", "new", "want", "because", "any", "these", "give", "day", "most", "us",
	"great", "between", "need", "own", "under", "might", "while", "last", "never", "world",
	"still", "should", "found", "those", "every", "again", "place", "small", "sound", "before",
}
