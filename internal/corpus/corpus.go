// Package corpus builds the reference text for a typing test.
//
// The corpus is generated once per session: the dictionary words are
// shuffled, perturbed (numbers, uppercase, symbols) and joined into a
// single string. A Provider then serves exact-length slices of it to the
// session engine, repeating the corpus when the request outruns it.
package corpus

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"keydrill/internal/model"
)

var (
	endSymbols  = []rune{'.', ',', '!', '?', ';', ':'}
	symbolPairs = [][2]rune{
		{'(', ')'},
		{'[', ']'},
		{'{', '}'},
		{'<', '>'},
		{'"', '"'},
		{'\'', '\''},
	}
)

// Generator produces randomized reference text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a Generator with a fixed seed, for deterministic output.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Build shuffles the word list, applies the perturbations enabled in cfg,
// reshuffles, and joins the words with single spaces.
//
// Each perturbation is applied per word with independent probability equal
// to its ratio. Build assumes ratios were validated by the caller.
func (g *Generator) Build(words []string, cfg model.Config) (string, error) {
	out := make([]string, len(words))
	copy(out, words)
	g.rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	for i, word := range out {
		if cfg.Numbers && g.rnd.Float64() < cfg.NumbersRatio {
			word = g.digitWord(word)
		}
		if cfg.Uppercase && g.rnd.Float64() < cfg.UppercaseRatio {
			word = uppercaseFirst(word)
		}
		if cfg.Symbols && g.rnd.Float64() < cfg.SymbolsRatio {
			word = g.applySymbol(word)
		}
		out[i] = word
	}

	// Second shuffle removes any positional correlation with the source order.
	g.rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	corpus := strings.TrimSpace(strings.Join(out, " "))
	if corpus == "" {
		return "", fmt.Errorf("corpus is empty")
	}
	return corpus, nil
}

// digitWord replaces every character with a random decimal digit,
// preserving the character count.
func (g *Generator) digitWord(word string) string {
	runes := []rune(word)
	for i := range runes {
		runes[i] = rune('0' + g.rnd.Intn(10))
	}
	return string(runes)
}

func uppercaseFirst(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// applySymbol either appends a terminal symbol or surrounds the word with
// a matching pair, with equal probability. The word's own first character
// is never modified, so uppercase transforms survive intact.
func (g *Generator) applySymbol(word string) string {
	if g.rnd.Intn(2) == 0 {
		end := endSymbols[g.rnd.Intn(len(endSymbols))]
		return word + string(end)
	}
	pair := symbolPairs[g.rnd.Intn(len(symbolPairs))]
	return string(pair[0]) + word + string(pair[1])
}
