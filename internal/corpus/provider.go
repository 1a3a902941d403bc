package corpus

import "fmt"

// Provider serves exact-length slices of the expected text.
//
// The corpus is padded with a single trailing space and repeated as often
// as a request needs, so the expected text is logically infinite. All
// indexing is by Unicode code point, never by byte.
type Provider struct {
	padded []rune
}

// NewProvider wraps a corpus string. The corpus must not be empty.
func NewProvider(corpus string) (*Provider, error) {
	runes := []rune(corpus)
	if len(runes) == 0 {
		return nil, fmt.Errorf("corpus is empty")
	}
	return &Provider{padded: append(runes, ' ')}, nil
}

// Text returns exactly length characters of expected text.
func (p *Provider) Text(length int) string {
	if length <= 0 {
		return ""
	}
	out := make([]rune, length)
	for i := range out {
		out[i] = p.padded[i%len(p.padded)]
	}
	return string(out)
}
