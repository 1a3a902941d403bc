// Package stats contains statistics calculations and reporting.
package stats

import (
	"time"

	"keydrill/internal/model"
)

// Compute derives the final statistics of a test from the finished input
// buffer, the matching-length slice of expected text, and the raw
// keystroke counters.
//
// WPM counts only characters that are valid in the final, corrected input:
// a word is normalized to 5 characters and the count is scaled to one
// minute. Uncorrected mistakes are excluded, corrected ones are not
// penalized twice.
func Compute(input, expected []rune, rawValid, rawMistakes uint64, duration time.Duration) model.Stats {
	typed := uint64(len(input))
	var mistakes uint64
	for i, r := range input {
		if i >= len(expected) || expected[i] != r {
			mistakes++
		}
	}
	valid := typed - mistakes

	wpm := 0.0
	if secs := duration.Seconds(); secs > 0 {
		wpm = float64(valid) / 5.0 * 60.0 / secs
	}

	return model.Stats{
		WPM:                wpm,
		RawAccuracy:        percentage(float64(rawValid), float64(rawValid+rawMistakes)),
		RawValidCharacters: rawValid,
		RawMistakes:        rawMistakes,
		RawTypedCharacters: rawValid + rawMistakes,
		Accuracy:           percentage(float64(valid), float64(typed)),
		ValidCharacters:    valid,
		Mistakes:           mistakes,
		TypedCharacters:    typed,
	}
}

func percentage(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator * 100
}
