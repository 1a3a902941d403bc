// Package model defines shared data structures.
package model

import "time"

// Config defines a single test run.
type Config struct {
	Duration       time.Duration
	Numbers        bool
	NumbersRatio   float64
	Uppercase      bool
	UppercaseRatio float64
	Symbols        bool
	SymbolsRatio   float64
	DictionaryPath string
	SaveResults    bool
}

// Stats holds the numeric outcome of a finished test.
//
// Raw counters classify every keystroke at the moment it was pressed and
// are never revised by corrections. The corrected counters are derived
// from the final state of the input buffer.
type Stats struct {
	WPM float64

	RawAccuracy        float64
	RawValidCharacters uint64
	RawMistakes        uint64
	RawTypedCharacters uint64

	Accuracy        float64
	ValidCharacters uint64
	Mistakes        uint64
	TypedCharacters uint64
}

// Results combines test stats with the configuration that produced them.
type Results struct {
	FinishedAt time.Time
	Stats      Stats

	DurationSecs   int64
	Numbers        bool
	NumbersRatio   float64
	Uppercase      bool
	UppercaseRatio float64
	Symbols        bool
	SymbolsRatio   float64
	DictionaryPath string

	Completed bool
}

// Colors overrides the styles used for typed characters. Empty values
// keep the defaults.
type Colors struct {
	CorrectFg   string
	CorrectBg   string
	IncorrectFg string
	IncorrectBg string
}

// HistoryFilter defines options for the history views.
type HistoryFilter struct {
	Last int
}
