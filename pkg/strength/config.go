package strength

import "regexp"

const (
	// DefaultGuessesPerSecond is the throughput of a well-equipped offline attacker.
	DefaultGuessesPerSecond = 1e10
	secondsPerYear          = 60 * 60 * 24 * 365
)

// Config holds the attacker model and the fixed pattern sets of a Classifier.
type Config struct {
	// GuessesPerSecond is used by the mask attack and brute-force estimates.
	GuessesPerSecond float64
	// SequentialPatterns are matched case-insensitively as plain substrings.
	SequentialPatterns []string
	// YearPattern must only match a year that is not part of a longer number.
	YearPattern *regexp.Regexp
	Leet        LeetTable
	// MinSubstringLen is the shortest dictionary word looked for inside a
	// password. It does not apply to leet matching.
	MinSubstringLen int
	// RepeatRunLen is how many identical consecutive characters make a run.
	RepeatRunLen int
	// LowEntropyBits is the entropy below which brute force is deemed feasible.
	LowEntropyBits float64
	// MaskDigits is the length of the numeric suffix of a mask attack.
	MaskDigits int
}

// DefaultConfig returns the configuration every estimate in this package
// is calibrated against.
func DefaultConfig() Config {
	return Config{
		GuessesPerSecond:   DefaultGuessesPerSecond,
		SequentialPatterns: []string{"1234", "abcd", "qwerty"},
		YearPattern:        regexp.MustCompile(`(^|[^0-9])(19|20)[0-9]{2}($|[^0-9])`),
		Leet:               DefaultLeetTable(),
		MinSubstringLen:    4,
		RepeatRunLen:       3,
		LowEntropyBits:     50,
		MaskDigits:         4,
	}
}

// withDefaults fills the zero fields of c from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.GuessesPerSecond <= 0 {
		c.GuessesPerSecond = d.GuessesPerSecond
	}
	if c.SequentialPatterns == nil {
		c.SequentialPatterns = d.SequentialPatterns
	}
	if c.YearPattern == nil {
		c.YearPattern = d.YearPattern
	}
	if c.Leet == nil {
		c.Leet = d.Leet
	}
	if c.MinSubstringLen <= 0 {
		c.MinSubstringLen = d.MinSubstringLen
	}
	if c.RepeatRunLen <= 0 {
		c.RepeatRunLen = d.RepeatRunLen
	}
	if c.LowEntropyBits <= 0 {
		c.LowEntropyBits = d.LowEntropyBits
	}
	if c.MaskDigits <= 0 {
		c.MaskDigits = d.MaskDigits
	}

	return c
}
