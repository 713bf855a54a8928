package strength

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// PhaseKind identifies one step of the crack time waterfall.
type PhaseKind int

const (
	ExactMatch PhaseKind = iota + 1
	MaskAttack
	DigitsWord
	NumberWordNumber
	WordNumberWord
	Year
	DictionarySubstring
	Leet
	Repeated
	Sequential
	LowEntropy
	BruteForce
)

var phaseNames = map[PhaseKind]string{
	ExactMatch:          "exact-match",
	MaskAttack:          "mask-attack",
	DigitsWord:          "digits-word",
	NumberWordNumber:    "number-word-number",
	WordNumberWord:      "word-number-word",
	Year:                "year",
	DictionarySubstring: "dictionary-substring",
	Leet:                "leet",
	Repeated:            "repeated",
	Sequential:          "sequential",
	LowEntropy:          "low-entropy",
	BruteForce:          "brute-force",
}

func (k PhaseKind) String() string {
	if name, ok := phaseNames[k]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(k))
}

// MarshalText renders the phase by name in JSON documents.
func (k PhaseKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Estimate is the outcome of the phase that classified a password.
type Estimate struct {
	Phase  PhaseKind
	Label  string
	Reason string
	// Seconds is the modelled attack time for the phases that compute one
	// (mask attack and brute force), 0 otherwise.
	Seconds float64
	// Match is the dictionary word or pattern that triggered the phase, if any.
	Match string
}

// String renders the estimate as "Label (Reason)".
func (e Estimate) String() string {
	if e.Reason == "" {
		return e.Label
	}
	return fmt.Sprintf("%s (%s)", e.Label, e.Reason)
}

// phase pairs a kind with its predicate. match returns false when the phase
// does not apply to the candidate.
type phase struct {
	kind  PhaseKind
	match func(c candidate) (Estimate, bool)
}

// candidate carries everything a phase may look at.
type candidate struct {
	password string
	lower    string
	entropy  float64
	dict     *Dictionary
}

var (
	digitsWord       = regexp.MustCompile(`^[0-9]+[a-zA-Z]+$`)
	numberWordNumber = regexp.MustCompile(`^[0-9]+[a-zA-Z]+[0-9]+$`)
	wordNumberWord   = regexp.MustCompile(`^[a-zA-Z]+[0-9]+[a-zA-Z]+$`)
)

// Classifier estimates how long a realistic attacker needs to crack a
// password. The phases run in a fixed order and the first one that applies
// decides the result; the last phase always applies.
type Classifier struct {
	cfg    Config
	mask   *regexp.Regexp
	phases []phase
}

// NewClassifier builds a Classifier. Zero fields of cfg take the value of
// DefaultConfig.
func NewClassifier(cfg Config) *Classifier {
	cfg = cfg.withDefaults()
	c := &Classifier{
		cfg:  cfg,
		mask: regexp.MustCompile(fmt.Sprintf(`^([a-zA-Z]+)([0-9]{%d})$`, cfg.MaskDigits)),
	}

	c.phases = []phase{
		{ExactMatch, c.exactMatch},
		{MaskAttack, c.maskAttack},
		{DigitsWord, shape(digitsWord, "Digits + word pattern")},
		{NumberWordNumber, shape(numberWordNumber, "Number + word + number pattern")},
		{WordNumberWord, shape(wordNumberWord, "Word + number + word pattern")},
		{Year, c.year},
		{DictionarySubstring, c.dictionarySubstring},
		{Leet, c.leet},
		{Repeated, c.repeated},
		{Sequential, c.sequential},
		{LowEntropy, c.lowEntropy},
		{BruteForce, c.bruteForce},
	}

	return c
}

// Phases lists the phase kinds in evaluation order.
func (c *Classifier) Phases() []PhaseKind {
	kinds := make([]PhaseKind, len(c.phases))
	for i, p := range c.phases {
		kinds[i] = p.kind
	}
	return kinds
}

// Classify runs the waterfall for password. entropy is the value computed by
// Entropy for the same password; dict may be nil.
func (c *Classifier) Classify(password string, entropy float64, dict *Dictionary) Estimate {
	in := candidate{
		password: password,
		lower:    strings.ToLower(password),
		entropy:  entropy,
		dict:     dict,
	}

	for _, p := range c.phases {
		if est, ok := p.match(in); ok {
			est.Phase = p.kind
			return est
		}
	}

	// unreachable, bruteForce always matches
	return c.bruteForceEstimate(entropy)
}

func minutes(reason, match string) Estimate {
	return Estimate{Label: "Minutes", Reason: reason, Match: match}
}

func shape(re *regexp.Regexp, reason string) func(candidate) (Estimate, bool) {
	return func(in candidate) (Estimate, bool) {
		if !re.MatchString(in.password) {
			return Estimate{}, false
		}
		return minutes(reason, re.String()), true
	}
}

func (c *Classifier) exactMatch(in candidate) (Estimate, bool) {
	if !in.dict.Contains(in.lower) {
		return Estimate{}, false
	}
	return Estimate{Label: "Instant", Reason: "Exact dictionary match", Match: in.lower}, true
}

// maskAttack covers a dictionary word followed by a fixed amount of digits:
// only the numeric suffix has to be brute forced.
func (c *Classifier) maskAttack(in candidate) (Estimate, bool) {
	m := c.mask.FindStringSubmatch(in.password)
	if m == nil {
		return Estimate{}, false
	}

	base := strings.ToLower(m[1])
	if !in.dict.Contains(base) {
		return Estimate{}, false
	}

	return Estimate{
		Label:   "Seconds",
		Reason:  fmt.Sprintf("Dictionary + %d digit mask attack", c.cfg.MaskDigits),
		Seconds: math.Pow10(c.cfg.MaskDigits) / c.cfg.GuessesPerSecond,
		Match:   base,
	}, true
}

func (c *Classifier) year(in candidate) (Estimate, bool) {
	loc := c.cfg.YearPattern.FindStringIndex(in.password)
	if loc == nil {
		return Estimate{}, false
	}

	// the pattern also consumes the characters bounding the year
	found := strings.TrimFunc(in.password[loc[0]:loc[1]], func(r rune) bool { return !hasDigit(r) })
	return minutes("Contains isolated year pattern", found), true
}

func (c *Classifier) dictionarySubstring(in candidate) (Estimate, bool) {
	word, ok := in.dict.firstIn(in.lower, c.cfg.MinSubstringLen)
	if !ok {
		return Estimate{}, false
	}
	return minutes("Contains dictionary substring", word), true
}

func (c *Classifier) leet(in candidate) (Estimate, bool) {
	word, ok := in.dict.firstIn(c.cfg.Leet.Normalize(in.lower), 0)
	if !ok {
		return Estimate{}, false
	}
	return minutes("Leet-based dictionary match", word), true
}

func (c *Classifier) repeated(in candidate) (Estimate, bool) {
	run, ok := repeatedRun(in.password, c.cfg.RepeatRunLen)
	if !ok {
		return Estimate{}, false
	}
	return minutes("Repeated character sequence", run), true
}

// repeatedRun finds the first character repeated at least n times in a row.
// Line breaks never count as part of a run.
func repeatedRun(s string, n int) (string, bool) {
	prev, count := rune(-1), 0
	for _, r := range s {
		switch {
		case r == '\n':
			prev, count = -1, 0
			continue
		case r == prev:
			count++
		default:
			prev, count = r, 1
		}

		if count >= n {
			return strings.Repeat(string(r), n), true
		}
	}

	return "", false
}

func (c *Classifier) sequential(in candidate) (Estimate, bool) {
	for _, seq := range c.cfg.SequentialPatterns {
		if strings.Contains(in.lower, seq) {
			return minutes("Sequential pattern detected", seq), true
		}
	}
	return Estimate{}, false
}

func (c *Classifier) lowEntropy(in candidate) (Estimate, bool) {
	if in.entropy >= c.cfg.LowEntropyBits {
		return Estimate{}, false
	}
	return Estimate{Label: "Days", Reason: "Low entropy - brute-force feasible"}, true
}

func (c *Classifier) bruteForce(in candidate) (Estimate, bool) {
	return c.bruteForceEstimate(in.entropy), true
}

// bruteForceEstimate searches the whole 2^entropy space at the configured
// throughput and buckets the result in years.
func (c *Classifier) bruteForceEstimate(entropy float64) Estimate {
	seconds := math.Pow(2, entropy) / c.cfg.GuessesPerSecond
	years := seconds / secondsPerYear

	est := Estimate{Phase: BruteForce, Seconds: seconds}
	switch {
	case years > 1e6:
		est.Label, est.Reason = "Effectively uncrackable", "current tech"
	case years > 100:
		est.Label = "Centuries"
	case years > 10:
		est.Label = "Decades"
	default:
		est.Label = formatYears(years)
	}

	return est
}

// formatYears renders years rounded to two decimals without trailing zeros,
// keeping at least one decimal: 0.1, 0.42, 2.0.
func formatYears(years float64) string {
	s := strconv.FormatFloat(round2(years), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + " years"
}
