package strength

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Strength is the coarse label derived from a score.
type Strength string

const (
	Weak     Strength = "Weak"
	Moderate Strength = "Moderate"
	Strong   Strength = "Strong"
)

// MinLength is the length under which a password is advised to grow.
const MinLength = 12

// Suggestions, in the order they are given.
const (
	SuggestUppercase = "Add uppercase letters."
	SuggestNumbers   = "Add numbers."
	SuggestSpecial   = "Add special characters."
	SuggestLength    = "Increase password length."
)

// Result is the report produced for one password.
type Result struct {
	Entropy  float64  `json:"entropy"`
	Score    int      `json:"score"`
	Strength Strength `json:"strength"`
	// CrackTime is Estimate rendered for humans.
	CrackTime string   `json:"crack_time"`
	Estimate  Estimate `json:"-"`
	// Suggestions is empty, never nil, when nothing needs improving.
	Suggestions []string `json:"suggestions"`
}

// ScoreFor maps entropy to a 0-100 score.
func ScoreFor(entropy float64) int {
	if entropy <= 0 {
		return 0
	}
	return int(math.Min(math.Floor(entropy*1.5), 100))
}

// StrengthFor labels a score. Both thresholds are exclusive.
func StrengthFor(score int) Strength {
	switch {
	case score > 70:
		return Strong
	case score > 40:
		return Moderate
	default:
		return Weak
	}
}

// Suggest lists composition improvements for password. It only looks at
// which characters are used and how many, never at patterns.
func Suggest(password string) []string {
	suggestions := make([]string, 0, 4)

	if strings.IndexFunc(password, hasUpper) < 0 {
		suggestions = append(suggestions, SuggestUppercase)
	}
	if strings.IndexFunc(password, hasDigit) < 0 {
		suggestions = append(suggestions, SuggestNumbers)
	}
	if strings.IndexFunc(password, hasSymbol) < 0 {
		suggestions = append(suggestions, SuggestSpecial)
	}
	if utf8.RuneCountInString(password) < MinLength {
		suggestions = append(suggestions, SuggestLength)
	}

	return suggestions
}

// Evaluator evaluates passwords against a fixed dictionary. It holds no
// mutable state and can be shared between goroutines.
type Evaluator struct {
	dict       *Dictionary
	classifier *Classifier
}

// NewEvaluator creates an Evaluator. dict may be nil.
func NewEvaluator(dict *Dictionary, cfg Config) *Evaluator {
	return &Evaluator{dict: dict, classifier: NewClassifier(cfg)}
}

// Dictionary returns the dictionary the evaluator checks against.
func (e *Evaluator) Dictionary() *Dictionary {
	return e.dict
}

// Evaluate produces the full report for password.
func (e *Evaluator) Evaluate(password string) Result {
	entropy := Entropy(password)
	estimate := e.classifier.Classify(password, entropy, e.dict)
	score := ScoreFor(entropy)

	return Result{
		Entropy:     entropy,
		Score:       score,
		Strength:    StrengthFor(score),
		CrackTime:   estimate.String(),
		Estimate:    estimate,
		Suggestions: Suggest(password),
	}
}

// Evaluate is a shorthand for an Evaluator using DefaultConfig.
func Evaluate(password string, dict *Dictionary) Result {
	return NewEvaluator(dict, DefaultConfig()).Evaluate(password)
}
