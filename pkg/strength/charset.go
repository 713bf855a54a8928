package strength

import "strings"

const (
	// symbolAllowlist are the special characters recognised when sizing the
	// brute-force alphabet. Their presence adds 32 symbols to it.
	symbolAllowlist = "!@#$%^&*(),.?\":{}|<>"
	// suggestionSymbols is the narrower set a password needs to avoid the
	// "special characters" suggestion.
	suggestionSymbols = "!@#$%^&*"
)

// CharClass is a group of characters that adds Size symbols to the alphabet
// an attacker has to search when at least one of its members is present.
type CharClass struct {
	Name     string
	Size     int
	contains func(r rune) bool
}

// In reports whether password holds at least one character of the class.
func (c CharClass) In(password string) bool {
	return strings.IndexFunc(password, c.contains) >= 0
}

// CharClasses is the fixed alphabet table used by Entropy.
var CharClasses = []CharClass{
	{Name: "lowercase", Size: 26, contains: between('a', 'z')},
	{Name: "uppercase", Size: 26, contains: between('A', 'Z')},
	{Name: "digits", Size: 10, contains: between('0', '9')},
	{Name: "symbols", Size: 32, contains: oneOf(symbolAllowlist)},
}

func between(lo, hi rune) func(rune) bool {
	return func(r rune) bool {
		return r >= lo && r <= hi
	}
}

func oneOf(set string) func(rune) bool {
	return func(r rune) bool {
		return strings.ContainsRune(set, r)
	}
}

var (
	hasUpper  = between('A', 'Z')
	hasDigit  = between('0', '9')
	hasSymbol = oneOf(suggestionSymbols)
)
