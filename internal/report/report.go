package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"github.com/alvinbaena/pwd-analyzer/pkg/strength"
	"github.com/mgutz/ansi"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"io"
	"strconv"
	"time"
)

// maxCheckedPassLen caps what is given to zxcvbn, whose run time grows quickly
// with the length of the password.
const maxCheckedPassLen = 50

// Options toggles the optional parts of a report.
type Options struct {
	// ShowHash adds the SHA-256 digest of the password.
	ShowHash bool
	// Zxcvbn adds the zxcvbn score as a second opinion.
	Zxcvbn bool
	Color  bool
}

// Opinion is the zxcvbn view of a password.
type Opinion struct {
	Score            int    `json:"score"`
	CrackTimeDisplay string `json:"crack_time_display"`
}

// SecondOpinion runs zxcvbn on the first characters of password.
func SecondOpinion(password string) Opinion {
	runes := []rune(password)
	if len(runes) > maxCheckedPassLen {
		runes = runes[:maxCheckedPassLen]
	}

	match := zxcvbn.PasswordStrength(string(runes), nil)
	return Opinion{Score: match.Score, CrackTimeDisplay: match.CrackTimeDisplay}
}

// Hash returns the hex encoded SHA-256 digest of password. It is only ever
// displayed.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Printer writes human-readable reports.
type Printer struct {
	out  io.Writer
	opts Options
	p    *message.Printer
}

func NewPrinter(out io.Writer, opts Options) *Printer {
	return &Printer{out: out, opts: opts, p: message.NewPrinter(language.English)}
}

var strengthColors = map[strength.Strength]string{
	strength.Strong:   "green+b",
	strength.Moderate: "yellow+b",
	strength.Weak:     "red+b",
}

func (pr *Printer) strength(s strength.Strength) string {
	if !pr.opts.Color {
		return string(s)
	}
	return ansi.Color(string(s), strengthColors[s])
}

// Print writes the report of password. elapsed is the time the evaluation took.
func (pr *Printer) Print(password string, r strength.Result, elapsed time.Duration) error {
	w := &errWriter{w: pr.out}

	w.printf("\n===== Analysis Result =====\n")
	w.printf("Password: %s\n", password)
	w.printf("Score: %d/100\n", r.Score)
	w.printf("Strength: %s\n", pr.strength(r.Strength))
	w.printf("Entropy: %s bits\n", strconv.FormatFloat(r.Entropy, 'f', -1, 64))
	w.printf("Estimated Crack Time: %s\n", r.CrackTime)

	if pr.opts.ShowHash {
		w.printf("SHA-256 Hash: %s\n", Hash(password))
	}

	if pr.opts.Zxcvbn {
		o := SecondOpinion(password)
		w.printf("zxcvbn Score: %d/4 (%s)\n", o.Score, o.CrackTimeDisplay)
	}

	w.printf("\nSuggestions:\n")
	if len(r.Suggestions) == 0 {
		w.printf("No improvements needed.\n")
	}
	for _, s := range r.Suggestions {
		w.printf("- %s\n", s)
	}

	w.printf("\nAnalysis completed in %s seconds\n\n", pr.p.Sprintf("%.4f", elapsed.Seconds()))
	return w.err
}

// Summary writes the closing line of a batch run.
func (pr *Printer) Summary(count int, elapsed time.Duration) error {
	_, err := pr.p.Fprintf(pr.out, "%d passwords analyzed in %v\n", count, elapsed.Round(time.Millisecond))
	return err
}

// errWriter keeps the first write error and skips the writes after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
